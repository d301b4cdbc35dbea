package cache

import (
	"context"
	"sort"

	"traininglog/app/internal/domain"
	"traininglog/app/internal/repository"
	"traininglog/app/internal/service"
)

// Key spaces invalidated by mutations. The bounded list and the
// infinite-paginated list are distinct spaces; a training mutation clears
// both, while planned-training mutations touch only the flat planned key.
var (
	trainingListSpace     = Key{"trainings", "list"}
	trainingInfiniteSpace = Key{"trainings", "infinite"}
)

// Queries is the read/write surface handed to the UI layer. Reads go through
// the cache with per-key de-duplication; writes invalidate the prescribed
// key spaces on success and surface a notification either way. When the
// primary backend fails on a read and a fallback store is configured, the
// fallback dataset is served so the UI stays populated in offline/demo
// conditions.
type Queries struct {
	cache     *Cache
	trainings service.TrainingService
	planned   service.PlannedService
	notifier  Notifier

	fallbackTrainings repository.TrainingRepository
	fallbackPlanned   repository.PlannedRepository
}

// Option configures optional Queries collaborators.
type Option func(*Queries)

// WithFallback installs the demo store served when a primary read fails.
func WithFallback(trainings repository.TrainingRepository, planned repository.PlannedRepository) Option {
	return func(q *Queries) {
		q.fallbackTrainings = trainings
		q.fallbackPlanned = planned
	}
}

// WithNotifier installs the user-facing notification hook.
func WithNotifier(n Notifier) Option {
	return func(q *Queries) { q.notifier = n }
}

// NewQueries builds the query/mutation layer over the service facades.
func NewQueries(trainings service.TrainingService, planned service.PlannedService, opts ...Option) *Queries {
	q := &Queries{
		cache:     New(),
		trainings: trainings,
		planned:   planned,
		notifier:  NopNotifier{},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Cache exposes the underlying cache, mainly for handler-level invalidation
// hooks and tests.
func (q *Queries) Cache() *Cache { return q.cache }

// ---- reads ----

// Trainings returns the bounded training list, newest first regardless of
// which backend produced it.
func (q *Queries) Trainings(ctx context.Context, limit int) ([]domain.TrainingRecord, error) {
	return Fetch(ctx, q.cache, TrainingListKey(limit), func(ctx context.Context) ([]domain.TrainingRecord, error) {
		records, err := q.trainings.GetTrainings(ctx, limit, 0)
		if err != nil {
			if q.fallbackTrainings == nil {
				return nil, err
			}
			records, err = q.fallbackTrainings.List(ctx, limit, 0)
			if err != nil {
				return nil, err
			}
		}
		// Backend ordering is not guaranteed across backends; re-sort here.
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Date.After(records[j].Date)
		})
		return records, nil
	})
}

// TrainingsPage returns one page of the infinite-paginated list. Pages are
// cached in their own key space, separate from the bounded list.
func (q *Queries) TrainingsPage(ctx context.Context, page, pageSize int) ([]domain.TrainingRecord, error) {
	if page < 1 {
		page = 1
	}
	return Fetch(ctx, q.cache, TrainingInfiniteKey(page), func(ctx context.Context) ([]domain.TrainingRecord, error) {
		records, err := q.trainings.GetTrainings(ctx, pageSize, (page-1)*pageSize)
		if err != nil && q.fallbackTrainings != nil {
			return q.fallbackTrainings.List(ctx, pageSize, (page-1)*pageSize)
		}
		return records, err
	})
}

// TrainingByID returns one training detail.
func (q *Queries) TrainingByID(ctx context.Context, id string) (*domain.TrainingRecord, error) {
	return Fetch(ctx, q.cache, TrainingDetailKey(id), func(ctx context.Context) (*domain.TrainingRecord, error) {
		return q.trainings.GetTrainingByID(ctx, id)
	})
}

// PlannedTrainings returns all planned trainings under the flat planned key.
func (q *Queries) PlannedTrainings(ctx context.Context) ([]domain.PlannedTraining, error) {
	return Fetch(ctx, q.cache, PlannedKey(), func(ctx context.Context) ([]domain.PlannedTraining, error) {
		plans, err := q.planned.GetPlanned(ctx, 0, 0)
		if err != nil && q.fallbackPlanned != nil {
			return q.fallbackPlanned.List(ctx, 0, 0)
		}
		return plans, err
	})
}

// ---- mutations ----

// mutate wraps one write: on failure it skips invalidation, emits a
// destructive notification and never retries; on success it invalidates the
// given key spaces and emits a success notification.
func mutate[T any](ctx context.Context, q *Queries, title string, fn func(context.Context) (T, error), invalidate ...Key) (T, error) {
	result, err := fn(ctx)
	if err != nil {
		q.notifier.Notify(NotifyDestructive, title+" failed", "Something went wrong. Please try again.")
		return result, err
	}
	q.cache.Invalidate(invalidate...)
	q.notifier.Notify(NotifySuccess, title, "Saved.")
	return result, nil
}

// CreateTraining inserts a new record. Each call produces a new identity;
// create is never idempotent.
func (q *Queries) CreateTraining(ctx context.Context, record domain.TrainingRecord) (*domain.TrainingRecord, error) {
	return mutate(ctx, q, "Training logged", func(ctx context.Context) (*domain.TrainingRecord, error) {
		return q.trainings.CreateTraining(ctx, record)
	}, trainingListSpace, trainingInfiniteSpace)
}

// UpdateTraining applies a partial update and additionally invalidates the
// affected detail key.
func (q *Queries) UpdateTraining(ctx context.Context, id string, patch domain.TrainingPatch) (*domain.TrainingRecord, error) {
	return mutate(ctx, q, "Training updated", func(ctx context.Context) (*domain.TrainingRecord, error) {
		return q.trainings.UpdateTraining(ctx, id, patch)
	}, trainingListSpace, trainingInfiniteSpace, TrainingDetailKey(id))
}

// DeleteTraining removes a record. A repeat delete surfaces NotFound.
func (q *Queries) DeleteTraining(ctx context.Context, id string) error {
	_, err := mutate(ctx, q, "Training deleted", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, q.trainings.DeleteTraining(ctx, id)
	}, trainingListSpace, trainingInfiniteSpace)
	return err
}

// CreatePlanned inserts a planned training; only the planned key is touched.
func (q *Queries) CreatePlanned(ctx context.Context, plan domain.PlannedTraining) (*domain.PlannedTraining, error) {
	return mutate(ctx, q, "Session planned", func(ctx context.Context) (*domain.PlannedTraining, error) {
		return q.planned.CreatePlanned(ctx, plan)
	}, PlannedKey())
}

// UpdatePlanned applies a partial update to a planned training.
func (q *Queries) UpdatePlanned(ctx context.Context, id string, patch domain.PlannedPatch) (*domain.PlannedTraining, error) {
	return mutate(ctx, q, "Plan updated", func(ctx context.Context) (*domain.PlannedTraining, error) {
		return q.planned.UpdatePlanned(ctx, id, patch)
	}, PlannedKey())
}

// DeletePlanned removes a planned training.
func (q *Queries) DeletePlanned(ctx context.Context, id string) error {
	_, err := mutate(ctx, q, "Plan deleted", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, q.planned.DeletePlanned(ctx, id)
	}, PlannedKey())
	return err
}
