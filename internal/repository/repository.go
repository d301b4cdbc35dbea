package repository

import (
	"context"

	"traininglog/app/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TrainingRepository defines the uniform CRUD contract for logged trainings.
// Both the in-memory demo store and the remote HTTP accessor implement it;
// the backend is chosen once at startup and injected into the services.
//
// List is ordered by date descending on the in-memory backend. The remote
// backend returns whatever order the server chose; callers that care about
// order must re-sort.
type TrainingRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.TrainingRecord, error)
	GetByID(ctx context.Context, id string) (*domain.TrainingRecord, error)
	Create(ctx context.Context, record *domain.TrainingRecord) (*domain.TrainingRecord, error)
	Update(ctx context.Context, id string, patch domain.TrainingPatch) (*domain.TrainingRecord, error)
	Delete(ctx context.Context, id string) error
}

// PlannedRepository defines the CRUD contract for planned trainings,
// partitioned by plannedDate instead of date.
type PlannedRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.PlannedTraining, error)
	GetByID(ctx context.Context, id string) (*domain.PlannedTraining, error)
	Create(ctx context.Context, plan *domain.PlannedTraining) (*domain.PlannedTraining, error)
	Update(ctx context.Context, id string, patch domain.PlannedPatch) (*domain.PlannedTraining, error)
	Delete(ctx context.Context, id string) error
}

// WeekPlanRepository stores the weekly-plan grid. Slots are replaced
// wholesale per weekday; an absent weekday means no slot, never a zero record.
type WeekPlanRepository interface {
	// Week returns the slots for the given user and week offset, at most one
	// per weekday.
	Week(ctx context.Context, userID string, offset int) ([]domain.DayTraining, error)
	// PutDay creates or replaces the slot for slot.Day in the given week.
	PutDay(ctx context.Context, userID string, offset int, slot *domain.DayTraining) (*domain.DayTraining, error)
	// ClearDay removes the slot for the weekday, if any.
	ClearDay(ctx context.Context, userID string, offset int, day int) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	AddAthleteToCoach(ctx context.Context, coachID, athleteID string) error
	GetAthletesByCoachID(ctx context.Context, coachID string) ([]domain.User, error)
	GetPendingAthletes(ctx context.Context) ([]domain.User, error)
}
