package service

import (
	"context"
	"errors"
	"time"

	"traininglog/app/internal/domain"
	"traininglog/app/internal/repository"
	"traininglog/app/internal/stats"
)

// PlannedService is the CRUD facade over planned trainings, partitioned by
// plannedDate.
type PlannedService interface {
	GetPlanned(ctx context.Context, limit, offset int) ([]domain.PlannedTraining, error)
	GetPlannedByID(ctx context.Context, id string) (*domain.PlannedTraining, error)
	CreatePlanned(ctx context.Context, plan domain.PlannedTraining) (*domain.PlannedTraining, error)
	UpdatePlanned(ctx context.Context, id string, patch domain.PlannedPatch) (*domain.PlannedTraining, error)
	DeletePlanned(ctx context.Context, id string) error
}

type plannedService struct {
	repo repository.PlannedRepository
}

// NewPlannedService creates a new instance of plannedService.
func NewPlannedService(repo repository.PlannedRepository) PlannedService {
	return &plannedService{repo: repo}
}

func (s *plannedService) GetPlanned(ctx context.Context, limit, offset int) ([]domain.PlannedTraining, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *plannedService) GetPlannedByID(ctx context.Context, id string) (*domain.PlannedTraining, error) {
	if id == "" {
		return nil, ErrValidationFailed
	}
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *plannedService) CreatePlanned(ctx context.Context, plan domain.PlannedTraining) (*domain.PlannedTraining, error) {
	if plan.UserID == "" || plan.Type == "" || plan.PlannedDate.IsZero() {
		return nil, ErrValidationFailed
	}
	if plan.PlannedDuration < 0 {
		return nil, ErrValidationFailed
	}
	if plan.Category != "" && plan.Type != domain.TrainingRunning {
		// Categories refine running sessions only.
		return nil, ErrValidationFailed
	}
	plan.ID = ""
	return s.repo.Create(ctx, &plan)
}

func (s *plannedService) UpdatePlanned(ctx context.Context, id string, patch domain.PlannedPatch) (*domain.PlannedTraining, error) {
	if id == "" {
		return nil, ErrValidationFailed
	}
	if patch.PlannedDuration != nil && *patch.PlannedDuration < 0 {
		return nil, ErrValidationFailed
	}
	plan, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *plannedService) DeletePlanned(ctx context.Context, id string) error {
	if id == "" {
		return ErrValidationFailed
	}
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// --- weekly plan grid ---

// WeekSummary bundles the derived weekly statistics with the trend against
// the previous week.
type WeekSummary struct {
	Summary stats.WeeklySummary `json:"summary"`
	Trend   stats.WeeklyTrend   `json:"trend"`
}

// WeekPlanService manages the weekly-plan grid and its derived summaries.
type WeekPlanService interface {
	GetWeek(ctx context.Context, userID string, offset int) ([]domain.DayTraining, error)
	PutDay(ctx context.Context, userID string, offset int, slot domain.DayTraining) (*domain.DayTraining, error)
	ClearDay(ctx context.Context, userID string, offset int, day int) error
	GetSummary(ctx context.Context, userID string, offset int) (*WeekSummary, error)
}

type weekPlanService struct {
	repo repository.WeekPlanRepository
	now  func() time.Time
}

// NewWeekPlanService creates a new instance of weekPlanService. A nil clock
// falls back to time.Now.
func NewWeekPlanService(repo repository.WeekPlanRepository, now func() time.Time) WeekPlanService {
	if now == nil {
		now = time.Now
	}
	return &weekPlanService{repo: repo, now: now}
}

func (s *weekPlanService) GetWeek(ctx context.Context, userID string, offset int) ([]domain.DayTraining, error) {
	if userID == "" {
		return nil, ErrValidationFailed
	}
	return s.repo.Week(ctx, userID, offset)
}

func (s *weekPlanService) PutDay(ctx context.Context, userID string, offset int, slot domain.DayTraining) (*domain.DayTraining, error) {
	if userID == "" || slot.ActivityType == "" {
		return nil, ErrValidationFailed
	}
	if slot.RPE != nil && (*slot.RPE < 1 || *slot.RPE > 10) {
		return nil, ErrValidationFailed
	}
	if slot.Status == "" {
		slot.Status = domain.DayPlanned
	}
	if slot.Intensity == "" {
		slot.Intensity = domain.IntensityLow
	}
	return s.repo.PutDay(ctx, userID, offset, &slot)
}

func (s *weekPlanService) ClearDay(ctx context.Context, userID string, offset int, day int) error {
	if userID == "" || day < 1 || day > 7 {
		return ErrValidationFailed
	}
	err := s.repo.ClearDay(ctx, userID, offset, day)
	if err != nil && errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

// GetSummary recomputes the weekly summary from the raw slots on every call,
// along with the trend against the previous week. Nothing is persisted.
func (s *weekPlanService) GetSummary(ctx context.Context, userID string, offset int) (*WeekSummary, error) {
	if userID == "" {
		return nil, ErrValidationFailed
	}
	current, err := s.repo.Week(ctx, userID, offset)
	if err != nil {
		return nil, err
	}
	previous, err := s.repo.Week(ctx, userID, offset-1)
	if err != nil {
		return nil, err
	}
	now := s.now()
	currentSummary := stats.Summarize(stats.Window(now, offset), current)
	previousSummary := stats.Summarize(stats.Window(now, offset-1), previous)
	return &WeekSummary{
		Summary: currentSummary,
		Trend:   stats.Trend(currentSummary, previousSummary),
	}, nil
}
