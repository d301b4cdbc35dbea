package service

import (
	"context"
	"errors"

	"traininglog/app/internal/domain"
	"traininglog/app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrTrainingNotFound = errors.New("training not found")
	ErrPlanNotFound     = errors.New("planned training not found")
	ErrValidationFailed = errors.New("validation failed")
)

// TrainingService is the stable CRUD facade over logged trainings. The
// backing repository (in-memory demo store or remote accessor) is chosen
// once at startup and injected; nothing here re-reads configuration per
// call. Backend errors propagate to the caller untouched so the layer above
// decides about fallback.
type TrainingService interface {
	GetTrainings(ctx context.Context, limit, offset int) ([]domain.TrainingRecord, error)
	GetTrainingByID(ctx context.Context, id string) (*domain.TrainingRecord, error)
	CreateTraining(ctx context.Context, record domain.TrainingRecord) (*domain.TrainingRecord, error)
	UpdateTraining(ctx context.Context, id string, patch domain.TrainingPatch) (*domain.TrainingRecord, error)
	DeleteTraining(ctx context.Context, id string) error
}

type trainingService struct {
	repo repository.TrainingRepository
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(repo repository.TrainingRepository) TrainingService {
	return &trainingService{repo: repo}
}

func (s *trainingService) GetTrainings(ctx context.Context, limit, offset int) ([]domain.TrainingRecord, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *trainingService) GetTrainingByID(ctx context.Context, id string) (*domain.TrainingRecord, error) {
	if id == "" {
		return nil, ErrValidationFailed
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *trainingService) CreateTraining(ctx context.Context, record domain.TrainingRecord) (*domain.TrainingRecord, error) {
	if err := validateTraining(record); err != nil {
		return nil, err
	}
	// The store assigns id and timestamps; anything the caller put there is
	// discarded.
	record.ID = ""
	return s.repo.Create(ctx, &record)
}

func (s *trainingService) UpdateTraining(ctx context.Context, id string, patch domain.TrainingPatch) (*domain.TrainingRecord, error) {
	if id == "" {
		return nil, ErrValidationFailed
	}
	if patch.Duration != nil && *patch.Duration < 0 {
		return nil, ErrValidationFailed
	}
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 10) {
		return nil, ErrValidationFailed
	}
	record, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *trainingService) DeleteTraining(ctx context.Context, id string) error {
	if id == "" {
		return ErrValidationFailed
	}
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleting an already-deleted id surfaces NotFound; it never
			// silently succeeds.
			return ErrTrainingNotFound
		}
		return err
	}
	return nil
}

func validateTraining(record domain.TrainingRecord) error {
	if record.UserID == "" || record.Type == "" || record.Date.IsZero() {
		return ErrValidationFailed
	}
	if record.Duration < 0 {
		return ErrValidationFailed
	}
	if record.Distance != nil && *record.Distance < 0 {
		return ErrValidationFailed
	}
	if record.Rating != nil && (*record.Rating < 1 || *record.Rating > 10) {
		return ErrValidationFailed
	}
	return nil
}
