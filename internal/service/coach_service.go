package service

import (
	"context"
	"errors"
	"time"

	"traininglog/app/internal/domain"
	"traininglog/app/internal/repository"
	"traininglog/app/internal/stats"
)

var (
	ErrAthleteNotFound = errors.New("athlete not found")
	ErrNotPending      = errors.New("athlete registration is not pending")
)

// ProgressStatus buckets an athlete's current-week completion percentage.
type ProgressStatus string

const (
	ProgressOnTrack   ProgressStatus = "on-track"
	ProgressPartially ProgressStatus = "partially-completed"
	ProgressMissed    ProgressStatus = "missed-majority"
)

// AthleteProgress is the coach-facing progress indicator.
type AthleteProgress struct {
	Percentage int            `json:"percentage"`
	Status     ProgressStatus `json:"status"`
}

// AthleteOverview is one roster row: the athlete plus their current-week
// statistics.
type AthleteOverview struct {
	Athlete        domain.User     `json:"athlete"`
	PlannedCount   int             `json:"plannedCount"`
	CompletedCount int             `json:"completedCount"`
	Progress       AthleteProgress `json:"progress"`
}

// CoachService serves the coach's review surface: the athlete roster with
// weekly statistics, and the approve/reject actions for pending athlete
// registrations.
type CoachService interface {
	GetRoster(ctx context.Context, coachID string) ([]AthleteOverview, error)
	GetPendingAthletes(ctx context.Context) ([]domain.User, error)
	ApproveAthlete(ctx context.Context, coachID, athleteID string) (*domain.User, error)
	RejectAthlete(ctx context.Context, athleteID string) error
}

type coachService struct {
	userRepo    repository.UserRepository
	plannedRepo repository.PlannedRepository
	now         func() time.Time
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(userRepo repository.UserRepository, plannedRepo repository.PlannedRepository, now func() time.Time) CoachService {
	if now == nil {
		now = time.Now
	}
	return &coachService{userRepo: userRepo, plannedRepo: plannedRepo, now: now}
}

// progressFor buckets a completion percentage into the roster indicator.
// Thresholds: >=70 on-track, 30-69 partially completed, <30 missed majority.
func progressFor(pct int) AthleteProgress {
	status := ProgressMissed
	switch {
	case pct >= 70:
		status = ProgressOnTrack
	case pct >= 30:
		status = ProgressPartially
	}
	return AthleteProgress{Percentage: pct, Status: status}
}

// GetRoster returns the coach's athletes with their current-week planned and
// completed counts. A plan marked completed without a linked training record
// still counts as completed; the missing link is an inconsistency to surface
// elsewhere, not a reason to fail the roster.
func (s *coachService) GetRoster(ctx context.Context, coachID string) ([]AthleteOverview, error) {
	athletes, err := s.userRepo.GetAthletesByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}

	plans, err := s.plannedRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	window := stats.Window(s.now(), 0)
	weekPlans := stats.PlansInWindow(plans, window)

	roster := make([]AthleteOverview, 0, len(athletes))
	for _, athlete := range athletes {
		overview := AthleteOverview{Athlete: athlete}
		for _, plan := range weekPlans {
			if plan.UserID != athlete.ID {
				continue
			}
			overview.PlannedCount++
			if plan.Completed {
				overview.CompletedCount++
			}
		}
		pct := stats.CompletionPercentage(overview.CompletedCount, overview.PlannedCount)
		overview.Progress = progressFor(pct)
		roster = append(roster, overview)
	}
	return roster, nil
}

func (s *coachService) GetPendingAthletes(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetPendingAthletes(ctx)
}

// ApproveAthlete clears the pending flag and links the athlete to the coach.
func (s *coachService) ApproveAthlete(ctx context.Context, coachID, athleteID string) (*domain.User, error) {
	athlete, err := s.userRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	if !athlete.IsAthlete() || !athlete.Pending {
		return nil, ErrNotPending
	}

	athlete.Pending = false
	athlete.CoachID = &coachID
	if err := s.userRepo.Update(ctx, athlete); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddAthleteToCoach(ctx, coachID, athleteID); err != nil {
		return nil, err
	}
	athlete.PasswordHash = ""
	return athlete, nil
}

// RejectAthlete removes a pending registration outright.
func (s *coachService) RejectAthlete(ctx context.Context, athleteID string) error {
	athlete, err := s.userRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAthleteNotFound
		}
		return err
	}
	if !athlete.IsAthlete() || !athlete.Pending {
		return ErrNotPending
	}
	return s.userRepo.Delete(ctx, athleteID)
}
