package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"traininglog/app/internal/domain"
	"traininglog/app/internal/repository/memory"
)

func TestProgressFor(t *testing.T) {
	tests := []struct {
		pct  int
		want ProgressStatus
	}{
		{100, ProgressOnTrack},
		{70, ProgressOnTrack},
		{69, ProgressPartially},
		{30, ProgressPartially},
		{29, ProgressMissed},
		{0, ProgressMissed},
	}
	for _, tt := range tests {
		if got := progressFor(tt.pct); got.Status != tt.want {
			t.Errorf("progressFor(%d) = %q, want %q", tt.pct, got.Status, tt.want)
		}
	}
}

func TestCoachRoster(t *testing.T) {
	store := memory.NewStore(memory.Options{Now: testClock})
	users := store.Users()
	planned := store.Planned()
	svc := NewCoachService(users, planned, testClock)
	ctx := context.Background()

	coachID, err := users.Create(ctx, &domain.User{Name: "Coach", Email: "coach@example.com", Role: domain.RoleCoach})
	if err != nil {
		t.Fatalf("coach Create failed: %v", err)
	}
	athleteID, err := users.Create(ctx, &domain.User{Name: "Ada", Email: "ada@example.com", Role: domain.RoleAthlete})
	if err != nil {
		t.Fatalf("athlete Create failed: %v", err)
	}
	if err := users.AddAthleteToCoach(ctx, coachID, athleteID); err != nil {
		t.Fatalf("AddAthleteToCoach failed: %v", err)
	}

	// Three plans in the current week, two completed; one in another week
	// that must not count. The clock is Wednesday 2026-08-26.
	mkPlan := func(date time.Time, completed bool) {
		t.Helper()
		_, err := planned.Create(ctx, &domain.PlannedTraining{
			UserID:      athleteID,
			Type:        domain.TrainingRunning,
			PlannedDate: date,
			Completed:   completed,
		})
		if err != nil {
			t.Fatalf("plan Create failed: %v", err)
		}
	}
	mkPlan(time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC), true)
	mkPlan(time.Date(2026, time.August, 27, 0, 0, 0, 0, time.UTC), true)
	mkPlan(time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC), false)
	mkPlan(time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC), false)

	roster, err := svc.GetRoster(ctx, coachID)
	if err != nil {
		t.Fatalf("GetRoster failed: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("roster has %d rows, want 1", len(roster))
	}

	row := roster[0]
	if row.Athlete.ID != athleteID {
		t.Errorf("row athlete = %q", row.Athlete.ID)
	}
	if row.PlannedCount != 3 || row.CompletedCount != 2 {
		t.Errorf("counts = %d/%d, want 3 planned / 2 completed this week", row.PlannedCount, row.CompletedCount)
	}
	if row.Progress.Percentage != 67 || row.Progress.Status != ProgressPartially {
		t.Errorf("progress = %+v, want 67%% partially-completed", row.Progress)
	}
}

func TestCoachRosterAthleteWithoutPlans(t *testing.T) {
	store := memory.NewStore(memory.Options{Now: testClock})
	users := store.Users()
	svc := NewCoachService(users, store.Planned(), testClock)
	ctx := context.Background()

	coachID, _ := users.Create(ctx, &domain.User{Name: "Coach", Email: "coach@example.com", Role: domain.RoleCoach})
	athleteID, _ := users.Create(ctx, &domain.User{Name: "Ada", Email: "ada@example.com", Role: domain.RoleAthlete})
	if err := users.AddAthleteToCoach(ctx, coachID, athleteID); err != nil {
		t.Fatalf("AddAthleteToCoach failed: %v", err)
	}

	roster, err := svc.GetRoster(ctx, coachID)
	if err != nil {
		t.Fatalf("GetRoster failed: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("roster has %d rows, want 1", len(roster))
	}
	if roster[0].Progress.Percentage != 0 || roster[0].Progress.Status != ProgressMissed {
		t.Errorf("no-plan progress = %+v", roster[0].Progress)
	}
}

func TestApproveAthlete(t *testing.T) {
	store := memory.NewStore(memory.Options{Now: testClock})
	users := store.Users()
	svc := NewCoachService(users, store.Planned(), testClock)
	ctx := context.Background()

	coachID, _ := users.Create(ctx, &domain.User{Name: "Coach", Email: "coach@example.com", Role: domain.RoleCoach})
	athleteID, _ := users.Create(ctx, &domain.User{Name: "Ada", Email: "ada@example.com", Role: domain.RoleAthlete, Pending: true})

	approved, err := svc.ApproveAthlete(ctx, coachID, athleteID)
	if err != nil {
		t.Fatalf("ApproveAthlete failed: %v", err)
	}
	if approved.Pending {
		t.Error("approved athlete must not stay pending")
	}
	if approved.CoachID == nil || *approved.CoachID != coachID {
		t.Errorf("CoachID = %v, want %q", approved.CoachID, coachID)
	}

	roster, err := svc.GetRoster(ctx, coachID)
	if err != nil {
		t.Fatalf("GetRoster failed: %v", err)
	}
	if len(roster) != 1 || roster[0].Athlete.ID != athleteID {
		t.Errorf("approved athlete missing from roster: %+v", roster)
	}

	// A second approval is a conflict, not a silent success.
	if _, err := svc.ApproveAthlete(ctx, coachID, athleteID); !errors.Is(err, ErrNotPending) {
		t.Errorf("re-approve = %v, want ErrNotPending", err)
	}
}

func TestRejectAthlete(t *testing.T) {
	store := memory.NewStore(memory.Options{Now: testClock})
	users := store.Users()
	svc := NewCoachService(users, store.Planned(), testClock)
	ctx := context.Background()

	athleteID, _ := users.Create(ctx, &domain.User{Name: "Ada", Email: "ada@example.com", Role: domain.RoleAthlete, Pending: true})

	if err := svc.RejectAthlete(ctx, athleteID); err != nil {
		t.Fatalf("RejectAthlete failed: %v", err)
	}
	pending, err := svc.GetPendingAthletes(ctx)
	if err != nil {
		t.Fatalf("GetPendingAthletes failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after reject = %+v", pending)
	}

	if err := svc.RejectAthlete(ctx, athleteID); !errors.Is(err, ErrAthleteNotFound) {
		t.Errorf("re-reject = %v, want ErrAthleteNotFound", err)
	}

	if _, err := svc.ApproveAthlete(ctx, "coach", "ghost"); !errors.Is(err, ErrAthleteNotFound) {
		t.Errorf("approve missing = %v, want ErrAthleteNotFound", err)
	}
}
