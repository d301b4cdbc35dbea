package memory

import (
	"traininglog/app/internal/domain"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

// seed pre-populates the store with a fixed demo dataset so the app renders
// without network access. Dates are anchored to the store clock; the content
// itself never varies. Running dominates strength roughly 3:1, mirroring a
// typical endurance athlete's log.
func (s *Store) seed() {
	now := s.now().UTC()
	today := domain.DateOnly(now)
	const demoUser = "local-demo-athlete"

	demo := domain.User{
		ID:        demoUser,
		Name:      "Demo Athlete",
		Email:     "athlete@example.com",
		Role:      domain.RoleAthlete,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[demo.ID] = demo

	runs := []domain.TrainingRecord{
		{
			Type:         domain.TrainingRunning,
			Date:         today.AddDate(0, 0, -1),
			Duration:     45,
			Distance:     f64(8.5),
			Pace:         "5:17",
			Calories:     i(520),
			HeartRate:    &domain.AvgMax{Avg: 148, Max: 171},
			Rating:       i(7),
			TraineeNotes: "Easy aerobic run along the river.",
		},
		{
			Type:     domain.TrainingRunning,
			Date:     today.AddDate(0, 0, -3),
			Duration: 62,
			Distance: f64(12.0),
			Pace:     "5:10",
			Calories: i(740),
			Cadence:  &domain.AvgMax{Avg: 172, Max: 180},
			Rating:   i(8),
		},
		{
			Type:         domain.TrainingRunning,
			Date:         today.AddDate(0, 0, -5),
			Duration:     35,
			Distance:     f64(6.2),
			Pace:         "5:38",
			TraineeNotes: "Recovery pace, legs heavy.",
		},
		{
			Type:         domain.TrainingRunning,
			Date:         today.AddDate(0, 0, -8),
			Duration:     50,
			Distance:     f64(10.0),
			Pace:         "5:00",
			HeartRate:    &domain.AvgMax{Avg: 156, Max: 183},
			Altitude:     &domain.MinMax{Min: 210, Max: 340},
			Rating:       i(9),
			TrainerNotes: "Strong tempo effort, hold this pace for the 10k.",
		},
		{
			Type:     domain.TrainingRunning,
			Date:     today.AddDate(0, 0, -10),
			Duration: 75,
			Distance: f64(14.3),
			Pace:     "5:15",
			Calories: i(880),
		},
		{
			Type:     domain.TrainingRunning,
			Date:     today.AddDate(0, 0, -13),
			Duration: 40,
			Distance: f64(7.5),
			Pace:     "5:20",
		},
	}
	lifts := []domain.TrainingRecord{
		{
			Type:     domain.TrainingStrength,
			Date:     today.AddDate(0, 0, -2),
			Duration: 55,
			Calories: i(310),
			Exercises: []domain.ExerciseSet{
				{Name: "Back Squat", Sets: 4, Reps: 6, Weight: f64(90)},
				{Name: "Romanian Deadlift", Sets: 3, Reps: 8, Weight: f64(70)},
				{Name: "Walking Lunges", Sets: 3, Reps: 12},
			},
			Rating: i(7),
		},
		{
			Type:     domain.TrainingStrength,
			Date:     today.AddDate(0, 0, -7),
			Duration: 45,
			Exercises: []domain.ExerciseSet{
				{Name: "Bench Press", Sets: 4, Reps: 8, Weight: f64(62.5)},
				{Name: "Pull-ups", Sets: 4, Reps: 8},
				{Name: "Plank", Sets: 3, Reps: 1},
			},
		},
	}

	for idx, record := range append(runs, lifts...) {
		record.ID = seedID(idx)
		record.UserID = demoUser
		if record.Exercises == nil {
			record.Exercises = []domain.ExerciseSet{}
		}
		record.CreatedAt = now
		record.UpdatedAt = now
		s.trainings = append(s.trainings, record)
	}

	plans := []domain.PlannedTraining{
		{
			Type:            domain.TrainingRunning,
			PlannedDate:     today.AddDate(0, 0, 1),
			PlannedDuration: 50,
			PlannedDistance: f64(10.0),
			Category:        domain.RunTempo,
			Notes:           "Tempo blocks: 3x10min at threshold.",
		},
		{
			Type:            domain.TrainingStrength,
			PlannedDate:     today.AddDate(0, 0, 2),
			PlannedDuration: 45,
		},
		{
			Type:            domain.TrainingRunning,
			PlannedDate:     today.AddDate(0, 0, 4),
			PlannedDuration: 80,
			PlannedDistance: f64(16.0),
			Category:        domain.RunAerobic,
			Notes:           "Long run, keep it conversational.",
		},
	}
	for idx, plan := range plans {
		plan.ID = seedPlanID(idx)
		plan.UserID = demoUser
		plan.CreatedAt = now
		plan.UpdatedAt = now
		s.plans = append(s.plans, plan)
	}
}

func seedID(idx int) string {
	return "local-seed-training-" + string(rune('a'+idx))
}

func seedPlanID(idx int) string {
	return "local-seed-plan-" + string(rune('a'+idx))
}
