package remote

import (
	"time"

	"traininglog/app/internal/domain"
)

// The remote API speaks snake_case JSON with plain "YYYY-MM-DD" dates. All
// casing translation lives in this file, one bidirectional mapping per
// entity, so no call site ever touches wire field names. The mapping must be
// lossless in both directions for every domain field.

const wireDateLayout = "2006-01-02"

type avgMaxWire struct {
	Avg int `json:"avg"`
	Max int `json:"max"`
}

type minMaxWire struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type exerciseWire struct {
	Name   string   `json:"name"`
	Sets   int      `json:"sets"`
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight,omitempty"`
}

type trainingWire struct {
	ID           string         `json:"id,omitempty"`
	UserID       string         `json:"user_id,omitempty"`
	Type         string         `json:"type"`
	Date         string         `json:"date"`
	Duration     int            `json:"duration"`
	Distance     *float64       `json:"distance,omitempty"`
	Pace         string         `json:"pace,omitempty"`
	Calories     *int           `json:"calories,omitempty"`
	HeartRate    *avgMaxWire    `json:"heart_rate,omitempty"`
	Cadence      *avgMaxWire    `json:"cadence,omitempty"`
	Altitude     *minMaxWire    `json:"altitude,omitempty"`
	Exercises    []exerciseWire `json:"exercises,omitempty"`
	TrainerNotes string         `json:"trainer_notes,omitempty"`
	TraineeNotes string         `json:"trainee_notes,omitempty"`
	Rating       *int           `json:"rating,omitempty"`
	Links        []string       `json:"links,omitempty"`
	CreatedAt    *time.Time     `json:"created_at,omitempty"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

type plannedWire struct {
	ID                  string     `json:"id,omitempty"`
	UserID              string     `json:"user_id,omitempty"`
	Type                string     `json:"type"`
	PlannedDate         string     `json:"planned_date"`
	PlannedDuration     int        `json:"planned_duration"`
	PlannedDistance     *float64   `json:"planned_distance,omitempty"`
	Category            string     `json:"category,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	Completed           bool       `json:"completed"`
	CompletedTrainingID string     `json:"completed_training_id,omitempty"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

type userWire struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Pending bool   `json:"pending"`
}

func avgMaxToWire(m *domain.AvgMax) *avgMaxWire {
	if m == nil {
		return nil
	}
	return &avgMaxWire{Avg: m.Avg, Max: m.Max}
}

func avgMaxFromWire(w *avgMaxWire) *domain.AvgMax {
	if w == nil {
		return nil
	}
	return &domain.AvgMax{Avg: w.Avg, Max: w.Max}
}

func minMaxToWire(m *domain.MinMax) *minMaxWire {
	if m == nil {
		return nil
	}
	return &minMaxWire{Min: m.Min, Max: m.Max}
}

func minMaxFromWire(w *minMaxWire) *domain.MinMax {
	if w == nil {
		return nil
	}
	return &domain.MinMax{Min: w.Min, Max: w.Max}
}

func exercisesToWire(sets []domain.ExerciseSet) []exerciseWire {
	if sets == nil {
		return nil
	}
	out := make([]exerciseWire, len(sets))
	for i, set := range sets {
		out[i] = exerciseWire{Name: set.Name, Sets: set.Sets, Reps: set.Reps, Weight: set.Weight}
	}
	return out
}

func exercisesFromWire(sets []exerciseWire) []domain.ExerciseSet {
	out := make([]domain.ExerciseSet, len(sets))
	for i, set := range sets {
		out[i] = domain.ExerciseSet{Name: set.Name, Sets: set.Sets, Reps: set.Reps, Weight: set.Weight}
	}
	return out
}

func trainingToWire(r domain.TrainingRecord) trainingWire {
	w := trainingWire{
		ID:           r.ID,
		UserID:       r.UserID,
		Type:         string(r.Type),
		Date:         r.Date.Format(wireDateLayout),
		Duration:     r.Duration,
		Distance:     r.Distance,
		Pace:         r.Pace,
		Calories:     r.Calories,
		HeartRate:    avgMaxToWire(r.HeartRate),
		Cadence:      avgMaxToWire(r.Cadence),
		Altitude:     minMaxToWire(r.Altitude),
		Exercises:    exercisesToWire(r.Exercises),
		TrainerNotes: r.TrainerNotes,
		TraineeNotes: r.TraineeNotes,
		Rating:       r.Rating,
		Links:        r.Links,
	}
	if !r.CreatedAt.IsZero() {
		created := r.CreatedAt
		w.CreatedAt = &created
	}
	if !r.UpdatedAt.IsZero() {
		updated := r.UpdatedAt
		w.UpdatedAt = &updated
	}
	return w
}

func trainingFromWire(w trainingWire) (domain.TrainingRecord, error) {
	date, err := time.ParseInLocation(wireDateLayout, w.Date, time.UTC)
	if err != nil {
		return domain.TrainingRecord{}, err
	}
	r := domain.TrainingRecord{
		ID:           w.ID,
		UserID:       w.UserID,
		Type:         domain.TrainingType(w.Type),
		Date:         date,
		Duration:     w.Duration,
		Distance:     w.Distance,
		Pace:         w.Pace,
		Calories:     w.Calories,
		HeartRate:    avgMaxFromWire(w.HeartRate),
		Cadence:      avgMaxFromWire(w.Cadence),
		Altitude:     minMaxFromWire(w.Altitude),
		Exercises:    exercisesFromWire(w.Exercises),
		TrainerNotes: w.TrainerNotes,
		TraineeNotes: w.TraineeNotes,
		Rating:       w.Rating,
		Links:        w.Links,
	}
	if w.CreatedAt != nil {
		r.CreatedAt = *w.CreatedAt
	}
	if w.UpdatedAt != nil {
		r.UpdatedAt = *w.UpdatedAt
	}
	return r, nil
}

func plannedToWire(p domain.PlannedTraining) plannedWire {
	w := plannedWire{
		ID:                  p.ID,
		UserID:              p.UserID,
		Type:                string(p.Type),
		PlannedDate:         p.PlannedDate.Format(wireDateLayout),
		PlannedDuration:     p.PlannedDuration,
		PlannedDistance:     p.PlannedDistance,
		Category:            string(p.Category),
		Notes:               p.Notes,
		Completed:           p.Completed,
		CompletedTrainingID: p.CompletedTrainingID,
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt
		w.CreatedAt = &created
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		w.UpdatedAt = &updated
	}
	return w
}

func plannedFromWire(w plannedWire) (domain.PlannedTraining, error) {
	date, err := time.ParseInLocation(wireDateLayout, w.PlannedDate, time.UTC)
	if err != nil {
		return domain.PlannedTraining{}, err
	}
	p := domain.PlannedTraining{
		ID:                  w.ID,
		UserID:              w.UserID,
		Type:                domain.TrainingType(w.Type),
		PlannedDate:         date,
		PlannedDuration:     w.PlannedDuration,
		PlannedDistance:     w.PlannedDistance,
		Category:            domain.RunCategory(w.Category),
		Notes:               w.Notes,
		Completed:           w.Completed,
		CompletedTrainingID: w.CompletedTrainingID,
	}
	if w.CreatedAt != nil {
		p.CreatedAt = *w.CreatedAt
	}
	if w.UpdatedAt != nil {
		p.UpdatedAt = *w.UpdatedAt
	}
	return p, nil
}

func userFromWire(w userWire) domain.User {
	return domain.User{
		ID:      w.ID,
		Name:    w.Name,
		Email:   w.Email,
		Role:    domain.Role(w.Role),
		Pending: w.Pending,
	}
}

// trainingPatchToWire renders only the fields present in the patch, so the
// remote PUT behaves like a partial update.
func trainingPatchToWire(p domain.TrainingPatch) map[string]any {
	body := map[string]any{}
	if p.Type != nil {
		body["type"] = string(*p.Type)
	}
	if p.Date != nil {
		body["date"] = p.Date.Format(wireDateLayout)
	}
	if p.Duration != nil {
		body["duration"] = *p.Duration
	}
	if p.Distance != nil {
		body["distance"] = *p.Distance
	}
	if p.Pace != nil {
		body["pace"] = *p.Pace
	}
	if p.Calories != nil {
		body["calories"] = *p.Calories
	}
	if p.HeartRate != nil {
		body["heart_rate"] = avgMaxToWire(p.HeartRate)
	}
	if p.Cadence != nil {
		body["cadence"] = avgMaxToWire(p.Cadence)
	}
	if p.Altitude != nil {
		body["altitude"] = minMaxToWire(p.Altitude)
	}
	if p.Exercises != nil {
		body["exercises"] = exercisesToWire(p.Exercises)
	}
	if p.TrainerNotes != nil {
		body["trainer_notes"] = *p.TrainerNotes
	}
	if p.TraineeNotes != nil {
		body["trainee_notes"] = *p.TraineeNotes
	}
	if p.Rating != nil {
		body["rating"] = *p.Rating
	}
	if p.Links != nil {
		body["links"] = p.Links
	}
	return body
}

func plannedPatchToWire(p domain.PlannedPatch) map[string]any {
	body := map[string]any{}
	if p.Type != nil {
		body["type"] = string(*p.Type)
	}
	if p.PlannedDate != nil {
		body["planned_date"] = p.PlannedDate.Format(wireDateLayout)
	}
	if p.PlannedDuration != nil {
		body["planned_duration"] = *p.PlannedDuration
	}
	if p.PlannedDistance != nil {
		body["planned_distance"] = *p.PlannedDistance
	}
	if p.Category != nil {
		body["category"] = string(*p.Category)
	}
	if p.Notes != nil {
		body["notes"] = *p.Notes
	}
	if p.Completed != nil {
		body["completed"] = *p.Completed
	}
	if p.CompletedTrainingID != nil {
		body["completed_training_id"] = *p.CompletedTrainingID
	}
	return body
}
