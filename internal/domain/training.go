package domain

import "time"

// TrainingType classifies a logged workout.
type TrainingType string

const (
	TrainingRunning  TrainingType = "running"
	TrainingCycling  TrainingType = "cycling"
	TrainingSwimming TrainingType = "swimming"
	TrainingStrength TrainingType = "strength"
	TrainingYoga     TrainingType = "yoga"
	TrainingOther    TrainingType = "other"
)

// TrainingTypes lists every known training type in a stable order.
func TrainingTypes() []TrainingType {
	return []TrainingType{
		TrainingRunning, TrainingCycling, TrainingSwimming,
		TrainingStrength, TrainingYoga, TrainingOther,
	}
}

// AvgMax holds an average/maximum metric pair (e.g. heart rate in bpm).
type AvgMax struct {
	Avg int `bson:"avg" json:"avg"`
	Max int `bson:"max" json:"max"`
}

// MinMax holds a minimum/maximum metric pair (e.g. altitude in metres).
type MinMax struct {
	Min float64 `bson:"min" json:"min"`
	Max float64 `bson:"max" json:"max"`
}

// ExerciseSet is one entry of a strength session's exercise list.
type ExerciseSet struct {
	Name   string   `bson:"name" json:"name"`
	Sets   int      `bson:"sets" json:"sets"`
	Reps   int      `bson:"reps" json:"reps"`
	Weight *float64 `bson:"weight,omitempty" json:"weight,omitempty"` // kg
}

// TrainingRecord represents a logged, completed workout. The identity and the
// owner never change after creation; everything else is mutated only through
// explicit update calls.
type TrainingRecord struct {
	ID       string       `bson:"_id" json:"id"`
	UserID   string       `bson:"userId" json:"userId"`
	Type     TrainingType `bson:"type" json:"type"`
	Date     time.Time    `bson:"date" json:"date"`         // calendar date, time component zeroed
	Duration int          `bson:"duration" json:"duration"` // minutes

	Distance  *float64 `bson:"distance,omitempty" json:"distance,omitempty"` // km
	Pace      string   `bson:"pace,omitempty" json:"pace,omitempty"`         // "mm:ss" per km, free form
	Calories  *int     `bson:"calories,omitempty" json:"calories,omitempty"`
	HeartRate *AvgMax  `bson:"heartRate,omitempty" json:"heartRate,omitempty"`
	Cadence   *AvgMax  `bson:"cadence,omitempty" json:"cadence,omitempty"`
	Altitude  *MinMax  `bson:"altitude,omitempty" json:"altitude,omitempty"`

	Exercises    []ExerciseSet `bson:"exercises" json:"exercises"`
	TrainerNotes string        `bson:"trainerNotes,omitempty" json:"trainerNotes,omitempty"`
	TraineeNotes string        `bson:"traineeNotes,omitempty" json:"traineeNotes,omitempty"`
	Rating       *int          `bson:"rating,omitempty" json:"rating,omitempty"` // 1-10
	Links        []string      `bson:"links,omitempty" json:"links,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TrainingPatch carries partial-update fields for a TrainingRecord. Nil
// pointers (and nil slices) leave the stored value unchanged.
type TrainingPatch struct {
	Type         *TrainingType `json:"type,omitempty"`
	Date         *time.Time    `json:"date,omitempty"`
	Duration     *int          `json:"duration,omitempty"`
	Distance     *float64      `json:"distance,omitempty"`
	Pace         *string       `json:"pace,omitempty"`
	Calories     *int          `json:"calories,omitempty"`
	HeartRate    *AvgMax       `json:"heartRate,omitempty"`
	Cadence      *AvgMax       `json:"cadence,omitempty"`
	Altitude     *MinMax       `json:"altitude,omitempty"`
	Exercises    []ExerciseSet `json:"exercises,omitempty"`
	TrainerNotes *string       `json:"trainerNotes,omitempty"`
	TraineeNotes *string       `json:"traineeNotes,omitempty"`
	Rating       *int          `json:"rating,omitempty"`
	Links        []string      `json:"links,omitempty"`
}

// Apply merges the patch over the record and returns the merged copy.
// The identity, owner and createdAt are never touched; updatedAt is the
// caller's responsibility.
func (p TrainingPatch) Apply(r TrainingRecord) TrainingRecord {
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Date != nil {
		r.Date = DateOnly(*p.Date)
	}
	if p.Duration != nil {
		r.Duration = *p.Duration
	}
	if p.Distance != nil {
		r.Distance = p.Distance
	}
	if p.Pace != nil {
		r.Pace = *p.Pace
	}
	if p.Calories != nil {
		r.Calories = p.Calories
	}
	if p.HeartRate != nil {
		r.HeartRate = p.HeartRate
	}
	if p.Cadence != nil {
		r.Cadence = p.Cadence
	}
	if p.Altitude != nil {
		r.Altitude = p.Altitude
	}
	if p.Exercises != nil {
		r.Exercises = p.Exercises
	}
	if p.TrainerNotes != nil {
		r.TrainerNotes = *p.TrainerNotes
	}
	if p.TraineeNotes != nil {
		r.TraineeNotes = *p.TraineeNotes
	}
	if p.Rating != nil {
		r.Rating = p.Rating
	}
	if p.Links != nil {
		r.Links = p.Links
	}
	return r
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
