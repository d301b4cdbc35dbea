package domain

import "time"

// RunCategory refines a planned running session.
type RunCategory string

const (
	RunAerobic   RunCategory = "aerobic"
	RunIntervals RunCategory = "intervals"
	RunTempo     RunCategory = "tempo"
	RunHills     RunCategory = "hills"
)

// PlannedTraining represents a future, scheduled workout intention.
// A completed plan should reference the TrainingRecord that fulfilled it;
// a missing link is treated as inconsistent data downstream, never as fatal.
type PlannedTraining struct {
	ID                  string       `bson:"_id" json:"id"`
	UserID              string       `bson:"userId" json:"userId"`
	Type                TrainingType `bson:"type" json:"type"`
	PlannedDate         time.Time    `bson:"plannedDate" json:"plannedDate"`
	PlannedDuration     int          `bson:"plannedDuration" json:"plannedDuration"` // minutes
	PlannedDistance     *float64     `bson:"plannedDistance,omitempty" json:"plannedDistance,omitempty"`
	Category            RunCategory  `bson:"category,omitempty" json:"category,omitempty"` // running only
	Notes               string       `bson:"notes,omitempty" json:"notes,omitempty"`
	Completed           bool         `bson:"completed" json:"completed"`
	CompletedTrainingID string       `bson:"completedTrainingId,omitempty" json:"completedTrainingId,omitempty"`
	CreatedAt           time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// PlannedPatch carries partial-update fields for a PlannedTraining.
type PlannedPatch struct {
	Type                *TrainingType `json:"type,omitempty"`
	PlannedDate         *time.Time    `json:"plannedDate,omitempty"`
	PlannedDuration     *int          `json:"plannedDuration,omitempty"`
	PlannedDistance     *float64      `json:"plannedDistance,omitempty"`
	Category            *RunCategory  `json:"category,omitempty"`
	Notes               *string       `json:"notes,omitempty"`
	Completed           *bool         `json:"completed,omitempty"`
	CompletedTrainingID *string       `json:"completedTrainingId,omitempty"`
}

// Apply merges the patch over the plan and returns the merged copy.
func (p PlannedPatch) Apply(pl PlannedTraining) PlannedTraining {
	if p.Type != nil {
		pl.Type = *p.Type
	}
	if p.PlannedDate != nil {
		pl.PlannedDate = DateOnly(*p.PlannedDate)
	}
	if p.PlannedDuration != nil {
		pl.PlannedDuration = *p.PlannedDuration
	}
	if p.PlannedDistance != nil {
		pl.PlannedDistance = p.PlannedDistance
	}
	if p.Category != nil {
		pl.Category = *p.Category
	}
	if p.Notes != nil {
		pl.Notes = *p.Notes
	}
	if p.Completed != nil {
		pl.Completed = *p.Completed
	}
	if p.CompletedTrainingID != nil {
		pl.CompletedTrainingID = *p.CompletedTrainingID
	}
	return pl
}
