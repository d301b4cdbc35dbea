package domain

import "time"

// ActivityType labels one cell of the weekly-plan grid. "Rest" is a real
// label, not an absent slot.
type ActivityType string

const (
	ActivityRunning  ActivityType = "Running"
	ActivityCycling  ActivityType = "Cycling"
	ActivitySwimming ActivityType = "Swimming"
	ActivityStrength ActivityType = "Strength"
	ActivityYoga     ActivityType = "Yoga"
	ActivityCardio   ActivityType = "Cardio"
	ActivityMobility ActivityType = "Mobility"
	ActivityRest     ActivityType = "Rest"
)

// ActivityTypes lists all 8 grid labels in a stable order. Breakdown outputs
// must cover every one of these, zero counts included.
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityRunning, ActivityCycling, ActivitySwimming, ActivityStrength,
		ActivityYoga, ActivityCardio, ActivityMobility, ActivityRest,
	}
}

// Intensity grades a planned session's effort.
type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

// Intensities lists the intensity grades in ascending order.
func Intensities() []Intensity {
	return []Intensity{IntensityLow, IntensityMedium, IntensityHigh}
}

// DayStatus tracks the lifecycle of a weekly-plan slot.
type DayStatus string

const (
	DayPlanned   DayStatus = "planned"
	DayCompleted DayStatus = "completed"
	DayMissed    DayStatus = "missed"
)

// DayTraining is one weekday's slot in the weekly-plan grid. There is at most
// one per weekday per week offset; an empty weekday is represented by the
// absence of a slot, not by a zero-valued record.
type DayTraining struct {
	ID            string       `bson:"_id" json:"id"`
	UserID        string       `bson:"userId" json:"userId"`
	Day           time.Weekday `bson:"day" json:"day"`
	ActivityType  ActivityType `bson:"activityType" json:"activityType"`
	Duration      *int         `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Distance      *float64     `bson:"distance,omitempty" json:"distance,omitempty"` // km
	Intensity     Intensity    `bson:"intensity" json:"intensity"`
	HeartRateZone string       `bson:"heartRateZone,omitempty" json:"heartRateZone,omitempty"`
	RPE           *int         `bson:"rpe,omitempty" json:"rpe,omitempty"` // 1-10
	Notes         string       `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        DayStatus    `bson:"status" json:"status"`
	CreatedAt     time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time    `bson:"updatedAt" json:"updatedAt"`
}
