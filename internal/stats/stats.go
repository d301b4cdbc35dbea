// Package stats derives weekly training statistics from raw records. Every
// function is pure: identical inputs always produce identical outputs, and
// missing optional fields count as zero rather than erroring.
package stats

import (
	"fmt"
	"math"
	"time"

	"traininglog/app/internal/domain"
)

// WeekWindow is a Monday-based, date-inclusive microcycle range.
type WeekWindow struct {
	Start time.Time // Monday
	End   time.Time // Sunday
}

// Window computes the week window for an integer offset relative to the week
// of `today` (0 = current week, negative = past, positive = future). Monday
// is derived with the Sunday=0 weekday convention: monday = today - weekday
// + 1 + offset*7. For a Sunday this lands on the following Monday, which is
// the behaviour the weekly grid expects.
func Window(today time.Time, offset int) WeekWindow {
	today = domain.DateOnly(today)
	monday := today.AddDate(0, 0, 1-int(today.Weekday())+offset*7)
	return WeekWindow{Start: monday, End: monday.AddDate(0, 0, 6)}
}

// Contains reports whether the calendar date of t falls inside the window,
// boundaries included.
func (w WeekWindow) Contains(t time.Time) bool {
	d := domain.DateOnly(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// TrainingsInWindow filters records whose date falls inside the window.
func TrainingsInWindow(records []domain.TrainingRecord, w WeekWindow) []domain.TrainingRecord {
	out := make([]domain.TrainingRecord, 0, len(records))
	for _, r := range records {
		if w.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// PlansInWindow filters planned trainings whose plannedDate falls inside the
// window.
func PlansInWindow(plans []domain.PlannedTraining, w WeekWindow) []domain.PlannedTraining {
	out := make([]domain.PlannedTraining, 0, len(plans))
	for _, p := range plans {
		if w.Contains(p.PlannedDate) {
			out = append(out, p)
		}
	}
	return out
}

// CompletionPercentage returns round(completed/planned*100), defined as 0
// when nothing was planned.
func CompletionPercentage(completed, planned int) int {
	if planned == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(planned) * 100))
}

// Change returns the week-over-week percentage delta, rounded. When the
// previous value is 0, the result is +100 for any growth and 0 otherwise;
// the asymmetry avoids a misleading division blow-up on first weeks.
func Change(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}

// FormatChange renders a Change result the way the UI shows trends:
// "+12%", "-5%", "0%".
func FormatChange(pct int) string {
	if pct > 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}

// intensityWeight implements the training-load weighting. The exact weights
// are a product placeholder; the scheme only has to stay monotonic in both
// session duration and session count, since load is used for week-to-week
// comparison rather than as a physiological measure.
func intensityWeight(i domain.Intensity) int {
	switch i {
	case domain.IntensityHigh:
		return 3
	case domain.IntensityMedium:
		return 2
	default:
		return 1
	}
}

// TrainingLoad sums duration x intensity weight across the week's slots.
// Rest slots and slots without a duration contribute nothing.
func TrainingLoad(slots []domain.DayTraining) int {
	load := 0
	for _, slot := range slots {
		if slot.ActivityType == domain.ActivityRest || slot.Duration == nil {
			continue
		}
		load += *slot.Duration * intensityWeight(slot.Intensity)
	}
	return load
}

// IntensityBreakdown counts slots per intensity grade. The result always
// contains every grade, zeros included.
func IntensityBreakdown(slots []domain.DayTraining) map[domain.Intensity]int {
	counts := make(map[domain.Intensity]int, 3)
	for _, grade := range domain.Intensities() {
		counts[grade] = 0
	}
	for _, slot := range slots {
		if slot.ActivityType == domain.ActivityRest {
			continue
		}
		counts[slot.Intensity]++
	}
	return counts
}

// ActivityBreakdown counts slots per activity type. All 8 known types are
// present in the result, zeros included.
func ActivityBreakdown(slots []domain.DayTraining) map[domain.ActivityType]int {
	counts := make(map[domain.ActivityType]int, 8)
	for _, at := range domain.ActivityTypes() {
		counts[at] = 0
	}
	for _, slot := range slots {
		counts[slot.ActivityType]++
	}
	return counts
}

// RestDays counts weekdays with no training: days without a slot plus days
// explicitly planned as Rest.
func RestDays(slots []domain.DayTraining) int {
	trainingDays := 0
	for _, slot := range slots {
		if slot.ActivityType != domain.ActivityRest {
			trainingDays++
		}
	}
	return 7 - trainingDays
}

// WeeklySummary aggregates one week of the plan grid. It is recomputed on
// every read and never stored.
type WeeklySummary struct {
	Window         WeekWindow                  `json:"window"`
	PlannedCount   int                         `json:"plannedCount"`
	CompletedCount int                         `json:"completedCount"`
	MissedCount    int                         `json:"missedCount"`
	CompletionPct  int                         `json:"completionPct"`
	TotalDuration  int                         `json:"totalDuration"` // minutes
	TotalDistance  float64                     `json:"totalDistance"` // km
	TrainingLoad   int                         `json:"trainingLoad"`
	RestDays       int                         `json:"restDays"`
	ByIntensity    map[domain.Intensity]int    `json:"byIntensity"`
	ByActivity     map[domain.ActivityType]int `json:"byActivity"`
}

// Summarize computes the weekly summary for one week's slots.
func Summarize(w WeekWindow, slots []domain.DayTraining) WeeklySummary {
	summary := WeeklySummary{
		Window:       w,
		ByIntensity:  IntensityBreakdown(slots),
		ByActivity:   ActivityBreakdown(slots),
		TrainingLoad: TrainingLoad(slots),
		RestDays:     RestDays(slots),
	}
	for _, slot := range slots {
		if slot.ActivityType == domain.ActivityRest {
			continue
		}
		switch slot.Status {
		case domain.DayCompleted:
			summary.CompletedCount++
		case domain.DayMissed:
			summary.MissedCount++
		}
		summary.PlannedCount++
		if slot.Duration != nil {
			summary.TotalDuration += *slot.Duration
		}
		if slot.Distance != nil {
			summary.TotalDistance += *slot.Distance
		}
	}
	summary.CompletionPct = CompletionPercentage(summary.CompletedCount, summary.PlannedCount)
	return summary
}

// WeeklyTrend compares one week's summary against the previous week's.
type WeeklyTrend struct {
	LoadChange     string `json:"loadChange"`
	DurationChange string `json:"durationChange"`
	DistanceChange string `json:"distanceChange"`
}

// Trend derives the week-over-week trend between two summaries.
func Trend(current, previous WeeklySummary) WeeklyTrend {
	return WeeklyTrend{
		LoadChange:     FormatChange(Change(float64(current.TrainingLoad), float64(previous.TrainingLoad))),
		DurationChange: FormatChange(Change(float64(current.TotalDuration), float64(previous.TotalDuration))),
		DistanceChange: FormatChange(Change(current.TotalDistance, previous.TotalDistance)),
	}
}
