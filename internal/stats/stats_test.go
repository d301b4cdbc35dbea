package stats

import (
	"testing"
	"time"

	"traininglog/app/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func f64Ptr(v float64) *float64 { return &v }

func TestWindow(t *testing.T) {
	tests := []struct {
		name   string
		today  time.Time
		offset int
		start  time.Time
		end    time.Time
	}{
		{
			name:   "wednesday current week",
			today:  date(2026, time.August, 26), // Wednesday
			offset: 0,
			start:  date(2026, time.August, 24),
			end:    date(2026, time.August, 30),
		},
		{
			name:   "monday is its own week start",
			today:  date(2026, time.August, 24),
			offset: 0,
			start:  date(2026, time.August, 24),
			end:    date(2026, time.August, 30),
		},
		{
			name:   "sunday lands on the following monday",
			today:  date(2026, time.August, 30), // Sunday
			offset: 0,
			start:  date(2026, time.August, 31),
			end:    date(2026, time.September, 6),
		},
		{
			name:   "negative offset selects a past week",
			today:  date(2026, time.August, 26),
			offset: -2,
			start:  date(2026, time.August, 10),
			end:    date(2026, time.August, 16),
		},
		{
			name:   "positive offset selects a future week",
			today:  date(2026, time.August, 26),
			offset: 1,
			start:  date(2026, time.August, 31),
			end:    date(2026, time.September, 6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Window(tt.today, tt.offset)
			if !w.Start.Equal(tt.start) {
				t.Errorf("Start = %v, want %v", w.Start, tt.start)
			}
			if !w.End.Equal(tt.end) {
				t.Errorf("End = %v, want %v", w.End, tt.end)
			}
		})
	}
}

func TestWindowContainsBoundaries(t *testing.T) {
	w := Window(date(2026, time.August, 26), 0)

	if !w.Contains(w.Start) {
		t.Error("window must contain its own Monday")
	}
	if !w.Contains(w.End) {
		t.Error("window must contain its own Sunday")
	}
	if w.Contains(w.Start.AddDate(0, 0, -1)) {
		t.Error("window must not contain the previous Sunday")
	}
	if w.Contains(w.End.AddDate(0, 0, 1)) {
		t.Error("window must not contain the next Monday")
	}
	// Time of day is irrelevant; only the calendar date counts.
	if !w.Contains(w.End.Add(23 * time.Hour)) {
		t.Error("late-evening timestamp on the last day must still be inside")
	}
}

func TestAdjacentWindowsDoNotOverlap(t *testing.T) {
	today := date(2026, time.August, 26)
	for offset := -3; offset < 3; offset++ {
		cur := Window(today, offset)
		next := Window(today, offset+1)
		if !next.Start.Equal(cur.End.AddDate(0, 0, 1)) {
			t.Fatalf("offset %d: next window starts %v, want %v", offset, next.Start, cur.End.AddDate(0, 0, 1))
		}
	}
}

func TestPlansInWindow(t *testing.T) {
	w := Window(date(2026, time.August, 26), 0)
	plans := []domain.PlannedTraining{
		{ID: "in-1", PlannedDate: date(2026, time.August, 24)},
		{ID: "in-2", PlannedDate: date(2026, time.August, 30)},
		{ID: "out-before", PlannedDate: date(2026, time.August, 23)},
		{ID: "out-after", PlannedDate: date(2026, time.August, 31)},
	}

	got := PlansInWindow(plans, w)
	if len(got) != 2 {
		t.Fatalf("got %d plans, want 2", len(got))
	}
	if got[0].ID != "in-1" || got[1].ID != "in-2" {
		t.Errorf("unexpected plans: %v, %v", got[0].ID, got[1].ID)
	}
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		completed, planned, want int
	}{
		{0, 0, 0}, // nothing planned is 0, not an error
		{0, 4, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 4, 75},
		{4, 4, 100},
	}
	for _, tt := range tests {
		if got := CompletionPercentage(tt.completed, tt.planned); got != tt.want {
			t.Errorf("CompletionPercentage(%d, %d) = %d, want %d", tt.completed, tt.planned, got, tt.want)
		}
	}
}

func TestChange(t *testing.T) {
	tests := []struct {
		current, previous float64
		want              int
	}{
		{0, 0, 0},
		{10, 0, 100}, // growth from nothing reads as +100
		{0, 10, -100},
		{110, 100, 10},
		{95, 100, -5},
		{100, 100, 0},
	}
	for _, tt := range tests {
		if got := Change(tt.current, tt.previous); got != tt.want {
			t.Errorf("Change(%v, %v) = %d, want %d", tt.current, tt.previous, got, tt.want)
		}
	}
}

func TestFormatChange(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{12, "+12%"},
		{-5, "-5%"},
		{0, "0%"},
	}
	for _, tt := range tests {
		if got := FormatChange(tt.pct); got != tt.want {
			t.Errorf("FormatChange(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestTrainingLoad(t *testing.T) {
	slots := []domain.DayTraining{
		{Day: time.Monday, ActivityType: domain.ActivityRunning, Duration: intPtr(60), Intensity: domain.IntensityLow},
		{Day: time.Tuesday, ActivityType: domain.ActivityStrength, Duration: intPtr(45), Intensity: domain.IntensityMedium},
		{Day: time.Wednesday, ActivityType: domain.ActivityRunning, Duration: intPtr(30), Intensity: domain.IntensityHigh},
		{Day: time.Thursday, ActivityType: domain.ActivityRest},
		{Day: time.Friday, ActivityType: domain.ActivityYoga, Intensity: domain.IntensityLow}, // no duration
	}

	want := 60*1 + 45*2 + 30*3
	if got := TrainingLoad(slots); got != want {
		t.Errorf("TrainingLoad = %d, want %d", got, want)
	}
}

func TestTrainingLoadMonotonic(t *testing.T) {
	base := []domain.DayTraining{
		{Day: time.Monday, ActivityType: domain.ActivityRunning, Duration: intPtr(60), Intensity: domain.IntensityMedium},
	}
	baseLoad := TrainingLoad(base)

	longer := []domain.DayTraining{
		{Day: time.Monday, ActivityType: domain.ActivityRunning, Duration: intPtr(90), Intensity: domain.IntensityMedium},
	}
	if TrainingLoad(longer) <= baseLoad {
		t.Error("a longer session must not lower the load")
	}

	more := append([]domain.DayTraining{}, base...)
	more = append(more, domain.DayTraining{
		Day: time.Tuesday, ActivityType: domain.ActivityCycling, Duration: intPtr(30), Intensity: domain.IntensityLow,
	})
	if TrainingLoad(more) <= baseLoad {
		t.Error("an extra session must not lower the load")
	}
}

func TestBreakdownsCoverFullSchema(t *testing.T) {
	slots := []domain.DayTraining{
		{Day: time.Monday, ActivityType: domain.ActivityRunning, Intensity: domain.IntensityHigh},
	}

	byActivity := ActivityBreakdown(slots)
	if len(byActivity) != len(domain.ActivityTypes()) {
		t.Fatalf("activity breakdown has %d entries, want %d", len(byActivity), len(domain.ActivityTypes()))
	}
	if byActivity[domain.ActivityRunning] != 1 {
		t.Errorf("Running count = %d, want 1", byActivity[domain.ActivityRunning])
	}
	if byActivity[domain.ActivitySwimming] != 0 {
		t.Errorf("Swimming count = %d, want explicit 0", byActivity[domain.ActivitySwimming])
	}

	byIntensity := IntensityBreakdown(slots)
	if len(byIntensity) != 3 {
		t.Fatalf("intensity breakdown has %d entries, want 3", len(byIntensity))
	}
	if byIntensity[domain.IntensityHigh] != 1 || byIntensity[domain.IntensityLow] != 0 {
		t.Errorf("unexpected intensity counts: %v", byIntensity)
	}
}

func TestRestDays(t *testing.T) {
	if got := RestDays(nil); got != 7 {
		t.Errorf("empty week: RestDays = %d, want 7", got)
	}

	slots := []domain.DayTraining{
		{Day: time.Monday, ActivityType: domain.ActivityRunning},
		{Day: time.Tuesday, ActivityType: domain.ActivityRest},
		{Day: time.Wednesday, ActivityType: domain.ActivityStrength},
	}
	// 2 training days, 1 explicit rest, 4 empty
	if got := RestDays(slots); got != 5 {
		t.Errorf("RestDays = %d, want 5", got)
	}
}

func TestSummarize(t *testing.T) {
	w := Window(date(2026, time.August, 26), 0)
	slots := []domain.DayTraining{
		{Day: time.Monday, ActivityType: domain.ActivityRunning, Duration: intPtr(60), Distance: f64Ptr(10), Intensity: domain.IntensityMedium, Status: domain.DayCompleted},
		{Day: time.Tuesday, ActivityType: domain.ActivityStrength, Duration: intPtr(45), Intensity: domain.IntensityHigh, Status: domain.DayMissed},
		{Day: time.Wednesday, ActivityType: domain.ActivityYoga, Duration: intPtr(30), Intensity: domain.IntensityLow, Status: domain.DayPlanned},
		{Day: time.Thursday, ActivityType: domain.ActivityRest, Status: domain.DayPlanned},
	}

	s := Summarize(w, slots)

	if s.PlannedCount != 3 {
		t.Errorf("PlannedCount = %d, want 3 (rest slots do not count)", s.PlannedCount)
	}
	if s.CompletedCount != 1 || s.MissedCount != 1 {
		t.Errorf("Completed/Missed = %d/%d, want 1/1", s.CompletedCount, s.MissedCount)
	}
	if s.CompletionPct != 33 {
		t.Errorf("CompletionPct = %d, want 33", s.CompletionPct)
	}
	if s.TotalDuration != 135 {
		t.Errorf("TotalDuration = %d, want 135", s.TotalDuration)
	}
	if s.TotalDistance != 10 {
		t.Errorf("TotalDistance = %v, want 10", s.TotalDistance)
	}
	if want := 60*2 + 45*3 + 30*1; s.TrainingLoad != want {
		t.Errorf("TrainingLoad = %d, want %d", s.TrainingLoad, want)
	}
	if s.RestDays != 4 {
		t.Errorf("RestDays = %d, want 4", s.RestDays)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	w := Window(date(2026, time.August, 26), 0)
	slots := []domain.DayTraining{
		{Day: time.Monday, ActivityType: domain.ActivityRunning, Duration: intPtr(50), Distance: f64Ptr(8.5), Intensity: domain.IntensityMedium, Status: domain.DayCompleted},
		{Day: time.Friday, ActivityType: domain.ActivityCycling, Duration: intPtr(90), Distance: f64Ptr(30), Intensity: domain.IntensityHigh, Status: domain.DayPlanned},
	}

	first := Summarize(w, slots)
	for i := 0; i < 5; i++ {
		again := Summarize(w, slots)
		if again.TrainingLoad != first.TrainingLoad ||
			again.TotalDuration != first.TotalDuration ||
			again.TotalDistance != first.TotalDistance ||
			again.CompletionPct != first.CompletionPct {
			t.Fatalf("run %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestTrend(t *testing.T) {
	w := Window(date(2026, time.August, 26), 0)
	prevW := Window(date(2026, time.August, 26), -1)

	current := Summarize(w, []domain.DayTraining{
		{Day: time.Monday, ActivityType: domain.ActivityRunning, Duration: intPtr(110), Distance: f64Ptr(20), Intensity: domain.IntensityLow, Status: domain.DayCompleted},
	})
	previous := Summarize(prevW, []domain.DayTraining{
		{Day: time.Monday, ActivityType: domain.ActivityRunning, Duration: intPtr(100), Distance: f64Ptr(25), Intensity: domain.IntensityLow, Status: domain.DayCompleted},
	})

	trend := Trend(current, previous)
	if trend.DurationChange != "+10%" {
		t.Errorf("DurationChange = %q, want +10%%", trend.DurationChange)
	}
	if trend.DistanceChange != "-20%" {
		t.Errorf("DistanceChange = %q, want -20%%", trend.DistanceChange)
	}
	if trend.LoadChange != "+10%" {
		t.Errorf("LoadChange = %q, want +10%%", trend.LoadChange)
	}

	empty := Summarize(prevW, nil)
	firstWeek := Trend(current, empty)
	if firstWeek.LoadChange != "+100%" {
		t.Errorf("first-week LoadChange = %q, want +100%%", firstWeek.LoadChange)
	}
}
