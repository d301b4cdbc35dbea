package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"traininglog/app/internal/domain"
	"traininglog/app/internal/repository"
)

func f64(v float64) *float64 { return &v }

func i(v int) *int { return &v }

func TestTrainingWireRoundTrip(t *testing.T) {
	record := domain.TrainingRecord{
		ID:           "remote-1",
		UserID:       "user-1",
		Type:         domain.TrainingRunning,
		Date:         time.Date(2026, time.August, 25, 0, 0, 0, 0, time.UTC),
		Duration:     45,
		Distance:     f64(8.5),
		Pace:         "5:17",
		Calories:     i(520),
		HeartRate:    &domain.AvgMax{Avg: 148, Max: 171},
		Cadence:      &domain.AvgMax{Avg: 172, Max: 180},
		Altitude:     &domain.MinMax{Min: 210, Max: 340},
		Exercises:    []domain.ExerciseSet{{Name: "Strides", Sets: 4, Reps: 1}},
		TrainerNotes: "solid",
		TraineeNotes: "felt good",
		Rating:       i(7),
		Links:        []string{"https://example.com/route.gpx"},
		CreatedAt:    time.Date(2026, time.August, 25, 19, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, time.August, 25, 19, 5, 0, 0, time.UTC),
	}

	back, err := trainingFromWire(trainingToWire(record))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}

	if back.ID != record.ID || back.Type != record.Type || !back.Date.Equal(record.Date) {
		t.Errorf("identity fields lost: %+v", back)
	}
	if *back.Distance != 8.5 || *back.Calories != 520 || *back.Rating != 7 {
		t.Errorf("optional scalars lost: %+v", back)
	}
	if back.HeartRate.Avg != 148 || back.Cadence.Max != 180 || back.Altitude.Min != 210 {
		t.Errorf("nested metrics lost: %+v", back)
	}
	if len(back.Exercises) != 1 || back.Exercises[0].Name != "Strides" {
		t.Errorf("exercises lost: %+v", back.Exercises)
	}
	if back.TrainerNotes != "solid" || back.TraineeNotes != "felt good" {
		t.Errorf("notes lost: %+v", back)
	}
	if !back.CreatedAt.Equal(record.CreatedAt) || !back.UpdatedAt.Equal(record.UpdatedAt) {
		t.Errorf("timestamps lost: %v / %v", back.CreatedAt, back.UpdatedAt)
	}
}

func TestTrainingWireUsesSnakeCase(t *testing.T) {
	record := domain.TrainingRecord{
		Type:         domain.TrainingRunning,
		Date:         time.Date(2026, time.August, 25, 0, 0, 0, 0, time.UTC),
		Duration:     45,
		HeartRate:    &domain.AvgMax{Avg: 148, Max: 171},
		TrainerNotes: "note",
	}

	raw, err := json.Marshal(trainingToWire(record))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, want := range []string{"heart_rate", "trainer_notes", "date"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("wire JSON missing %q: %s", want, raw)
		}
	}
	for _, reject := range []string{"heartRate", "trainerNotes"} {
		if _, ok := fields[reject]; ok {
			t.Errorf("wire JSON leaked camelCase %q: %s", reject, raw)
		}
	}
	if string(fields["date"]) != `"2026-08-25"` {
		t.Errorf("date = %s, want plain calendar date", fields["date"])
	}
}

func TestTrainingFromWireRejectsBadDate(t *testing.T) {
	_, err := trainingFromWire(trainingWire{Type: "running", Date: "25/08/2026"})
	if err == nil {
		t.Error("a malformed date must be an error, not a zero time")
	}
}

func TestTrainingPatchToWireOnlyPresentFields(t *testing.T) {
	d := 50
	notes := "updated"
	body := trainingPatchToWire(domain.TrainingPatch{Duration: &d, TraineeNotes: &notes})

	if len(body) != 2 {
		t.Fatalf("patch body has %d fields, want 2: %v", len(body), body)
	}
	if body["duration"] != 50 || body["trainee_notes"] != "updated" {
		t.Errorf("patch body = %v", body)
	}
}

func TestPlannedPatchToWire(t *testing.T) {
	date := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
	done := true
	body := plannedPatchToWire(domain.PlannedPatch{PlannedDate: &date, Completed: &done})

	if body["planned_date"] != "2026-09-02" {
		t.Errorf("planned_date = %v", body["planned_date"])
	}
	if body["completed"] != true {
		t.Errorf("completed = %v", body["completed"])
	}
	if _, ok := body["type"]; ok {
		t.Error("absent fields must not appear in the patch body")
	}
}

func TestClientListTrainings(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trainings" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"remote-1","user_id":"u","type":"running","date":"2026-08-25","duration":45,"heart_rate":{"avg":148,"max":171}}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, func() string { return "test-token" })
	records, err := client.Trainings().List(context.Background(), 20, 40)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotQuery != "limit=20&offset=40" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	r := records[0]
	if r.ID != "remote-1" || r.Type != domain.TrainingRunning || r.Duration != 45 {
		t.Errorf("record = %+v", r)
	}
	if r.HeartRate == nil || r.HeartRate.Avg != 148 {
		t.Errorf("heart rate not translated: %+v", r.HeartRate)
	}
	if !r.Date.Equal(time.Date(2026, time.August, 25, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", r.Date)
	}
}

func TestClientCreateTraining(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/trainings" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if body["type"] != "running" || body["date"] != "2026-08-25" {
			t.Errorf("request body = %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"remote-9","user_id":"u","type":"running","date":"2026-08-25","duration":45}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	created, err := client.Trainings().Create(context.Background(), &domain.TrainingRecord{
		UserID:   "u",
		Type:     domain.TrainingRunning,
		Date:     time.Date(2026, time.August, 25, 0, 0, 0, 0, time.UTC),
		Duration: 45,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != "remote-9" {
		t.Errorf("ID = %q", created.ID)
	}
}

func TestClientNotFoundMapsToRepositoryError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Trainings().GetByID(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID = %v, want repository.ErrNotFound", err)
	}

	err = client.Planned().Delete(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Delete = %v, want repository.ErrNotFound", err)
	}
}

func TestClientSurfacesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Trainings().List(context.Background(), 0, 0)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("List = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d", statusErr.StatusCode)
	}
}

func TestClientLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("bad credentials body: %v", err)
		}
		if creds.Email != "athlete@example.com" {
			t.Errorf("email = %q", creds.Email)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"jwt-abc","user":{"id":"u1","name":"Ada","email":"athlete@example.com","role":"athlete","pending":false}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	session, err := client.Login(context.Background(), Credentials{Email: "athlete@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.Token != "jwt-abc" {
		t.Errorf("Token = %q", session.Token)
	}
	if session.User.Role != domain.RoleAthlete || session.User.Name != "Ada" {
		t.Errorf("User = %+v", session.User)
	}
}

func TestClientPlannedUpdateSendsPartialBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/planned-trainings/p1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad body: %v", err)
		}
		if len(body) != 1 || body["completed"] != true {
			t.Errorf("body = %v, want just completed", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"p1","user_id":"u","type":"running","planned_date":"2026-08-28","planned_duration":50,"completed":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	done := true
	updated, err := client.Planned().Update(context.Background(), "p1", domain.PlannedPatch{Completed: &done})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.Completed {
		t.Error("Completed not set on response")
	}
}
