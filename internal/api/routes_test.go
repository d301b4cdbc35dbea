package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"traininglog/app/internal/cache"
	"traininglog/app/internal/repository/memory"
	"traininglog/app/internal/service"

	"github.com/gin-gonic/gin"
)

func testClock() time.Time {
	return time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)
}

// newTestRouter wires the full API against an in-memory backend with zero
// latency, the same shape main assembles in mock mode.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore(memory.Options{Now: testClock, Seeded: true})
	authService := service.NewAuthService(store.Users(), "test-secret", time.Hour)
	trainingService := service.NewTrainingService(store.Trainings())
	plannedService := service.NewPlannedService(store.Planned())
	weekPlanService := service.NewWeekPlanService(store.WeekPlan(), testClock)
	coachService := service.NewCoachService(store.Users(), store.Planned(), testClock)
	queries := cache.NewQueries(trainingService, plannedService)

	router := gin.New()
	SetupRoutes(router, "test-secret", authService, queries, weekPlanService, coachService, nil)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, router *gin.Engine, name, email, role string) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": "password123", "role": role,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d: %s", email, rec.Code, rec.Body.String())
	}
}

func login(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d: %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}

func TestDataRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/trainings", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/trainings", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status %d, want 401", rec.Code)
	}
}

func TestPendingAthleteIsGated(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Ada", "ada@example.com", "athlete")
	token := login(t, router, "ada@example.com")

	// Profile works while pending.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("/auth/me while pending: status %d, want 200", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/auth/profile", token, map[string]any{"name": "Ada L"})
	if rec.Code != http.StatusOK {
		t.Errorf("/auth/profile while pending: status %d, want 200", rec.Code)
	}

	// Data routes do not.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/trainings", token, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("/trainings while pending: status %d, want 403", rec.Code)
	}
}

func TestApprovalTakesEffectWithoutRelogin(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Ada", "ada@example.com", "athlete")
	register(t, router, "Coach", "coach@example.com", "coach")
	athleteToken := login(t, router, "ada@example.com")
	coachToken := login(t, router, "coach@example.com")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/coach/pending", coachToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pending list: status %d: %s", rec.Code, rec.Body.String())
	}
	var pending []UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &pending); err != nil {
		t.Fatalf("decode pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending has %d entries, want 1", len(pending))
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/coach/pending/"+pending[0].ID+"/approve", coachToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: status %d: %s", rec.Code, rec.Body.String())
	}

	// The athlete's original token now passes the gate.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/trainings", athleteToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("/trainings after approval: status %d, want 200", rec.Code)
	}
}

func TestCoachRoutesRejectAthletes(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Coach", "coach@example.com", "coach")
	token := login(t, router, "coach@example.com")

	// A coach passes.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/coach/athletes", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("coach roster: status %d, want 200", rec.Code)
	}

	// An approved athlete still lacks the coach role.
	register(t, router, "Ada", "ada@example.com", "athlete")
	rec = doJSON(t, router, http.MethodGet, "/api/v1/coach/pending", token, nil)
	var pending []UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &pending); err != nil || len(pending) != 1 {
		t.Fatalf("pending fixture: %v (%d)", err, len(pending))
	}
	if rec := doJSON(t, router, http.MethodPost, "/api/v1/coach/pending/"+pending[0].ID+"/approve", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("approve: status %d", rec.Code)
	}

	athleteToken := login(t, router, "ada@example.com")
	rec = doJSON(t, router, http.MethodGet, "/api/v1/coach/athletes", athleteToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("athlete on coach route: status %d, want 403", rec.Code)
	}
}

func TestTrainingLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Coach", "coach@example.com", "coach")
	token := login(t, router, "coach@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/trainings", token, gin.H{
		"type": "running", "date": "2026-08-25", "duration": 45, "distance": 8.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", rec.Code, rec.Body.String())
	}
	var created TrainingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.Date != "2026-08-25" {
		t.Errorf("created date = %q", created.Date)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/trainings/"+created.ID, token, gin.H{"duration": 50})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d: %s", rec.Code, rec.Body.String())
	}
	var updated TrainingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Duration != 50 || updated.Distance == nil || *updated.Distance != 8.5 {
		t.Errorf("partial update result: %+v", updated)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/trainings/"+created.ID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/trainings/"+created.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d, want 404", rec.Code)
	}
}

func TestTrainingValidationOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Coach", "coach@example.com", "coach")
	token := login(t, router, "coach@example.com")

	tests := []struct {
		name string
		body gin.H
	}{
		{"unknown type", gin.H{"type": "skiing", "date": "2026-08-25", "duration": 45}},
		{"bad date format", gin.H{"type": "running", "date": "25/08/2026", "duration": 45}},
		{"negative duration", gin.H{"type": "running", "date": "2026-08-25", "duration": -1}},
		{"rating out of range", gin.H{"type": "running", "date": "2026-08-25", "duration": 45, "rating": 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/v1/trainings", token, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestWeekPlanOffsetValidation(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Coach", "coach@example.com", "coach")
	token := login(t, router, "coach@example.com")

	for _, offset := range []string{"0", "-3", "12"} {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/week-plan?offset="+offset, token, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("offset %s: status %d, want 200", offset, rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/week-plan?offset=next", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-integer offset: status %d, want 400", rec.Code)
	}

	// Missing offset defaults to the current week.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/week-plan", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("missing offset: status %d, want 200", rec.Code)
	}
}

func TestWeekPlanGridOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Coach", "coach@example.com", "coach")
	token := login(t, router, "coach@example.com")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/week-plan/days", token, gin.H{
		"day": 1, "activityType": "Running", "duration": 60, "intensity": "Medium", "status": "completed",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("put day: status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/week-plan/days", token, gin.H{
		"day": 7, "activityType": "Rest",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("put rest day: status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/week-plan/summary", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: status %d: %s", rec.Code, rec.Body.String())
	}
	var summary service.WeekSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Summary.PlannedCount != 1 {
		t.Errorf("PlannedCount = %d, want 1 (rest slot excluded)", summary.Summary.PlannedCount)
	}
	if summary.Summary.TrainingLoad != 120 {
		t.Errorf("TrainingLoad = %d, want 120", summary.Summary.TrainingLoad)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/week-plan/days/1", token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear day: status %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/week-plan/days/1", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("clear empty day: status %d, want 404", rec.Code)
	}
}

func TestSeededListOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Coach", "coach@example.com", "coach")
	token := login(t, router, "coach@example.com")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/trainings?limit=5", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d: %s", rec.Code, rec.Body.String())
	}
	var records []TrainingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("got %d records, want 5", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date > records[i-1].Date {
			t.Errorf("list not newest-first at %d", i)
		}
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/trainings?page=%d&pageSize=3", 2), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("page: status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/trainings?limit=abc", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status %d, want 400", rec.Code)
	}
}
