package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"traininglog/app/internal/domain"
	"traininglog/app/internal/repository"
)

// Options configures the in-memory store. The artificial delays exist so
// calling code exercises realistic loading states; tests set them to zero.
type Options struct {
	ReadDelay  time.Duration
	WriteDelay time.Duration
	Now        func() time.Time
	Seeded     bool
}

// DefaultOptions returns the delays used for local development and demos.
func DefaultOptions() Options {
	return Options{
		ReadDelay:  500 * time.Millisecond,
		WriteDelay: 400 * time.Millisecond,
		Seeded:     true,
	}
}

// Store is an in-memory data store standing in for the remote backend. It is
// used for local development, demos, and as the fallback dataset when the
// remote API is unreachable. It owns its collections and is constructed once;
// nothing in this package holds package-level state.
type Store struct {
	mu         sync.Mutex
	readDelay  time.Duration
	writeDelay time.Duration
	now        func() time.Time

	trainings []domain.TrainingRecord
	plans     []domain.PlannedTraining
	// week slots keyed by userID, then week offset, then weekday index
	weeks map[string]map[int]map[int]domain.DayTraining
	users map[string]domain.User
}

// NewStore constructs a store, pre-populated with the demo dataset when
// opts.Seeded is set.
func NewStore(opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Store{
		readDelay:  opts.ReadDelay,
		writeDelay: opts.WriteDelay,
		now:        opts.Now,
		weeks:      make(map[string]map[int]map[int]domain.DayTraining),
		users:      make(map[string]domain.User),
	}
	if opts.Seeded {
		s.seed()
	}
	return s
}

// Trainings returns the TrainingRepository view of the store.
func (s *Store) Trainings() repository.TrainingRepository {
	return &trainingStore{s}
}

// Planned returns the PlannedRepository view of the store.
func (s *Store) Planned() repository.PlannedRepository {
	return &plannedStore{s}
}

// WeekPlan returns the WeekPlanRepository view of the store.
func (s *Store) WeekPlan() repository.WeekPlanRepository {
	return &weekPlanStore{s}
}

// Users returns the UserRepository view of the store.
func (s *Store) Users() repository.UserRepository {
	return &userStore{s}
}

// newID generates a store-local identifier. The "local-" prefix keeps these
// ids disjoint from remote-assigned ones when both backends show up in tests.
func (s *Store) newID() string {
	return "local-" + uuid.NewString()
}

// sleep simulates I/O latency while honouring cancellation.
func (s *Store) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ---- trainings ----

type trainingStore struct{ *Store }

func (s *trainingStore) List(ctx context.Context, limit, offset int) ([]domain.TrainingRecord, error) {
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cloned := append([]domain.TrainingRecord(nil), s.trainings...)
	// newest first
	sort.SliceStable(cloned, func(i, j int) bool {
		return cloned[i].Date.After(cloned[j].Date)
	})
	if offset < 0 {
		offset = 0
	}
	if offset >= len(cloned) {
		return []domain.TrainingRecord{}, nil
	}
	cloned = cloned[offset:]
	if limit > 0 && limit < len(cloned) {
		cloned = cloned[:limit]
	}
	return cloned, nil
}

func (s *trainingStore) GetByID(ctx context.Context, id string) (*domain.TrainingRecord, error) {
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.trainings {
		if s.trainings[i].ID == id {
			record := s.trainings[i]
			return &record, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *trainingStore) Create(ctx context.Context, record *domain.TrainingRecord) (*domain.TrainingRecord, error) {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	stored := *record
	stored.ID = s.newID()
	stored.Date = domain.DateOnly(stored.Date)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.Exercises == nil {
		stored.Exercises = []domain.ExerciseSet{}
	}
	s.trainings = append(s.trainings, stored)
	return &stored, nil
}

func (s *trainingStore) Update(ctx context.Context, id string, patch domain.TrainingPatch) (*domain.TrainingRecord, error) {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.trainings {
		if s.trainings[i].ID != id {
			continue
		}
		merged := patch.Apply(s.trainings[i])
		merged.UpdatedAt = s.nextUpdateTime(s.trainings[i].UpdatedAt)
		s.trainings[i] = merged
		record := merged
		return &record, nil
	}
	return nil, repository.ErrNotFound
}

func (s *trainingStore) Delete(ctx context.Context, id string) error {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.trainings {
		if s.trainings[i].ID == id {
			s.trainings = append(s.trainings[:i], s.trainings[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// nextUpdateTime guarantees updatedAt strictly advances even under a coarse
// or frozen clock.
func (s *Store) nextUpdateTime(prev time.Time) time.Time {
	now := s.now().UTC()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

// ---- planned trainings ----

type plannedStore struct{ *Store }

func (s *plannedStore) List(ctx context.Context, limit, offset int) ([]domain.PlannedTraining, error) {
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cloned := append([]domain.PlannedTraining(nil), s.plans...)
	sort.SliceStable(cloned, func(i, j int) bool {
		return cloned[i].PlannedDate.Before(cloned[j].PlannedDate)
	})
	if offset < 0 {
		offset = 0
	}
	if offset >= len(cloned) {
		return []domain.PlannedTraining{}, nil
	}
	cloned = cloned[offset:]
	if limit > 0 && limit < len(cloned) {
		cloned = cloned[:limit]
	}
	return cloned, nil
}

func (s *plannedStore) GetByID(ctx context.Context, id string) (*domain.PlannedTraining, error) {
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID == id {
			plan := s.plans[i]
			return &plan, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *plannedStore) Create(ctx context.Context, plan *domain.PlannedTraining) (*domain.PlannedTraining, error) {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	stored := *plan
	stored.ID = s.newID()
	stored.PlannedDate = domain.DateOnly(stored.PlannedDate)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.plans = append(s.plans, stored)
	return &stored, nil
}

func (s *plannedStore) Update(ctx context.Context, id string, patch domain.PlannedPatch) (*domain.PlannedTraining, error) {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID != id {
			continue
		}
		merged := patch.Apply(s.plans[i])
		merged.UpdatedAt = s.nextUpdateTime(s.plans[i].UpdatedAt)
		s.plans[i] = merged
		plan := merged
		return &plan, nil
	}
	return nil, repository.ErrNotFound
}

func (s *plannedStore) Delete(ctx context.Context, id string) error {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID == id {
			s.plans = append(s.plans[:i], s.plans[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// ---- week plan grid ----

type weekPlanStore struct{ *Store }

func (s *weekPlanStore) Week(ctx context.Context, userID string, offset int) ([]domain.DayTraining, error) {
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	week := s.weeks[userID][offset]
	slots := make([]domain.DayTraining, 0, len(week))
	for _, slot := range week {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return weekdayIndex(slots[i].Day) < weekdayIndex(slots[j].Day)
	})
	return slots, nil
}

func (s *weekPlanStore) PutDay(ctx context.Context, userID string, offset int, slot *domain.DayTraining) (*domain.DayTraining, error) {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	stored := *slot
	stored.UserID = userID
	day := weekdayIndex(stored.Day)
	if prev, ok := s.weeks[userID][offset][day]; ok {
		stored.ID = prev.ID
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.ID = s.newID()
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	if s.weeks[userID] == nil {
		s.weeks[userID] = make(map[int]map[int]domain.DayTraining)
	}
	if s.weeks[userID][offset] == nil {
		s.weeks[userID][offset] = make(map[int]domain.DayTraining)
	}
	s.weeks[userID][offset][day] = stored
	return &stored, nil
}

func (s *weekPlanStore) ClearDay(ctx context.Context, userID string, offset int, day int) error {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	week := s.weeks[userID][offset]
	if _, ok := week[day]; !ok {
		return repository.ErrNotFound
	}
	delete(week, day)
	return nil
}

// weekdayIndex maps Monday..Sunday onto 1..7 grid positions.
func weekdayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// ---- users ----

type userStore struct{ *Store }

func (s *userStore) Create(ctx context.Context, user *domain.User) (string, error) {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return "", repository.RepositoryError("user with this email already exists")
		}
	}
	now := s.now().UTC()
	stored := *user
	stored.ID = s.newID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.users[stored.ID] = stored
	return stored.ID, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *userStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := user
	return &u, nil
}

func (s *userStore) Update(ctx context.Context, user *domain.User) error {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := *user
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = s.nextUpdateTime(stored.UpdatedAt)
	s.users[user.ID] = updated
	return nil
}

func (s *userStore) Delete(ctx context.Context, id string) error {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *userStore) AddAthleteToCoach(ctx context.Context, coachID, athleteID string) error {
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	coach, ok := s.users[coachID]
	if !ok || !coach.IsCoach() {
		return repository.ErrNotFound
	}
	for _, id := range coach.AthleteIDs {
		if id == athleteID {
			return nil
		}
	}
	coach.AthleteIDs = append(coach.AthleteIDs, athleteID)
	coach.UpdatedAt = s.now().UTC()
	s.users[coachID] = coach
	return nil
}

func (s *userStore) GetAthletesByCoachID(ctx context.Context, coachID string) ([]domain.User, error) {
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	coach, ok := s.users[coachID]
	if !ok || !coach.IsCoach() {
		return nil, repository.ErrNotFound
	}
	athletes := make([]domain.User, 0, len(coach.AthleteIDs))
	for _, id := range coach.AthleteIDs {
		if athlete, ok := s.users[id]; ok {
			athletes = append(athletes, athlete)
		}
	}
	return athletes, nil
}

func (s *userStore) GetPendingAthletes(ctx context.Context) ([]domain.User, error) {
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []domain.User
	for _, user := range s.users {
		if user.IsAthlete() && user.Pending {
			pending = append(pending, user)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Email < pending[j].Email })
	return pending, nil
}
