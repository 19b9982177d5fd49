// Package store provides storage backends for FitFlow.
//
// It defines the Store interface consumed by the session manager and the
// aggregation engine, together with an in-memory implementation used for
// tests and DSN-less development runs. SQLite and PostgreSQL backends live
// in their own files.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/fitflow/fitflow/internal/models"
)

// Store is the persistence contract for profiles, append-only event logs
// and dialog flow state. Log tables are insert-only; aggregation queries
// operate over half-open day ranges.
type Store interface {
	// GetProfile returns the user's profile, or nil if none exists.
	GetProfile(userID int64) (*models.UserProfile, error)
	// UpsertProfile creates or replaces the user's profile.
	UpsertProfile(p models.UserProfile) error

	AddWaterLog(e models.WaterLogEntry) error
	SumWater(userID int64, r models.DayRange) (int, error)

	AddFoodLog(e models.FoodLogEntry) error
	SumFoodCalories(userID int64, r models.DayRange) (float64, error)

	AddWorkoutLog(e models.WorkoutLogEntry) error
	SumWorkoutCalories(userID int64, r models.DayRange) (int, error)
	CountWorkouts(userID int64, r models.DayRange) (int, error)

	// SaveFlowState stores or replaces the user's active dialog state.
	SaveFlowState(state models.FlowState) error
	// GetFlowState returns the user's active dialog state, or nil if none.
	GetFlowState(userID int64) (*models.FlowState, error)
	// DeleteFlowState removes the user's active dialog state.
	DeleteFlowState(userID int64) error

	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string
}

// Option defines a configuration option for store constructors.
type Option func(*Opts)

// WithSQLiteDSN configures a SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithPostgresDSN configures a PostgreSQL connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// DetectDSNType classifies a DSN as "postgres" or "sqlite". Anything that
// does not look like a PostgreSQL URL or key/value connection string is
// treated as a SQLite file path.
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// InMemoryStore is a mutex-guarded in-memory Store implementation.
type InMemoryStore struct {
	mu         sync.RWMutex
	profiles   map[int64]models.UserProfile
	water      []models.WaterLogEntry
	food       []models.FoodLogEntry
	workouts   []models.WorkoutLogEntry
	flowStates map[int64]models.FlowState
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		profiles:   make(map[int64]models.UserProfile),
		flowStates: make(map[int64]models.FlowState),
	}
}

func (s *InMemoryStore) GetProfile(userID int64) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *InMemoryStore) UpsertProfile(p models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.profiles[p.UserID]; ok {
		p.CreatedAt = existing.CreatedAt
	}
	s.profiles[p.UserID] = p
	return nil
}

func (s *InMemoryStore) AddWaterLog(e models.WaterLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.water = append(s.water, e)
	return nil
}

func (s *InMemoryStore) SumWater(userID int64, r models.DayRange) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, e := range s.water {
		if e.UserID == userID && inRange(e.Timestamp, r) {
			total += e.AmountMl
		}
	}
	return total, nil
}

func (s *InMemoryStore) AddFoodLog(e models.FoodLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.food = append(s.food, e)
	return nil
}

func (s *InMemoryStore) SumFoodCalories(userID int64, r models.DayRange) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, e := range s.food {
		if e.UserID == userID && inRange(e.Timestamp, r) {
			total += e.Calories
		}
	}
	return total, nil
}

func (s *InMemoryStore) AddWorkoutLog(e models.WorkoutLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workouts = append(s.workouts, e)
	return nil
}

func (s *InMemoryStore) SumWorkoutCalories(userID int64, r models.DayRange) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, e := range s.workouts {
		if e.UserID == userID && inRange(e.Timestamp, r) {
			total += e.CaloriesBurned
		}
	}
	return total, nil
}

func (s *InMemoryStore) CountWorkouts(userID int64, r models.DayRange) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, e := range s.workouts {
		if e.UserID == userID && inRange(e.Timestamp, r) {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) SaveFlowState(state models.FlowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flowStates[state.UserID] = state
	return nil
}

func (s *InMemoryStore) GetFlowState(userID int64) (*models.FlowState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.flowStates[userID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *InMemoryStore) DeleteFlowState(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flowStates, userID)
	return nil
}

func (s *InMemoryStore) Close() error {
	return nil
}

// inRange reports whether t falls inside the half-open interval r.
func inRange(t time.Time, r models.DayRange) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}
