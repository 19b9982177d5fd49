// Package flow implements the conversation session manager.
//
// It owns at most one finite-state machine per user, drives it turn by
// turn, and invokes the validation layer, the goal calculator and the
// store as side effects of successful transitions. Sessions are persisted
// as flow states so an in-progress dialog survives a process restart.
package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitflow/fitflow/internal/models"
	"github.com/fitflow/fitflow/internal/progress"
	"github.com/fitflow/fitflow/internal/store"
)

// CommandPrefix marks a turn as a command. Any input starting with it
// cancels the active dialog before the command itself is handled.
const CommandPrefix = "/"

// TemperatureProvider looks up the current ambient temperature for a city.
type TemperatureProvider interface {
	Temperature(ctx context.Context, city string) (float64, error)
}

// FoodSearcher finds nutrition facts for a free-text food query. An empty
// result list is a valid, non-error outcome.
type FoodSearcher interface {
	Search(ctx context.Context, query string) ([]models.FoodItem, error)
}

// Opts holds configuration options for the Manager.
type Opts struct {
	Now   func() time.Time
	NewID func() string
}

// Option defines a configuration option for NewManager.
type Option func(*Opts)

// WithClock overrides the time source used for log timestamps and day
// boundaries. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(o *Opts) { o.Now = now }
}

// WithIDGenerator overrides the log-entry ID generator. Used in tests.
func WithIDGenerator(newID func() string) Option {
	return func(o *Opts) { o.NewID = newID }
}

// Manager routes inbound turns to the active dialog's current state.
// Turns for the same user are strictly serialized through a per-user
// mutex; turns for different users proceed in parallel.
type Manager struct {
	store    store.Store
	progress *progress.Service
	temps    TemperatureProvider
	foods    FoodSearcher
	now      func() time.Time
	newID    func() string

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewManager creates a session manager over the given store and
// collaborators.
func NewManager(st store.Store, temps TemperatureProvider, foods FoodSearcher, opts ...Option) *Manager {
	o := Opts{
		Now:   time.Now,
		NewID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{
		store:    st,
		progress: progress.NewService(st),
		temps:    temps,
		foods:    foods,
		now:      o.Now,
		newID:    o.NewID,
		locks:    make(map[int64]*sync.Mutex),
	}
}

// userLock returns the mutex serializing turns for one user.
func (m *Manager) userLock(userID int64) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[userID] = l
	}
	return l
}

// loadDraft decodes the flow-specific draft record collected so far.
// A state without a draft yields the zero value.
func loadDraft(state *models.FlowState, v any) error {
	raw, ok := state.StateData[models.DataKeyDraft]
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode %s draft: %w", state.FlowType, err)
	}
	return nil
}

// saveDraft encodes the draft record into the flow state. The caller still
// has to persist the state through the store.
func saveDraft(state *models.FlowState, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s draft: %w", state.FlowType, err)
	}
	if state.StateData == nil {
		state.StateData = make(map[models.DataKey]string)
	}
	state.StateData[models.DataKeyDraft] = string(raw)
	return nil
}

// beginFlow replaces any active session with a fresh one at the flow's
// first state and returns the opening prompt.
func (m *Manager) beginFlow(userID int64, ft models.FlowType, first models.StateType, prompt string) (string, error) {
	now := m.now()
	state := models.FlowState{
		UserID:       userID,
		FlowType:     ft,
		CurrentState: first,
		StateData:    make(map[models.DataKey]string),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := m.store.SaveFlowState(state); err != nil {
		return "", err
	}
	return prompt, nil
}

// transition advances the session to the next state and persists it.
func (m *Manager) transition(state *models.FlowState, next models.StateType) error {
	state.CurrentState = next
	state.UpdatedAt = m.now()
	return m.store.SaveFlowState(*state)
}
