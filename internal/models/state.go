// Package models defines state management structures for FitFlow dialogs.
package models

import "time"

// FlowType identifies one of the multi-turn dialogs a user can be in.
type FlowType string

const (
	FlowTypeProfileSetup FlowType = "profile_setup"
	FlowTypeLogWater     FlowType = "log_water"
	FlowTypeLogFood      FlowType = "log_food"
	FlowTypeLogWorkout   FlowType = "log_workout"
)

// IsValidFlowType checks if the given flow type is supported.
func IsValidFlowType(ft FlowType) bool {
	switch ft {
	case FlowTypeProfileSetup, FlowTypeLogWater, FlowTypeLogFood, FlowTypeLogWorkout:
		return true
	default:
		return false
	}
}

// StateType identifies a state within a flow's state machine.
type StateType string

// Profile-setup flow states.
const (
	StateAwaitingWeight   StateType = "AWAITING_WEIGHT"
	StateAwaitingHeight   StateType = "AWAITING_HEIGHT"
	StateAwaitingAge      StateType = "AWAITING_AGE"
	StateAwaitingActivity StateType = "AWAITING_ACTIVITY"
	StateAwaitingCity     StateType = "AWAITING_CITY"
)

// Log-water flow states.
const (
	StateAwaitingAmount StateType = "AWAITING_AMOUNT"
)

// Log-food flow states.
const (
	StateAwaitingFoodName StateType = "AWAITING_FOOD_NAME"
	StateAwaitingPortion  StateType = "AWAITING_PORTION"
)

// Log-workout flow states.
const (
	StateAwaitingType      StateType = "AWAITING_TYPE"
	StateAwaitingDuration  StateType = "AWAITING_DURATION"
	StateAwaitingIntensity StateType = "AWAITING_INTENSITY"
)

// DataKey addresses a value inside a flow state's collected data.
type DataKey string

// DataKeyDraft holds the JSON-serialized, flow-specific draft record of
// fields collected so far.
const DataKeyDraft DataKey = "draft"

// FlowState represents one user's active dialog: which flow they are in,
// the state the next turn will be handled by, and the fields collected so
// far. At most one FlowState exists per user at a time.
type FlowState struct {
	UserID       int64                  `json:"user_id"`
	FlowType     FlowType               `json:"flow_type"`
	CurrentState StateType              `json:"current_state"`
	StateData    map[DataKey]string     `json:"state_data,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}
