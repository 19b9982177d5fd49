package flow

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fitflow/fitflow/internal/goals"
	"github.com/fitflow/fitflow/internal/models"
	"github.com/fitflow/fitflow/internal/validation"
)

const (
	promptWorkoutDuration  = "How long was it, in minutes?"
	promptWorkoutIntensity = "How intense was it?\n1. Low\n2. Medium\n3. High"
)

// workoutDraft carries the chosen type and duration until the final turn.
type workoutDraft struct {
	Type        models.WorkoutType `json:"type"`
	DurationMin int                `json:"duration_min"`
}

// workoutMenu lists the catalogue as a numbered menu.
func workoutMenu() string {
	var b strings.Builder
	b.WriteString("What kind of workout was it? 🏋️\n")
	for i, wt := range models.WorkoutTypes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, wt)
	}
	b.WriteString("Reply with a number.")
	return b.String()
}

func (m *Manager) startWorkoutFlow(userID int64) (string, error) {
	if reply, err := m.requireProfile(userID); reply != "" || err != nil {
		return reply, err
	}
	return m.beginFlow(userID, models.FlowTypeLogWorkout, models.StateAwaitingType, workoutMenu())
}

// handleWorkoutTurn drives the workout log dialog.
func (m *Manager) handleWorkoutTurn(state *models.FlowState, input string) (string, error) {
	var draft workoutDraft
	if err := loadDraft(state, &draft); err != nil {
		return "", err
	}

	switch state.CurrentState {
	case models.StateAwaitingType:
		wt, err := validation.WorkoutSelection(input)
		if err != nil {
			return "", err
		}
		draft.Type = wt
		if err := saveDraft(state, draft); err != nil {
			return "", err
		}
		return promptWorkoutDuration, m.transition(state, models.StateAwaitingDuration)

	case models.StateAwaitingDuration:
		d, err := validation.Duration(input)
		if err != nil {
			return "", err
		}
		draft.DurationMin = d
		if err := saveDraft(state, draft); err != nil {
			return "", err
		}
		return promptWorkoutIntensity, m.transition(state, models.StateAwaitingIntensity)

	case models.StateAwaitingIntensity:
		intensity, err := validation.IntensitySelection(input)
		if err != nil {
			return "", err
		}
		return m.completeWorkout(state, draft, intensity)

	default:
		return "", fmt.Errorf("unsupported workout log state '%s'", state.CurrentState)
	}
}

func (m *Manager) completeWorkout(state *models.FlowState, draft workoutDraft, intensity models.Intensity) (string, error) {
	burned := goals.CaloriesBurned(draft.Type, intensity, draft.DurationMin)
	now := m.now()
	entry := models.WorkoutLogEntry{
		ID:             m.newID(),
		UserID:         state.UserID,
		WorkoutType:    draft.Type,
		DurationMin:    draft.DurationMin,
		Intensity:      intensity,
		CaloriesBurned: burned,
		Timestamp:      now,
	}
	if err := m.store.AddWorkoutLog(entry); err != nil {
		return "", err
	}
	if err := m.store.DeleteFlowState(state.UserID); err != nil {
		return "", err
	}

	r := models.DayRangeFor(now)
	totalBurned, err := m.store.SumWorkoutCalories(state.UserID, r)
	if err != nil {
		return "", err
	}
	count, err := m.store.CountWorkouts(state.UserID, r)
	if err != nil {
		return "", err
	}

	slog.Debug("Flow workout logged", "userID", state.UserID, "type", draft.Type,
		"durationMin", draft.DurationMin, "intensity", intensity, "burned", burned)
	return fmt.Sprintf("Logged %s, %d min, %s intensity: %d kcal burned. 🔥\n"+
		"Today: %d workout(s), %d kcal burned in total.",
		draft.Type, draft.DurationMin, intensity, burned, count, totalBurned), nil
}
