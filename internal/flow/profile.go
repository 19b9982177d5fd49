package flow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fitflow/fitflow/internal/goals"
	"github.com/fitflow/fitflow/internal/models"
	"github.com/fitflow/fitflow/internal/validation"
)

const (
	promptWeight   = "Let's set up your profile. What's your weight, in kg?"
	promptHeight   = "Got it. What's your height, in cm?"
	promptAge      = "How old are you?"
	promptActivity = "What's your activity level?\n" +
		"1. Sedentary\n2. Light (1-3 workouts/week)\n3. Moderate (3-5 workouts/week)\n4. High (6-7 workouts/week)"
	promptCity = "Which city are you in? I'll use it to adjust your water goal for the weather."
)

// profileDraft accumulates profile-setup answers. The city is the last
// question, so it never needs to be carried between turns.
type profileDraft struct {
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	AgeYears      int     `json:"age_years"`
	ActivityLevel int     `json:"activity_level"`
}

func (m *Manager) startProfileFlow(userID int64) (string, error) {
	return m.beginFlow(userID, models.FlowTypeProfileSetup, models.StateAwaitingWeight, promptWeight)
}

// handleProfileTurn drives the profile-setup dialog. Completing the final
// state looks up the city's temperature, computes both goals and upserts
// the profile; a failed lookup aborts the whole flow so no half-derived
// profile is ever persisted.
func (m *Manager) handleProfileTurn(ctx context.Context, state *models.FlowState, input string) (string, error) {
	var draft profileDraft
	if err := loadDraft(state, &draft); err != nil {
		return "", err
	}

	switch state.CurrentState {
	case models.StateAwaitingWeight:
		w, err := validation.Weight(input)
		if err != nil {
			return "", err
		}
		draft.WeightKg = w
		if err := saveDraft(state, draft); err != nil {
			return "", err
		}
		return promptHeight, m.transition(state, models.StateAwaitingHeight)

	case models.StateAwaitingHeight:
		h, err := validation.Height(input)
		if err != nil {
			return "", err
		}
		draft.HeightCm = h
		if err := saveDraft(state, draft); err != nil {
			return "", err
		}
		return promptAge, m.transition(state, models.StateAwaitingAge)

	case models.StateAwaitingAge:
		a, err := validation.Age(input)
		if err != nil {
			return "", err
		}
		draft.AgeYears = a
		if err := saveDraft(state, draft); err != nil {
			return "", err
		}
		return promptActivity, m.transition(state, models.StateAwaitingActivity)

	case models.StateAwaitingActivity:
		l, err := validation.ActivityLevel(input)
		if err != nil {
			return "", err
		}
		draft.ActivityLevel = l
		if err := saveDraft(state, draft); err != nil {
			return "", err
		}
		return promptCity, m.transition(state, models.StateAwaitingCity)

	case models.StateAwaitingCity:
		city, err := validation.City(input)
		if err != nil {
			return "", err
		}
		return m.completeProfile(ctx, state, draft, city)

	default:
		return "", fmt.Errorf("unsupported profile setup state '%s'", state.CurrentState)
	}
}

func (m *Manager) completeProfile(ctx context.Context, state *models.FlowState, draft profileDraft, city string) (string, error) {
	temp, err := m.temps.Temperature(ctx, city)
	if err != nil {
		return "", err
	}

	now := m.now()
	profile := models.UserProfile{
		UserID:        state.UserID,
		WeightKg:      draft.WeightKg,
		HeightCm:      draft.HeightCm,
		AgeYears:      draft.AgeYears,
		ActivityLevel: draft.ActivityLevel,
		City:          city,
		CalorieGoal:   goals.CalorieGoal(draft.WeightKg, draft.HeightCm, draft.AgeYears, draft.ActivityLevel, goals.SexMale),
		WaterGoalMl:   goals.WaterGoal(draft.WeightKg, draft.ActivityLevel, temp),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := m.store.UpsertProfile(profile); err != nil {
		return "", err
	}
	if err := m.store.DeleteFlowState(state.UserID); err != nil {
		return "", err
	}

	slog.Info("Flow profile setup completed", "userID", state.UserID, "city", city,
		"calorieGoal", profile.CalorieGoal, "waterGoalMl", profile.WaterGoalMl)
	return fmt.Sprintf("Your profile is ready! ✅\n"+
		"It's %.1f°C in %s right now.\n"+
		"Daily calorie goal: %d kcal\n"+
		"Daily water goal: %d ml\n"+
		"Log your day with %s, %s and %s.",
		temp, city, profile.CalorieGoal, profile.WaterGoalMl,
		CommandLogWater, CommandLogFood, CommandLogWorkout), nil
}
