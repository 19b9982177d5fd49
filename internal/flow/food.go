package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fitflow/fitflow/internal/models"
	"github.com/fitflow/fitflow/internal/validation"
)

const promptFoodName = "What did you eat? Give me a food name to look up. 🍽"

// foodDraft carries the matched product between the name and portion turns.
type foodDraft struct {
	Item models.FoodItem `json:"item"`
}

func (m *Manager) startFoodFlow(userID int64) (string, error) {
	if reply, err := m.requireProfile(userID); reply != "" || err != nil {
		return reply, err
	}
	return m.beginFlow(userID, models.FlowTypeLogFood, models.StateAwaitingFoodName, promptFoodName)
}

// handleFoodTurn drives the food log dialog. An empty search result
// re-enters the name state without consuming the session.
func (m *Manager) handleFoodTurn(ctx context.Context, state *models.FlowState, input string) (string, error) {
	switch state.CurrentState {
	case models.StateAwaitingFoodName:
		return m.handleFoodName(ctx, state, input)
	case models.StateAwaitingPortion:
		return m.handleFoodPortion(state, input)
	default:
		return "", fmt.Errorf("unsupported food log state '%s'", state.CurrentState)
	}
}

func (m *Manager) handleFoodName(ctx context.Context, state *models.FlowState, input string) (string, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return "", models.NewValidationError("Please enter a food name, e.g. banana")
	}

	items, err := m.foods.Search(ctx, query)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		// Valid outcome: stay in the same state, keep the session.
		slog.Debug("Flow food search empty", "userID", state.UserID, "query", query)
		return fmt.Sprintf("I couldn't find anything for %q. Try another name.", query), nil
	}

	item := items[0]
	if err := saveDraft(state, foodDraft{Item: item}); err != nil {
		return "", err
	}
	if err := m.transition(state, models.StateAwaitingPortion); err != nil {
		return "", err
	}

	slog.Debug("Flow food matched", "userID", state.UserID, "query", query, "name", item.Name)
	return fmt.Sprintf("Found: %s\n"+
		"%.0f kcal / 100 g (protein %.1f g, fat %.1f g, carbs %.1f g)\n"+
		"How many grams did you have?",
		item.Name, item.CaloriesPer100g, item.Proteins, item.Fats, item.Carbs), nil
}

func (m *Manager) handleFoodPortion(state *models.FlowState, input string) (string, error) {
	portion, err := validation.Portion(input)
	if err != nil {
		return "", err
	}

	var draft foodDraft
	if err := loadDraft(state, &draft); err != nil {
		return "", err
	}
	if draft.Item.Name == "" {
		return "", fmt.Errorf("food log state '%s' has no selected item", state.CurrentState)
	}

	factor := portion / 100
	now := m.now()
	entry := models.FoodLogEntry{
		ID:           m.newID(),
		UserID:       state.UserID,
		FoodName:     draft.Item.Name,
		PortionGrams: portion,
		Calories:     draft.Item.CaloriesPer100g * factor,
		Proteins:     draft.Item.Proteins * factor,
		Fats:         draft.Item.Fats * factor,
		Carbs:        draft.Item.Carbs * factor,
		Timestamp:    now,
	}
	if err := m.store.AddFoodLog(entry); err != nil {
		return "", err
	}
	if err := m.store.DeleteFlowState(state.UserID); err != nil {
		return "", err
	}

	profile, err := m.store.GetProfile(state.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to load profile after food log: %w", err)
	}
	if profile == nil {
		return "", models.ErrProfileNotFound
	}
	consumed, err := m.store.SumFoodCalories(state.UserID, models.DayRangeFor(now))
	if err != nil {
		return "", err
	}

	slog.Debug("Flow food logged", "userID", state.UserID, "name", entry.FoodName,
		"portionGrams", portion, "calories", entry.Calories)
	reply := fmt.Sprintf("Logged %s, %.0f g: %.0f kcal. 🍽\nToday: %.0f / %d kcal (%s).",
		entry.FoodName, portion, entry.Calories, consumed, profile.CalorieGoal,
		percentOf(consumed, float64(profile.CalorieGoal)))
	if consumed > float64(profile.CalorieGoal) {
		reply += fmt.Sprintf("\n⚠️ You're %.0f kcal over your daily target.", consumed-float64(profile.CalorieGoal))
	}
	return reply, nil
}
