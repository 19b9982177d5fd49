package flow

import (
	"fmt"
	"log/slog"

	"github.com/fitflow/fitflow/internal/models"
	"github.com/fitflow/fitflow/internal/validation"
)

const promptWaterAmount = "How much water did you drink, in ml? 💧"

func (m *Manager) startWaterFlow(userID int64) (string, error) {
	if reply, err := m.requireProfile(userID); reply != "" || err != nil {
		return reply, err
	}
	return m.beginFlow(userID, models.FlowTypeLogWater, models.StateAwaitingAmount, promptWaterAmount)
}

// handleWaterTurn drives the single-state water log dialog.
func (m *Manager) handleWaterTurn(state *models.FlowState, input string) (string, error) {
	if state.CurrentState != models.StateAwaitingAmount {
		return "", fmt.Errorf("unsupported water log state '%s'", state.CurrentState)
	}

	amount, err := validation.WaterAmount(input)
	if err != nil {
		return "", err
	}

	now := m.now()
	entry := models.WaterLogEntry{
		ID:        m.newID(),
		UserID:    state.UserID,
		AmountMl:  amount,
		Timestamp: now,
	}
	if err := m.store.AddWaterLog(entry); err != nil {
		return "", err
	}
	if err := m.store.DeleteFlowState(state.UserID); err != nil {
		return "", err
	}

	profile, err := m.store.GetProfile(state.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to load profile after water log: %w", err)
	}
	if profile == nil {
		return "", models.ErrProfileNotFound
	}
	consumed, err := m.store.SumWater(state.UserID, models.DayRangeFor(now))
	if err != nil {
		return "", err
	}

	slog.Debug("Flow water logged", "userID", state.UserID, "amountMl", amount, "todayMl", consumed)
	remaining := profile.WaterGoalMl - consumed
	if remaining <= 0 {
		return fmt.Sprintf("Logged %d ml. 💧\nToday: %d / %d ml. Goal reached, nice work! 🎉",
			amount, consumed, profile.WaterGoalMl), nil
	}
	return fmt.Sprintf("Logged %d ml. 💧\nToday: %d / %d ml, %d ml to go.",
		amount, consumed, profile.WaterGoalMl, remaining), nil
}
