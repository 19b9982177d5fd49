package flow

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fitflow/fitflow/internal/models"
)

// Supported commands.
const (
	CommandStart         = "/start"
	CommandHelp          = "/help"
	CommandSetProfile    = "/set_profile"
	CommandLogWater      = "/log_water"
	CommandLogFood       = "/log_food"
	CommandLogWorkout    = "/log_workout"
	CommandCheckProgress = "/check_progress"
	CommandProfile       = "/profile"
	CommandCancel        = "/cancel"
)

const (
	msgGreeting = "Hi! I'm FitFlow, your personal health assistant. 💪\n" +
		"I track your water, meals and workouts against daily goals.\n" +
		"Start with " + CommandSetProfile + " to set up your profile, or send " + CommandHelp + " for all commands."
	msgHelp = "Here's what I can do:\n" +
		CommandSetProfile + " - set up or update your profile\n" +
		CommandLogWater + " - log water intake\n" +
		CommandLogFood + " - log a meal\n" +
		CommandLogWorkout + " - log a workout\n" +
		CommandCheckProgress + " - show today's progress\n" +
		CommandProfile + " - show your profile and goals\n" +
		CommandCancel + " - cancel the current operation"
	msgCancelled       = "Cancelled. Send " + CommandHelp + " to see what I can do."
	msgNothingToCancel = "Nothing to cancel right now."
	msgUnknownCommand  = "I don't know that command. Send " + CommandHelp + " for the list."
	msgNoSessionHint   = "I didn't catch that. Send " + CommandHelp + " to see what I can do."
	msgProfileRequired = "You don't have a profile yet. Send " + CommandSetProfile + " to create one first."
	msgTryAgainLater   = "Something went wrong on our side. Please try again later."
)

// HandleTurn processes one inbound turn for a user and returns the reply.
// This is the entire surface the transports call into.
//
// A command turn always cancels the active dialog before being handled;
// flow-starting commands then open a fresh session. A plain-text turn is
// fed to the active dialog's current state, or answered with a hint when
// no dialog is active. Validation failures re-prompt the same state; any
// other failure destroys the session and yields a generic retry message.
func (m *Manager) HandleTurn(ctx context.Context, userID int64, text string) (string, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	input := strings.TrimSpace(text)
	slog.Debug("Flow HandleTurn", "userID", userID)

	state, err := m.store.GetFlowState(userID)
	if err != nil {
		slog.Error("Flow HandleTurn state lookup failed", "error", err, "userID", userID)
		return "", err
	}
	if state != nil && !models.IsValidFlowType(state.FlowType) {
		// Stored session from another build. Drop it rather than feed it
		// to a dialog that cannot advance it.
		slog.Error("Flow HandleTurn dropping session with unknown flow type", "userID", userID, "flowType", state.FlowType)
		if err := m.store.DeleteFlowState(userID); err != nil {
			slog.Error("Flow HandleTurn session cleanup failed", "error", err, "userID", userID)
			return "", err
		}
		state = nil
	}

	if strings.HasPrefix(input, CommandPrefix) {
		if state != nil {
			if err := m.store.DeleteFlowState(userID); err != nil {
				slog.Error("Flow HandleTurn cancel failed", "error", err, "userID", userID)
				return "", err
			}
			slog.Debug("Flow HandleTurn cancelled active dialog", "userID", userID, "flowType", state.FlowType)
		}
		return m.handleCommand(ctx, userID, input, state != nil)
	}

	if state == nil {
		return msgNoSessionHint, nil
	}
	return m.advance(ctx, state, input)
}

// handleCommand routes a command turn. hadSession reports whether an
// active dialog was cancelled to get here.
func (m *Manager) handleCommand(ctx context.Context, userID int64, input string, hadSession bool) (string, error) {
	cmd := strings.ToLower(strings.Fields(input)[0])
	slog.Debug("Flow handleCommand", "userID", userID, "command", cmd)

	switch cmd {
	case CommandStart:
		return msgGreeting, nil
	case CommandHelp:
		return msgHelp, nil
	case CommandSetProfile:
		return m.startProfileFlow(userID)
	case CommandLogWater:
		return m.startWaterFlow(userID)
	case CommandLogFood:
		return m.startFoodFlow(userID)
	case CommandLogWorkout:
		return m.startWorkoutFlow(userID)
	case CommandCheckProgress:
		return m.dailyReport(userID)
	case CommandProfile:
		return m.profileSummary(userID)
	case CommandCancel:
		if hadSession {
			return msgCancelled, nil
		}
		return msgNothingToCancel, nil
	default:
		if hadSession {
			return msgCancelled + "\n" + msgUnknownCommand, nil
		}
		return msgUnknownCommand, nil
	}
}

// advance feeds a plain-text turn to the active dialog's current state.
func (m *Manager) advance(ctx context.Context, state *models.FlowState, input string) (string, error) {
	var reply string
	var err error
	switch state.FlowType {
	case models.FlowTypeProfileSetup:
		reply, err = m.handleProfileTurn(ctx, state, input)
	case models.FlowTypeLogWater:
		reply, err = m.handleWaterTurn(state, input)
	case models.FlowTypeLogFood:
		reply, err = m.handleFoodTurn(ctx, state, input)
	case models.FlowTypeLogWorkout:
		reply, err = m.handleWorkoutTurn(state, input)
	default:
		err = models.ErrNoActiveSession
	}
	if err == nil {
		return reply, nil
	}

	var ve *models.ValidationError
	if errors.As(err, &ve) {
		// Recoverable: re-prompt the same state, nothing advanced.
		slog.Debug("Flow advance validation retry", "userID", state.UserID, "flowType", state.FlowType, "state", state.CurrentState)
		return ve.Message, nil
	}

	slog.Error("Flow advance failed", "error", err, "userID", state.UserID, "flowType", state.FlowType, "state", state.CurrentState)
	if delErr := m.store.DeleteFlowState(state.UserID); delErr != nil {
		slog.Error("Flow advance session cleanup failed", "error", delErr, "userID", state.UserID)
	}
	return msgTryAgainLater, nil
}

// dailyReport builds the /check_progress reply for today.
func (m *Manager) dailyReport(userID int64) (string, error) {
	snapshot, err := m.progress.Daily(userID, m.now())
	if errors.Is(err, models.ErrProfileNotFound) {
		return msgProfileRequired, nil
	}
	if err != nil {
		slog.Error("Flow dailyReport failed", "error", err, "userID", userID)
		return msgTryAgainLater, nil
	}
	return formatDailyReport(snapshot), nil
}

// profileSummary builds the /profile reply.
func (m *Manager) profileSummary(userID int64) (string, error) {
	profile, err := m.store.GetProfile(userID)
	if err != nil {
		slog.Error("Flow profileSummary failed", "error", err, "userID", userID)
		return msgTryAgainLater, nil
	}
	if profile == nil {
		return msgProfileRequired, nil
	}
	return formatProfile(profile), nil
}

// requireProfile checks that the user has a profile before a log flow
// starts. It returns a non-empty reply when the flow must not begin.
func (m *Manager) requireProfile(userID int64) (string, error) {
	profile, err := m.store.GetProfile(userID)
	if err != nil {
		slog.Error("Flow requireProfile lookup failed", "error", err, "userID", userID)
		return msgTryAgainLater, nil
	}
	if profile == nil {
		return msgProfileRequired, nil
	}
	return "", nil
}
