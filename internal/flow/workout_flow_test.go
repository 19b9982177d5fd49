package flow

import (
	"strings"
	"testing"

	"github.com/fitflow/fitflow/internal/models"
)

func TestWorkoutFlowLogsEntry(t *testing.T) {
	m, st, _, _ := newTestManager(t)
	setupProfile(t, m, 1)

	menu := turn(t, m, 1, CommandLogWorkout)
	for i, wt := range models.WorkoutTypes {
		if !strings.Contains(menu, string(wt)) {
			t.Errorf("menu %q missing option %d (%s)", menu, i+1, wt)
		}
	}

	if got := turn(t, m, 1, "1"); got != promptWorkoutDuration {
		t.Errorf("after type = %q, want %q", got, promptWorkoutDuration)
	}
	if got := turn(t, m, 1, "30"); got != promptWorkoutIntensity {
		t.Errorf("after duration = %q, want %q", got, promptWorkoutIntensity)
	}
	final := turn(t, m, 1, "2")
	// Running at medium intensity burns 10 kcal/min.
	if !strings.Contains(final, "300 kcal") {
		t.Errorf("final reply %q missing burned calories", final)
	}

	_, _, workouts := dayWrites(t, st, 1)
	if workouts != 1 {
		t.Errorf("workout count = %d, want 1", workouts)
	}
	assertNoSession(t, st, 1)
}

func TestWorkoutFlowSelectionRetries(t *testing.T) {
	m, st, _, _ := newTestManager(t)
	setupProfile(t, m, 1)
	turn(t, m, 1, CommandLogWorkout)

	cases := []struct {
		name  string
		input string
	}{
		{"zero", "0"},
		{"past catalogue", "8"},
		{"text", "running"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := turn(t, m, 1, c.input)
			if !strings.Contains(got, "workout type") {
				t.Errorf("reply = %q, want a selection retry message", got)
			}
			state, err := st.GetFlowState(1)
			if err != nil {
				t.Fatalf("GetFlowState() error = %v", err)
			}
			if state == nil || state.CurrentState != models.StateAwaitingType {
				t.Errorf("state = %+v, want still %s", state, models.StateAwaitingType)
			}
		})
	}
}

func TestWorkoutFlowDurationBounds(t *testing.T) {
	m, st, _, _ := newTestManager(t)
	setupProfile(t, m, 1)
	turn(t, m, 1, CommandLogWorkout)
	turn(t, m, 1, "6") // yoga

	if got := turn(t, m, 1, "400"); !strings.Contains(got, "Duration") {
		t.Errorf("reply = %q, want a duration retry message", got)
	}
	turn(t, m, 1, "60")
	final := turn(t, m, 1, "1")
	// Yoga at low intensity burns 2 kcal/min.
	if !strings.Contains(final, "120 kcal") {
		t.Errorf("final reply %q missing burned calories", final)
	}
	_, _, workouts := dayWrites(t, st, 1)
	if workouts != 1 {
		t.Errorf("workout count = %d, want 1", workouts)
	}
}
