package validation

import (
	"testing"

	"github.com/fitflow/fitflow/internal/models"
)

func TestWeight(t *testing.T) {
	cases := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"70", 70, true},
		{"70.5", 70.5, true},
		{" 85 ", 85, true},
		{"30", 0, false},  // lower bound is exclusive
		{"300", 0, false}, // upper bound is exclusive
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := Weight(c.input)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("Weight(%q) = %v, %v; want %v, nil", c.input, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Errorf("Weight(%q) accepted, want validation error", c.input)
		}
	}
}

func TestHeightAndAgeBounds(t *testing.T) {
	if _, err := Height("100"); err == nil {
		t.Error("Height(100) accepted, bound is exclusive")
	}
	if h, err := Height("175"); err != nil || h != 175 {
		t.Errorf("Height(175) = %v, %v", h, err)
	}
	if _, err := Age("14"); err == nil {
		t.Error("Age(14) accepted, bound is exclusive")
	}
	if _, err := Age("100"); err == nil {
		t.Error("Age(100) accepted, bound is exclusive")
	}
	if a, err := Age("30"); err != nil || a != 30 {
		t.Errorf("Age(30) = %v, %v", a, err)
	}
}

func TestActivityLevel(t *testing.T) {
	for _, input := range []string{"1", "2", "3", "4"} {
		if _, err := ActivityLevel(input); err != nil {
			t.Errorf("ActivityLevel(%q) rejected: %v", input, err)
		}
	}
	for _, input := range []string{"0", "5", "x", ""} {
		if _, err := ActivityLevel(input); err == nil {
			t.Errorf("ActivityLevel(%q) accepted", input)
		}
	}
}

func TestWaterAmount(t *testing.T) {
	if got, err := WaterAmount("250"); err != nil || got != 250 {
		t.Errorf("WaterAmount(250) = %v, %v", got, err)
	}
	for _, input := range []string{"49", "3001", "two hundred"} {
		if _, err := WaterAmount(input); err == nil {
			t.Errorf("WaterAmount(%q) accepted", input)
		}
	}
	// Bounds are inclusive.
	if _, err := WaterAmount("50"); err != nil {
		t.Errorf("WaterAmount(50) rejected: %v", err)
	}
	if _, err := WaterAmount("3000"); err != nil {
		t.Errorf("WaterAmount(3000) rejected: %v", err)
	}
}

func TestPortionRejectsOversize(t *testing.T) {
	if _, err := Portion("2500"); err == nil {
		t.Error("Portion(2500) accepted, exceeds 2000 g upper bound")
	}
	if !models.IsValidationError(mustErr(t, Portion, "2500")) {
		t.Error("Portion error is not a ValidationError")
	}
	if p, err := Portion("150"); err != nil || p != 150 {
		t.Errorf("Portion(150) = %v, %v", p, err)
	}
}

func TestWorkoutSelection(t *testing.T) {
	wt, err := WorkoutSelection("1")
	if err != nil || wt != models.WorkoutRunning {
		t.Errorf("WorkoutSelection(1) = %v, %v; want Running", wt, err)
	}
	wt, err = WorkoutSelection("7")
	if err != nil || wt != models.WorkoutOther {
		t.Errorf("WorkoutSelection(7) = %v, %v; want Other", wt, err)
	}
	for _, input := range []string{"0", "8", "Running"} {
		if _, err := WorkoutSelection(input); err == nil {
			t.Errorf("WorkoutSelection(%q) accepted", input)
		}
	}
}

func TestIntensitySelection(t *testing.T) {
	cases := map[string]models.Intensity{"1": models.IntensityLow, "2": models.IntensityMedium, "3": models.IntensityHigh}
	for input, want := range cases {
		got, err := IntensitySelection(input)
		if err != nil || got != want {
			t.Errorf("IntensitySelection(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := IntensitySelection("4"); err == nil {
		t.Error("IntensitySelection(4) accepted")
	}
}

func mustErr[T any](t *testing.T, fn func(string) (T, error), input string) error {
	t.Helper()
	_, err := fn(input)
	if err == nil {
		t.Fatalf("expected error for input %q", input)
	}
	return err
}
