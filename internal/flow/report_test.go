package flow

import (
	"strings"
	"testing"
	"time"

	"github.com/fitflow/fitflow/internal/models"
)

func TestProgressBar(t *testing.T) {
	cases := []struct {
		name   string
		value  float64
		target float64
		want   string
	}{
		{"empty", 0, 2000, "[░░░░░]"},
		{"partial", 1000, 2000, "[██░░░]"},
		{"full", 2000, 2000, "[█████]"},
		{"over target caps at full", 3000, 2000, "[█████]"},
		{"zero target", 500, 0, "[░░░░░]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := progressBar(c.value, c.target); got != c.want {
				t.Errorf("progressBar(%v, %v) = %q, want %q", c.value, c.target, got, c.want)
			}
		})
	}
}

func TestFormatDailyReportOverBudget(t *testing.T) {
	p := models.DailyProgress{
		Date:              time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local),
		WaterConsumedMl:   1000,
		WaterTargetMl:     2350,
		CaloriesConsumed:  2500,
		CaloriesTarget:    2000,
		CaloriesRemaining: -500,
	}
	got := formatDailyReport(p)
	if !strings.Contains(got, "500 kcal over") {
		t.Errorf("report %q missing over-budget warning", got)
	}
}

func TestFormatDailyReportRemaining(t *testing.T) {
	p := models.DailyProgress{
		Date:              time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local),
		WaterConsumedMl:   1050,
		WaterTargetMl:     2350,
		CaloriesConsumed:  700,
		CaloriesTarget:    2000,
		CaloriesBurned:    300,
		CaloriesRemaining: 1600,
		WorkoutCount:      1,
	}
	got := formatDailyReport(p)
	for _, want := range []string{"1050 / 2350", "700 / 2000", "1600 kcal left", "1 workout"} {
		if !strings.Contains(got, want) {
			t.Errorf("report %q missing %q", got, want)
		}
	}
}
