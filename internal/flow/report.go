package flow

import (
	"fmt"
	"strings"

	"github.com/fitflow/fitflow/internal/models"
)

// progressBarSegments is the width of the textual progress bar.
const progressBarSegments = 5

// progressBar renders value against target as a fixed-width bar, capped
// at full when the target is exceeded.
func progressBar(value, target float64) string {
	filled := 0
	if target > 0 {
		filled = int(value / target * progressBarSegments)
		if filled > progressBarSegments {
			filled = progressBarSegments
		}
		if filled < 0 {
			filled = 0
		}
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", progressBarSegments-filled) + "]"
}

// percentOf formats value as a whole percentage of target.
func percentOf(value, target float64) string {
	if target <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", value/target*100)
}

// formatDailyReport renders the /check_progress reply.
func formatDailyReport(p models.DailyProgress) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Progress for %s\n\n", p.Date.Format("Mon, 2 Jan"))
	fmt.Fprintf(&b, "💧 Water: %s %d / %d ml (%s)\n",
		progressBar(float64(p.WaterConsumedMl), float64(p.WaterTargetMl)),
		p.WaterConsumedMl, p.WaterTargetMl,
		percentOf(float64(p.WaterConsumedMl), float64(p.WaterTargetMl)))
	fmt.Fprintf(&b, "🍽 Calories: %s %.0f / %d kcal (%s)\n",
		progressBar(p.CaloriesConsumed, float64(p.CaloriesTarget)),
		p.CaloriesConsumed, p.CaloriesTarget,
		percentOf(p.CaloriesConsumed, float64(p.CaloriesTarget)))
	fmt.Fprintf(&b, "🔥 Burned: %d kcal over %d workout(s)\n", p.CaloriesBurned, p.WorkoutCount)
	if p.CaloriesRemaining < 0 {
		fmt.Fprintf(&b, "⚠️ You're %.0f kcal over your daily target.", -p.CaloriesRemaining)
	} else {
		fmt.Fprintf(&b, "You have %.0f kcal left for today.", p.CaloriesRemaining)
	}
	return b.String()
}

// formatProfile renders the /profile reply.
func formatProfile(p *models.UserProfile) string {
	return fmt.Sprintf("Your profile:\n"+
		"Weight: %.1f kg\nHeight: %.0f cm\nAge: %d\nActivity level: %d\nCity: %s\n\n"+
		"Daily calorie goal: %d kcal\nDaily water goal: %d ml",
		p.WeightKg, p.HeightCm, p.AgeYears, p.ActivityLevel, p.City,
		p.CalorieGoal, p.WaterGoalMl)
}
