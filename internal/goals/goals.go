// Package goals provides pure goal-calculation functions.
//
// All functions are deterministic and perform no I/O, so they are directly
// unit-testable. Calorie goals follow the Mifflin-St Jeor equation; water
// goals scale with body weight, activity and ambient temperature.
package goals

import (
	"math"

	"github.com/fitflow/fitflow/internal/models"
)

// ActivityMultipliers maps the 1-4 activity level enum to the daily
// calorie multiplier applied on top of the basal metabolic rate.
var ActivityMultipliers = map[int]float64{
	1: 1.2,   // sedentary
	2: 1.375, // moderate activity
	3: 1.55,  // high activity
	4: 1.725, // very high activity
}

// Sex values accepted by CalorieGoal.
const (
	SexMale   = "M"
	SexFemale = "F"
)

// HotWeatherThresholdC is the ambient temperature above which the water
// goal gains an extra allowance.
const HotWeatherThresholdC = 25.0

// hotWeatherExtraMl is added to the water goal in hot weather.
const hotWeatherExtraMl = 500.0

// CalorieGoal computes the daily calorie target from physiological inputs.
// BMR is computed with the Mifflin-St Jeor equation and scaled by the
// activity multiplier; the result is rounded to the nearest integer.
func CalorieGoal(weightKg, heightCm float64, ageYears, activityLevel int, sex string) int {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == SexFemale {
		bmr -= 161
	} else {
		bmr += 5
	}
	return int(math.Round(bmr * ActivityMultipliers[activityLevel]))
}

// WaterGoal computes the daily water target in milliliters. The base norm
// is 30 ml per kg of body weight, plus 250 ml per activity level above the
// first, plus a hot-weather allowance when the ambient temperature exceeds
// HotWeatherThresholdC.
func WaterGoal(weightKg float64, activityLevel int, ambientTempC float64) int {
	total := weightKg*30 + float64(activityLevel-1)*250
	if ambientTempC > HotWeatherThresholdC {
		total += hotWeatherExtraMl
	}
	return int(math.Round(total))
}

// burnRates maps workout type and intensity to calories burned per minute.
var burnRates = map[models.WorkoutType]map[models.Intensity]int{
	models.WorkoutRunning:  {models.IntensityLow: 8, models.IntensityMedium: 10, models.IntensityHigh: 12},
	models.WorkoutWalking:  {models.IntensityLow: 3, models.IntensityMedium: 4, models.IntensityHigh: 5},
	models.WorkoutCycling:  {models.IntensityLow: 5, models.IntensityMedium: 7, models.IntensityHigh: 9},
	models.WorkoutSwimming: {models.IntensityLow: 6, models.IntensityMedium: 8, models.IntensityHigh: 10},
	models.WorkoutStrength: {models.IntensityLow: 4, models.IntensityMedium: 6, models.IntensityHigh: 8},
	models.WorkoutYoga:     {models.IntensityLow: 2, models.IntensityMedium: 3, models.IntensityHigh: 4},
	models.WorkoutOther:    {models.IntensityLow: 4, models.IntensityMedium: 5, models.IntensityHigh: 6},
}

// CaloriesBurned computes calories burned for a workout as the per-minute
// burn rate for the type/intensity pair times the duration. An unknown
// workout type burns at the "Other" rate; an unknown intensity burns at
// the low rate.
func CaloriesBurned(wt models.WorkoutType, intensity models.Intensity, durationMin int) int {
	if !models.IsValidWorkoutType(wt) {
		wt = models.WorkoutOther
	}
	if !models.IsValidIntensity(intensity) {
		intensity = models.IntensityLow
	}
	return burnRates[wt][intensity] * durationMin
}
