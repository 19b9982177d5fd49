// Package validation provides stateless input checks for profile fields
// and log entries. Each function parses raw user text, applies the range
// or membership rule for its field, and returns a typed value or a
// models.ValidationError carrying a user-facing message. Validation errors
// never escape the current dialog state; the session manager re-prompts.
package validation

import (
	"strconv"
	"strings"

	"github.com/fitflow/fitflow/internal/models"
)

// Weight parses and validates a body weight in kilograms.
func Weight(input string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || !(w > models.MinWeightKg && w < models.MaxWeightKg) {
		return 0, models.NewValidationError(
			"Please enter a valid weight between %v and %v kg, e.g. 70", models.MinWeightKg, models.MaxWeightKg)
	}
	return w, nil
}

// Height parses and validates a height in centimeters.
func Height(input string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || !(h > models.MinHeightCm && h < models.MaxHeightCm) {
		return 0, models.NewValidationError(
			"Please enter a valid height between %v and %v cm, e.g. 175", models.MinHeightCm, models.MaxHeightCm)
	}
	return h, nil
}

// Age parses and validates an age in years.
func Age(input string) (int, error) {
	a, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || !(a > models.MinAgeYears && a < models.MaxAgeYears) {
		return 0, models.NewValidationError(
			"Please enter a valid age between %d and %d years", models.MinAgeYears, models.MaxAgeYears)
	}
	return a, nil
}

// ActivityLevel parses and validates the 1-4 activity level selector.
func ActivityLevel(input string) (int, error) {
	l, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || l < models.MinActivityLevel || l > models.MaxActivityLevel {
		return 0, models.NewValidationError(
			"Please choose an activity level from %d to %d", models.MinActivityLevel, models.MaxActivityLevel)
	}
	return l, nil
}

// City validates the free-text city name used for the temperature lookup.
func City(input string) (string, error) {
	city := strings.TrimSpace(input)
	if city == "" {
		return "", models.NewValidationError("Please enter your city name, e.g. London")
	}
	return city, nil
}

// WaterAmount parses and validates a water amount in milliliters.
func WaterAmount(input string) (int, error) {
	amount, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, models.NewValidationError("Please enter a number, e.g. 250")
	}
	if amount < models.MinWaterAmountMl || amount > models.MaxWaterAmountMl {
		return 0, models.NewValidationError(
			"Water amount must be between %d and %d ml", models.MinWaterAmountMl, models.MaxWaterAmountMl)
	}
	return amount, nil
}

// Portion parses and validates a food portion in grams.
func Portion(input string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, models.NewValidationError("Please enter a number, e.g. 100")
	}
	if p < models.MinPortionGrams || p > models.MaxPortionGrams {
		return 0, models.NewValidationError(
			"Portion size must be between %d and %d grams", models.MinPortionGrams, models.MaxPortionGrams)
	}
	return p, nil
}

// Duration parses and validates a workout duration in minutes.
func Duration(input string) (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, models.NewValidationError("Please enter a whole number of minutes, e.g. 30")
	}
	if d < models.MinDurationMin || d > models.MaxDurationMin {
		return 0, models.NewValidationError(
			"Duration must be between %d and %d minutes", models.MinDurationMin, models.MaxDurationMin)
	}
	return d, nil
}

// WorkoutSelection resolves a numeric menu selection to a workout type.
func WorkoutSelection(input string) (models.WorkoutType, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(models.WorkoutTypes) {
		return "", models.NewValidationError(
			"Please choose a workout type from the list (1-%d)", len(models.WorkoutTypes))
	}
	return models.WorkoutTypes[n-1], nil
}

// IntensitySelection resolves a numeric menu selection to an intensity.
func IntensitySelection(input string) (models.Intensity, error) {
	switch strings.TrimSpace(input) {
	case "1":
		return models.IntensityLow, nil
	case "2":
		return models.IntensityMedium, nil
	case "3":
		return models.IntensityHigh, nil
	default:
		return "", models.NewValidationError("Please choose an intensity (1-3)")
	}
}
