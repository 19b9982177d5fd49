// Package models defines the core data structures for FitFlow.
//
// It includes the user profile, the append-only water/food/workout log
// entries, and the derived daily progress snapshot shared across modules.
package models

import "time"

// Validation range constants for profile and log inputs. All numeric
// profile ranges are open intervals; log ranges are closed.
const (
	// MinWeightKg and MaxWeightKg bound the accepted body weight (exclusive).
	MinWeightKg = 30.0
	MaxWeightKg = 300.0
	// MinHeightCm and MaxHeightCm bound the accepted height (exclusive).
	MinHeightCm = 100.0
	MaxHeightCm = 250.0
	// MinAgeYears and MaxAgeYears bound the accepted age (exclusive).
	MinAgeYears = 14
	MaxAgeYears = 100
	// MinActivityLevel and MaxActivityLevel bound the activity enum (inclusive).
	MinActivityLevel = 1
	MaxActivityLevel = 4
	// MinWaterAmountMl and MaxWaterAmountMl bound a single water log entry.
	MinWaterAmountMl = 50
	MaxWaterAmountMl = 3000
	// MinPortionGrams and MaxPortionGrams bound a single food portion.
	MinPortionGrams = 1
	MaxPortionGrams = 2000
	// MinDurationMin and MaxDurationMin bound a single workout duration.
	MinDurationMin = 1
	MaxDurationMin = 300
)

// Intensity represents the perceived intensity of a workout.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// IsValidIntensity checks if the given intensity is one of the supported levels.
func IsValidIntensity(i Intensity) bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	default:
		return false
	}
}

// WorkoutType identifies one of the fixed workout categories.
type WorkoutType string

const (
	WorkoutRunning  WorkoutType = "Running"
	WorkoutWalking  WorkoutType = "Walking"
	WorkoutCycling  WorkoutType = "Cycling"
	WorkoutSwimming WorkoutType = "Swimming"
	WorkoutStrength WorkoutType = "Strength training"
	WorkoutYoga     WorkoutType = "Yoga"
	WorkoutOther    WorkoutType = "Other"
)

// WorkoutTypes lists the supported workout categories in menu order.
// Users select a workout by its 1-based position in this slice.
var WorkoutTypes = []WorkoutType{
	WorkoutRunning,
	WorkoutWalking,
	WorkoutCycling,
	WorkoutSwimming,
	WorkoutStrength,
	WorkoutYoga,
	WorkoutOther,
}

// IsValidWorkoutType checks if the given workout type is part of the catalogue.
func IsValidWorkoutType(wt WorkoutType) bool {
	for _, t := range WorkoutTypes {
		if t == wt {
			return true
		}
	}
	return false
}

// UserProfile holds physiological inputs and the goals derived from them.
// Goals are cached at profile-setup time; the ambient temperature used for
// the water goal is looked up once, for the configured city.
type UserProfile struct {
	UserID        int64     `json:"user_id"`
	WeightKg      float64   `json:"weight_kg"`
	HeightCm      float64   `json:"height_cm"`
	AgeYears      int       `json:"age_years"`
	ActivityLevel int       `json:"activity_level"`
	City          string    `json:"city"`
	CalorieGoal   int       `json:"calorie_goal"`
	WaterGoalMl   int       `json:"water_goal_ml"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WaterLogEntry is an immutable record of consumed water.
type WaterLogEntry struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	AmountMl  int       `json:"amount_ml"`
	Timestamp time.Time `json:"timestamp"`
}

// FoodLogEntry is an immutable record of a consumed food portion.
// Calories are derived from the matched product's kcal/100g at log time.
type FoodLogEntry struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"user_id"`
	FoodName     string    `json:"food_name"`
	PortionGrams float64   `json:"portion_grams"`
	Calories     float64   `json:"calories"`
	Proteins     float64   `json:"proteins,omitempty"`
	Fats         float64   `json:"fats,omitempty"`
	Carbs        float64   `json:"carbs,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// WorkoutLogEntry is an immutable record of a completed workout.
type WorkoutLogEntry struct {
	ID             string      `json:"id"`
	UserID         int64       `json:"user_id"`
	WorkoutType    WorkoutType `json:"workout_type"`
	DurationMin    int         `json:"duration_min"`
	Intensity      Intensity   `json:"intensity"`
	CaloriesBurned int         `json:"calories_burned"`
	Timestamp      time.Time   `json:"timestamp"`
}

// FoodItem is a food-search result normalized to per-100g figures.
type FoodItem struct {
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	Proteins        float64 `json:"proteins"`
	Fats            float64 `json:"fats"`
	Carbs           float64 `json:"carbs"`
}

// DailyProgress is the derived, read-side snapshot of one user's day.
// It is recomputed on demand and never stored.
type DailyProgress struct {
	Date              time.Time `json:"date"`
	WaterConsumedMl   int       `json:"water_consumed_ml"`
	WaterTargetMl     int       `json:"water_target_ml"`
	CaloriesConsumed  float64   `json:"calories_consumed"`
	CaloriesTarget    int       `json:"calories_target"`
	CaloriesBurned    int       `json:"calories_burned"`
	CaloriesRemaining float64   `json:"calories_remaining"`
	WorkoutCount      int       `json:"workout_count"`
}

// DayRange is a half-open [Start, End) time interval covering one calendar day.
type DayRange struct {
	Start time.Time
	End   time.Time
}

// DayRangeFor returns the [00:00, 24:00) interval of t's calendar day in
// t's location.
func DayRangeFor(t time.Time) DayRange {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return DayRange{Start: start, End: start.AddDate(0, 0, 1)}
}

// InboundMessage represents a single user turn delivered by a transport.
type InboundMessage struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
	Time   int64  `json:"time"`
}
