// Package testutil provides common test utilities and helpers for FitFlow tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/fitflow/fitflow/internal/models"
	"github.com/fitflow/fitflow/internal/store"
)

// SeedProfile inserts a profile with fixed physiology and the given goals.
// This centralizes the profile fixture used across multiple test files.
func SeedProfile(t *testing.T, st store.Store, userID int64, calorieGoal, waterGoalMl int) models.UserProfile {
	t.Helper()
	now := time.Now()
	p := models.UserProfile{
		UserID:        userID,
		WeightKg:      70,
		HeightCm:      175,
		AgeYears:      30,
		ActivityLevel: 2,
		City:          "Lisbon",
		CalorieGoal:   calorieGoal,
		WaterGoalMl:   waterGoalMl,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := st.UpsertProfile(p); err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return p
}

// SeedWater appends one water log entry per amount, spaced an hour apart
// starting an hour after base.
func SeedWater(t *testing.T, st store.Store, userID int64, base time.Time, amounts ...int) {
	t.Helper()
	for i, amount := range amounts {
		entry := models.WaterLogEntry{
			ID:        fmt.Sprintf("water-%d-%d", userID, i),
			UserID:    userID,
			AmountMl:  amount,
			Timestamp: base.Add(time.Duration(i+1) * time.Hour),
		}
		if err := st.AddWaterLog(entry); err != nil {
			t.Fatalf("failed to seed water log: %v", err)
		}
	}
}
