// Package progress implements the daily aggregation engine.
//
// It projects the append-only water/food/workout logs into goal-relative
// daily snapshots. The engine never mutates logs: calling it any number of
// times over an unchanged log set yields identical snapshots.
package progress

import (
	"log/slog"
	"time"

	"github.com/fitflow/fitflow/internal/models"
	"github.com/fitflow/fitflow/internal/store"
)

// WeekDays is the size of the weekly report window.
const WeekDays = 7

// Service computes goal-relative progress snapshots from the store.
type Service struct {
	store store.Store
}

// NewService creates a progress service backed by the given store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Daily computes the progress snapshot for the calendar day containing t.
// It fails with models.ErrProfileNotFound when the user has no profile;
// goals are never defaulted.
func (s *Service) Daily(userID int64, t time.Time) (models.DailyProgress, error) {
	profile, err := s.store.GetProfile(userID)
	if err != nil {
		slog.Error("Progress Daily profile lookup failed", "error", err, "userID", userID)
		return models.DailyProgress{}, err
	}
	if profile == nil {
		slog.Debug("Progress Daily profile not found", "userID", userID)
		return models.DailyProgress{}, models.ErrProfileNotFound
	}

	r := models.DayRangeFor(t)

	water, err := s.store.SumWater(userID, r)
	if err != nil {
		return models.DailyProgress{}, err
	}
	consumed, err := s.store.SumFoodCalories(userID, r)
	if err != nil {
		return models.DailyProgress{}, err
	}
	burned, err := s.store.SumWorkoutCalories(userID, r)
	if err != nil {
		return models.DailyProgress{}, err
	}
	count, err := s.store.CountWorkouts(userID, r)
	if err != nil {
		return models.DailyProgress{}, err
	}

	snapshot := models.DailyProgress{
		Date:              r.Start,
		WaterConsumedMl:   water,
		WaterTargetMl:     profile.WaterGoalMl,
		CaloriesConsumed:  consumed,
		CaloriesTarget:    profile.CalorieGoal,
		CaloriesBurned:    burned,
		CaloriesRemaining: float64(profile.CalorieGoal) - consumed + float64(burned),
		WorkoutCount:      count,
	}
	slog.Debug("Progress Daily computed", "userID", userID, "date", r.Start.Format("2006-01-02"),
		"water", water, "consumed", consumed, "burned", burned, "workouts", count)
	return snapshot, nil
}

// Weekly computes the snapshots for the WeekDays calendar days ending with
// (and including) the day containing end, oldest first.
func (s *Service) Weekly(userID int64, end time.Time) ([]models.DailyProgress, error) {
	snapshots := make([]models.DailyProgress, 0, WeekDays)
	for i := WeekDays - 1; i >= 0; i-- {
		snapshot, err := s.Daily(userID, end.AddDate(0, 0, -i))
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}
