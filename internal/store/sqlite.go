// Package store provides storage backends for FitFlow.
//
// This file implements the SQLite-backed store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/fitflow/fitflow/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN is a file path to the SQLite database file; the containing
// directory is created if it does not exist.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running SQLite migrations")
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) GetProfile(userID int64) (*models.UserProfile, error) {
	query := `SELECT user_id, weight_kg, height_cm, age_years, activity_level, city, calorie_goal, water_goal_ml, created_at, updated_at
			  FROM profiles WHERE user_id = ?`
	var p models.UserProfile
	err := s.db.QueryRow(query, userID).Scan(
		&p.UserID, &p.WeightKg, &p.HeightCm, &p.AgeYears, &p.ActivityLevel,
		&p.City, &p.CalorieGoal, &p.WaterGoalMl, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		slog.Debug("SQLiteStore GetProfile not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetProfile failed", "error", err, "userID", userID)
		return nil, &models.StoreError{Op: "get profile", Err: err}
	}
	return &p, nil
}

func (s *SQLiteStore) UpsertProfile(p models.UserProfile) error {
	query := `
		INSERT INTO profiles (user_id, weight_kg, height_cm, age_years, activity_level, city, calorie_goal, water_goal_ml, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			weight_kg = excluded.weight_kg,
			height_cm = excluded.height_cm,
			age_years = excluded.age_years,
			activity_level = excluded.activity_level,
			city = excluded.city,
			calorie_goal = excluded.calorie_goal,
			water_goal_ml = excluded.water_goal_ml,
			updated_at = excluded.updated_at`
	_, err := s.db.Exec(query, p.UserID, p.WeightKg, p.HeightCm, p.AgeYears, p.ActivityLevel,
		p.City, p.CalorieGoal, p.WaterGoalMl, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		slog.Error("SQLiteStore UpsertProfile failed", "error", err, "userID", p.UserID)
		return &models.StoreError{Op: "upsert profile", Err: err}
	}
	slog.Debug("SQLiteStore UpsertProfile succeeded", "userID", p.UserID)
	return nil
}

func (s *SQLiteStore) AddWaterLog(e models.WaterLogEntry) error {
	_, err := s.db.Exec(`INSERT INTO water_logs (id, user_id, amount_ml, timestamp) VALUES (?, ?, ?, ?)`,
		e.ID, e.UserID, e.AmountMl, e.Timestamp)
	if err != nil {
		slog.Error("SQLiteStore AddWaterLog failed", "error", err, "userID", e.UserID)
		return &models.StoreError{Op: "add water log", Err: err}
	}
	slog.Debug("SQLiteStore AddWaterLog succeeded", "userID", e.UserID, "amount", e.AmountMl)
	return nil
}

func (s *SQLiteStore) SumWater(userID int64, r models.DayRange) (int, error) {
	var total int
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(amount_ml), 0) FROM water_logs WHERE user_id = ? AND timestamp >= ? AND timestamp < ?`,
		userID, r.Start, r.End).Scan(&total)
	if err != nil {
		slog.Error("SQLiteStore SumWater failed", "error", err, "userID", userID)
		return 0, &models.StoreError{Op: "sum water", Err: err}
	}
	return total, nil
}

func (s *SQLiteStore) AddFoodLog(e models.FoodLogEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO food_logs (id, user_id, food_name, portion_grams, calories, proteins, fats, carbs, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.FoodName, e.PortionGrams, e.Calories, e.Proteins, e.Fats, e.Carbs, e.Timestamp)
	if err != nil {
		slog.Error("SQLiteStore AddFoodLog failed", "error", err, "userID", e.UserID)
		return &models.StoreError{Op: "add food log", Err: err}
	}
	slog.Debug("SQLiteStore AddFoodLog succeeded", "userID", e.UserID, "food", e.FoodName)
	return nil
}

func (s *SQLiteStore) SumFoodCalories(userID int64, r models.DayRange) (float64, error) {
	var total float64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(calories), 0) FROM food_logs WHERE user_id = ? AND timestamp >= ? AND timestamp < ?`,
		userID, r.Start, r.End).Scan(&total)
	if err != nil {
		slog.Error("SQLiteStore SumFoodCalories failed", "error", err, "userID", userID)
		return 0, &models.StoreError{Op: "sum food calories", Err: err}
	}
	return total, nil
}

func (s *SQLiteStore) AddWorkoutLog(e models.WorkoutLogEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO workout_logs (id, user_id, workout_type, duration_min, intensity, calories_burned, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, string(e.WorkoutType), e.DurationMin, string(e.Intensity), e.CaloriesBurned, e.Timestamp)
	if err != nil {
		slog.Error("SQLiteStore AddWorkoutLog failed", "error", err, "userID", e.UserID)
		return &models.StoreError{Op: "add workout log", Err: err}
	}
	slog.Debug("SQLiteStore AddWorkoutLog succeeded", "userID", e.UserID, "type", e.WorkoutType)
	return nil
}

func (s *SQLiteStore) SumWorkoutCalories(userID int64, r models.DayRange) (int, error) {
	var total int
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(calories_burned), 0) FROM workout_logs WHERE user_id = ? AND timestamp >= ? AND timestamp < ?`,
		userID, r.Start, r.End).Scan(&total)
	if err != nil {
		slog.Error("SQLiteStore SumWorkoutCalories failed", "error", err, "userID", userID)
		return 0, &models.StoreError{Op: "sum workout calories", Err: err}
	}
	return total, nil
}

func (s *SQLiteStore) CountWorkouts(userID int64, r models.DayRange) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM workout_logs WHERE user_id = ? AND timestamp >= ? AND timestamp < ?`,
		userID, r.Start, r.End).Scan(&count)
	if err != nil {
		slog.Error("SQLiteStore CountWorkouts failed", "error", err, "userID", userID)
		return 0, &models.StoreError{Op: "count workouts", Err: err}
	}
	return count, nil
}

// SaveFlowState stores or updates the dialog state for a user.
func (s *SQLiteStore) SaveFlowState(state models.FlowState) error {
	query := `
		INSERT OR REPLACE INTO flow_states (user_id, flow_type, current_state, state_data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	var stateDataJSON string
	if len(state.StateData) > 0 {
		jsonBytes, err := json.Marshal(state.StateData)
		if err != nil {
			slog.Error("SQLiteStore SaveFlowState JSON marshal failed", "error", err, "userID", state.UserID)
			return &models.StoreError{Op: "save flow state", Err: err}
		}
		stateDataJSON = string(jsonBytes)
	}

	_, err := s.db.Exec(query, state.UserID, string(state.FlowType), string(state.CurrentState),
		stateDataJSON, state.CreatedAt, state.UpdatedAt)
	if err != nil {
		slog.Error("SQLiteStore SaveFlowState failed", "error", err, "userID", state.UserID, "flowType", state.FlowType)
		return &models.StoreError{Op: "save flow state", Err: err}
	}
	slog.Debug("SQLiteStore SaveFlowState succeeded", "userID", state.UserID, "flowType", state.FlowType, "state", state.CurrentState)
	return nil
}

// GetFlowState retrieves the dialog state for a user.
func (s *SQLiteStore) GetFlowState(userID int64) (*models.FlowState, error) {
	query := `SELECT user_id, flow_type, current_state, state_data, created_at, updated_at
			  FROM flow_states WHERE user_id = ?`

	var state models.FlowState
	var stateDataJSON sql.NullString

	err := s.db.QueryRow(query, userID).Scan(
		&state.UserID, &state.FlowType, &state.CurrentState,
		&stateDataJSON, &state.CreatedAt, &state.UpdatedAt)
	if err == sql.ErrNoRows {
		slog.Debug("SQLiteStore GetFlowState not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetFlowState failed", "error", err, "userID", userID)
		return nil, &models.StoreError{Op: "get flow state", Err: err}
	}

	if stateDataJSON.String != "" {
		state.StateData = make(map[models.DataKey]string)
		if err := json.Unmarshal([]byte(stateDataJSON.String), &state.StateData); err != nil {
			slog.Error("SQLiteStore GetFlowState JSON unmarshal failed", "error", err, "userID", userID)
			state.StateData = make(map[models.DataKey]string)
		}
	}

	return &state, nil
}

// DeleteFlowState removes the dialog state for a user.
func (s *SQLiteStore) DeleteFlowState(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM flow_states WHERE user_id = ?`, userID)
	if err != nil {
		slog.Error("SQLiteStore DeleteFlowState failed", "error", err, "userID", userID)
		return &models.StoreError{Op: "delete flow state", Err: err}
	}
	slog.Debug("SQLiteStore DeleteFlowState succeeded", "userID", userID)
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	return s.db.Close()
}
