// Package store provides storage backends for FitFlow.
//
// This file implements the PostgreSQL-backed store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/fitflow/fitflow/internal/models"
	_ "github.com/lib/pq"
)

// Database connection pool configuration constants.
const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 25
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running Postgres migrations")
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) GetProfile(userID int64) (*models.UserProfile, error) {
	query := `SELECT user_id, weight_kg, height_cm, age_years, activity_level, city, calorie_goal, water_goal_ml, created_at, updated_at
			  FROM profiles WHERE user_id = $1`
	var p models.UserProfile
	err := s.db.QueryRow(query, userID).Scan(
		&p.UserID, &p.WeightKg, &p.HeightCm, &p.AgeYears, &p.ActivityLevel,
		&p.City, &p.CalorieGoal, &p.WaterGoalMl, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetProfile failed", "error", err, "userID", userID)
		return nil, &models.StoreError{Op: "get profile", Err: err}
	}
	return &p, nil
}

func (s *PostgresStore) UpsertProfile(p models.UserProfile) error {
	query := `
		INSERT INTO profiles (user_id, weight_kg, height_cm, age_years, activity_level, city, calorie_goal, water_goal_ml, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			weight_kg = EXCLUDED.weight_kg,
			height_cm = EXCLUDED.height_cm,
			age_years = EXCLUDED.age_years,
			activity_level = EXCLUDED.activity_level,
			city = EXCLUDED.city,
			calorie_goal = EXCLUDED.calorie_goal,
			water_goal_ml = EXCLUDED.water_goal_ml,
			updated_at = EXCLUDED.updated_at`
	_, err := s.db.Exec(query, p.UserID, p.WeightKg, p.HeightCm, p.AgeYears, p.ActivityLevel,
		p.City, p.CalorieGoal, p.WaterGoalMl, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		slog.Error("PostgresStore UpsertProfile failed", "error", err, "userID", p.UserID)
		return &models.StoreError{Op: "upsert profile", Err: err}
	}
	return nil
}

func (s *PostgresStore) AddWaterLog(e models.WaterLogEntry) error {
	_, err := s.db.Exec(`INSERT INTO water_logs (id, user_id, amount_ml, timestamp) VALUES ($1, $2, $3, $4)`,
		e.ID, e.UserID, e.AmountMl, e.Timestamp)
	if err != nil {
		slog.Error("PostgresStore AddWaterLog failed", "error", err, "userID", e.UserID)
		return &models.StoreError{Op: "add water log", Err: err}
	}
	return nil
}

func (s *PostgresStore) SumWater(userID int64, r models.DayRange) (int, error) {
	var total int
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(amount_ml), 0) FROM water_logs WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3`,
		userID, r.Start, r.End).Scan(&total)
	if err != nil {
		slog.Error("PostgresStore SumWater failed", "error", err, "userID", userID)
		return 0, &models.StoreError{Op: "sum water", Err: err}
	}
	return total, nil
}

func (s *PostgresStore) AddFoodLog(e models.FoodLogEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO food_logs (id, user_id, food_name, portion_grams, calories, proteins, fats, carbs, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.UserID, e.FoodName, e.PortionGrams, e.Calories, e.Proteins, e.Fats, e.Carbs, e.Timestamp)
	if err != nil {
		slog.Error("PostgresStore AddFoodLog failed", "error", err, "userID", e.UserID)
		return &models.StoreError{Op: "add food log", Err: err}
	}
	return nil
}

func (s *PostgresStore) SumFoodCalories(userID int64, r models.DayRange) (float64, error) {
	var total float64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(calories), 0) FROM food_logs WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3`,
		userID, r.Start, r.End).Scan(&total)
	if err != nil {
		slog.Error("PostgresStore SumFoodCalories failed", "error", err, "userID", userID)
		return 0, &models.StoreError{Op: "sum food calories", Err: err}
	}
	return total, nil
}

func (s *PostgresStore) AddWorkoutLog(e models.WorkoutLogEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO workout_logs (id, user_id, workout_type, duration_min, intensity, calories_burned, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, string(e.WorkoutType), e.DurationMin, string(e.Intensity), e.CaloriesBurned, e.Timestamp)
	if err != nil {
		slog.Error("PostgresStore AddWorkoutLog failed", "error", err, "userID", e.UserID)
		return &models.StoreError{Op: "add workout log", Err: err}
	}
	return nil
}

func (s *PostgresStore) SumWorkoutCalories(userID int64, r models.DayRange) (int, error) {
	var total int
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(calories_burned), 0) FROM workout_logs WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3`,
		userID, r.Start, r.End).Scan(&total)
	if err != nil {
		slog.Error("PostgresStore SumWorkoutCalories failed", "error", err, "userID", userID)
		return 0, &models.StoreError{Op: "sum workout calories", Err: err}
	}
	return total, nil
}

func (s *PostgresStore) CountWorkouts(userID int64, r models.DayRange) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM workout_logs WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3`,
		userID, r.Start, r.End).Scan(&count)
	if err != nil {
		slog.Error("PostgresStore CountWorkouts failed", "error", err, "userID", userID)
		return 0, &models.StoreError{Op: "count workouts", Err: err}
	}
	return count, nil
}

func (s *PostgresStore) SaveFlowState(state models.FlowState) error {
	query := `
		INSERT INTO flow_states (user_id, flow_type, current_state, state_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			flow_type = EXCLUDED.flow_type,
			current_state = EXCLUDED.current_state,
			state_data = EXCLUDED.state_data,
			updated_at = EXCLUDED.updated_at`

	var stateDataJSON string
	if len(state.StateData) > 0 {
		jsonBytes, err := json.Marshal(state.StateData)
		if err != nil {
			slog.Error("PostgresStore SaveFlowState JSON marshal failed", "error", err, "userID", state.UserID)
			return &models.StoreError{Op: "save flow state", Err: err}
		}
		stateDataJSON = string(jsonBytes)
	}

	_, err := s.db.Exec(query, state.UserID, string(state.FlowType), string(state.CurrentState),
		stateDataJSON, state.CreatedAt, state.UpdatedAt)
	if err != nil {
		slog.Error("PostgresStore SaveFlowState failed", "error", err, "userID", state.UserID, "flowType", state.FlowType)
		return &models.StoreError{Op: "save flow state", Err: err}
	}
	return nil
}

func (s *PostgresStore) GetFlowState(userID int64) (*models.FlowState, error) {
	query := `SELECT user_id, flow_type, current_state, state_data, created_at, updated_at
			  FROM flow_states WHERE user_id = $1`

	var state models.FlowState
	var stateDataJSON sql.NullString

	err := s.db.QueryRow(query, userID).Scan(
		&state.UserID, &state.FlowType, &state.CurrentState,
		&stateDataJSON, &state.CreatedAt, &state.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetFlowState failed", "error", err, "userID", userID)
		return nil, &models.StoreError{Op: "get flow state", Err: err}
	}

	if stateDataJSON.String != "" {
		state.StateData = make(map[models.DataKey]string)
		if err := json.Unmarshal([]byte(stateDataJSON.String), &state.StateData); err != nil {
			slog.Error("PostgresStore GetFlowState JSON unmarshal failed", "error", err, "userID", userID)
			state.StateData = make(map[models.DataKey]string)
		}
	}

	return &state, nil
}

func (s *PostgresStore) DeleteFlowState(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM flow_states WHERE user_id = $1`, userID)
	if err != nil {
		slog.Error("PostgresStore DeleteFlowState failed", "error", err, "userID", userID)
		return &models.StoreError{Op: "delete flow state", Err: err}
	}
	return nil
}

// Close closes the Postgres database connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing Postgres database connection")
	return s.db.Close()
}
