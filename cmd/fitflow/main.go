package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fitflow/fitflow/internal/api"
	"github.com/fitflow/fitflow/internal/flow"
	"github.com/fitflow/fitflow/internal/food"
	"github.com/fitflow/fitflow/internal/messaging"
	"github.com/fitflow/fitflow/internal/store"
	"github.com/fitflow/fitflow/internal/telegram"
	"github.com/fitflow/fitflow/internal/util"
	"github.com/fitflow/fitflow/internal/weather"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for FitFlow state data
	DefaultStateDir = "/var/lib/fitflow"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "fitflow.db"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	slog.Info("Bootstrapping FitFlow with configured modules")
	slog.Debug("Final configuration", "state_dir", *flags.stateDir, "dsn_set", *flags.dbDSN != "",
		"api_addr", *flags.apiAddr, "bot_token_set", *flags.botToken != "")
	if err := run(flags); err != nil {
		slog.Error("FitFlow failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("FitFlow exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL   string
	StateDir      string
	BotToken      string
	WeatherAPIKey string
	APIAddr       string
}

// Flags holds command line flag values
type Flags struct {
	stateDir   *string
	dbDSN      *string
	botToken   *string
	weatherKey *string
	apiAddr    *string
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("FITFLOW_DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		StateDir:      util.EnvDefault("FITFLOW_STATE_DIR", DefaultStateDir),
		BotToken:      os.Getenv("BOT_TOKEN"),
		WeatherAPIKey: os.Getenv("WEATHER_API_KEY"),
		APIAddr:       os.Getenv("API_ADDR"),
	}

	// If no database URL is provided, default to SQLite in the state directory
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"FITFLOW_STATE_DIR", config.StateDir,
		"BOT_TOKEN_SET", config.BotToken != "",
		"WEATHER_API_KEY_SET", config.WeatherAPIKey != "",
		"API_ADDR", config.APIAddr)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:   flag.String("state-dir", config.StateDir, "state directory for FitFlow data (overrides $FITFLOW_STATE_DIR)"),
		dbDSN:      flag.String("db-dsn", config.DatabaseURL, "database DSN (overrides $DATABASE_URL)"),
		botToken:   flag.String("bot-token", config.BotToken, "Telegram bot token (overrides $BOT_TOKEN)"),
		weatherKey: flag.String("weather-api-key", config.WeatherAPIKey, "OpenWeather API key (overrides $WEATHER_API_KEY)"),
		apiAddr:    flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"botTokenSet", *flags.botToken != "",
		"weatherKeySet", *flags.weatherKey != "",
		"apiAddr", *flags.apiAddr)

	// Update database DSN if not explicitly set but state directory is provided
	if *flags.dbDSN == config.DatabaseURL && config.DatabaseURL == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "new_state_dir", *flags.stateDir)
	}

	return flags
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	if store.DetectDSNType(*flags.dbDSN) == "sqlite" {
		stateDir := filepath.Dir(*flags.dbDSN)
		slog.Debug("Creating state directory for file-based database", "state_dir", stateDir)
		if err := os.MkdirAll(stateDir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "state_dir", stateDir)
			return err
		}
	}
	return nil
}

// buildStore constructs the store backend from the DSN
func buildStore(flags Flags) (store.Store, error) {
	if *flags.dbDSN == "" {
		slog.Debug("No database DSN provided, using in-memory store")
		return store.NewInMemoryStore(), nil
	}
	if store.DetectDSNType(*flags.dbDSN) == "postgres" {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store")
		return store.NewPostgresStore(store.WithPostgresDSN(*flags.dbDSN))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", *flags.dbDSN)
	return store.NewSQLiteStore(store.WithSQLiteDSN(*flags.dbDSN))
}

// run wires the modules together and blocks until shutdown.
func run(flags Flags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := buildStore(flags)
	if err != nil {
		return err
	}
	defer st.Close()

	weatherClient, err := weather.NewClient(weather.WithAPIKey(*flags.weatherKey))
	if err != nil {
		return err
	}
	foodClient := food.NewClient()

	manager := flow.NewManager(st, weatherClient, foodClient)

	// The Telegram transport is optional; the HTTP turn endpoint is always
	// available.
	if *flags.botToken != "" {
		tg, err := telegram.NewClient(telegram.WithToken(*flags.botToken))
		if err != nil {
			return err
		}
		if err := tg.Start(ctx); err != nil {
			return err
		}
		defer func() {
			if err := tg.Stop(); err != nil {
				slog.Error("Failed to stop Telegram client", "error", err)
			}
		}()

		dispatcher := messaging.NewDispatcher(tg, manager.HandleTurn)
		go dispatcher.Run(ctx)
		slog.Info("Telegram transport enabled")
	} else {
		slog.Info("No bot token configured, Telegram transport disabled")
	}

	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	server := api.NewServer(manager.HandleTurn, st, apiOpts...)
	return server.Run(ctx)
}
