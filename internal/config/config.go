package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultBoardRows = 8
	DefaultBoardCols = 8
	MaxBoardSize     = 26
)

const (
	StoragePostgres = "postgres"
	StorageBadger   = "badger"
	StorageMemory   = "memory"
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	Token             string
	BasicAuthUsername string
	BasicAuthPassword string

	// Storage is one of StoragePostgres, StorageBadger or StorageMemory.
	Storage     string
	PostgresURL string
	RedisURL    string
	BadgerDir   string

	BoardRows int
	BoardCols int
}

// LoadDotEnv loads variables from a .env file in the working directory, if
// there is one. Variables that are already set are not overwritten.
func LoadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	if err := LoadDotEnv(); err != nil {
		slog.Error("Failed to load .env file", "error", err)
		os.Exit(1)
	}

	cfg := &ServerConfig{
		ServerHost:        getEnvMust("REVERSI_SERVER_HOST"),
		ServerPort:        getEnvMust("REVERSI_SERVER_PORT"),
		Token:             getEnvMust("REVERSI_SERVER_TOKEN"),
		BasicAuthUsername: getEnvMust("REVERSI_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("REVERSI_BASIC_AUTH_PASS"),
		Storage:           getEnvDefault("REVERSI_STORAGE", StoragePostgres),
		BoardRows:         getEnvIntDefault("REVERSI_BOARD_ROWS", DefaultBoardRows),
		BoardCols:         getEnvIntDefault("REVERSI_BOARD_COLS", DefaultBoardCols),
	}

	switch cfg.Storage {
	case StoragePostgres:
		cfg.PostgresURL = getEnvMust("REVERSI_POSTGRES_URL")
		cfg.RedisURL = getEnvMust("REVERSI_REDIS_URL")
	case StorageBadger:
		cfg.BadgerDir = getEnvMust("REVERSI_BADGER_DIR")
	case StorageMemory:
	default:
		slog.Error("Invalid storage backend", "key", "REVERSI_STORAGE", "value", cfg.Storage)
		os.Exit(1)
	}

	if !ValidBoardSize(cfg.BoardRows, cfg.BoardCols) {
		slog.Error("Invalid default board size", "rows", cfg.BoardRows, "cols", cfg.BoardCols)
		os.Exit(1)
	}

	return cfg
}

// ValidBoardSize reports whether a board of rows x cols can be played and
// rendered with field names.
func ValidBoardSize(rows, cols int) bool {
	return rows >= 2 && cols >= 2 && rows <= MaxBoardSize && cols <= MaxBoardSize
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be an integer", "key", key, "value", value)
		os.Exit(1)
	}

	return parsed
}
