// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server and the importer.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `validate:"required,numeric"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `validate:"required"`

	// LogLevel controls the minimum log level. Defaults to "info".
	LogLevel string `validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`

	// LogFormat selects the slog handler: "json" (default) or "text".
	LogFormat string `validate:"oneof=json text"`

	// LogFile, when set, duplicates log output into a size-rotated file.
	LogFile string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["*"] since the API is public and read-only.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `validate:"min=1"`

	// DataDir is the directory the importer reads the source files from.
	// Defaults to "./data".
	DataDir string `validate:"required"`

	// ImportLayoutFile optionally points at a YAML file renaming the source files.
	ImportLayoutFile string

	// ImportBatchSize caps route points per bulk write; 0 means one write.
	// Defaults to 5000.
	ImportBatchSize int `validate:"gte=0"`
}

// LoadDotEnv reads KEY=VALUE pairs from path (".env" when empty) into the
// process environment. Variables that are already set win. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config.LoadDotEnv: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first invalid value.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		LogFile:          os.Getenv("LOG_FILE"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "*")),
		DataDir:          getEnv("DATA_DIR", "./data"),
		ImportLayoutFile: os.Getenv("IMPORT_LAYOUT_FILE"),
	}

	batch, err := strconv.Atoi(getEnv("IMPORT_BATCH_SIZE", "5000"))
	if err != nil {
		return Config{}, fmt.Errorf("IMPORT_BATCH_SIZE: %w", err)
	}
	cfg.ImportBatchSize = batch

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
