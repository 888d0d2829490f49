// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Optional: when empty,
	// sessions are kept in memory and lost on restart.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// DefaultTimezone overrides the reference data's default base timezone.
	// Empty keeps the reference default.
	DefaultTimezone string

	// ReferenceFile points at a JSON file replacing the built-in reference
	// table. Empty uses the built-in table.
	ReferenceFile string

	// ExportFilename is the attachment name of the xlsx download.
	// Defaults to "timezone_conversions.xlsx".
	ExportFilename string

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// ExportRateLimit caps /export requests per client IP per minute.
	// Defaults to 30; 0 disables the limit.
	ExportRateLimit int
}

// LoadDotEnv seeds the process environment from a .env file at path.
// Variables already set in the environment win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config.LoadDotEnv: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Every invalid value is reported in a single error.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DefaultTimezone: os.Getenv("DEFAULT_TIMEZONE"),
		ReferenceFile:   os.Getenv("REFERENCE_FILE"),
		ExportFilename:  getEnv("EXPORT_FILENAME", "timezone_conversions.xlsx"),
	}

	var problems []string

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		problems = append(problems, fmt.Sprintf("PORT: %q is not a valid port", cfg.Port))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL: %q must be one of debug, info, warn, error", cfg.LogLevel))
	}

	if cfg.DefaultTimezone != "" {
		if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil || cfg.DefaultTimezone == "Local" {
			problems = append(problems, fmt.Sprintf("DEFAULT_TIMEZONE: %q is not an IANA timezone", cfg.DefaultTimezone))
		}
	}

	maxBody, err := getInt("MAX_BODY_BYTES", 1<<20)
	if err != nil || maxBody <= 0 {
		problems = append(problems, fmt.Sprintf("MAX_BODY_BYTES: %q must be a positive integer", os.Getenv("MAX_BODY_BYTES")))
	}
	cfg.MaxBodyBytes = int64(maxBody)

	cfg.ExportRateLimit, err = getInt("EXPORT_RATE_LIMIT", 30)
	if err != nil || cfg.ExportRateLimit < 0 {
		problems = append(problems, fmt.Sprintf("EXPORT_RATE_LIMIT: %q must be a non-negative integer", os.Getenv("EXPORT_RATE_LIMIT")))
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
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

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
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
