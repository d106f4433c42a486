// Package config loads the server and script configuration from the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/pkg/logging"
)

// EnvFiles are loaded, in order, when present. Variables already set in the
// process environment win.
var EnvFiles = []string{".env.local", ".env"}

// Store kinds selected by the STORE_URL scheme.
const (
	StoreSQLite = "sqlite"
	StoreREST   = "rest"
)

type Config struct {
	// HTTP Server
	Port string

	// Store
	StoreURL    string
	StoreAPIKey string

	// Sessions
	JWTSecret   string
	SessionTTL  time.Duration
	AdminEmails []string

	// Budget
	BudgetCeiling       decimal.Decimal
	LodgingEstimate     decimal.Decimal
	LodgingEstimateDate string

	// Packing list tracking: "shared" or "personal"
	PackingTracking string

	// AMQP change notifications; empty URL disables them
	AMQPURL      string
	AMQPExchange string

	LogLevel string

	// problems found while parsing values, reported by Validate
	parseErrors []string
}

// LoadEnvFiles loads EnvFiles for local development. Missing files are skipped.
func LoadEnvFiles() {
	for _, name := range EnvFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to load env file", "file", name, "error", err)
		}
	}
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		StoreURL:    getEnv("STORE_URL", ""),
		StoreAPIKey: getEnv("STORE_API_KEY", ""),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		AdminEmails: splitList(getEnv("ADMIN_EMAILS", "")),

		LodgingEstimateDate: getEnv("LODGING_ESTIMATE_DATE", "2026-03-30"),

		PackingTracking: getEnv("PACKING_TRACKING", string(models.TrackShared)),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "trip_planner"),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	cfg.SessionTTL = cfg.getEnvDuration("SESSION_TTL", 24*time.Hour)
	cfg.BudgetCeiling = cfg.getEnvDecimal("BUDGET_CEILING", "3000000")
	cfg.LodgingEstimate = cfg.getEnvDecimal("LODGING_ESTIMATE", "1200000")

	return cfg
}

// StoreKind reports which store STORE_URL selects, or "" when unknown.
func (c *Config) StoreKind() string {
	u, err := url.Parse(c.StoreURL)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "sqlite":
		return StoreSQLite
	case "http", "https":
		return StoreREST
	default:
		return ""
	}
}

// SQLitePath returns the database path of a sqlite:// STORE_URL.
func (c *Config) SQLitePath() string {
	return strings.TrimPrefix(c.StoreURL, "sqlite://")
}

// Tracking returns the packing list tracking mode.
func (c *Config) Tracking() models.Tracking {
	t, err := models.ParseTracking(c.PackingTracking)
	if err != nil {
		return models.TrackShared
	}
	return t
}

// Level returns the slog level named by LogLevel, INFO when unknown.
func (c *Config) Level() slog.Level {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := append([]string{}, c.parseErrors...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	errors = append(errors, c.storeErrors()...)

	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET must be at least 32 characters")
	}
	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	if c.BudgetCeiling.IsNegative() {
		errors = append(errors, fmt.Sprintf("invalid budget ceiling %s: cannot be negative", c.BudgetCeiling))
	}
	if c.LodgingEstimate.IsNegative() {
		errors = append(errors, fmt.Sprintf("invalid lodging estimate %s: cannot be negative", c.LodgingEstimate))
	}
	if c.LodgingEstimate.IsPositive() {
		if _, err := models.ParseDate(c.LodgingEstimateDate); err != nil {
			errors = append(errors, fmt.Sprintf("invalid lodging estimate date '%s': expected YYYY-MM-DD", c.LodgingEstimateDate))
		}
	}

	if _, err := models.ParseTracking(c.PackingTracking); err != nil {
		errors = append(errors, err.Error())
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ValidateStore checks only the store settings. The CLI scripts use it
// since they never issue sessions.
func (c *Config) ValidateStore() error {
	if errors := c.storeErrors(); len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func (c *Config) storeErrors() []string {
	if c.StoreURL == "" {
		return []string{"STORE_URL is required"}
	}
	switch c.StoreKind() {
	case StoreSQLite:
		if c.SQLitePath() == "" {
			return []string{"STORE_URL must name a database file: sqlite://<path>"}
		}
	case StoreREST:
		if c.StoreAPIKey == "" {
			return []string{"STORE_API_KEY is required for an http(s) STORE_URL"}
		}
	default:
		return []string{fmt.Sprintf("invalid STORE_URL '%s': scheme must be sqlite, http or https", c.StoreURL)}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses a Go duration. Unparseable values are recorded for
// Validate and read as the default.
func (c *Config) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		c.parseErrors = append(c.parseErrors, fmt.Sprintf("invalid %s '%s': must be a duration like 24h", key, value))
		return defaultValue
	}
	return d
}

// getEnvDecimal parses a money amount. Unparseable values are recorded for
// Validate and read as zero.
func (c *Config) getEnvDecimal(key, defaultValue string) decimal.Decimal {
	raw := getEnv(key, defaultValue)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		c.parseErrors = append(c.parseErrors, fmt.Sprintf("invalid %s '%s': must be a number", key, raw))
		return decimal.Zero
	}
	return d
}

// splitList splits a comma separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
