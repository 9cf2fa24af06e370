package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable through DATA_BACKEND.
const (
	BackendCSV      = "csv"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port               string   `mapstructure:"PORT"`
	IsProduction       bool     `mapstructure:"IS_PRODUCTION"`
	DataBackend        string   `mapstructure:"DATA_BACKEND"`
	DataPath           string   `mapstructure:"DATA_PATH"`
	DatabaseURL        string   `mapstructure:"PGSQL_URL"`
	SQLitePath         string   `mapstructure:"SQLITE_PATH"`
	JWTSecret          string   `mapstructure:"JWT_SECRET"` // empty disables auth on write routes
	RateLimit          string   `mapstructure:"RATE_LIMIT"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel           string   `mapstructure:"LOG_LEVEL"`
	PosthogAPIKey      string   `mapstructure:"POSTHOG_API_KEY"` // empty disables usage analytics
	PosthogEndpoint    string   `mapstructure:"POSTHOG_ENDPOINT"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("DATA_BACKEND", BackendCSV)
	v.SetDefault("DATA_PATH", "data/user_data.csv")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/dre.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	cfg, err := FromViper(NewViper())
	if err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set. Write routes are not authenticated.")
	}
	return cfg, nil
}

// NewViper returns a viper instance with every default set, reading the
// environment and a .env file if present. Callers may bind flags on top.
func NewViper() *viper.Viper {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return v
}

// FromViper reads a Config out of v and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		DataBackend:        strings.ToLower(strings.TrimSpace(v.GetString("DATA_BACKEND"))),
		DataPath:           v.GetString("DATA_PATH"),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		SQLitePath:         v.GetString("SQLITE_PATH"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LogLevel:           v.GetString("LOG_LEVEL"),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    v.GetString("POSTHOG_ENDPOINT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	switch c.DataBackend {
	case BackendCSV:
		if c.DataPath == "" {
			errs = append(errs, errors.New("DATA_PATH must be set for the csv backend"))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("PGSQL_URL must be set for the postgres backend"))
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH must be set for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATA_BACKEND must be one of csv, postgres, sqlite (got %q)", c.DataBackend))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps LOG_LEVEL to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", s)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
