package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort          string        `yaml:"http_port"`
	DatabaseURL       string        `yaml:"database_url"`
	DBMaxOpenConns    int           `yaml:"db_max_open_conns"`
	DBMaxIdleConns    int           `yaml:"db_max_idle_conns"`
	DBConnMaxLife     time.Duration `yaml:"db_conn_max_life"`
	DBConnectAttempts int           `yaml:"db_connect_attempts"`

	LogLevel         string   `yaml:"log_level"`
	GinMode          string   `yaml:"gin_mode"`
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`
	SeedData         bool     `yaml:"seed_data"`

	// Token bucket applied per client IP to stage transitions.
	TransitionRatePerSec float64 `yaml:"transition_rate_per_sec"`
	TransitionBurst      int     `yaml:"transition_burst"`
}

// Load reads the environment (the caller loads .env first) and overlays the
// YAML file named by CONFIG_FILE when set.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:       getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLife:        getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		DBConnectAttempts:    getInt("DB_CONNECT_ATTEMPTS", 5),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		GinMode:              getEnv("GIN_MODE", "release"),
		CORSAllowOrigins:     getList("CORS_ALLOW_ORIGINS", []string{"*"}),
		SeedData:             getBool("SEED_DATA", false),
		TransitionRatePerSec: getFloat("TRANSITION_RATE_PER_SEC", 5),
		TransitionBurst:      getInt("TRANSITION_BURST", 10),
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) overlay(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}
	if c.DBConnectAttempts < 1 {
		c.DBConnectAttempts = 1
	}
	if c.TransitionRatePerSec <= 0 || c.TransitionBurst < 1 {
		return fmt.Errorf("transition rate limit must be positive")
	}
	return nil
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getBool(key string, fallback bool) bool {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getList(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
