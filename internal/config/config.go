package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jwebster45206/wizard-village/pkg/proximity"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	LogFile     string // "-" writes to stderr

	ChatEndpoint  string
	ChatTimeout   time.Duration
	ContentRating string // empty leaves replies as sent; G/PG/PG13 filter them

	SessionStore string // memory, file or redis
	SessionFile  string
	RedisURL     string
	SessionKey   string

	ProximityZone float64
	ProximityExit float64
	ScrollStep    float64
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:       getEnv("LOG_FILE", "village.log"),
		ChatEndpoint:  getEnv("CHAT_ENDPOINT", "http://localhost:8001/chat"),
		ContentRating: getEnv("CONTENT_RATING", ""),
		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", "file")),
		SessionFile:   getEnv("SESSION_FILE", defaultSessionFile()),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionKey:    getEnv("SESSION_KEY", "wizard-village:session"),
	}

	var errs []error
	var err error
	if cfg.ChatTimeout, err = time.ParseDuration(getEnv("CHAT_TIMEOUT", "30s")); err != nil {
		errs = append(errs, fmt.Errorf("CHAT_TIMEOUT: %w", err))
	}
	if cfg.ProximityZone, err = parseFloat("PROXIMITY_ZONE", "100"); err != nil {
		errs = append(errs, err)
	}
	if cfg.ProximityExit, err = parseFloat("PROXIMITY_EXIT", "100"); err != nil {
		errs = append(errs, err)
	}
	if cfg.ScrollStep, err = parseFloat("SCROLL_STEP", "30"); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Proximity is the detector geometry for the configured square zone and the
// default player size.
func (c *Config) Proximity() proximity.Config {
	p := proximity.DefaultConfig()
	p.ZoneW, p.ZoneH = c.ProximityZone, c.ProximityZone
	p.ExitDistance = c.ProximityExit
	return p
}

// Validate checks values that parse but make no sense together.
func (c *Config) Validate() error {
	switch c.SessionStore {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("SESSION_STORE must be memory, file or redis, got %q", c.SessionStore)
	}
	if c.ChatEndpoint == "" {
		return errors.New("CHAT_ENDPOINT is required")
	}
	if c.ChatTimeout <= 0 {
		return fmt.Errorf("CHAT_TIMEOUT must be positive, got %s", c.ChatTimeout)
	}
	if c.ProximityZone <= 0 {
		return fmt.Errorf("PROXIMITY_ZONE must be positive, got %v", c.ProximityZone)
	}
	if reach := c.Proximity().Reach(); c.ProximityExit <= reach {
		return fmt.Errorf("PROXIMITY_EXIT (%v) must exceed %.1f, the farthest a player can stand while touching a PROXIMITY_ZONE of %v", c.ProximityExit, reach, c.ProximityZone)
	}
	if c.ScrollStep <= 0 {
		return fmt.Errorf("SCROLL_STEP must be positive, got %v", c.ScrollStep)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseFloat(key, defaultValue string) (float64, error) {
	v, err := strconv.ParseFloat(getEnv(key, defaultValue), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(dir, "wizard-village", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
