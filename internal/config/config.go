package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devJWTSecret = "dev-secret-change-in-production"

var ErrDevSecretInProduction = errors.New("JWT_SECRET must be set in production environment")

type Config struct {
	Port           string
	Env            string
	JWTSecret      string
	SessionTTL     time.Duration
	MaxSessions    int64
	RateLimitRPS   float64
	RateLimitBurst int
	MetricsPath    string
	LogLevel       string
	RandomSource   string
	Clipboard      string
}

// SetDefaults registers every key with its default and enables environment lookup.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("jwt_secret", devJWTSecret)
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("max_sessions", 10000)
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("metrics_path", "/metrics")
	v.SetDefault("log_level", "info")
	v.SetDefault("random_source", "math")
	v.SetDefault("clipboard", "")

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads an optional .env file, then resolves every key through v
// (bound flags, environment, defaults).
func Load(v *viper.Viper) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}
	SetDefaults(v)

	cfg := Config{
		Port:           v.GetString("port"),
		Env:            v.GetString("env"),
		JWTSecret:      v.GetString("jwt_secret"),
		SessionTTL:     v.GetDuration("session_ttl"),
		MaxSessions:    v.GetInt64("max_sessions"),
		RateLimitRPS:   v.GetFloat64("rate_limit_rps"),
		RateLimitBurst: v.GetInt("rate_limit_burst"),
		MetricsPath:    v.GetString("metrics_path"),
		LogLevel:       v.GetString("log_level"),
		RandomSource:   v.GetString("random_source"),
		Clipboard:      v.GetString("clipboard"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that must not reach a running server.
func (c Config) Validate() error {
	if c.Env == "production" && c.JWTSecret == devJWTSecret {
		return ErrDevSecretInProduction
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("METRICS_PATH must start with '/', got %q", c.MetricsPath)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
