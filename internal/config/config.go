package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppName        = "P2PExchange"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultBaseCurrency   = "USD"
	defaultNoticeTTL      = 3 * time.Second
	defaultRateRefresh    = 5 * time.Second
	defaultRateJitter     = 0.02
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName             string
	Env                 string
	Port                string
	LogLevel            string
	DatabaseURL         string
	RedisURL            string
	BaseCurrency        string
	PaymentProviderURL  string
	NoticeTTL           time.Duration
	RateRefreshInterval time.Duration
	RateJitter          float64
	ShutdownPeriod      time.Duration
	IdempotencyTTL      time.Duration
}

// Load reads configuration from the environment, after merging an optional
// .env file, and populates a Config instance. DATABASE_URL and REDIS_URL are
// optional in development; missing backends fall back to in-memory stores.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppName:             getEnv("APP_NAME", defaultAppName),
		Env:                 getEnv("APP_ENV", defaultAppEnv),
		Port:                getEnv("PORT", defaultPort),
		LogLevel:            strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisURL:            os.Getenv("REDIS_URL"),
		BaseCurrency:        strings.ToUpper(getEnv("BASE_CURRENCY", defaultBaseCurrency)),
		PaymentProviderURL:  os.Getenv("PAYMENT_PROVIDER_URL"),
		NoticeTTL:           defaultNoticeTTL,
		RateRefreshInterval: defaultRateRefresh,
		RateJitter:          defaultRateJitter,
		ShutdownPeriod:      defaultShutdownDelay,
		IdempotencyTTL:      defaultIdempotencyTTL,
	}

	var err error
	if cfg.NoticeTTL, err = durationEnv("NOTICE_TTL", cfg.NoticeTTL); err != nil {
		return Config{}, err
	}
	if cfg.RateRefreshInterval, err = durationEnv("RATE_REFRESH_INTERVAL", cfg.RateRefreshInterval); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownPeriod, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownPeriod); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = durationEnv("IDEMPOTENCY_TTL", cfg.IdempotencyTTL); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("RATE_JITTER"); v != "" {
		jitter, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RATE_JITTER: %w", err)
		}
		if jitter < 0 || jitter >= 1 {
			return Config{}, fmt.Errorf("RATE_JITTER must be in [0, 1), got %v", jitter)
		}
		cfg.RateJitter = jitter
	}

	if !isDev(cfg.Env) {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.Env)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.Env)
		}
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the configured environment is a development one.
func (c Config) IsDev() bool {
	return isDev(c.Env)
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
