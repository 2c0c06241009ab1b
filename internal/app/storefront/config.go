package storefront

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	platformobservability "github.com/Apurer/game-storefront/internal/platform/observability"
	platformredis "github.com/Apurer/game-storefront/internal/platform/redis"
)

const (
	defaultShopAPIURL  = "http://localhost:5000/api"
	defaultCookieName  = "storefront_visitor"
	defaultStorageTTL  = 720 * time.Hour
	defaultRestoreWait = 1500 * time.Millisecond
	defaultVisitorIdle = 30 * time.Minute
)

// Config carries environment-driven settings for the storefront process.
type Config struct {
	Port               string
	ShopAPIURL         string
	ShopAPITimeout     time.Duration
	PostgresDSN        string
	Redis              platformredis.Options
	StorageTTL         time.Duration
	VisitorCookie      string
	VisitorIdle        time.Duration
	SessionRestoreWait time.Duration
	TemporalAddress    string
	TemporalNamespace  string
	TemporalDisabled   bool
	Observability      platformobservability.Options
}

// LoadConfig reads a .env file when present, then the environment, applies
// defaults, and validates numeric settings.
func LoadConfig() (Config, error) {
	if err := loadDotEnv(envDefault("STOREFRONT_ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		ShopAPIURL:        envDefault("SHOP_API_URL", defaultShopAPIURL),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		Redis:             platformredis.Options{Addr: strings.TrimSpace(os.Getenv("REDIS_ADDR")), Password: os.Getenv("REDIS_PASSWORD")},
		VisitorCookie:     envDefault("VISITOR_COOKIE", defaultCookieName),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		Observability: platformobservability.Options{
			Environment:  envDefault("ENVIRONMENT", "local"),
			LogLevel:     platformobservability.ParseLevel(os.Getenv("LOG_LEVEL")),
			OTLPEndpoint: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
			OTLPInsecure: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")) != "0",
		},
	}

	var err error
	if cfg.ShopAPITimeout, err = positiveDuration("SHOP_API_TIMEOUT_SECONDS", time.Second, 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.StorageTTL, err = positiveDuration("STORAGE_TTL_HOURS", time.Hour, defaultStorageTTL); err != nil {
		return Config{}, err
	}
	if cfg.VisitorIdle, err = positiveDuration("VISITOR_IDLE_MINUTES", time.Minute, defaultVisitorIdle); err != nil {
		return Config{}, err
	}
	if cfg.SessionRestoreWait, err = nonNegativeDuration("SESSION_RESTORE_WAIT_MS", time.Millisecond, defaultRestoreWait); err != nil {
		return Config{}, err
	}
	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return Config{}, fmt.Errorf("REDIS_DB must be a non-negative integer")
		}
		cfg.Redis.DB = db
	}
	if raw := strings.TrimSpace(os.Getenv("TRACE_SAMPLE_RATIO")); raw != "" {
		ratio, err := strconv.ParseFloat(raw, 64)
		if err != nil || ratio < 0 || ratio > 1 {
			return Config{}, fmt.Errorf("TRACE_SAMPLE_RATIO must be a number between 0 and 1")
		}
		cfg.Observability.SampleRatio = ratio
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

func positiveDuration(key string, unit, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return time.Duration(n) * unit, nil
}

func nonNegativeDuration(key string, unit, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return time.Duration(n) * unit, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
