package storefront

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STOREFRONT_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{
		"PORT", "SHOP_API_URL", "SHOP_API_TIMEOUT_SECONDS", "POSTGRES_DSN", "REDIS_ADDR", "REDIS_PASSWORD",
		"REDIS_DB", "STORAGE_TTL_HOURS", "VISITOR_COOKIE", "VISITOR_IDLE_MINUTES", "SESSION_RESTORE_WAIT_MS",
		"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED",
		"ENVIRONMENT", "LOG_LEVEL", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_INSECURE", "TRACE_SAMPLE_RATIO",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "http://localhost:5000/api", cfg.ShopAPIURL)
	require.Equal(t, 10*time.Second, cfg.ShopAPITimeout)
	require.Equal(t, 720*time.Hour, cfg.StorageTTL)
	require.Equal(t, "storefront_visitor", cfg.VisitorCookie)
	require.Equal(t, 1500*time.Millisecond, cfg.SessionRestoreWait)
	require.False(t, cfg.TemporalDisabled)
	require.Empty(t, cfg.PostgresDSN)
	require.Empty(t, cfg.Redis.Addr)
	require.Equal(t, "local", cfg.Observability.Environment)
	require.Equal(t, slog.LevelInfo, cfg.Observability.LogLevel)
	require.True(t, cfg.Observability.OTLPInsecure)
	require.Zero(t, cfg.Observability.SampleRatio)
}

func TestLoadConfig_Overrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_RESTORE_WAIT_MS", "0")
	t.Setenv("TEMPORAL_DISABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("TRACE_SAMPLE_RATIO", "0.25")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr())
	require.Equal(t, 2, cfg.Redis.DB)
	require.Zero(t, cfg.SessionRestoreWait)
	require.True(t, cfg.TemporalDisabled)
	require.Equal(t, slog.LevelDebug, cfg.Observability.LogLevel)
	require.False(t, cfg.Observability.OTLPInsecure)
	require.Equal(t, 0.25, cfg.Observability.SampleRatio)
}

func TestLoadConfig_RejectsInvalidNumbers(t *testing.T) {
	for _, key := range []string{"SHOP_API_TIMEOUT_SECONDS", "STORAGE_TTL_HOURS", "VISITOR_IDLE_MINUTES", "SESSION_RESTORE_WAIT_MS", "REDIS_DB", "TRACE_SAMPLE_RATIO"} {
		t.Run(key, func(t *testing.T) {
			isolateEnv(t)
			t.Setenv(key, "-3")
			_, err := LoadConfig()
			require.ErrorContains(t, err, key)
		})
	}
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHOP_API_URL=https://shop.example.com/api\n"), 0o600))
	t.Setenv("STOREFRONT_ENV_FILE", path)
	// godotenv does not override variables that are already set.
	require.NoError(t, os.Unsetenv("SHOP_API_URL"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "https://shop.example.com/api", cfg.ShopAPIURL)
}
