package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Apurer/game-storefront/internal/app/storefront"
	storagepostgres "github.com/Apurer/game-storefront/internal/platform/localstorage/postgres"
	platformpostgres "github.com/Apurer/game-storefront/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg, err := storefront.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge visitor storage")
	}

	keys := purgeKeysFromEnv()
	removed, err := storagepostgres.NewBackend(db).PurgeStale(ctx, cfg.StorageTTL, keys...)
	if err != nil {
		log.Fatalf("failed to purge visitor storage: %v", err)
	}
	logger.Info("visitor storage purge completed",
		slog.Int64("rows.removed", removed),
		slog.Duration("max_age", cfg.StorageTTL),
		slog.Any("keys", keys),
	)
}

// purgeKeysFromEnv reads PURGE_KEYS, a comma-separated key list; empty means every key.
func purgeKeysFromEnv() []string {
	raw := strings.TrimSpace(os.Getenv("PURGE_KEYS"))
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
