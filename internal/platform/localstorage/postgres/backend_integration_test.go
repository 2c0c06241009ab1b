//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/game-storefront/internal/platform/localstorage"
	"github.com/Apurer/game-storefront/internal/platform/migrations"
)

func setupStoragePostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestBackend_SetGetRemove(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupStoragePostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	storage := localstorage.Scope(NewBackend(db), "visitor-1")

	_, ok, err := storage.GetItem(ctx, localstorage.KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.SetItem(ctx, localstorage.KeyCart, `[{"_id":"g1"}]`))
	require.NoError(t, storage.SetItem(ctx, localstorage.KeyCart, `[{"_id":"g1"},{"_id":"g2"}]`))

	value, ok, err := storage.GetItem(ctx, localstorage.KeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"_id":"g1"},{"_id":"g2"}]`, value)

	require.NoError(t, storage.RemoveItem(ctx, localstorage.KeyCart))
	require.NoError(t, storage.RemoveItem(ctx, localstorage.KeyCart))
	_, ok, err = storage.GetItem(ctx, localstorage.KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBackend_PurgeStale(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupStoragePostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	backend := NewBackend(db)
	now := time.Now().UTC()

	backend.WithClock(func() time.Time { return now.Add(-48 * time.Hour) })
	require.NoError(t, backend.Set(ctx, "old", localstorage.KeyCart, "[]"))
	require.NoError(t, backend.Set(ctx, "old", localstorage.KeyUser, "{}"))

	backend.WithClock(func() time.Time { return now })
	require.NoError(t, backend.Set(ctx, "fresh", localstorage.KeyCart, "[]"))

	removed, err := backend.PurgeStale(ctx, 24*time.Hour, localstorage.KeyUser)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	_, ok, err := backend.Get(ctx, "old", localstorage.KeyCart)
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err = backend.PurgeStale(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	_, ok, err = backend.Get(ctx, "fresh", localstorage.KeyCart)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = backend.PurgeStale(ctx, 0)
	require.Error(t, err)
}
