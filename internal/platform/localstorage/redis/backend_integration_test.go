//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Apurer/game-storefront/internal/platform/localstorage"
)

func setupRedisContainer(t *testing.T) (*goredis.Client, func()) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: endpoint})
	require.NoError(t, client.Ping(ctx).Err())

	cleanup := func() {
		_ = client.Close()
		container.Terminate(ctx)
	}
	return client, cleanup
}

func TestBackend_SetGetRemoveWithTTL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client, cleanup := setupRedisContainer(t)
	defer cleanup()

	ctx := context.Background()
	backend := NewBackend(client, time.Hour)
	storage := localstorage.Scope(backend, "visitor-1")

	require.NoError(t, storage.SetItem(ctx, localstorage.KeyUser, `{"email":"a@example.com"}`))
	value, ok, err := storage.GetItem(ctx, localstorage.KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"email":"a@example.com"}`, value)

	ttl, err := client.TTL(ctx, redisKey("visitor-1", localstorage.KeyUser)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	_, ok, err = backend.Get(ctx, "visitor-2", localstorage.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.RemoveItem(ctx, localstorage.KeyUser))
	_, ok, err = storage.GetItem(ctx, localstorage.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
}
