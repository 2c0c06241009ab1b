package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/game-storefront/internal/platform/localstorage"
)

var _ localstorage.Backend = (*Backend)(nil)

// DefaultTTL bounds how long an untouched visitor entry survives.
const DefaultTTL = 30 * 24 * time.Hour

const keyPrefix = "storefront"

// Backend stores visitor entries as plain redis strings with a sliding TTL.
type Backend struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewBackend(client *goredis.Client, ttl time.Duration) *Backend {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Backend{client: client, ttl: ttl}
}

func (b *Backend) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	if err := b.ensureClient(); err != nil {
		return "", false, err
	}
	visitorID, key, err := localstorage.ValidateAddress(visitorID, key)
	if err != nil {
		return "", false, err
	}
	value, err := b.client.Get(ctx, redisKey(visitorID, key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (b *Backend) Set(ctx context.Context, visitorID, key, value string) error {
	if err := b.ensureClient(); err != nil {
		return err
	}
	visitorID, key, err := localstorage.ValidateAddress(visitorID, key)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, redisKey(visitorID, key), value, b.ttl).Err()
}

func (b *Backend) Remove(ctx context.Context, visitorID, key string) error {
	if err := b.ensureClient(); err != nil {
		return err
	}
	visitorID, key, err := localstorage.ValidateAddress(visitorID, key)
	if err != nil {
		return err
	}
	return b.client.Del(ctx, redisKey(visitorID, key)).Err()
}

func (b *Backend) ensureClient() error {
	if b == nil || b.client == nil {
		return errors.New("redis storage backend not configured")
	}
	return nil
}

func redisKey(visitorID, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, visitorID, key)
}
