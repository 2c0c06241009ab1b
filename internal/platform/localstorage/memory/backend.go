package memory

import (
	"context"
	"sync"

	"github.com/Apurer/game-storefront/internal/platform/localstorage"
)

var _ localstorage.Backend = (*Backend)(nil)

// Backend keeps visitor storage in process memory. Contents vanish on restart.
type Backend struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

func NewBackend() *Backend {
	return &Backend{entries: map[string]map[string]string{}}
}

func (b *Backend) Get(_ context.Context, visitorID, key string) (string, bool, error) {
	visitorID, key, err := localstorage.ValidateAddress(visitorID, key)
	if err != nil {
		return "", false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	value, ok := b.entries[visitorID][key]
	return value, ok, nil
}

func (b *Backend) Set(_ context.Context, visitorID, key, value string) error {
	visitorID, key, err := localstorage.ValidateAddress(visitorID, key)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bucket, ok := b.entries[visitorID]
	if !ok {
		bucket = map[string]string{}
		b.entries[visitorID] = bucket
	}
	bucket[key] = value
	return nil
}

func (b *Backend) Remove(_ context.Context, visitorID, key string) error {
	visitorID, key, err := localstorage.ValidateAddress(visitorID, key)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bucket, ok := b.entries[visitorID]
	if !ok {
		return nil
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(b.entries, visitorID)
	}
	return nil
}

// Keys lists the keys stored for a visitor. Intended for tests and diagnostics.
func (b *Backend) Keys(visitorID string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.entries[visitorID]))
	for k := range b.entries[visitorID] {
		keys = append(keys, k)
	}
	return keys
}
