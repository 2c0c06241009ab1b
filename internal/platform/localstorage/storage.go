// Package localstorage models the browser-style durable key-value storage each
// visitor owns. Values are opaque strings; callers choose the encoding.
package localstorage

import (
	"context"
	"errors"
	"strings"
)

// Well-known keys written by the storefront.
const (
	KeyCart           = "cart"
	KeyUser           = "user"
	KeyRecentSearches = "recentSearches"
)

var (
	// ErrVisitorRequired is returned when a backend call carries no visitor id.
	ErrVisitorRequired = errors.New("visitor id is required")
	// ErrKeyRequired is returned when a backend call carries no key.
	ErrKeyRequired = errors.New("storage key is required")
)

// Backend persists values for many visitors at once.
type Backend interface {
	// Get returns the stored value; found is false when the key is absent.
	Get(ctx context.Context, visitorID, key string) (value string, found bool, err error)
	Set(ctx context.Context, visitorID, key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, visitorID, key string) error
}

// Storage is a Backend bound to one visitor.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

type scoped struct {
	backend   Backend
	visitorID string
}

// Scope binds backend to visitorID.
func Scope(backend Backend, visitorID string) Storage {
	return &scoped{backend: backend, visitorID: strings.TrimSpace(visitorID)}
}

func (s *scoped) GetItem(ctx context.Context, key string) (string, bool, error) {
	return s.backend.Get(ctx, s.visitorID, key)
}

func (s *scoped) SetItem(ctx context.Context, key, value string) error {
	return s.backend.Set(ctx, s.visitorID, key, value)
}

func (s *scoped) RemoveItem(ctx context.Context, key string) error {
	return s.backend.Remove(ctx, s.visitorID, key)
}

// ValidateAddress normalizes and checks a visitor/key pair for adapters.
func ValidateAddress(visitorID, key string) (string, string, error) {
	visitorID = strings.TrimSpace(visitorID)
	key = strings.TrimSpace(key)
	if visitorID == "" {
		return "", "", ErrVisitorRequired
	}
	if key == "" {
		return "", "", ErrKeyRequired
	}
	return visitorID, key, nil
}
