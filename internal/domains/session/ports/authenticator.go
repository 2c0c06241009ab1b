package ports

import (
	"context"

	"github.com/Apurer/game-storefront/internal/domains/session/domain"
)

// ProfileUpdate carries optional profile changes; empty fields stay as they are.
type ProfileUpdate struct {
	Name     string
	Email    string
	Password string
}

// Authenticator is the remote authority that issues sessions.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, name, email, password string) (*domain.Session, error)
	UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*domain.Session, error)
}
