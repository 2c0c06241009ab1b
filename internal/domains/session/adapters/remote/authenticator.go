package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	"github.com/Apurer/game-storefront/internal/domains/session/domain"
	"github.com/Apurer/game-storefront/internal/domains/session/ports"
)

var _ ports.Authenticator = (*Authenticator)(nil)

// Authenticator delegates authentication to the shop API.
type Authenticator struct {
	client *shop.Client
}

func NewAuthenticator(client *shop.Client) *Authenticator {
	return &Authenticator{client: client}
}

func (a *Authenticator) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if err := a.ensureClient(); err != nil {
		return nil, err
	}
	resp, err := a.client.Login(ctx, shop.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return toSession(resp)
}

func (a *Authenticator) Register(ctx context.Context, name, email, password string) (*domain.Session, error) {
	if err := a.ensureClient(); err != nil {
		return nil, err
	}
	resp, err := a.client.Register(ctx, shop.Registration{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return toSession(resp)
}

func (a *Authenticator) UpdateProfile(ctx context.Context, token string, update ports.ProfileUpdate) (*domain.Session, error) {
	if err := a.ensureClient(); err != nil {
		return nil, err
	}
	resp, err := a.client.UpdateProfile(ctx, shop.ProfileUpdate{
		Name:     update.Name,
		Email:    update.Email,
		Password: update.Password,
	}, shop.WithBearer(token))
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		// Some deployments omit the token on profile updates; keep the current one.
		resp.Token = token
	}
	return toSession(resp)
}

func (a *Authenticator) ensureClient() error {
	if a == nil || a.client == nil {
		return errors.New("remote authenticator not configured")
	}
	return nil
}

func toSession(resp *shop.AuthResponse) (*domain.Session, error) {
	if resp == nil {
		return nil, errors.New("shop API returned an empty session")
	}
	session, err := domain.NewSession(resp.Name, resp.Email, domain.Role(resp.Role), resp.Token)
	if err != nil {
		return nil, fmt.Errorf("shop API returned an invalid session: %w", err)
	}
	return session, nil
}
