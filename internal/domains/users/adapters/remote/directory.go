package remote

import (
	"context"
	"errors"

	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	"github.com/Apurer/game-storefront/internal/domains/users/domain"
	"github.com/Apurer/game-storefront/internal/domains/users/ports"
)

var _ ports.Directory = (*Directory)(nil)

// Directory lists and registers accounts through the shop API.
type Directory struct {
	client *shop.Client
}

func NewDirectory(client *shop.Client) *Directory {
	return &Directory{client: client}
}

func (d *Directory) List(ctx context.Context, token string) ([]domain.Account, error) {
	if d == nil || d.client == nil {
		return nil, errors.New("remote directory not configured")
	}
	users, err := d.client.ListUsers(ctx, shop.WithBearer(token))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Account, 0, len(users))
	for _, u := range users {
		out = append(out, domain.Account{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      domain.Role(u.Role),
			CreatedAt: u.CreatedAt,
		})
	}
	return out, nil
}

// Create goes through the public registration endpoint with an explicit role.
func (d *Directory) Create(ctx context.Context, token string, account domain.NewAccount) (*domain.Account, error) {
	if d == nil || d.client == nil {
		return nil, errors.New("remote directory not configured")
	}
	resp, err := d.client.Register(ctx, shop.Registration{
		Name:     account.Name,
		Email:    account.Email,
		Password: account.Password,
		Role:     string(account.Role),
	}, shop.WithBearer(token))
	if err != nil {
		return nil, err
	}
	role := domain.Role(resp.Role)
	if role == "" {
		role = account.Role
	}
	return &domain.Account{ID: resp.ID, Name: resp.Name, Email: resp.Email, Role: role}, nil
}
