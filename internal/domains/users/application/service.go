package application

import (
	"context"

	"github.com/Apurer/game-storefront/internal/domains/users/domain"
	"github.com/Apurer/game-storefront/internal/domains/users/ports"
)

// Service backs the admin user-management pages.
type Service struct {
	directory ports.Directory
}

func NewService(directory ports.Directory) *Service {
	return &Service{directory: directory}
}

func (s *Service) List(ctx context.Context, token string) ([]domain.Account, error) {
	accounts, err := s.directory.List(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	return accounts, nil
}

// Count returns the number of accounts.
func (s *Service) Count(ctx context.Context, token string) (int, error) {
	accounts, err := s.List(ctx, token)
	if err != nil {
		return 0, err
	}
	return len(accounts), nil
}

// Create registers an account on behalf of an admin.
func (s *Service) Create(ctx context.Context, token string, account domain.NewAccount) (*domain.Account, error) {
	if err := account.Normalize(); err != nil {
		return nil, mapError(err)
	}
	created, err := s.directory.Create(ctx, token, account)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}
