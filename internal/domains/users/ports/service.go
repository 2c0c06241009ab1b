package ports

import (
	"context"

	"github.com/Apurer/game-storefront/internal/domains/users/domain"
)

// Directory is the shop API's account registry. Every call needs an admin token.
type Directory interface {
	List(ctx context.Context, token string) ([]domain.Account, error)
	Create(ctx context.Context, token string, account domain.NewAccount) (*domain.Account, error)
}
