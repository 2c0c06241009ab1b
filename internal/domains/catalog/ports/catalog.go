package ports

import (
	"context"

	"github.com/Apurer/game-storefront/internal/domains/catalog/domain"
)

// Catalog is the remote source of games. Mutations need an admin token.
type Catalog interface {
	List(ctx context.Context) ([]domain.Game, error)
	Get(ctx context.Context, id string) (*domain.Game, error)
	Create(ctx context.Context, token string, game domain.Game) (*domain.Game, error)
	Update(ctx context.Context, token, id string, game domain.Game) (*domain.Game, error)
	Delete(ctx context.Context, token, id string) error
}
