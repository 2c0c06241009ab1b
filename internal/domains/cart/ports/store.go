package ports

import (
	"context"

	"github.com/Apurer/game-storefront/internal/domains/cart/domain"
)

// Store is one visitor's cart. Mutations never fail: duplicates and missing
// ids come back as outcomes and storage failures are reported to observers.
type Store interface {
	Initialize(ctx context.Context)
	Add(ctx context.Context, item domain.CartItem) domain.Outcome
	Remove(ctx context.Context, itemID string) domain.Outcome
	// RemoveAll drops the listed ids. It reports OutcomeCleared when the cart
	// ends up empty, OutcomeRemoved when some remain and OutcomeNotFound when
	// none of the ids were present.
	RemoveAll(ctx context.Context, itemIDs []string) domain.Outcome
	Clear(ctx context.Context) domain.Outcome
	Total() float64
	Count() int
	Items() []domain.CartItem
	Subscribe(fn func(domain.Event)) (cancel func())
}
