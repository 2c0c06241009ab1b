package ports

import (
	"context"

	cartdomain "github.com/Apurer/game-storefront/internal/domains/cart/domain"
	"github.com/Apurer/game-storefront/internal/domains/orders/domain"
)

// Gateway talks to the shop API's order endpoints on behalf of a session token.
type Gateway interface {
	Submit(ctx context.Context, token, idempotencyKey string, req domain.CheckoutRequest) (*domain.Order, error)
	Mine(ctx context.Context, token string) ([]domain.Order, error)
	ByID(ctx context.Context, token, id string) (*domain.Order, error)
	All(ctx context.Context, token string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, token, id string, status domain.Status) error
}

// CheckoutCommand is one order submission.
type CheckoutCommand struct {
	VisitorID      string
	Token          string
	IdempotencyKey string
	Request        domain.CheckoutRequest
}

// CheckoutOrchestrator submits a checkout exactly once per idempotency key.
type CheckoutOrchestrator interface {
	Submit(ctx context.Context, cmd CheckoutCommand) (*domain.Order, error)
}

// Cart is the part of the cart store checkout reads and trims.
type Cart interface {
	Items() []cartdomain.CartItem
	RemoveAll(ctx context.Context, itemIDs []string) cartdomain.Outcome
}

// GameCounter and UserCounter feed the admin dashboard.
type GameCounter interface {
	Count(ctx context.Context) (int, error)
}

type UserCounter interface {
	Count(ctx context.Context, token string) (int, error)
}

// CheckoutInput carries everything a checkout needs from the visitor.
type CheckoutInput struct {
	VisitorID      string
	Token          string
	PaymentMethod  string
	IdempotencyKey string
	Cart           Cart
}

// Service exposes order use cases to adapters.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*domain.Order, error)
	MyOrders(ctx context.Context, token string) ([]domain.Order, error)
	OrderByID(ctx context.Context, token, id string) (*domain.Order, error)
	AllOrders(ctx context.Context, token, search string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, token, id, status string) (domain.Status, error)
	Dashboard(ctx context.Context, token string) (*domain.Dashboard, error)
}
