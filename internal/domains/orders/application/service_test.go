package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	cartapp "github.com/Apurer/game-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/game-storefront/internal/domains/cart/domain"
	"github.com/Apurer/game-storefront/internal/domains/orders/domain"
	"github.com/Apurer/game-storefront/internal/domains/orders/ports"
	"github.com/Apurer/game-storefront/internal/platform/localstorage"
	storagememory "github.com/Apurer/game-storefront/internal/platform/localstorage/memory"
)

type fakeGateway struct {
	submitted []domain.CheckoutRequest
	keys      []string
	submitErr error
	orders    []domain.Order
	updated   map[string]domain.Status
}

func (f *fakeGateway) Submit(_ context.Context, _ string, key string, req domain.CheckoutRequest) (*domain.Order, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, req)
	f.keys = append(f.keys, key)
	return &domain.Order{ID: "o-1", Lines: req.Lines, Total: req.Total, PaymentMethod: req.PaymentMethod, Status: domain.StatusPending}, nil
}

func (f *fakeGateway) Mine(context.Context, string) ([]domain.Order, error) { return f.orders, nil }

func (f *fakeGateway) ByID(_ context.Context, _ string, id string) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, &shop.APIError{Status: 404, Message: "Order not found"}
}

func (f *fakeGateway) All(context.Context, string) ([]domain.Order, error) { return f.orders, nil }

func (f *fakeGateway) UpdateStatus(_ context.Context, _ string, id string, status domain.Status) error {
	if f.updated == nil {
		f.updated = map[string]domain.Status{}
	}
	f.updated[id] = status
	return nil
}

type staticCount int

func (c staticCount) Count(context.Context) (int, error) { return int(c), nil }

type staticUserCount int

func (c staticUserCount) Count(context.Context, string) (int, error) { return int(c), nil }

func newCart(t *testing.T, items ...cartdomain.CartItem) *cartapp.Store {
	t.Helper()
	store := cartapp.NewStore(localstorage.Scope(storagememory.NewBackend(), "v1"))
	for _, item := range items {
		require.Equal(t, cartdomain.OutcomeAdded, store.Add(context.Background(), item))
	}
	return store
}

func TestCheckout_EmptyCartSkipsRemote(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw)

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{VisitorID: "v1", Token: "tok", Cart: newCart(t)})
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	require.Empty(t, gw.submitted)
}

func TestCheckout_RequiresSession(t *testing.T) {
	svc := NewService(&fakeGateway{})
	cart := newCart(t, cartdomain.CartItem{ID: "g1", Price: 5})

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{VisitorID: "v1", Cart: cart})
	require.ErrorIs(t, err, ErrNotSignedIn)
	require.Equal(t, 1, cart.Count())
}

func TestCheckout_SuccessClearsCart(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw)
	cart := newCart(t,
		cartdomain.CartItem{ID: "g1", Title: "Hades", Price: 24.99, Image: "h.png"},
		cartdomain.CartItem{ID: "g2", Title: "Celeste", Price: 19.99, Image: "c.png"},
	)

	order, err := svc.Checkout(context.Background(), ports.CheckoutInput{
		VisitorID:     "v1",
		Token:         "tok",
		PaymentMethod: "Online",
		Cart:          cart,
	})
	require.NoError(t, err)
	require.Equal(t, "o-1", order.ID)
	require.Len(t, gw.submitted, 1)
	require.InDelta(t, 44.98, gw.submitted[0].Total, 1e-9)
	require.Equal(t, domain.PaymentOnline, gw.submitted[0].PaymentMethod)
	require.Equal(t, gw.submitted[0].Fingerprint("v1"), gw.keys[0])
	require.Zero(t, cart.Count())
}

// addingOrchestrator submits through the gateway after adding another item to
// the cart, as a concurrent request would while the order is in flight.
type addingOrchestrator struct {
	gateway ports.Gateway
	cart    *cartapp.Store
	extra   cartdomain.CartItem
}

func (o addingOrchestrator) Submit(ctx context.Context, cmd ports.CheckoutCommand) (*domain.Order, error) {
	o.cart.Add(ctx, o.extra)
	return o.gateway.Submit(ctx, cmd.Token, cmd.IdempotencyKey, cmd.Request)
}

func TestCheckout_KeepsItemsAddedDuringSubmit(t *testing.T) {
	gw := &fakeGateway{}
	cart := newCart(t, cartdomain.CartItem{ID: "g1", Title: "Hades", Price: 24.99})
	late := cartdomain.CartItem{ID: "g2", Title: "Celeste", Price: 19.99}
	svc := NewService(gw, WithOrchestrator(addingOrchestrator{gateway: gw, cart: cart, extra: late}))

	order, err := svc.Checkout(context.Background(), ports.CheckoutInput{VisitorID: "v1", Token: "tok", Cart: cart})
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	require.Equal(t, "g1", order.Lines[0].GameID)
	require.Equal(t, []cartdomain.CartItem{late}, cart.Items())
}

func TestCheckout_FailureLeavesCart(t *testing.T) {
	gw := &fakeGateway{submitErr: errors.New("gateway timeout")}
	svc := NewService(gw)
	cart := newCart(t, cartdomain.CartItem{ID: "g1", Price: 5})

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{VisitorID: "v1", Token: "tok", Cart: cart})
	require.Error(t, err)
	require.Equal(t, 1, cart.Count())
}

func TestCheckout_InvalidPaymentMethod(t *testing.T) {
	svc := NewService(&fakeGateway{})
	cart := newCart(t, cartdomain.CartItem{ID: "g1", Price: 5})

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{VisitorID: "v1", Token: "tok", PaymentMethod: "IOU", Cart: cart})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Equal(t, 1, cart.Count())
}

func TestCheckout_ExplicitIdempotencyKeyWins(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw)
	cart := newCart(t, cartdomain.CartItem{ID: "g1", Price: 5})

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{VisitorID: "v1", Token: "tok", IdempotencyKey: "client-key", Cart: cart})
	require.NoError(t, err)
	require.Equal(t, []string{"client-key"}, gw.keys)
}

func TestOrderByID_NotFound(t *testing.T) {
	svc := NewService(&fakeGateway{})

	_, err := svc.OrderByID(context.Background(), "tok", "missing")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatus_Validates(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw)

	_, err := svc.UpdateStatus(context.Background(), "tok", "o-1", "Lost")
	require.ErrorIs(t, err, ErrInvalidInput)

	status, err := svc.UpdateStatus(context.Background(), "tok", "o-1", "paid")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaid, status)
	require.Equal(t, domain.StatusPaid, gw.updated["o-1"])
}

func TestDashboard(t *testing.T) {
	gw := &fakeGateway{orders: []domain.Order{{ID: "a", Total: 10}, {ID: "b", Total: 2.5}}}
	svc := NewService(gw, WithCounters(staticCount(7), staticUserCount(3)))

	dash, err := svc.Dashboard(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, &domain.Dashboard{TotalGames: 7, TotalOrders: 2, TotalUsers: 3, TotalRevenue: 12.5}, dash)
}
