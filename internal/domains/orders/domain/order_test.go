package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	cartdomain "github.com/Apurer/game-storefront/internal/domains/cart/domain"
)

func TestNewCheckoutRequest(t *testing.T) {
	_, err := NewCheckoutRequest(nil, PaymentOnline)
	require.ErrorIs(t, err, ErrEmptyCart)

	items := []cartdomain.CartItem{
		{ID: "g1", Title: "Hades", Price: 24.99, Image: "h.png"},
		{ID: "g2", Title: "Celeste", Price: 19.99, Image: "c.png"},
	}
	req, err := NewCheckoutRequest(items, "")
	require.NoError(t, err)
	require.Equal(t, PaymentCashOnDelivery, req.PaymentMethod)
	require.InDelta(t, 44.98, req.Total, 1e-9)
	require.Equal(t, []Line{
		{GameID: "g1", Title: "Hades", Price: 24.99, Image: "h.png"},
		{GameID: "g2", Title: "Celeste", Price: 19.99, Image: "c.png"},
	}, req.Lines)

	_, err = NewCheckoutRequest(items, "Barter")
	require.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestFingerprint(t *testing.T) {
	items := []cartdomain.CartItem{{ID: "g1", Title: "Hades", Price: 24.99}}
	req, err := NewCheckoutRequest(items, PaymentOnline)
	require.NoError(t, err)

	require.Equal(t, req.Fingerprint("v1"), req.Fingerprint("v1"))
	require.NotEqual(t, req.Fingerprint("v1"), req.Fingerprint("v2"))
	require.Len(t, req.Fingerprint("v1"), 32)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("delivered")
	require.NoError(t, err)
	require.Equal(t, StatusDelivered, s)

	_, err = ParseStatus("shipped")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestFilterOrdersAndRevenue(t *testing.T) {
	orders := []Order{
		{ID: "abc123", User: &UserSummary{Name: "Ada"}, Total: 10},
		{ID: "def456", User: &UserSummary{Name: "Bob"}, Total: 5.5},
		{ID: "ghi789", Total: 1},
	}
	require.Len(t, FilterOrders(orders, ""), 3)
	require.Equal(t, "abc123", FilterOrders(orders, "ADA")[0].ID)
	require.Equal(t, "def456", FilterOrders(orders, "456")[0].ID)
	require.Empty(t, FilterOrders(orders, "zed"))
	require.InDelta(t, 16.5, Revenue(orders), 1e-9)
}
