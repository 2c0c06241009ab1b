package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	cartdomain "github.com/Apurer/game-storefront/internal/domains/cart/domain"
)

// CheckoutRequest is the order submitted once per checkout.
type CheckoutRequest struct {
	Lines         []Line
	Total         float64
	PaymentMethod PaymentMethod
}

// NewCheckoutRequest snapshots the cart into an order request. The total is
// the sum of unit prices in cart order.
func NewCheckoutRequest(items []cartdomain.CartItem, method PaymentMethod) (*CheckoutRequest, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if method == "" {
		method = PaymentCashOnDelivery
	}
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return nil, err
	}
	req := &CheckoutRequest{Lines: make([]Line, 0, len(items)), PaymentMethod: method}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, ErrInvalidLine
		}
		req.Lines = append(req.Lines, Line{GameID: item.ID, Title: item.Title, Price: item.Price, Image: item.Image})
		req.Total += item.Price
	}
	return req, nil
}

// GameIDs lists the submitted game ids in line order.
func (r CheckoutRequest) GameIDs() []string {
	ids := make([]string, 0, len(r.Lines))
	for _, line := range r.Lines {
		ids = append(ids, line.GameID)
	}
	return ids
}

// Fingerprint derives a stable key from the visitor and the request content,
// so resubmitting the same cart maps onto the same checkout.
func (r CheckoutRequest) Fingerprint(visitorID string) string {
	payload, _ := json.Marshal(struct {
		Visitor string
		Request CheckoutRequest
	}{strings.TrimSpace(visitorID), r})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:16])
}
