package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	"github.com/Apurer/game-storefront/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrNotSignedIn is returned when an order operation has no session token.
	ErrNotSignedIn = errors.New("sign in to place and view orders")
	// ErrOrderNotFound is returned when the shop API has no such order.
	ErrOrderNotFound = errors.New("order not found")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrInvalidLine):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, shop.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	default:
		return err
	}
}
