package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	"github.com/Apurer/game-storefront/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals that the request violated catalog invariants.
	ErrInvalidInput = errors.New("invalid catalog input")
	// ErrGameNotFound is returned when the shop API has no game with the id.
	ErrGameNotFound = errors.New("game not found")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, shop.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrGameNotFound, err)
	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidStock),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrUnknownGenre),
		errors.Is(err, domain.ErrUnknownPlatform):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
