package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/game-storefront/internal/domains/session/domain"
)

var (
	// ErrInvalidInput signals the request violated a session invariant.
	ErrInvalidInput = errors.New("invalid session input")
	// ErrNotSignedIn is returned by operations that need a current session.
	ErrNotSignedIn = errors.New("no signed-in session")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrEmptyToken) ||
		errors.Is(err, domain.ErrInvalidRole) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
