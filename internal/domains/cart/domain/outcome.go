package domain

import "errors"

var (
	// ErrDuplicateItem reports an add for an id already in the cart.
	ErrDuplicateItem = errors.New("item already in cart")
	// ErrItemNotFound reports a remove for an id not in the cart.
	ErrItemNotFound = errors.New("item not in cart")
	// ErrInvalidItem reports an add for an item failing CartItem.Validate.
	ErrInvalidItem = errors.New("cart item is invalid")
)

// Outcome is what a cart mutation did. Duplicate, NotFound and Invalid leave
// the cart as it was.
type Outcome string

const (
	OutcomeAdded     Outcome = "added"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeRemoved   Outcome = "removed"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeCleared   Outcome = "cleared"
	OutcomeInvalid   Outcome = "invalid"
)

// Changed reports whether the cart contents were modified.
func (o Outcome) Changed() bool {
	return o == OutcomeAdded || o == OutcomeRemoved || o == OutcomeCleared
}

// Err maps non-fatal outcomes to their sentinel error for callers that want one.
func (o Outcome) Err() error {
	switch o {
	case OutcomeDuplicate:
		return ErrDuplicateItem
	case OutcomeNotFound:
		return ErrItemNotFound
	case OutcomeInvalid:
		return ErrInvalidItem
	default:
		return nil
	}
}
