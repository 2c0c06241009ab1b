package domain

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrEmptyItemID   = errors.New("cart item id is required")
	ErrNegativePrice = errors.New("cart item price must be a non-negative number")
)

// CartItem is a snapshot of a game taken when it was added. Later catalog
// edits do not reach items already in the cart.
type CartItem struct {
	ID    string
	Title string
	Price float64
	Genre string
	Image string
}

// NewCartItem validates and constructs a CartItem.
func NewCartItem(id, title string, price float64, genre, image string) (CartItem, error) {
	item := CartItem{
		ID:    strings.TrimSpace(id),
		Title: strings.TrimSpace(title),
		Price: price,
		Genre: strings.TrimSpace(genre),
		Image: strings.TrimSpace(image),
	}
	if err := item.Validate(); err != nil {
		return CartItem{}, err
	}
	return item, nil
}

// Validate enforces the snapshot invariants.
func (i CartItem) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrEmptyItemID
	}
	if i.Price < 0 || math.IsNaN(i.Price) || math.IsInf(i.Price, 0) {
		return ErrNegativePrice
	}
	return nil
}
