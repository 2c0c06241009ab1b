package mapper

import (
	"github.com/Apurer/game-storefront/internal/domains/cart/domain"
	"github.com/Apurer/game-storefront/internal/domains/cart/ports"
)

// CartItem is the JSON shape of one game in the cart.
type CartItem struct {
	ID    string  `json:"_id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Genre string  `json:"genre,omitempty"`
	Image string  `json:"image,omitempty"`
}

// Cart is the GET /cart payload.
type Cart struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`
	Total float64    `json:"total"`
}

// Mutation answers every cart change with what happened and the derived view.
type Mutation struct {
	Outcome string  `json:"outcome"`
	ItemID  string  `json:"itemId,omitempty"`
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
}

// AddItem is the body of POST /cart/items.
type AddItem struct {
	GameID string `json:"gameId" binding:"required"`
}

func FromItem(item domain.CartItem) CartItem {
	return CartItem(item)
}

func FromStore(store ports.Store) Cart {
	items := store.Items()
	out := Cart{Items: make([]CartItem, 0, len(items)), Count: store.Count(), Total: store.Total()}
	for _, item := range items {
		out.Items = append(out.Items, FromItem(item))
	}
	return out
}

func FromOutcome(outcome domain.Outcome, itemID string, store ports.Store) Mutation {
	return Mutation{
		Outcome: string(outcome),
		ItemID:  itemID,
		Count:   store.Count(),
		Total:   store.Total(),
	}
}
