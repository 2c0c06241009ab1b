// Package domain models the cart: an ordered set of item snapshots unique by
// product id, with no quantities.
package domain

// Cart is the pure collection behind the store. The zero value is an empty cart.
type Cart struct {
	items []CartItem
}

// NewCart rebuilds a cart from items, dropping invalid entries and keeping the
// first occurrence of a repeated id.
func NewCart(items []CartItem) (*Cart, int) {
	c := &Cart{}
	dropped := 0
	for _, item := range items {
		if c.Add(item) != OutcomeAdded {
			dropped++
		}
	}
	return c, dropped
}

// Add appends item unless it is invalid or its id is already present.
func (c *Cart) Add(item CartItem) Outcome {
	if item.Validate() != nil {
		return OutcomeInvalid
	}
	if c.index(item.ID) >= 0 {
		return OutcomeDuplicate
	}
	c.items = append(c.items, item)
	return OutcomeAdded
}

// Remove drops the entry with id, keeping the order of the rest.
func (c *Cart) Remove(id string) Outcome {
	idx := c.index(id)
	if idx < 0 {
		return OutcomeNotFound
	}
	c.items = append(c.items[:idx:idx], c.items[idx+1:]...)
	return OutcomeRemoved
}

// RemoveAll drops every entry whose id is in ids and reports how many went.
func (c *Cart) RemoveAll(ids []string) int {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := c.items[:0:0]
	for _, item := range c.items {
		if _, ok := drop[item.ID]; !ok {
			kept = append(kept, item)
		}
	}
	removed := len(c.items) - len(kept)
	c.items = kept
	return removed
}

func (c *Cart) Clear() Outcome {
	c.items = nil
	return OutcomeCleared
}

func (c *Cart) Contains(id string) bool {
	return c.index(id) >= 0
}

func (c *Cart) Count() int {
	return len(c.items)
}

// Total sums unit prices in insertion order.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price
	}
	return total
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) index(id string) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
