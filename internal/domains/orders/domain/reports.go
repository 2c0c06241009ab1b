package domain

import "strings"

// FilterOrders keeps orders whose buyer name or id contains term, ignoring case.
func FilterOrders(orders []Order, term string) []Order {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return orders
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		name := ""
		if o.User != nil {
			name = o.User.Name
		}
		if strings.Contains(strings.ToLower(name), needle) || strings.Contains(strings.ToLower(o.ID), needle) {
			out = append(out, o)
		}
	}
	return out
}

// Revenue sums order totals.
func Revenue(orders []Order) float64 {
	total := 0.0
	for _, o := range orders {
		total += o.Total
	}
	return total
}

// Dashboard is the admin overview.
type Dashboard struct {
	TotalGames   int
	TotalOrders  int
	TotalUsers   int
	TotalRevenue float64
}
