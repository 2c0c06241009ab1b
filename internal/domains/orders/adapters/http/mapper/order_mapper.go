package mapper

import (
	"time"

	orderdomain "github.com/Apurer/game-storefront/internal/domains/orders/domain"
)

// OrderLine is the JSON shape of one purchased game.
type OrderLine struct {
	Game  string  `json:"game"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// Customer is the buyer summary shown on admin listings.
type Customer struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Order is the JSON shape of an order on the storefront pages.
type Order struct {
	ID            string      `json:"id"`
	User          *Customer   `json:"user,omitempty"`
	Games         []OrderLine `json:"games"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	CreatedAt     *time.Time  `json:"createdAt,omitempty"`
}

// Checkout is the body of POST /cart/checkout.
type Checkout struct {
	PaymentMethod string `json:"paymentMethod"`
}

// StatusUpdate is the body of PUT /admin/orders/:id/status.
type StatusUpdate struct {
	Status string `json:"status" binding:"required"`
}

// Dashboard is the admin overview payload.
type Dashboard struct {
	TotalGames   int     `json:"totalGames"`
	TotalOrders  int     `json:"totalOrders"`
	TotalUsers   int     `json:"totalUsers"`
	TotalRevenue float64 `json:"totalRevenue"`
}

func FromOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:            order.ID,
		Games:         make([]OrderLine, 0, len(order.Lines)),
		Total:         order.Total,
		PaymentMethod: string(order.PaymentMethod),
		Status:        string(order.Status),
	}
	if order.User != nil {
		out.User = &Customer{ID: order.User.ID, Name: order.User.Name, Email: order.User.Email}
	}
	for _, line := range order.Lines {
		out.Games = append(out.Games, OrderLine{Game: line.GameID, Title: line.Title, Price: line.Price, Image: line.Image})
	}
	if !order.CreatedAt.IsZero() {
		created := order.CreatedAt
		out.CreatedAt = &created
	}
	return out
}

func FromOrders(orders []orderdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for i := range orders {
		result = append(result, FromOrder(&orders[i]))
	}
	return result
}

func FromDashboard(d *orderdomain.Dashboard) Dashboard {
	if d == nil {
		return Dashboard{}
	}
	return Dashboard{
		TotalGames:   d.TotalGames,
		TotalOrders:  d.TotalOrders,
		TotalUsers:   d.TotalUsers,
		TotalRevenue: d.TotalRevenue,
	}
}
