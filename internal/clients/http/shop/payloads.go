package shop

import (
	"bytes"
	"encoding/json"
	"time"
)

// Game is the catalog item as served by the shop API.
type Game struct {
	ID            string   `json:"_id,omitempty"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Genre         string   `json:"genre"`
	Image         string   `json:"image"`
	ImagePublicID string   `json:"imagePublicId,omitempty"`
	DownloadURL   string   `json:"downloadURL,omitempty"`
	Stock         int      `json:"stock"`
	Platform      []string `json:"platform,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
}

// OrderLine is one purchased game inside an order.
type OrderLine struct {
	Game  string  `json:"game"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Games         []OrderLine `json:"games"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"paymentMethod"`
}

// OrderUser is the customer summary embedded in admin order listings.
type OrderUser struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts both the populated object and a bare account id.
func (u *OrderUser) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*u = OrderUser{ID: id}
		return nil
	}
	type plain OrderUser
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*u = OrderUser(decoded)
	return nil
}

// Order is an order as served by the shop API.
type Order struct {
	ID            string      `json:"_id"`
	User          *OrderUser  `json:"user,omitempty"`
	Games         []OrderLine `json:"games"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// UpdateOrderStatusRequest is the body of PUT /orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// ProfileUpdate is the body of PUT /auth/profile. Empty fields are left unchanged.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// AuthResponse is returned by the auth endpoints and carries the bearer token.
type AuthResponse struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// User is an account as listed by GET /users.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}
