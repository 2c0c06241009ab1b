package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates order progression as tracked by the shop API.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPaid      Status = "Paid"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists the values an admin may set, in display order.
var Statuses = []Status{StatusPending, StatusPaid, StatusDelivered, StatusCancelled}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "COD"
	PaymentMarkedPaid     PaymentMethod = "Marked Paid"
	PaymentOnline         PaymentMethod = "Online"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidStatus        = errors.New("order status is invalid")
	ErrInvalidPaymentMethod = errors.New("payment method is invalid")
	ErrInvalidLine          = errors.New("order line is invalid")
)

// Line is one purchased game. Price is the unit price at checkout time.
type Line struct {
	GameID string
	Title  string
	Price  float64
	Image  string
}

// UserSummary identifies the buyer on admin listings.
type UserSummary struct {
	ID    string
	Name  string
	Email string
}

// Order is a placed order.
type Order struct {
	ID            string
	User          *UserSummary
	Lines         []Line
	Total         float64
	PaymentMethod PaymentMethod
	Status        Status
	CreatedAt     time.Time
}

// ParseStatus maps a wire or form value onto a Status, ignoring case.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	for _, s := range Statuses {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// ParsePaymentMethod maps a form value onto a PaymentMethod. Empty means COD.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PaymentCashOnDelivery, nil
	}
	for _, m := range []PaymentMethod{PaymentCashOnDelivery, PaymentMarkedPaid, PaymentOnline} {
		if strings.EqualFold(raw, string(m)) {
			return m, nil
		}
	}
	return "", ErrInvalidPaymentMethod
}
