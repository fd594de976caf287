package domain

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every order status, in dashboard display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "cod"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Label is the Vietnamese display name used in notification messages.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCOD:
		return "Thanh toán khi nhận hàng (COD)"
	case PaymentBankTransfer:
		return "Chuyển khoản ngân hàng"
	}
	return string(m)
}

// OrderItem is a snapshot of one purchased line. VariantName may be empty for
// single-variant products.
type OrderItem struct {
	ProductName string `json:"productName"`
	VariantName string `json:"variantName,omitempty"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

// Order is created once at checkout. TotalAmount is fixed at creation time
// from the item snapshots; Status is advanced only by operator-side actions.
type Order struct {
	ID              string
	CustomerName    string
	CustomerPhone   string
	ShippingAddress string
	PaymentMethod   PaymentMethod
	Notes           string
	Items           []OrderItem
	TotalAmount     int64
	Status          Status
	CreatedAt       time.Time
}

var (
	ErrEmptyOrder       = errors.New("order has no items")
	ErrTotalMismatch    = errors.New("order total does not match item sum")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrMissingRecipient = errors.New("missing customer name or phone")
)

func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if o.CustomerName == "" || o.CustomerPhone == "" {
		return ErrMissingRecipient
	}
	if !ValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	var sum int64
	for _, it := range o.Items {
		sum += it.Price * int64(it.Quantity)
	}
	if sum != o.TotalAmount {
		return ErrTotalMismatch
	}
	return nil
}
