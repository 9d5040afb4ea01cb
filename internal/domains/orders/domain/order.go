package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status enumerates the order lifecycle.
type Status string

const (
	StatusCreated   Status = "Created"
	StatusPaid      Status = "Paid"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

var (
	ErrEmptyCustomerName = errors.New("customer_name is required")
	ErrInvalidEmail      = errors.New("email is malformed")
	ErrNoItems           = errors.New("order must contain at least one item")
	ErrEmptyItemName     = errors.New("item name is required")
	ErrInvalidQuantity   = errors.New("item qty must be greater than zero")
	ErrNegativePrice     = errors.New("item unit_price_cents must not be negative")
	ErrInvalidStatus     = errors.New("order status is invalid")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// OrderItem is a single line of an order. Items are immutable once the
// order is created.
type OrderItem struct {
	Name           string `json:"name"`
	Qty            int32  `json:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Order models the purchase order aggregate. ID is assigned at creation
// and is the sole lookup key; TotalCents is always derived from Items.
type Order struct {
	ID           string
	CustomerName string
	Email        string
	Items        []OrderItem
	TotalCents   int64
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewOrder validates the inputs and constructs an order with a fresh id,
// computed total, Created status, and matching timestamps. It performs no
// I/O and owns its copy of items.
func NewOrder(customerName, email string, items []OrderItem) (*Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, ErrEmptyCustomerName
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, ErrEmptyItemName
		}
		if item.Qty <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.UnitPriceCents < 0 {
			return nil, ErrNegativePrice
		}
	}
	now := time.Now().UTC()
	order := &Order{
		ID:           uuid.NewString(),
		CustomerName: customerName,
		Email:        email,
		Items:        append([]OrderItem(nil), items...),
		TotalCents:   Total(items),
		Status:       StatusCreated,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return order, nil
}

// Total sums qty times unit price over the given items.
func Total(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += int64(item.Qty) * item.UnitPriceCents
	}
	return total
}

// UpdateStatus applies a status change and refreshes the mutation timestamp.
// Any member of the enumeration is reachable from any other.
func (o *Order) UpdateStatus(status Status) error {
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Clone returns a deep copy, so repositories never alias caller memory.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]OrderItem(nil), o.Items...)
	return &clone
}

// ParseStatus converts the raw client value into a Status, rejecting
// anything outside the closed enumeration.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !isValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusCreated, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
