package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/noir-essentials/storefront-backend/internal/modules/cart"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// validTransitions defines the allowed status state machine. Completed
// and cancelled are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseStatus normalizes and checks a status string from the wire.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var (
	// ErrNotFound is returned when an order id is not in the ledger. The
	// ledger is volatile, so callers see this after every restart.
	ErrNotFound = errors.New("order not found")
	// ErrEmptyCart is returned when an order is created with nothing in it.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnknownStatus is returned for a status value outside the lifecycle.
	ErrUnknownStatus = errors.New("unknown order status")
	// ErrInvalidTransition is returned for a legal status that the order
	// cannot reach from its current state.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidSnapshot is returned when a reconciliation snapshot is
	// missing its id or items.
	ErrInvalidSnapshot = errors.New("invalid order snapshot")
)

// MissingFieldsError lists the required contact fields that were blank.
type MissingFieldsError struct{ Fields []string }

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// ContactInfo is the transient customer record carried from the checkout
// contact step into the order. The first five fields are required;
// AccountDetails routes refunds.
type ContactInfo struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Address         string `json:"address" validate:"required"`
	AccountDetails  string `json:"accountDetails" validate:"required"`
	Note            string `json:"note"`
	DeliveryAddress string `json:"deliveryAddress"`
	BankName        string `json:"bankName"`
}

// Order is a priced snapshot of a cart plus the customer's contact info.
type Order struct {
	ID           string      `json:"id"`
	Items        []cart.Item `json:"items"`
	ContactInfo  ContactInfo `json:"contactInfo"`
	Subtotal     float64     `json:"subtotal"`
	Discount     float64     `json:"discount"`
	Total        float64     `json:"total"`
	DiscountCode string      `json:"discountCode,omitempty"`
	Status       Status      `json:"status"`
}

// CreateOrderRequest is the payload for creating a new order. CartItems,
// when non-empty, overrides the server-side cart snapshot.
type CreateOrderRequest struct {
	ContactInfo  *ContactInfo `json:"contactInfo"`
	DiscountCode string       `json:"discountCode,omitempty"`
	CartItems    []cart.Item  `json:"cartItems,omitempty"`
}

// UpdateStatusRequest is the payload for moving an order along its
// lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
