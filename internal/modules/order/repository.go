package order

import "context"

// Repository defines data access for the order ledger.
type Repository interface {
	// Insert appends a new order to the ledger.
	Insert(ctx context.Context, o *Order) error

	// GetByID retrieves an order. Returns ErrNotFound when absent, which
	// is an expected condition after a process restart.
	GetByID(ctx context.Context, id string) (*Order, error)

	// SetStatus overwrites an order's status without lifecycle checks.
	// Transition validation lives in the service; the payment flow's
	// degraded paths write through here directly.
	SetStatus(ctx context.Context, id string, status Status) (*Order, error)

	// Count returns the number of orders in the ledger.
	Count(ctx context.Context) (int, error)
}
