package payment

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/noir-essentials/storefront-backend/internal/modules/order"
)

// Service defines the simulated bank-transfer payment flow. It owns no
// state of its own: confirmation and cancellation are status writes
// against the order ledger.
type Service interface {
	// Account returns the escrow account for an order.
	Account(ctx context.Context, orderID string) (*Account, error)

	// Confirm marks an order as processing. When the ledger has lost the
	// order (process restart) and the caller supplies its cached
	// snapshot, the order is recreated instead; with no snapshot the
	// confirmation fails with order.ErrNotFound.
	Confirm(ctx context.Context, orderID string, fallback *order.Order) (*order.Order, error)

	// Cancel marks an order as cancelled. A missing order is treated as
	// already cleared and reported as success.
	Cancel(ctx context.Context, orderID string) (*CancelResult, error)
}

// CancelResult reports a cancellation, including the lenient
// order-already-gone case.
type CancelResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type service struct {
	gateway Gateway
	orders  order.Service
}

// NewService creates a new payment service.
func NewService(gateway Gateway, orders order.Service) Service {
	return &service{gateway: gateway, orders: orders}
}

func (s *service) Account(ctx context.Context, orderID string) (*Account, error) {
	return s.gateway.CollectionAccount(ctx, orderID)
}

func (s *service) Confirm(ctx context.Context, orderID string, fallback *order.Order) (*order.Order, error) {
	existing, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, order.ErrNotFound) {
			return nil, errors.Wrap(err, "look up order")
		}

		log.WithFields(log.Fields{"orderId": orderID}).Warn("order not found in ledger for payment confirmation")
		if fallback == nil {
			return nil, order.ErrNotFound
		}
		recreated, err := s.orders.Reconcile(ctx, fallback)
		if err != nil {
			return nil, errors.Wrap(err, "recreate order from client snapshot")
		}
		return recreated, nil
	}

	confirmed, err := s.orders.MarkProcessing(ctx, existing.ID)
	if err != nil {
		return nil, errors.Wrap(err, "mark order processing")
	}
	log.WithFields(log.Fields{"orderId": orderID}).Info("payment confirmed, order processing")
	return confirmed, nil
}

func (s *service) Cancel(ctx context.Context, orderID string) (*CancelResult, error) {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			// Cancellation is idempotent by intent: the order may already
			// have been cleared.
			log.WithFields(log.Fields{"orderId": orderID}).Warn("order not found for payment cancellation")
			return &CancelResult{
				Success: true,
				Message: "Payment cancelled (order may have already been cleared)",
			}, nil
		}
		return nil, errors.Wrap(err, "look up order")
	}

	if _, err := s.orders.MarkCancelled(ctx, orderID); err != nil {
		return nil, errors.Wrap(err, "mark order cancelled")
	}
	log.WithFields(log.Fields{"orderId": orderID}).Info("payment cancelled")
	return &CancelResult{Success: true}, nil
}
