package order

import (
	"context"
	"sync"
)

// memoryRepo is the process-wide order ledger: an append-only slice that
// lives exactly as long as the process. Orders are never removed.
type memoryRepo struct {
	mu     sync.Mutex
	orders []*Order
}

// NewMemoryRepository creates an empty in-memory ledger.
func NewMemoryRepository() Repository {
	return &memoryRepo{}
}

// clone copies the order and its item slice so callers cannot mutate
// ledger state through the returned pointer.
func clone(o *Order) *Order {
	copied := *o
	copied.Items = append(copied.Items[:0:0], o.Items...)
	return &copied
}

func (r *memoryRepo) Insert(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, clone(o))
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return clone(o), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) SetStatus(ctx context.Context, id string, status Status) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			return clone(o), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders), nil
}
