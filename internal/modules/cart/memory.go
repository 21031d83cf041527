package cart

import (
	"context"
	"sync"

	"github.com/noir-essentials/storefront-backend/internal/modules/catalog"
)

// memoryRepo holds carts in process memory, keyed by session. Each cart
// carries its own mutex so only one mutation is in flight per key; the
// outer mutex only guards the map itself. Everything is lost on restart,
// which is part of the contract.
type memoryRepo struct {
	mu    sync.Mutex
	carts map[string]*sessionCart
}

type sessionCart struct {
	mu    sync.Mutex
	items []*Item
}

// NewMemoryRepository creates an empty in-memory cart store.
func NewMemoryRepository() Repository {
	return &memoryRepo{carts: make(map[string]*sessionCart)}
}

func (r *memoryRepo) cart(key string) *sessionCart {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[key]
	if !ok {
		c = &sessionCart{}
		r.carts[key] = c
	}
	return c
}

// snapshot copies the slice and the items so callers never alias the
// store's internal state. Must be called with c.mu held.
func (c *sessionCart) snapshot() []*Item {
	out := make([]*Item, len(c.items))
	for i, it := range c.items {
		copied := *it
		out[i] = &copied
	}
	return out
}

func (r *memoryRepo) Items(ctx context.Context, key string) ([]*Item, error) {
	c := r.cart(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(), nil
}

func (r *memoryRepo) Add(ctx context.Context, key string, product *catalog.Product, qty int) ([]*Item, error) {
	c := r.cart(key)
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.items {
		if it.Product.ID == product.ID {
			it.Quantity += qty
			return c.snapshot(), nil
		}
	}
	c.items = append(c.items, &Item{Product: *product, Quantity: qty})
	return c.snapshot(), nil
}

func (r *memoryRepo) SetQuantity(ctx context.Context, key string, productID string, qty int) ([]*Item, error) {
	c := r.cart(key)
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i, it := range c.items {
		if it.Product.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	if qty <= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	} else {
		c.items[idx].Quantity = qty
	}
	return c.snapshot(), nil
}

func (r *memoryRepo) Remove(ctx context.Context, key string, productID string) ([]*Item, error) {
	c := r.cart(key)
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, it := range c.items {
		if it.Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.snapshot(), nil
		}
	}
	return nil, ErrItemNotFound
}

func (r *memoryRepo) Clear(ctx context.Context, key string) error {
	c := r.cart(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return nil
}
