package catalog

import "context"

// memoryRepo serves the catalog from a fixed in-memory slice. The catalog
// is loaded once at startup and never mutated, so no locking is needed.
type memoryRepo struct {
	products []*Product
	byID     map[string]*Product
}

// NewMemoryRepository builds a read-only repository from seed products.
func NewMemoryRepository(products []*Product) Repository {
	byID := make(map[string]*Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &memoryRepo{products: products, byID: byID}
}

func (r *memoryRepo) List(ctx context.Context) ([]*Product, error) {
	out := make([]*Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}
