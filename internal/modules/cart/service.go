package cart

import (
	"context"
	"math"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/noir-essentials/storefront-backend/internal/modules/catalog"
)

// ProductFinder resolves product ids against the catalog.
type ProductFinder interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

// Service defines cart business logic.
type Service interface {
	// Get returns a snapshot of the cart.
	Get(ctx context.Context, key string) ([]*Item, error)

	// Add puts qty of a product into the cart, merging with any existing
	// entry. Quantity is coerced to an integer >= 1.
	Add(ctx context.Context, key string, req AddItemRequest) ([]*Item, error)

	// Update replaces an item's quantity. Quantity is coerced to an
	// integer >= 0; zero removes the item entirely.
	Update(ctx context.Context, key string, productID string, req UpdateItemRequest) ([]*Item, error)

	// Remove deletes one item from the cart.
	Remove(ctx context.Context, key string, productID string) ([]*Item, error)

	// Clear empties the cart.
	Clear(ctx context.Context, key string) error
}

type service struct {
	repo    Repository
	catalog ProductFinder
}

// NewService creates a new cart service.
func NewService(repo Repository, catalog ProductFinder) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) Get(ctx context.Context, key string) ([]*Item, error) {
	return s.repo.Items(ctx, key)
}

func (s *service) Add(ctx context.Context, key string, req AddItemRequest) ([]*Item, error) {
	if strings.TrimSpace(req.ProductID) == "" {
		return nil, ErrInvalidProductID
	}

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrap(err, "resolve product")
	}

	qty := int(math.Floor(req.Quantity))
	if qty < 1 {
		qty = 1
	}

	items, err := s.repo.Add(ctx, key, product, qty)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"session":   key,
		"productId": req.ProductID,
		"quantity":  qty,
		"cartSize":  len(items),
	}).Info("item added to cart")
	return items, nil
}

func (s *service) Update(ctx context.Context, key string, productID string, req UpdateItemRequest) ([]*Item, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, ErrInvalidProductID
	}

	qty := int(math.Floor(req.Quantity))
	if qty < 0 {
		qty = 0
	}

	items, err := s.repo.SetQuantity(ctx, key, productID, qty)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"session":   key,
		"productId": productID,
		"quantity":  qty,
		"cartSize":  len(items),
	}).Info("cart item updated")
	return items, nil
}

func (s *service) Remove(ctx context.Context, key string, productID string) ([]*Item, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, ErrInvalidProductID
	}

	items, err := s.repo.Remove(ctx, key, productID)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"session":   key,
		"productId": productID,
		"cartSize":  len(items),
	}).Info("cart item removed")
	return items, nil
}

func (s *service) Clear(ctx context.Context, key string) error {
	return s.repo.Clear(ctx, key)
}
