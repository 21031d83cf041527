package cart

import (
	"context"
	"errors"

	"github.com/noir-essentials/storefront-backend/internal/modules/catalog"
)

var (
	// ErrItemNotFound is returned when a product id is not in the cart.
	ErrItemNotFound = errors.New("item not found in cart")
	// ErrInvalidProductID is returned for an empty or malformed product id.
	ErrInvalidProductID = errors.New("invalid product ID")
)

// Repository defines data access for carts. Every cart is addressed by a
// session key; mutations on the same key are serialized by the
// implementation, and every returned slice is a fresh snapshot that does
// not alias internal state.
type Repository interface {
	// Items returns a snapshot of the cart for the given key.
	Items(ctx context.Context, key string) ([]*Item, error)

	// Add merges qty of product into the cart, summing quantities when the
	// product is already present.
	Add(ctx context.Context, key string, product *catalog.Product, qty int) ([]*Item, error)

	// SetQuantity replaces an item's quantity; qty <= 0 removes the item.
	SetQuantity(ctx context.Context, key string, productID string, qty int) ([]*Item, error)

	// Remove deletes exactly one item from the cart.
	Remove(ctx context.Context, key string, productID string) ([]*Item, error)

	// Clear empties the cart unconditionally.
	Clear(ctx context.Context, key string) error
}
