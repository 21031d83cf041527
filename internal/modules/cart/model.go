package cart

import "github.com/noir-essentials/storefront-backend/internal/modules/catalog"

// Item is a product plus the quantity of it sitting in a cart.
// Quantity is always >= 1 while the item is present; an item whose
// quantity drops to zero is removed, never retained.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// AddItemRequest is the payload for adding a product to the cart.
// Quantity is decoded as a float so fractional input can be floored the
// same way the storefront client does.
type AddItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// UpdateItemRequest is the payload for replacing a cart item's quantity.
type UpdateItemRequest struct {
	Quantity float64 `json:"quantity"`
}
