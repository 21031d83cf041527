package catalog

// StoreInfo describes the storefront a product belongs to.
type StoreInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Verified    bool   `json:"verified"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// Product is a purchasable item in the static demo catalog.
// Prices are whole, minor-unit-free amounts (76000 = ₦76,000).
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Store       StoreInfo `json:"store"`
}
