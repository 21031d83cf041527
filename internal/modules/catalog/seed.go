package catalog

var noirEssentials = StoreInfo{
	ID:          "store-1",
	Name:        "Noir Essentials",
	Verified:    true,
	Address:     "14B Charcoal Grove, Victoria Island, Lagos",
	Description: "Noir Essentials is the intersection of raw minimalism and high-end durability, made for those who find power in the shadows.",
}

// SeedProducts returns the demo storefront's catalog.
func SeedProducts() []*Product {
	return []*Product{
		{
			ID:          "1",
			Name:        "Addisyn Shoulder Bag",
			Price:       76000,
			Image:       "/images/products/shoulder-bag.jpg",
			Description: "A beautiful crescent-shaped shoulder bag with premium leather and gold hardware. Perfect for everyday use.",
			Store:       noirEssentials,
		},
		{
			ID:          "2",
			Name:        "Birkenstock Clogs",
			Price:       35000,
			Image:       "/images/products/birkenstock.jpg",
			Description: "Classic Birkenstock clogs in light beige suede with cork soles. Comfortable and stylish.",
			Store:       noirEssentials,
		},
		{
			ID:          "3",
			Name:        "Apple Bundle - MacBook",
			Price:       1359000,
			Image:       "/images/products/macbook.jpg",
			Description: "Complete Apple MacBook bundle with all accessories included. Premium quality and performance.",
			Store:       noirEssentials,
		},
		{
			ID:          "4",
			Name:        "Marvel Women's X-Men T-Shirt",
			Price:       12000,
			Image:       "/images/products/tshirt.jpg",
			Description: "Comfortable black t-shirt featuring X-Men design. Made from premium cotton.",
			Store:       noirEssentials,
		},
	}
}
