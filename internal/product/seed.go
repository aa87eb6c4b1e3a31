package product

// DefaultProducts is the starter catalog inserted when the products table is
// empty. The first two ids are referenced by the default cart lines.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "e43638ce-6aa0-4b85-b27f-e1d07eb678c6",
			Image:       "images/products/athletic-cotton-socks-6-pairs.jpg",
			Name:        "Black and Gray Athletic Cotton Socks - 6 Pairs",
			RatingStars: 4.5,
			RatingCount: 87,
			PriceCents:  1090,
			Keywords:    []string{"socks", "sports", "apparel"},
		},
		{
			ID:          "15b6fc6f-327a-4ec4-896f-486349e85a3d",
			Image:       "images/products/intermediate-composite-basketball.jpg",
			Name:        "Intermediate Size Basketball",
			RatingStars: 4,
			RatingCount: 127,
			PriceCents:  2095,
			Keywords:    []string{"sports", "basketballs"},
		},
		{
			ID:          "83d4ca15-0f35-48f5-b7a3-1ea210004f2e",
			Image:       "images/products/adults-plain-cotton-tshirt-2-pack-teal.jpg",
			Name:        "Adults Plain Cotton T-Shirt - 2 Pack",
			RatingStars: 4.5,
			RatingCount: 56,
			PriceCents:  799,
			Keywords:    []string{"tshirts", "apparel", "mens"},
		},
		{
			ID:          "54e0eccd-8f36-462b-b68a-8182611d9add",
			Image:       "images/products/black-2-slot-toaster.jpg",
			Name:        "2 Slot Toaster - Black",
			RatingStars: 5,
			RatingCount: 2197,
			PriceCents:  1899,
			Keywords:    []string{"toaster", "kitchen", "appliances"},
		},
		{
			ID:          "3ebe75dc-64d2-4137-8860-1f5a963e534b",
			Image:       "images/products/6-piece-white-dinner-plate-set.jpg",
			Name:        "6 Piece White Dinner Plate Set",
			RatingStars: 4,
			RatingCount: 37,
			PriceCents:  2067,
			Keywords:    []string{"plates", "kitchen", "dining"},
		},
	}
}
