package product

import "time"

// Product represents a catalog entry and maps to the `products` table.
// JSON tags follow the flat camelCase shape served by GET /products.
type Product struct {
	ID          string    `json:"id"`
	Image       string    `json:"image"`
	Name        string    `json:"name"`
	RatingStars float64   `json:"ratingStars"`
	RatingCount int       `json:"ratingCount"`
	PriceCents  int       `json:"priceCents"`
	Keywords    []string  `json:"keywords"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns every field problem keyed by its JSON name.
func (p Product) Validate() map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.Image == "" {
		errs["image"] = "image is required"
	}
	if p.PriceCents < 0 {
		errs["priceCents"] = "priceCents must be >= 0"
	}
	if p.RatingStars < 0 || p.RatingStars > 5 {
		errs["ratingStars"] = "ratingStars must be between 0 and 5"
	}
	if p.RatingCount < 0 {
		errs["ratingCount"] = "ratingCount must be >= 0"
	}
	return errs
}
