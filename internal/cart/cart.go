package cart

import (
	"encoding/json"
	"time"

	"github.com/wichananm65/shop-backend/internal/product"
)

const (
	MinQuantity = 1
	MaxQuantity = 10

	// ExpandProduct asks ListItems to attach the full product record.
	ExpandProduct = "product"
)

// CartLine is one product-quantity-delivery tuple in the cart.
type CartLine struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"productId"`
	Quantity         int       `json:"quantity"`
	DeliveryOptionID string    `json:"deliveryOptionId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Patch lists the fields to overwrite on an existing line. Nil fields keep
// their current value.
type Patch struct {
	Quantity         *int
	DeliveryOptionID *string
}

func (p Patch) empty() bool {
	return p.Quantity == nil && p.DeliveryOptionID == nil
}

// Item is a cart line as returned by ListItems. When the listing was
// expanded, Product holds the catalog record or nil when it could not be
// resolved, and the JSON form carries a "product" key either way.
type Item struct {
	CartLine
	Product  *product.Product
	expanded bool
}

func (i Item) MarshalJSON() ([]byte, error) {
	if !i.expanded {
		return json.Marshal(i.CartLine)
	}
	return json.Marshal(struct {
		CartLine
		Product *product.Product `json:"product"`
	}{i.CartLine, i.Product})
}
