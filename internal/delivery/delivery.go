package delivery

// DefaultOptionID is the slowest, free tier assigned to new cart lines.
const DefaultOptionID = "1"

// Option is a shipping speed/cost tier.
type Option struct {
	ID           string `json:"id"`
	DeliveryDays int    `json:"deliveryDays"`
	PriceCents   int    `json:"priceCents"`
}

var defaultOptions = []Option{
	{ID: "1", DeliveryDays: 7, PriceCents: 0},
	{ID: "2", DeliveryDays: 3, PriceCents: 499},
	{ID: "3", DeliveryDays: 1, PriceCents: 999},
}

// Catalog is the fixed, read-only table of delivery options. It is built
// once at startup and never mutated.
type Catalog struct {
	options []Option
}

// NewCatalog copies the given options. Passing nil yields the default tiers.
func NewCatalog(options []Option) *Catalog {
	if options == nil {
		options = defaultOptions
	}
	c := &Catalog{options: make([]Option, len(options))}
	copy(c.options, options)
	return c
}

// ListOptions returns every option in table order.
func (c *Catalog) ListOptions() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

func (c *Catalog) FindOption(id string) (Option, bool) {
	for _, o := range c.options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
