package cart

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/wichananm65/shop-backend/internal/delivery"
	"github.com/wichananm65/shop-backend/internal/product"
)

// ProductGateway resolves catalog products. It must return
// product.ErrNotFound for unknown ids.
type ProductGateway interface {
	GetByID(ctx context.Context, id string) (product.Product, error)
}

type DeliveryCatalog interface {
	FindOption(id string) (delivery.Option, bool)
}

// Service enforces the cart rules on top of Store. Every read-modify-write
// on a product's line runs under that product's lock.
type Service struct {
	store      *Store
	products   ProductGateway
	deliveries DeliveryCatalog
	locks      keyedMutex

	expandLimit int
	log         *slog.Logger
}

type ServiceOption func(*Service)

// WithExpandConcurrency bounds the parallel product lookups made by an
// expanded listing.
func WithExpandConcurrency(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.expandLimit = n
		}
	}
}

func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func NewService(store *Store, products ProductGateway, deliveries DeliveryCatalog, opts ...ServiceOption) *Service {
	s := &Service{
		store:       store,
		products:    products,
		deliveries:  deliveries,
		expandLimit: 8,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem puts quantity units of productID in the cart. An existing line
// for the product has the quantities summed; the sum is not checked against
// MaxQuantity, so repeated adds can exceed it.
func (s *Service) AddItem(ctx context.Context, productID string, quantity int) (CartLine, error) {
	if productID == "" {
		return CartLine{}, validationErrorf("productId is required")
	}
	if err := validateQuantity(quantity); err != nil {
		return CartLine{}, err
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return CartLine{}, err
	}

	unlock := s.locks.Lock(productID)
	defer unlock()

	if existing, ok := s.store.FindByProduct(productID); ok {
		total := existing.Quantity + quantity
		line, ok := s.store.Patch(productID, Patch{Quantity: &total})
		if !ok {
			return CartLine{}, notFoundErrorf("product %s is not in the cart", productID)
		}
		s.log.Debug("cart line merged", slog.String("productId", productID), slog.Int("quantity", line.Quantity))
		return line, nil
	}

	line := s.store.Insert(CartLine{
		ProductID:        productID,
		Quantity:         quantity,
		DeliveryOptionID: delivery.DefaultOptionID,
	})
	s.log.Debug("cart line added", slog.String("productId", productID), slog.Int("quantity", quantity))
	return line, nil
}

// UpdateItem applies a partial update to the line for productID. All
// supplied fields are validated before anything is written.
func (s *Service) UpdateItem(ctx context.Context, productID string, quantity *int, deliveryOptionID *string) (CartLine, error) {
	if quantity != nil {
		if err := validateQuantity(*quantity); err != nil {
			return CartLine{}, err
		}
	}
	if deliveryOptionID != nil {
		if _, ok := s.deliveries.FindOption(*deliveryOptionID); !ok {
			return CartLine{}, validationErrorf("invalid deliveryOptionId %q", *deliveryOptionID)
		}
	}

	unlock := s.locks.Lock(productID)
	defer unlock()

	line, ok := s.store.Patch(productID, Patch{Quantity: quantity, DeliveryOptionID: deliveryOptionID})
	if !ok {
		return CartLine{}, notFoundErrorf("product %s is not in the cart", productID)
	}
	return line, nil
}

func (s *Service) RemoveItem(ctx context.Context, productID string) error {
	unlock := s.locks.Lock(productID)
	defer unlock()

	if !s.store.Remove(productID) {
		return notFoundErrorf("product %s is not in the cart", productID)
	}
	return nil
}

// ListItems returns every cart line. With expand == ExpandProduct each line
// also carries its product, looked up concurrently. Lookup failures are
// recorded on the item, never returned: an unresolved product leaves that
// line's Product nil and the rest of the listing intact. Any other expand
// value is ignored.
func (s *Service) ListItems(ctx context.Context, expand string) ([]Item, error) {
	lines := s.store.List()
	items := make([]Item, len(lines))
	for i, line := range lines {
		items[i] = Item{CartLine: line}
	}
	if expand != ExpandProduct {
		return items, nil
	}

	var g errgroup.Group
	g.SetLimit(s.expandLimit)
	for i := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			s.attachProduct(ctx, &items[i])
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, dependencyError("cart expansion aborted", err)
	}
	return items, nil
}

func (s *Service) attachProduct(ctx context.Context, item *Item) {
	item.expanded = true
	p, err := s.products.GetByID(ctx, item.ProductID)
	if err != nil {
		if !errors.Is(err, product.ErrNotFound) {
			s.log.Warn("product lookup failed during cart expansion",
				slog.String("productId", item.ProductID), slog.Any("err", err))
		}
		return
	}
	item.Product = &p
}

// SeedDefaults inserts the given lines for products not yet in the cart.
func (s *Service) SeedDefaults(lines []CartLine) int {
	return s.store.SeedDefaults(lines)
}

func (s *Service) ensureProduct(ctx context.Context, productID string) error {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return notFoundErrorf("product %s not found", productID)
		}
		return dependencyError("product lookup failed", err)
	}
	return nil
}

func validateQuantity(q int) error {
	if q < MinQuantity || q > MaxQuantity {
		return validationErrorf("quantity must be an integer between %d and %d", MinQuantity, MaxQuantity)
	}
	return nil
}
