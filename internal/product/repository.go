package product

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidInput = errors.New("invalid product")
	ErrDuplicateID  = errors.New("product id already exists")
)

// Repository is the catalog gateway used by the rest of the app.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Count(ctx context.Context) (int, error)
	// BulkInsert stores all products or none of them.
	BulkInsert(ctx context.Context, products []Product) (int, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is used for tests and when no database is configured.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	for _, p := range seed {
		r.storage = append(r.storage, cloneProduct(p))
	}
	return r
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return cloneProduct(p), nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.storage), nil
}

func (r *InMemoryRepository) BulkInsert(ctx context.Context, products []Product) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(r.storage)+len(products))
	for _, p := range r.storage {
		seen[p.ID] = struct{}{}
	}
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			return 0, ErrDuplicateID
		}
		seen[p.ID] = struct{}{}
	}

	for _, p := range products {
		r.storage = append(r.storage, cloneProduct(p))
	}
	return len(products), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func cloneProduct(p Product) Product {
	if p.Keywords != nil {
		kw := make([]string, len(p.Keywords))
		copy(kw, p.Keywords)
		p.Keywords = kw
	}
	return p
}
