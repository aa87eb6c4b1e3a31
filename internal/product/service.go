package product

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// BulkInsert assigns missing ids and timestamps, validates every product and
// stores the batch atomically.
func (s *Service) BulkInsert(ctx context.Context, products []Product) (int, error) {
	now := s.now().UTC()
	batch := make([]Product, 0, len(products))
	for i, p := range products {
		if errs := p.Validate(); len(errs) > 0 {
			return 0, fmt.Errorf("%w: item %d: %v", ErrInvalidInput, i, errs)
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		} else if _, err := uuid.Parse(p.ID); err != nil {
			return 0, fmt.Errorf("%w: item %d: id must be a uuid", ErrInvalidInput, i)
		}
		if p.Keywords == nil {
			p.Keywords = []string{}
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		batch = append(batch, p)
	}
	if len(batch) == 0 {
		return 0, nil
	}
	return s.repo.BulkInsert(ctx, batch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SeedDefaults inserts DefaultProducts when the catalog is empty and reports
// whether anything was written.
func (s *Service) SeedDefaults(ctx context.Context) (bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.BulkInsert(ctx, DefaultProducts()); err != nil {
		return false, err
	}
	return true, nil
}
