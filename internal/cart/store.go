package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns the in-memory, insertion-ordered cart lines. All methods are
// safe for concurrent use; each call runs to completion under the store lock.
// Store does not deduplicate on Insert; Service keeps one line per product.
type Store struct {
	mu    sync.RWMutex
	lines []CartLine
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// List returns a snapshot of all lines in insertion order.
func (s *Store) List() []CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) FindByProduct(productID string) (CartLine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(productID); i >= 0 {
		return s.lines[i], true
	}
	return CartLine{}, false
}

// Insert appends a line, filling in the id and timestamps when unset, and
// returns the stored value.
func (s *Store) Insert(line CartLine) CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(line)
}

// Patch overwrites only the fields set in p on the line for productID.
// It reports false and changes nothing when no such line exists.
func (s *Store) Patch(productID string, p Patch) (CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return CartLine{}, false
	}
	if p.empty() {
		return s.lines[i], true
	}

	line := s.lines[i]
	if p.Quantity != nil {
		line.Quantity = *p.Quantity
	}
	if p.DeliveryOptionID != nil {
		line.DeliveryOptionID = *p.DeliveryOptionID
	}
	line.UpdatedAt = s.now().UTC()
	s.lines[i] = line
	return line, true
}

// Remove deletes the line for productID and reports whether one existed.
func (s *Store) Remove(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return false
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return true
}

// SeedDefaults inserts each default line whose product is not already in the
// cart and returns how many were inserted. Existing lines are left untouched,
// so repeated calls are harmless.
func (s *Store) SeedDefaults(defaults []CartLine) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for _, line := range defaults {
		if s.indexOf(line.ProductID) >= 0 {
			continue
		}
		s.insertLocked(line)
		inserted++
	}
	return inserted
}

func (s *Store) insertLocked(line CartLine) CartLine {
	if line.ID == "" {
		line.ID = uuid.NewString()
	}
	now := s.now().UTC()
	if line.CreatedAt.IsZero() {
		line.CreatedAt = now
	}
	if line.UpdatedAt.IsZero() {
		line.UpdatedAt = line.CreatedAt
	}
	s.lines = append(s.lines, line)
	return line
}

// linear scan; carts hold tens of lines at most
func (s *Store) indexOf(productID string) int {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
