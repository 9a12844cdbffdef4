package repositories

import (
	"context"
	"storefront/internal/models"
	"sync"
)

// MemoryCartStore keeps carts in process memory.
type MemoryCartStore struct {
	carts map[string]*models.Cart
	mu    sync.RWMutex
}

// NewMemoryCartStore creates an empty MemoryCartStore.
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		carts: make(map[string]*models.Cart),
	}
}

// Load returns a copy of the session cart.
func (s *MemoryCartStore) Load(_ context.Context, sessionID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return models.NewCart(sessionID), nil
	}
	return cart.Clone(), nil
}

// Save stores a copy of the cart under its session.
func (s *MemoryCartStore) Save(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.SessionID] = cart.Clone()
	return nil
}

// Delete forgets the session cart.
func (s *MemoryCartStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

// RemoveProduct drops the product from every cart.
func (s *MemoryCartStore) RemoveProduct(_ context.Context, productID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for _, cart := range s.carts {
		if cart.RemoveProduct(productID) {
			changed++
		}
	}
	return changed, nil
}
