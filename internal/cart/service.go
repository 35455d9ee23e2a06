package cart

import (
	"context"
	"log"
	"sync"

	"github.com/makishop/storefront/internal/cartstore"
	"github.com/makishop/storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Service is the cart view-model. It mirrors the persisted store in memory,
// persists every mutation immediately and recomputes the total on every read.
// Quantities and prices coming from upstream data are trusted, no validation
// happens here.
type Service struct {
	store cartstore.Store
	sfg   singleflight.Group // collapses concurrent reloads into one store read

	mu    sync.RWMutex
	items []domain.CartLineItem
}

func NewService(store cartstore.Store) *Service {
	return &Service{store: store}
}

// Reload re-reads the persisted snapshot. Observers of cart-change signals
// call this; duplicate notifications are harmless.
func (s *Service) Reload(ctx context.Context) error {
	_, err, _ := s.sfg.Do("reload", func() (interface{}, error) {
		items, err := s.store.Load(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.items = items
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// Items returns a copy of the current line items.
func (s *Service) Items() []domain.CartLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.CartLineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total is recomputed from the current lines on every call, never cached.
func (s *Service) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CartTotal(s.items)
}

// Append adds a line to the cart. Appending a product already in the cart
// creates a second independent line.
func (s *Service) Append(ctx context.Context, item domain.CartLineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]domain.CartLineItem(nil), s.items...), item)
	if err := s.store.Save(ctx, next); err != nil {
		log.Printf("failed to persist cart append: %v", err)
		return err
	}
	s.items = next
	return nil
}

// SetQuantity sets the quantity of every line matching productID, clamped to
// a minimum of 1. Requesting less than 1 pins the line at 1, it is not a
// removal.
func (s *Service) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.CartLineItem, len(s.items))
	copy(next, s.items)
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity = quantity
		}
	}

	if err := s.store.Save(ctx, next); err != nil {
		log.Printf("failed to persist quantity change: %v", err)
		return err
	}
	s.items = next
	return nil
}

// RemoveLine deletes every line matching productID.
func (s *Service) RemoveLine(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.CartLineItem, 0, len(s.items))
	for _, item := range s.items {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}

	if err := s.store.Save(ctx, next); err != nil {
		log.Printf("failed to persist line removal: %v", err)
		return err
	}
	s.items = next
	return nil
}

// Clear empties the cart, both in memory and in the persisted store.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		log.Printf("failed to clear persisted cart: %v", err)
		return err
	}
	s.items = nil
	return nil
}
