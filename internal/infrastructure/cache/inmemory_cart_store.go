package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tommyfx/storefront/internal/domain/cart"
)

// cartEntry holds a serialized cart with its expiration
type cartEntry struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryCartStore implements cart.Store using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryCartStore struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]cartEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCartStore creates a new in-memory cart store
// It starts a background goroutine to clean up expired carts
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	store := &InMemoryCartStore{
		entries:  make(map[uuid.UUID]cartEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Get loads the cart for a session, returning an empty cart when none exists
func (s *InMemoryCartStore) Get(ctx context.Context, sessionID uuid.UUID) (*cart.Cart, error) {
	s.mu.RLock()
	e, exists := s.entries[sessionID]
	s.mu.RUnlock()

	if !exists || time.Now().After(e.expiresAt) {
		return cart.NewCart(), nil
	}

	c := cart.NewCart()
	if err := json.Unmarshal(e.data, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Save persists the cart for a session, refreshing its TTL
func (s *InMemoryCartStore) Save(ctx context.Context, sessionID uuid.UUID, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[sessionID] = cartEntry{
		data:      data,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

// Delete removes the persisted cart for a session
func (s *InMemoryCartStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (s *InMemoryCartStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired carts
func (s *InMemoryCartStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.removeExpired()
		}
	}
}

// removeExpired deletes all expired entries
func (s *InMemoryCartStore) removeExpired() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// Ensure InMemoryCartStore implements cart.Store
var _ cart.Store = (*InMemoryCartStore)(nil)
