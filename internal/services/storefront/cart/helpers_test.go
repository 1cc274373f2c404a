package cart

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/louisbranch/storefront/internal/services/storefront/catalog"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
)

type memoryStore struct {
	mu      sync.Mutex
	slots   map[string][]byte
	saves   int
	loads   int
	saveErr error
	loadErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{slots: make(map[string][]byte)}
}

func (s *memoryStore) LoadSlot(ctx context.Context, visitorID string, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	payload, ok := s.slots[visitorID+"/"+name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), payload...), nil
}

func (s *memoryStore) SaveSlot(_ context.Context, visitorID string, name string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.slots[visitorID+"/"+name] = append([]byte(nil), payload...)
	return nil
}

func (s *memoryStore) put(visitorID string, payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[visitorID+"/"+storage.CartSlot] = []byte(payload)
}

func (s *memoryStore) payload(visitorID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.slots[visitorID+"/"+storage.CartSlot]
	return string(payload), ok
}

func (s *memoryStore) failLoads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

func (s *memoryStore) loadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func (s *memoryStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

var errDiskFull = errors.New("disk full")

func newManager(t *testing.T, ctx context.Context, visitorID string, store storage.SlotStore, opts ...Option) *Manager {
	t.Helper()
	m, err := NewManager(ctx, visitorID, store, opts...)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m
}

func item(id int, price string) catalog.DisplayItem {
	return catalog.DisplayItem{
		ID:          id,
		Title:       "Item " + strconv.Itoa(id),
		Price:       price,
		Image:       "img/item.webp",
		Category:    catalog.Category,
		Description: catalog.Description,
	}
}

type refreshCounter struct {
	mu    sync.Mutex
	count int
	last  Summary
}

func (c *refreshCounter) listen(_ string, summary Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	c.last = summary
}

func (c *refreshCounter) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
