// Package memory provides a process-local slot store for development runs
// and tests. Slots do not survive a restart.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/louisbranch/storefront/internal/services/storefront/storage"
)

type slotKey struct {
	visitorID string
	name      string
}

// Store keeps slots in a map.
type Store struct {
	mu    sync.RWMutex
	slots map[slotKey][]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{slots: make(map[slotKey][]byte)}
}

// LoadSlot returns a copy of the stored payload.
func (s *Store) LoadSlot(ctx context.Context, visitorID string, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := normalizeKey(visitorID, name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.slots[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), payload...), nil
}

// SaveSlot replaces the payload for visitor and slot name.
func (s *Store) SaveSlot(ctx context.Context, visitorID string, name string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := normalizeKey(visitorID, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots == nil {
		s.slots = make(map[slotKey][]byte)
	}
	s.slots[key] = append([]byte(nil), payload...)
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func normalizeKey(visitorID string, name string) (slotKey, error) {
	visitorID = strings.TrimSpace(visitorID)
	name = strings.TrimSpace(name)
	if visitorID == "" {
		return slotKey{}, fmt.Errorf("visitor id is required")
	}
	if name == "" {
		return slotKey{}, fmt.Errorf("slot name is required")
	}
	return slotKey{visitorID: visitorID, name: name}, nil
}

var _ storage.Store = (*Store)(nil)
