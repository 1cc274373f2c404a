package storage

import (
	"context"
	"errors"
)

// CartSlot is the fixed slot name holding a visitor's serialized cart.
const CartSlot = "cart"

// ErrNotFound indicates a slot has never been written.
var ErrNotFound = errors.New("slot not found")

// SlotStore persists opaque payloads keyed by visitor and slot name.
type SlotStore interface {
	LoadSlot(ctx context.Context, visitorID string, name string) ([]byte, error)
	SaveSlot(ctx context.Context, visitorID string, name string, payload []byte) error
}

// Store is a SlotStore that owns closable resources.
type Store interface {
	SlotStore
	Close() error
}
