package cart

import "errors"

var (
	// ErrEmptyCart guards checkout of a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPersist marks a mutation whose persistence write failed. The
	// in-memory change still stands.
	ErrPersist = errors.New("cart not persisted")
)
