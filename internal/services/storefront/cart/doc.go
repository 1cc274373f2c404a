// Package cart owns visitor carts.
//
// Transitions (Add, Remove, ChangeQuantity, Summarize) are pure functions
// over Cart values. Manager is the single owner of one visitor's cart: it
// serializes mutations, persists the full list after every change and
// notifies its listener exactly once per change. Registry hands out one
// Manager per visitor so no second mutable copy of a cart exists.
package cart
