// Package storage declares persistence contracts for visitor-owned slots.
//
// A slot is one named payload per visitor. The storefront keeps exactly one
// slot, the serialized cart, and always overwrites it in full.
package storage
