package services

import "errors"

var (
	// ErrInvalidIndex signals a line index outside the current line range.
	ErrInvalidIndex = errors.New("line index out of range")
	// ErrNoActiveOrder signals an operation on a table without an active order.
	ErrNoActiveOrder = errors.New("no active order for table")
	// ErrUnpriced rejects items without a positive base price.
	ErrUnpriced = errors.New("item has no valid price")
	// ErrInvalidRate rejects billing rates outside [0, 1).
	ErrInvalidRate = errors.New("rate must be a fraction in [0, 1)")
	// ErrEmptyCart rejects checkout of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotFound signals a missing catalog entry.
	ErrNotFound = errors.New("not found")
)
