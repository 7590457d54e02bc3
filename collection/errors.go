package collection

import "errors"

var (
	// ErrInvalidCallable is returned when an operation is handed a nil predicate
	// or transform. It is returned before any entry is visited.
	ErrInvalidCallable = errors.New("collection: callable is nil")

	// ErrInvalidKeyField is returned when a key function can't be derived from the
	// named field of the value type.
	ErrInvalidKeyField = errors.New("collection: invalid key field")

	// ErrNoKeyFunc is returned, or panicked with, when an operation needs to derive
	// a key but the collection has no key function.
	ErrNoKeyFunc = errors.New("collection: no key function")
)
