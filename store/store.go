package store

import (
	"context"
	"errors"
)

var (
	// ErrStorageUnavailable is returned when the counter region cannot be
	// created, opened, locked, mapped or written.
	ErrStorageUnavailable = errors.New("mess/store: storage unavailable")

	// ErrStorageUnreadable is returned when the counter region does not exist
	// or cannot be opened or mapped for reading. Callers must treat every
	// counter as unknown, not zero.
	ErrStorageUnreadable = errors.New("mess/store: storage unreadable")

	// ErrInvalidCounterIndex is returned when a slot outside the layout is
	// requested.
	ErrInvalidCounterIndex = errors.New("mess/store: invalid counter index")

	// ErrCounterOverflow is returned when a slot already holds the largest
	// value a uint32 can represent.
	ErrCounterOverflow = errors.New("mess/store: counter overflow")
)

// Counts holds one value per slot, in slot order.
type Counts []uint32

// Total returns the sum of all slots.
func (c Counts) Total() uint64 {
	var total uint64
	for _, v := range c {
		total += uint64(v)
	}
	return total
}

// Store defines the interface for vote counter backends.
type Store interface {
	// Initialize creates the backing region with every slot set to zero if it
	// does not exist yet. It is a no-op when the region is already present.
	Initialize(ctx context.Context) error

	// Increment atomically adds one to the slot at index.
	Increment(ctx context.Context, index int) error

	// ReadAll returns the value of every slot in order.
	ReadAll(ctx context.Context) (Counts, error)

	// Close releases any resources held by the store.
	Close() error
}
