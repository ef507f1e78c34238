package store

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store implementation.
// It is safe for concurrent use. Counters are lost on process restart.
type MemoryStore struct {
	mu     sync.Mutex
	layout Layout
	slots  []atomic.Uint32
	ready  atomic.Bool
}

// NewMemoryStore creates a new in-memory store with the given layout, or
// VoteLayout when none is given.
func NewMemoryStore(layout ...Layout) *MemoryStore {
	var l Layout
	if len(layout) > 0 {
		l = layout[0]
	}
	l = l.orDefault()
	return &MemoryStore{
		layout: l,
		slots:  make([]atomic.Uint32, l.Slots()),
	}
}

// Initialize marks the region as present. Existing values are kept.
func (m *MemoryStore) Initialize(_ context.Context) error {
	m.ready.Store(true)
	return nil
}

// Increment atomically adds one to the slot at index.
func (m *MemoryStore) Increment(_ context.Context, index int) error {
	if _, err := m.layout.Offset(index); err != nil {
		return err
	}
	if !m.ready.Load() {
		return fmt.Errorf("%w: memory region not initialized", ErrStorageUnavailable)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	slot := &m.slots[index]
	if slot.Load() == math.MaxUint32 {
		return fmt.Errorf("%w: slot %q", ErrCounterOverflow, m.layout.Names[index])
	}
	slot.Add(1)
	return nil
}

// ReadAll returns every slot without taking the lock.
func (m *MemoryStore) ReadAll(_ context.Context) (Counts, error) {
	if !m.ready.Load() {
		return nil, fmt.Errorf("%w: memory region not initialized", ErrStorageUnreadable)
	}
	counts := make(Counts, len(m.slots))
	for i := range m.slots {
		counts[i] = m.slots[i].Load()
	}
	return counts, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
