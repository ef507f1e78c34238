package store

import (
	"encoding/binary"
	"fmt"
)

// SlotSize is the width in bytes of a single counter slot.
const SlotSize = 4

// Layout names the slots of a counter region. Slot i lives at byte offset
// i*SlotSize and is encoded as a big-endian uint32.
type Layout struct {
	Names []string
}

// VoteLayout is the default three-slot layout used for meal feedback.
var VoteLayout = Layout{Names: []string{"good", "average", "poor"}}

// Slots returns the number of counters in the layout.
func (l Layout) Slots() int {
	return len(l.Names)
}

// Size returns the length in bytes of a region with this layout.
func (l Layout) Size() int {
	return l.Slots() * SlotSize
}

// Offset returns the byte offset of the slot at index.
func (l Layout) Offset(index int) (int, error) {
	if index < 0 || index >= l.Slots() {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidCounterIndex, index, l.Slots())
	}
	return index * SlotSize, nil
}

// Index returns the slot index for name, or -1 when the layout has no such slot.
func (l Layout) Index(name string) int {
	for i, n := range l.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Encode renders counts in the on-disk region format.
func (l Layout) Encode(counts Counts) ([]byte, error) {
	if len(counts) != l.Slots() {
		return nil, fmt.Errorf("mess/store: %d counts for a %d-slot layout", len(counts), l.Slots())
	}
	b := make([]byte, l.Size())
	for i, v := range counts {
		binary.BigEndian.PutUint32(b[i*SlotSize:], v)
	}
	return b, nil
}

// Decode parses a region image produced by Encode.
func (l Layout) Decode(b []byte) (Counts, error) {
	if len(b) != l.Size() {
		return nil, fmt.Errorf("%w: region is %d bytes, want %d", ErrStorageUnreadable, len(b), l.Size())
	}
	counts := make(Counts, l.Slots())
	for i := range counts {
		counts[i] = binary.BigEndian.Uint32(b[i*SlotSize:])
	}
	return counts, nil
}

func (l Layout) orDefault() Layout {
	if l.Slots() == 0 {
		return VoteLayout
	}
	return l
}
