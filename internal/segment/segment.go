package segment

import (
	"github.com/gostonefire/elastichashmap/internal/model"
)

// Segment - Represents one fixed capacity subarray of the overall table.
// It is a passive container of slots, all probing decisions are made by the table owning it.
type Segment struct {
	slots   []*model.Entry
	records int
}

// NewSegment - Returns a pointer to a new Segment with the given capacity.
// The capacity is expected to be a power of two since slot indexes are derived by masking.
func NewSegment(capacity int) *Segment {
	return &Segment{slots: make([]*model.Entry, capacity)}
}

// Capacity - Returns the number of slots in the segment
func (S *Segment) Capacity() int {
	return len(S.slots)
}

// Records - Returns the number of occupied slots in the segment
func (S *Segment) Records() int {
	return S.records
}

// FreeFraction - Returns the fraction of free slots in the segment, a value in the range [0, 1]
func (S *Segment) FreeFraction() float64 {
	return 1.0 - float64(S.records)/float64(len(S.slots))
}

// Place - Stores entry in slot i. Does nothing if the slot is already occupied.
func (S *Segment) Place(i int, entry *model.Entry) {
	if S.slots[i] == nil {
		S.slots[i] = entry
		S.records++
	}
}

// Vacate - Empties slot i. Does nothing if the slot is already empty.
func (S *Segment) Vacate(i int) {
	if S.slots[i] != nil {
		S.slots[i] = nil
		S.records--
	}
}

// Slot - Returns the entry in slot i, or nil if the slot is empty
func (S *Segment) Slot(i int) *model.Entry {
	return S.slots[i]
}

// Reset - Empties every slot and zeroes the record count. The slot array is kept allocated.
func (S *Segment) Reset() {
	for i := range S.slots {
		S.slots[i] = nil
	}
	S.records = 0
}
