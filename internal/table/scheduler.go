package table

import (
	"fmt"
	"github.com/gostonefire/elastichashmap/crt"
	"github.com/gostonefire/elastichashmap/internal/hash"
	"github.com/gostonefire/elastichashmap/internal/model"
	"github.com/gostonefire/elastichashmap/internal/segment"
	"math"
)

// initialFillRatio - Fill ratio at which the first segment hands over to batch 1
const initialFillRatio = 0.75

// minNextFree - Smallest free fraction the next segment may have for it to take part in an insertion
const minNextFree = 0.25

// insertEntry - Inserts a prepared entry using the elastic hashing scheme.
// The caller must have verified that the key is not already present and that the table is below its
// growth threshold. In rehash mode the pre-insert promotion check is skipped, the batch then advances
// only through the post-insert promotion done on placement.
func (T *Table) insertEntry(entry *model.Entry) (err error) {
	if !T.rehashMode && T.currentBatch == 0 && T.batchZeroFull() && len(T.segments) > 1 {
		T.currentBatch = 1
	}

	if T.currentBatch == 0 {
		return T.insertBatchZero(entry)
	}

	return T.insertBatched(entry)
}

// insertBatchZero - Handles insertions while only the first segment is being filled.
// Probing runs a bounded phase followed by an unbounded one, although with segment index 0 the probe
// count is inert so both phases revisit the slot the mixed hash names. If that slot is taken the whole
// table is grown before the insertion is retried, even when the first segment still has free slots.
func (T *Table) insertBatchZero(entry *model.Entry) (err error) {
	seg := T.segments[0]
	limit := hash.ProbeLimit(seg.FreeFraction(), T.delta)

	for j := 1; j <= limit; j++ {
		if T.tryPlace(seg, 0, j, entry) {
			return
		}
	}
	for j := limit + 1; j <= seg.Capacity(); j++ {
		if T.tryPlace(seg, 0, j, entry) {
			return
		}
	}

	err = T.resize(2 * T.totalCapacity)
	if err != nil {
		return
	}

	return T.insertEntry(entry)
}

// insertBatched - Handles insertions once the batch counter has moved past the first segment.
// The free fractions of the current segment (epsilon1) and the next segment (epsilon2, taken as 1 when
// there is no next segment) select one of three cases:
//   - Case 1: both segments have room to spare, try bounded probing in the current segment and fall
//     back to injecting the entry into the next one.
//   - Case 2: the current segment is down to its last delta/2 fraction, go directly to the next one.
//   - Case 3: the next segment is too full to help or does not exist, sweep the current segment.
//
// Probes aimed at the next segment keep the current batch number as probe base, the sequence is the
// one the injection step of the algorithm prescribes.
func (T *Table) insertBatched(entry *model.Entry) (err error) {
	b := T.currentBatch
	current := T.segments[b]

	var next *segment.Segment
	epsilon2 := 1.0
	if b+1 < len(T.segments) {
		next = T.segments[b+1]
		epsilon2 = next.FreeFraction()
	}
	epsilon1 := current.FreeFraction()

	switch {
	case epsilon1 > T.delta/2.0 && epsilon2 > minNextFree && next != nil:
		limit := hash.ProbeLimit(epsilon1, T.delta)
		for j := 1; j <= limit; j++ {
			if T.tryPlace(current, b, j, entry) {
				return
			}
		}
		if T.sweep(next, b, entry) {
			return
		}
		err = fmt.Errorf("no free slot in segments %d and %d: %w", b, b+1, crt.InvariantViolation{})
	case epsilon1 <= T.delta/2.0 && next != nil:
		if T.sweep(next, b, entry) {
			return
		}
		err = fmt.Errorf("no free slot in segment %d: %w", b+1, crt.InvariantViolation{})
	default:
		if T.sweep(current, b, entry) {
			return
		}
		err = fmt.Errorf("no free slot in segment %d: %w", b, crt.InvariantViolation{})
	}

	return
}

// sweep - Walks all probe counts for a segment in order and places the entry in the first free slot found
func (T *Table) sweep(seg *segment.Segment, probeBase int, entry *model.Entry) bool {
	for j := 1; j <= seg.Capacity(); j++ {
		if T.tryPlace(seg, probeBase, j, entry) {
			return true
		}
	}

	return false
}

// tryPlace - Attempts one probe against the slot that the probe base, probe count and entry hash name.
// On success the placement triple is recorded in the entry, the record count goes up and the batch
// counter is advanced if the insertion filled the current segment to its target level.
func (T *Table) tryPlace(seg *segment.Segment, probeBase, probeCount int, entry *model.Entry) bool {
	idx := hash.SlotIndex(probeBase, probeCount, entry.Hash, seg.Capacity())
	if seg.Slot(idx) != nil {
		return false
	}

	entry.SegmentIndex = probeBase
	entry.ProbeCount = probeCount
	seg.Place(idx, entry)
	T.records++
	T.promoteIfNeeded()

	return true
}

// batchZeroFull - Returns true when the first segment has reached its initial fill ratio
func (T *Table) batchZeroFull() bool {
	seg := T.segments[0]
	return seg.Records() >= int(math.Ceil(initialFillRatio*float64(seg.Capacity())))
}

// promoteIfNeeded - Advances the batch counter once the current segment has reached its target fill level.
// For batch 0 the target is the initial fill ratio, for later batches the segment is considered done
// when no more than half its delta fraction of slots remains free.
func (T *Table) promoteIfNeeded() {
	if T.currentBatch == 0 {
		if T.batchZeroFull() && len(T.segments) > 1 {
			T.currentBatch = 1
		}
		return
	}

	seg := T.segments[T.currentBatch]
	target := seg.Capacity() - int(math.Floor(T.delta*float64(seg.Capacity())/2.0))
	if seg.Records() >= target && T.currentBatch+1 < len(T.segments) {
		T.currentBatch++
	}
}
