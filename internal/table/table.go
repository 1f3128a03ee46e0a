package table

import (
	"fmt"
	"github.com/gostonefire/elastichashmap/crt"
	"github.com/gostonefire/elastichashmap/hashfunc"
	"github.com/gostonefire/elastichashmap/internal/hash"
	"github.com/gostonefire/elastichashmap/internal/model"
	"github.com/gostonefire/elastichashmap/internal/segment"
	"github.com/gostonefire/elastichashmap/internal/utils"
	"math"
)

// minSegmentCapacity - Smallest capacity a segment is created with
const minSegmentCapacity = 2

// Table - The segmented table implementing the elastic hashing scheme.
// The table owns a sequence of segments with geometrically decreasing capacities and fills them in
// batches, currentBatch naming the segment that is actively receiving insertions. Records are never
// moved once placed, growth happens by building a fresh segment layout and rehashing every record
// into it.
type Table struct {
	hashAlgorithm hashfunc.HashAlgorithm
	delta         float64
	totalCapacity int
	maxSize       int
	segments      []*segment.Segment
	currentBatch  int
	records       int
	rehashMode    bool
}

// NewTable - Returns a pointer to a new Table laid out for the capacity given in the configuration.
// The configuration is expected to be validated by the caller.
func NewTable(conf model.TableConf) *Table {
	t := &Table{
		hashAlgorithm: conf.HashAlgorithm,
		delta:         conf.Delta,
	}
	t.initializeTable(conf.InitialCapacity)

	return t
}

// initializeTable - Builds a fresh segment layout for the given capacity and resets all counters
func (T *Table) initializeTable(capacity int) {
	T.segments, T.totalCapacity = createSegments(capacity)
	T.maxSize = T.totalCapacity - int(math.Floor(T.delta*float64(T.totalCapacity)))
	T.currentBatch = 0
	T.records = 0
}

// createSegments - Builds the segment array for a requested capacity.
// The number of segments is floor(log2(capacity)) + 1 and segment capacities decrease geometrically,
// each rounded up to a power of two with a minimum of 2. The first segment is inflated by doubling
// until the segments together cover the requested capacity, so every capacity stays a power of two.
// It returns the segments together with the effective total capacity, i.e. the sum of all segment
// capacities, which can be somewhat larger than the requested capacity.
func createSegments(capacity int) (segments []*segment.Segment, totalCapacity int) {
	numSegments := utils.Log2(capacity) + 1
	capacities := make([]int, numSegments)

	for i := 0; i < numSegments; i++ {
		c := capacity >> (i + 1)
		if c < minSegmentCapacity {
			c = minSegmentCapacity
		}
		capacities[i] = utils.RoundUp2(c)
		totalCapacity += capacities[i]
	}

	for totalCapacity < capacity {
		totalCapacity += capacities[0]
		capacities[0] *= 2
	}

	segments = make([]*segment.Segment, numSegments)
	for i, c := range capacities {
		segments[i] = segment.NewSegment(c)
	}

	return
}

// Get - Returns the value stored under the given key.
// It returns an error of type crt.NotFound if the key is not present.
func (T *Table) Get(key []byte) (value []byte, err error) {
	_, _, entry := T.find(key, T.hashAlgorithm.HashFunc(key))
	if entry == nil {
		err = crt.NotFound{}
		return
	}

	value = entry.Value

	return
}

// Set - Stores value under the given key, replacing any value already stored under it.
// It returns the previous value when the key was already present, otherwise nil. A full table is
// grown before the new record is inserted.
func (T *Table) Set(key []byte, value []byte) (previous []byte, err error) {
	keyHash := T.hashAlgorithm.HashFunc(key)

	_, _, entry := T.find(key, keyHash)
	if entry != nil {
		previous = entry.Value
		entry.Value = value
		return
	}

	if T.records >= T.maxSize {
		err = T.resize(2 * T.totalCapacity)
		if err != nil {
			return
		}
	}

	err = T.insertEntry(&model.Entry{Key: key, Value: value, Hash: keyHash, SegmentIndex: -1, ProbeCount: -1})

	return
}

// Pop - Returns the value stored under the given key and removes the record from the table.
// The slot is simply emptied, no tombstone is left behind. It returns an error of type crt.NotFound
// if the key is not present.
func (T *Table) Pop(key []byte) (value []byte, err error) {
	seg, slot, entry := T.find(key, T.hashAlgorithm.HashFunc(key))
	if entry == nil {
		err = crt.NotFound{}
		return
	}

	seg.Vacate(slot)
	T.records--
	value = entry.Value

	return
}

// ContainsValue - Returns true if any record in the table holds the given value.
// This is a linear scan over every slot in every segment.
func (T *Table) ContainsValue(value []byte) bool {
	for _, seg := range T.segments {
		for i := 0; i < seg.Capacity(); i++ {
			if entry := seg.Slot(i); entry != nil && utils.IsEqual(entry.Value, value) {
				return true
			}
		}
	}

	return false
}

// Records - Returns the total number of records stored in the table
func (T *Table) Records() int {
	return T.records
}

// Clear - Empties every segment and resets the batch counter.
// The segment layout and total capacity are preserved.
func (T *Table) Clear() {
	for _, seg := range T.segments {
		seg.Reset()
	}
	T.records = 0
	T.currentBatch = 0
}

// Reserve - Grows the table in advance to make room for a number of additional records.
// Nothing happens if the current layout already accommodates them. The new capacity is chosen as the
// larger of twice the current capacity and 4/3 of the resulting number of records. This does not
// prevent further growth from a probe collision while the first segment is being filled.
func (T *Table) Reserve(additionalRecords int) (err error) {
	needed := T.records + additionalRecords
	if needed <= T.maxSize {
		return
	}

	newCapacity := 2 * T.totalCapacity
	if c := int(math.Ceil(4.0 * float64(needed) / 3.0)); c > newCapacity {
		newCapacity = c
	}

	return T.resize(newCapacity)
}

// GetTableParameters - Returns the layout parameters of the table
func (T *Table) GetTableParameters() (params model.TableParameters) {
	params = model.TableParameters{
		TotalCapacity:     T.totalCapacity,
		MaxSize:           T.maxSize,
		NumberOfSegments:  len(T.segments),
		SegmentCapacities: make([]int, len(T.segments)),
		CurrentBatch:      T.currentBatch,
	}
	for i, seg := range T.segments {
		params.SegmentCapacities[i] = seg.Capacity()
	}

	return
}

// GetTableStat - Returns occupancy statistics for the table
func (T *Table) GetTableStat() (stat model.TableStat) {
	stat = model.TableStat{
		Records:        T.records,
		CurrentBatch:   T.currentBatch,
		SegmentRecords: make([]int, len(T.segments)),
	}
	for i, seg := range T.segments {
		stat.SegmentRecords[i] = seg.Records()
	}

	return
}

// find - Walks the probe chains of every segment that can hold the key given the current batch and
// returns the segment, slot index and entry of the matching record.
// A segment holds records probed with its own index and records injected while the previous segment
// was the current batch, probed with that previous index, so both chains are walked.
// Scanning a chain stops at the first empty slot since a record for the key would have been placed
// no later than there. The entry is nil if the key is not present.
func (T *Table) find(key []byte, keyHash uint32) (seg *segment.Segment, slot int, entry *model.Entry) {
	maxSegment := len(T.segments)
	if T.currentBatch+2 < maxSegment {
		maxSegment = T.currentBatch + 2
	}

	for segIdx := 0; segIdx < maxSegment; segIdx++ {
		s := T.segments[segIdx]
		for probeBase := segIdx; probeBase >= max(segIdx-1, 0); probeBase-- {
			for j := 1; j <= s.Capacity(); j++ {
				idx := hash.SlotIndex(probeBase, j, keyHash, s.Capacity())
				e := s.Slot(idx)
				if e == nil {
					break
				}
				if e.Hash == keyHash && utils.IsEqual(e.Key, key) {
					return s, idx, e
				}
			}
		}
	}

	return nil, 0, nil
}

// resize - Grows the table to a new capacity and rehashes every record into the fresh segment layout.
// While rehashing the pre-insert batch promotion is suppressed, records start out in the first segment
// and the batch advances only through post-insert promotion. The number of records
// must come out unchanged, anything else means the table is corrupt.
func (T *Table) resize(newCapacity int) (err error) {
	oldSegments := T.segments
	oldRecords := T.records

	T.initializeTable(newCapacity)
	T.rehashMode = true

	for _, seg := range oldSegments {
		for i := 0; i < seg.Capacity(); i++ {
			e := seg.Slot(i)
			if e == nil {
				continue
			}
			err = T.insertEntry(&model.Entry{Key: e.Key, Value: e.Value, Hash: e.Hash, SegmentIndex: -1, ProbeCount: -1})
			if err != nil {
				T.rehashMode = false
				return
			}
		}
	}

	T.rehashMode = false

	if T.records != oldRecords {
		err = fmt.Errorf("inconsistent number of records after rehash, got %d want %d: %w", T.records, oldRecords, crt.InvariantViolation{})
	}

	return
}
