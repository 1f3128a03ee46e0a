package model

// Entry - Represents one key/value record in a segment slot.
// Hash is the raw 32 bit key hash as produced by the hash algorithm, cached so that lookups can reject
// non matching slots without comparing keys.
// SegmentIndex and ProbeCount record the probe triple the record was placed under. They are set once at
// insertion time and are for diagnostics only, no operation depends on reading them back.
type Entry struct {
	Key          []byte
	Value        []byte
	Hash         uint32
	SegmentIndex int
	ProbeCount   int
}

// TableParameters - Represents layout parameters for a segmented table
//   - TotalCapacity is the effective capacity, i.e. the sum of all segment capacities
//   - MaxSize is the number of records the table holds before it grows
//   - NumberOfSegments is the number of segments the capacity is spread over
//   - SegmentCapacities is the capacity of each segment in order
//   - CurrentBatch is the index of the segment currently receiving insertions
type TableParameters struct {
	TotalCapacity     int
	MaxSize           int
	NumberOfSegments  int
	SegmentCapacities []int
	CurrentBatch      int
}

// TableStat - Represents occupancy statistics for a segmented table
//   - Records is the total number of records stored
//   - CurrentBatch is the index of the segment currently receiving insertions
//   - SegmentRecords is the number of records stored in each segment in order
type TableStat struct {
	Records        int
	CurrentBatch   int
	SegmentRecords []int
}
