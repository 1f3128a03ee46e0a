// Package elastichashmap implements an associative container over byte slice keys and values, based
// on the elastic hashing algorithm described in the paper "Optimal Bounds for Open Addressing Without
// Reordering".
//
// The overall design uses a table that is divided into segments with geometrically decreasing
// capacities. The table is filled in batches. Batch 0 fills the first segment until about 75% full.
// For batches i >= 1, two segments are used: the current segment and the next segment. Depending on
// the free fraction in the current segment (epsilon1) and the next segment (epsilon2), one of three
// cases is used:
//   - Case 1: If epsilon1 > delta/2 and epsilon2 > 0.25, then first try limited probing in the current
//     segment, up to f(epsilon1) probes, and if unsuccessful, probe in the next segment.
//   - Case 2: If epsilon1 <= delta/2, then force insertion in the next segment with linear probing.
//   - Case 3: If epsilon2 <= 0.25, then force insertion in the current segment using linear probing.
//     This case is rare.
//
// Records are never moved once placed. When the number of records reaches the growth threshold the
// whole table is rebuilt with twice the capacity and every record is rehashed into it.
//
// Removal simply empties the slot, no tombstone is left behind. Since lookups stop probing a segment
// at the first empty slot, removing a record can hide another record whose probe chain passed through
// the removed slot. This is a deliberate consequence of the no-reordering design and the price of
// keeping placed records immovable.
package elastichashmap

import (
	"fmt"
	"github.com/gostonefire/elastichashmap/crt"
	"github.com/gostonefire/elastichashmap/hashfunc"
	"github.com/gostonefire/elastichashmap/internal/hash"
	"github.com/gostonefire/elastichashmap/internal/model"
	"github.com/gostonefire/elastichashmap/internal/table"
)

// DefaultInitialCapacity - Capacity used when a map has to be created without an explicit one,
// for instance when unmarshalling into a zero valued map
const DefaultInitialCapacity = 1024

// DefaultDelta - Load-gap parameter used when a map has to be created without an explicit one
const DefaultDelta = 0.125

// HashMapInfo - Information structure containing some information about the hash map created
//   - NumberOfSegments is the number of segments the capacity is spread over
//   - TotalCapacity is the effective capacity, i.e. the sum of all segment capacities, which can be somewhat larger than the requested capacity
//   - MaxSize is the number of records the map holds before it grows
//   - SegmentCapacities is the capacity of each segment in order, each a power of two
//   - InternalAlgorithm is true if the map uses the internal key hash algorithm
type HashMapInfo struct {
	NumberOfSegments  int
	TotalCapacity     int
	MaxSize           int
	SegmentCapacities []int
	InternalAlgorithm bool
}

// HashMapStat - Statistics on the overall usage and distribution over segments
//   - Records is the total number of records stored
//   - CurrentBatch is the index of the segment currently receiving insertions
//   - SegmentDistribution is the number of records stored in each segment in order
type HashMapStat struct {
	Records             int
	CurrentBatch        int
	SegmentDistribution []int
}

// ElasticHashMap - The main implementation struct
type ElasticHashMap struct {
	table             *table.Table
	hashAlgorithm     hashfunc.HashAlgorithm
	internalAlgorithm bool
}

// NewElasticHashMap - Returns a new map prepared to hold initialCapacity records spread over a set of
// segments with geometrically decreasing capacities. The map grows automatically (doubling its
// capacity) when the load threshold is reached.
//   - initialCapacity is the total number of slots to start out with, must be a positive value
//   - delta is the load-gap parameter, the fraction of the capacity kept free at the growth threshold, must be in the open range (0,1)
//   - hashAlgorithm is an optional entry to provide a custom key hash algorithm following the hashfunc.HashAlgorithm interface, nil selects the internal one
//
// It returns:
//   - elasticHashMap is a pointer to an ElasticHashMap struct
//   - hashMapInfo is a HashMapInfo struct containing some data regarding the hash map created
//   - err is an error of type crt.InvalidConfig if any constraint on the parameters is violated
func NewElasticHashMap(initialCapacity int, delta float64, hashAlgorithm hashfunc.HashAlgorithm) (
	elasticHashMap *ElasticHashMap,
	hashMapInfo HashMapInfo,
	err error,
) {
	if initialCapacity <= 0 {
		err = fmt.Errorf("initialCapacity must be a positive value higher than 0 (zero): %w", crt.InvalidConfig{})
		return
	}
	if delta <= 0 || delta >= 1 {
		err = fmt.Errorf("delta must be in the open range (0,1): %w", crt.InvalidConfig{})
		return
	}

	internalAlgorithm := hashAlgorithm == nil
	if internalAlgorithm {
		hashAlgorithm = hash.NewSingleHashAlgorithm()
	}

	t := table.NewTable(model.TableConf{
		InitialCapacity: initialCapacity,
		Delta:           delta,
		HashAlgorithm:   hashAlgorithm,
	})

	elasticHashMap = &ElasticHashMap{
		table:             t,
		hashAlgorithm:     hashAlgorithm,
		internalAlgorithm: internalAlgorithm,
	}

	hashMapInfo = elasticHashMap.info()

	return
}

// Stat - Walks through the entire set of segments and produces a HashMapStat struct with information
// on how records are distributed. The cost is proportional to the number of segments only, occupancy
// counts are maintained by the segments themselves.
func (E *ElasticHashMap) Stat() (hashMapStat HashMapStat) {
	stat := E.table.GetTableStat()

	hashMapStat = HashMapStat{
		Records:             stat.Records,
		CurrentBatch:        stat.CurrentBatch,
		SegmentDistribution: stat.SegmentRecords,
	}

	return
}

// info - Assembles a HashMapInfo struct from the current table parameters
func (E *ElasticHashMap) info() (hashMapInfo HashMapInfo) {
	params := E.table.GetTableParameters()

	hashMapInfo = HashMapInfo{
		NumberOfSegments:  params.NumberOfSegments,
		TotalCapacity:     params.TotalCapacity,
		MaxSize:           params.MaxSize,
		SegmentCapacities: params.SegmentCapacities,
		InternalAlgorithm: E.internalAlgorithm,
	}

	return
}
