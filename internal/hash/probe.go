package hash

import (
	"math"
)

// ProbeMultiplier - Multiplier constant for the probe limit function
const ProbeMultiplier = 4

// Mix - Diffuses a raw 32 bit key hash by folding its upper half into its lower half.
// The mixed value is the fingerprint all probe sequences start from.
func Mix(hash uint32) uint32 {
	return hash ^ (hash >> 16)
}

// Probe - Computes the probe value for a segment index and probe count.
// The value grows approximately as segmentIndex * probeCount^2 on top of the mixed hash. For segment
// index 0 the probe count term vanishes and the sequence collapses to the mixed hash alone, the first
// segment is filled by hash distribution rather than by probing.
// All arithmetic wraps at 32 bits and the result is kept non negative by masking off the top bit.
func Probe(segmentIndex, probeCount int, hash uint32) uint32 {
	offset := uint32(segmentIndex) * uint32(probeCount) * uint32(probeCount)
	return (Mix(hash) + offset) & 0x7fffffff
}

// SlotIndex - Translates a probe value into a slot index within a segment.
// The capacity must be a power of two, the index is derived by masking.
func SlotIndex(segmentIndex, probeCount int, hash uint32, capacity int) int {
	return int(Probe(segmentIndex, probeCount, hash) & uint32(capacity-1))
}

// ProbeLimit - The probe limit function f(epsilon) = ProbeMultiplier * min(ceil(log2(1/epsilon)), ceil(log2(1/delta))).
// It bounds the number of probes to attempt in a nearly full segment. A segment without free slots gets
// no bounded attempts at all, the caller is expected to fall through to plain linear probing.
func ProbeLimit(freeFraction, delta float64) int {
	if freeFraction <= 0 {
		return 0
	}
	limit1 := math.Ceil(math.Log2(1.0 / freeFraction))
	limit2 := math.Ceil(math.Log2(1.0 / delta))

	return ProbeMultiplier * int(math.Min(limit1, limit2))
}
