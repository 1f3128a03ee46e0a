package hash

import (
	"hash/crc32"
)

// SingleHashAlgorithm - The internally used key hash algorithm, implemented using crc32.ChecksumIEEE to
// create a 32 bit hash value over the key. The value is diffused by the probe engine before any slot
// index is derived from it, so no extra mixing is done here.
type SingleHashAlgorithm struct{}

// NewSingleHashAlgorithm - Returns a pointer to a new SingleHashAlgorithm instance
func NewSingleHashAlgorithm() *SingleHashAlgorithm {
	return &SingleHashAlgorithm{}
}

// HashFunc - Given key it generates a 32 bit hash value
func (B *SingleHashAlgorithm) HashFunc(key []byte) uint32 {
	return crc32.ChecksumIEEE(key)
}
