package hashfunc

// HashAlgorithm - Interface that permits an implementation using the ElasticHashMap to supply a custom key
// hash algorithm suited for its particular distribution of keys.
type HashAlgorithm interface {
	// HashFunc - Given key it generates a 32 bit hash value.
	// The value is stored as the fingerprint of the key and is also the base of the probe sequence, so it
	// should distribute well over all 32 bits. Two keys that are equal byte by byte must produce the same
	// hash value.
	HashFunc(key []byte) uint32
}
