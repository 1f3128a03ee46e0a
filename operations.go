package elastichashmap

import (
	"errors"
	"github.com/gostonefire/elastichashmap/crt"
	"github.com/gostonefire/elastichashmap/internal/utils"
	"strings"
)

// Get - Gets the value stored under the given key.
//   - key is the identifier of a record, it must not be nil
//
// It returns:
//   - value is the value of the matching record if found, if not found an error of type crt.NotFound is also returned.
//   - err is of type crt.NullKey for a nil key, of type crt.NotFound if the key is not present, otherwise nil
func (E *ElasticHashMap) Get(key []byte) (value []byte, err error) {
	if key == nil {
		err = crt.NullKey{}
		return
	}

	return E.table.Get(key)
}

// Set - Updates an existing record with a new value or adds it if no record exists under the key.
// A nil value is permitted and stored as such.
//   - key is the identifier of a record, it must not be nil
//   - value is the value to store under the key
//
// It returns:
//   - previous is the value the key held before the call, or nil if the key was not present
//   - err is of type crt.NullKey for a nil key, of type crt.InvariantViolation if the insertion machinery failed, otherwise nil
func (E *ElasticHashMap) Set(key []byte, value []byte) (previous []byte, err error) {
	if key == nil {
		err = crt.NullKey{}
		return
	}

	return E.table.Set(key, value)
}

// Pop - Returns the value stored under the given key and removes the record from the map.
// The freed slot is not recycled through a tombstone, see the package documentation for the
// consequence this has on records sharing a probe chain with the removed one.
//   - key is the identifier of a record, it must not be nil
//
// It returns:
//   - value is the value of the matching record if found, if not found an error of type crt.NotFound is also returned.
//   - err is of type crt.NullKey for a nil key, of type crt.NotFound if the key is not present, otherwise nil
func (E *ElasticHashMap) Pop(key []byte) (value []byte, err error) {
	if key == nil {
		err = crt.NullKey{}
		return
	}

	return E.table.Pop(key)
}

// ContainsKey - Returns true if the map holds a record under the given key.
//   - key is the identifier of a record, it must not be nil
func (E *ElasticHashMap) ContainsKey(key []byte) (contains bool, err error) {
	if key == nil {
		err = crt.NullKey{}
		return
	}

	_, err = E.table.Get(key)
	if err != nil {
		if errors.Is(err, crt.NotFound{}) {
			err = nil
		}
		return
	}

	contains = true

	return
}

// ContainsValue - Returns true if any record in the map holds the given value.
// This is a linear scan over the entire table.
func (E *ElasticHashMap) ContainsValue(value []byte) bool {
	return E.table.ContainsValue(value)
}

// Len - Returns the number of records in the map
func (E *ElasticHashMap) Len() int {
	return E.table.Records()
}

// IsEmpty - Returns true if the map contains no records
func (E *ElasticHashMap) IsEmpty() bool {
	return E.table.Records() == 0
}

// Clear - Removes all records from the map.
// The segment layout and total capacity are preserved, a cleared map never shrinks.
func (E *ElasticHashMap) Clear() {
	E.table.Clear()
}

// SetAll - Copies all records from the other map to this map, replacing values for keys already
// present. The table is grown in advance so that the bulk insert triggers at most one rehash from
// reaching the growth threshold.
//   - other is the map to copy records from, a nil map is a no-op
func (E *ElasticHashMap) SetAll(other *ElasticHashMap) (err error) {
	if other == nil {
		return
	}

	err = E.table.Reserve(other.Len())
	if err != nil {
		return
	}

	iter := other.Iterator()
	for iter.HasNext() {
		var record Record
		record, err = iter.Next()
		if err != nil {
			return
		}
		_, err = E.Set(record.Key, record.Value)
		if err != nil {
			return
		}
	}

	return
}

// Equal - Returns true if the other map holds exactly the same set of keys, each mapped to an equal
// value. Maps with different capacities or delta parameters can still be equal, only contents count.
func (E *ElasticHashMap) Equal(other *ElasticHashMap) bool {
	if other == nil || E.Len() != other.Len() {
		return false
	}

	iter := E.Iterator()
	for iter.HasNext() {
		record, err := iter.Next()
		if err != nil {
			return false
		}
		value, err := other.Get(record.Key)
		if err != nil || !utils.IsEqual(record.Value, value) {
			return false
		}
	}

	return true
}

// HashCode - Returns a hash value over the entire contents of the map.
// The value is the sum of the per record hashes, where a record hashes to its key hash xor the hash
// of its value, hence two equal maps produce the same hash value regardless of insertion order.
func (E *ElasticHashMap) HashCode() (hashCode uint32) {
	iter := E.Iterator()
	for iter.HasNext() {
		record, err := iter.Next()
		if err != nil {
			break
		}
		hashCode += E.hashAlgorithm.HashFunc(record.Key) ^ E.hashAlgorithm.HashFunc(record.Value)
	}

	return
}

// String - Returns a string representation of the map on the form {k1=v1, k2=v2} or {} for an empty
// map, in iteration order. Keys and values are rendered as raw strings.
func (E *ElasticHashMap) String() string {
	if E.IsEmpty() {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteByte('{')

	first := true
	iter := E.Iterator()
	for iter.HasNext() {
		record, err := iter.Next()
		if err != nil {
			break
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.Write(record.Key)
		sb.WriteByte('=')
		sb.Write(record.Value)
	}

	sb.WriteByte('}')

	return sb.String()
}
