package elastichashmap

import (
	"github.com/gostonefire/elastichashmap/internal/table"
	"github.com/gostonefire/elastichashmap/internal/utils"
)

// Record - Represents one key/value pair as yielded by a RecordIterator
type Record struct {
	Key   []byte
	Value []byte
}

// RecordIterator - Is used to iterate over map records one by one, in segment order and then slot
// order. The order is not stable across a growth of the map. The iterator yields copies of keys and
// values, so mutating a returned slice does not affect the map. Mutating the map while iterating
// gives undefined results.
type RecordIterator struct {
	scanner *table.Scanner
}

// Iterator - Returns a pointer to a new RecordIterator positioned at the first record
func (E *ElasticHashMap) Iterator() *RecordIterator {
	return &RecordIterator{scanner: table.NewScanner(E.table)}
}

// HasNext - Returns true if there are more records to be fetched from a call to Next
func (R *RecordIterator) HasNext() bool {
	return R.scanner.HasNext()
}

// Next - Returns the next record in iteration order.
// It returns:
//   - record is the next record with key and value detached from the map.
//   - err is an error of type crt.NotFound if the iterator is exhausted.
func (R *RecordIterator) Next() (record Record, err error) {
	entry, err := R.scanner.Next()
	if err != nil {
		return
	}

	record = Record{
		Key:   utils.CopyBytes(entry.Key),
		Value: utils.CopyBytes(entry.Value),
	}

	return
}

// Keys - Returns all keys in the map in iteration order
func (E *ElasticHashMap) Keys() (keys [][]byte) {
	keys = make([][]byte, 0, E.Len())

	iter := E.Iterator()
	for iter.HasNext() {
		record, err := iter.Next()
		if err != nil {
			break
		}
		keys = append(keys, record.Key)
	}

	return
}

// Values - Returns all values in the map in iteration order
func (E *ElasticHashMap) Values() (values [][]byte) {
	values = make([][]byte, 0, E.Len())

	iter := E.Iterator()
	for iter.HasNext() {
		record, err := iter.Next()
		if err != nil {
			break
		}
		values = append(values, record.Value)
	}

	return
}

// Entries - Returns all records in the map in iteration order
func (E *ElasticHashMap) Entries() (records []Record) {
	records = make([]Record, 0, E.Len())

	iter := E.Iterator()
	for iter.HasNext() {
		record, err := iter.Next()
		if err != nil {
			break
		}
		records = append(records, record)
	}

	return
}
