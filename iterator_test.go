//go:build unit

package elastichashmap

import (
	"errors"
	"github.com/gostonefire/elastichashmap/crt"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestElasticHashMap_Iterator(t *testing.T) {
	t.Run("yields every record exactly once", func(t *testing.T) {
		// Prepare
		ehm := newTestMap(t)
		expected := map[string]string{"apple": "1", "banana": "2", "orange": "3"}
		for k, v := range expected {
			_, err := ehm.Set([]byte(k), []byte(v))
			assert.NoError(t, err, "sets a record")
		}

		// Execute
		seen := make(map[string]string)
		iter := ehm.Iterator()
		for iter.HasNext() {
			record, err := iter.Next()
			assert.NoError(t, err, "fetches a record")
			seen[string(record.Key)] = string(record.Value)
		}

		// Check
		assert.Equal(t, expected, seen, "all records seen once")
	})

	t.Run("exhausted iterator reports not found", func(t *testing.T) {
		// Prepare
		ehm := newTestMap(t)

		// Execute
		iter := ehm.Iterator()

		// Check
		assert.False(t, iter.HasNext(), "nothing to iterate")
		_, err := iter.Next()
		assert.True(t, errors.Is(err, crt.NotFound{}), "not found past the end")
	})

	t.Run("yields detached copies", func(t *testing.T) {
		// Prepare
		ehm := newTestMap(t)
		_, err := ehm.Set([]byte("apple"), []byte("1"))
		assert.NoError(t, err, "sets a record")

		// Execute
		iter := ehm.Iterator()
		record, err := iter.Next()
		assert.NoError(t, err, "fetches the record")
		record.Value[0] = 'X'

		// Check
		value, err := ehm.Get([]byte("apple"))
		assert.NoError(t, err, "gets the record")
		assert.Equal(t, []byte("1"), value, "map unaffected by mutation of the copy")
	})
}

func TestElasticHashMap_Views(t *testing.T) {
	t.Run("keys values and entries are consistent", func(t *testing.T) {
		// Prepare
		ehm := newTestMap(t)
		_, err := ehm.Set([]byte("apple"), []byte("1"))
		assert.NoError(t, err, "sets a record")
		_, err = ehm.Set([]byte("banana"), []byte("2"))
		assert.NoError(t, err, "sets a record")
		_, err = ehm.Set([]byte("orange"), []byte("3"))
		assert.NoError(t, err, "sets a record")

		// Execute
		keys := ehm.Keys()
		values := ehm.Values()
		entries := ehm.Entries()

		// Check
		assert.Equal(t, 3, len(keys), "key set size is 3")
		assert.Equal(t, 3, len(values), "values size is 3")
		assert.Equal(t, 3, len(entries), "entry set size is 3")

		keySet := make(map[string]bool)
		for _, k := range keys {
			keySet[string(k)] = true
		}
		assert.True(t, keySet["apple"] && keySet["banana"] && keySet["orange"], "key set contains all inserted keys")

		valueSet := make(map[string]bool)
		for _, v := range values {
			valueSet[string(v)] = true
		}

		for _, entry := range entries {
			assert.True(t, keySet[string(entry.Key)], "entry key in key set")
			assert.True(t, valueSet[string(entry.Value)], "entry value in value collection")
		}
	})
}
