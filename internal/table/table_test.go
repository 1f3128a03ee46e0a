//go:build unit

package table

import (
	"errors"
	"fmt"
	"github.com/gostonefire/elastichashmap/crt"
	"github.com/gostonefire/elastichashmap/internal/hash"
	"github.com/gostonefire/elastichashmap/internal/model"
	"github.com/stretchr/testify/assert"
	"testing"
)

func newTestTable(capacity int, delta float64) *Table {
	return NewTable(model.TableConf{
		InitialCapacity: capacity,
		Delta:           delta,
		HashAlgorithm:   hash.NewSingleHashAlgorithm(),
	})
}

func TestNewTable(t *testing.T) {
	t.Run("lays out segments with geometrically decreasing capacities", func(t *testing.T) {
		// Prepare and Execute
		tbl := newTestTable(1024, 0.125)

		// Check
		params := tbl.GetTableParameters()
		assert.Equal(t, 11, params.NumberOfSegments, "correct number of segments")
		assert.Equal(t, []int{512, 256, 128, 64, 32, 16, 8, 4, 2, 2, 2}, params.SegmentCapacities, "correct segment capacities")
		assert.Equal(t, 1026, params.TotalCapacity, "effective capacity is the segment sum")
		assert.Equal(t, 898, params.MaxSize, "threshold keeps a delta fraction free")
		assert.Equal(t, 0, params.CurrentBatch, "starts in batch 0")
	})

	t.Run("covers tiny capacities with the minimum segment size", func(t *testing.T) {
		// Prepare
		tests := []struct {
			capacity int
			caps     []int
		}{
			{capacity: 1, caps: []int{2}},
			{capacity: 3, caps: []int{2, 2}},
			{capacity: 8, caps: []int{4, 2, 2, 2}},
		}

		for _, test := range tests {
			t.Run(fmt.Sprintf("capacity %d", test.capacity), func(t *testing.T) {
				// Execute
				tbl := newTestTable(test.capacity, 0.125)

				// Check
				params := tbl.GetTableParameters()
				assert.Equal(t, test.caps, params.SegmentCapacities, "correct segment capacities")
				assert.GreaterOrEqual(t, params.TotalCapacity, test.capacity, "effective capacity covers requested")
			})
		}
	})
}

func TestTable_SetGet(t *testing.T) {
	t.Run("sets and gets a record", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(1024, 0.125)

		// Execute
		previous, err := tbl.Set([]byte("apple"), []byte("1"))

		// Check
		assert.NoError(t, err, "sets a record")
		assert.Nil(t, previous, "no previous value for a fresh key")
		assert.Equal(t, 1, tbl.Records(), "one record")

		value, err := tbl.Get([]byte("apple"))
		assert.NoError(t, err, "gets the record")
		assert.Equal(t, []byte("1"), value, "correct value")
	})

	t.Run("replaces the value of an existing record", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(1024, 0.125)
		_, err := tbl.Set([]byte("apple"), []byte("1"))
		assert.NoError(t, err, "sets a record")

		// Execute
		previous, err := tbl.Set([]byte("apple"), []byte("10"))

		// Check
		assert.NoError(t, err, "replaces the record")
		assert.Equal(t, []byte("1"), previous, "previous value returned")
		assert.Equal(t, 1, tbl.Records(), "still one record")

		value, err := tbl.Get([]byte("apple"))
		assert.NoError(t, err, "gets the record")
		assert.Equal(t, []byte("10"), value, "new value in place")
	})

	t.Run("not found for an absent key", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(1024, 0.125)

		// Execute
		_, err := tbl.Get([]byte("missing"))

		// Check
		assert.True(t, errors.Is(err, crt.NotFound{}), "not found error")
	})

	t.Run("stores and returns a nil value", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(1024, 0.125)

		// Execute
		_, err := tbl.Set([]byte("apple"), nil)
		assert.NoError(t, err, "sets a record with nil value")

		// Check
		value, err := tbl.Get([]byte("apple"))
		assert.NoError(t, err, "record is present")
		assert.Nil(t, value, "nil value preserved")
	})
}

func TestTable_Pop(t *testing.T) {
	t.Run("pops an existing record", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(1024, 0.125)
		_, err := tbl.Set([]byte("banana"), []byte("2"))
		assert.NoError(t, err, "sets a record")

		// Execute
		value, err := tbl.Pop([]byte("banana"))

		// Check
		assert.NoError(t, err, "pops the record")
		assert.Equal(t, []byte("2"), value, "correct value returned")
		assert.Equal(t, 0, tbl.Records(), "no records left")

		_, err = tbl.Get([]byte("banana"))
		assert.True(t, errors.Is(err, crt.NotFound{}), "record gone")
	})

	t.Run("not found for an absent key", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(1024, 0.125)

		// Execute
		_, err := tbl.Pop([]byte("missing"))

		// Check
		assert.True(t, errors.Is(err, crt.NotFound{}), "not found error")
	})
}

func TestTable_ContainsValue(t *testing.T) {
	t.Run("finds a stored value", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(1024, 0.125)
		_, err := tbl.Set([]byte("apple"), []byte("1"))
		assert.NoError(t, err, "sets a record")

		// Execute and Check
		assert.True(t, tbl.ContainsValue([]byte("1")), "value present")
		assert.False(t, tbl.ContainsValue([]byte("2")), "value absent")
	})
}

func TestTable_Clear(t *testing.T) {
	t.Run("empties the table but keeps the layout", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(1024, 0.125)
		for i := 0; i < 100; i++ {
			_, err := tbl.Set([]byte(fmt.Sprintf("key%d", i)), []byte{byte(i)})
			assert.NoError(t, err, "sets a record")
		}
		before := tbl.GetTableParameters()

		// Execute
		tbl.Clear()

		// Check
		after := tbl.GetTableParameters()
		assert.Equal(t, 0, tbl.Records(), "no records")
		assert.Equal(t, 0, after.CurrentBatch, "batch counter reset")
		assert.Equal(t, before.TotalCapacity, after.TotalCapacity, "capacity preserved")
		assert.Equal(t, before.SegmentCapacities, after.SegmentCapacities, "segment layout preserved")

		_, err := tbl.Get([]byte("key42"))
		assert.True(t, errors.Is(err, crt.NotFound{}), "records gone")
	})
}

func TestTable_BatchPromotion(t *testing.T) {
	t.Run("hands over to batch 1 when the first segment fills up", func(t *testing.T) {
		// Prepare
		// Capacity 8 gives segment capacities [4 2 2 2], the first segment hands over at
		// ceil(0.75 * 4) = 3 records.
		tbl := newTestTable(8, 0.5)

		// Execute
		for i := 0; i < 3; i++ {
			_, err := tbl.Set([]byte(fmt.Sprintf("k%d", i)), []byte{byte(i)})
			assert.NoError(t, err, "sets a record")
		}

		// Check
		params := tbl.GetTableParameters()
		assert.Equal(t, 1, params.CurrentBatch, "batch advanced past the first segment")

		for i := 0; i < 3; i++ {
			value, err := tbl.Get([]byte(fmt.Sprintf("k%d", i)))
			assert.NoError(t, err, "record still reachable")
			assert.Equal(t, []byte{byte(i)}, value, "correct value")
		}
	})
}

func TestTable_Resize(t *testing.T) {
	t.Run("grows at the threshold and keeps every record", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(8, 0.5)
		before := tbl.GetTableParameters()

		// Execute
		for i := 0; i < 10; i++ {
			_, err := tbl.Set([]byte(fmt.Sprintf("k%d", i)), []byte{byte(i)})
			assert.NoError(t, err, "sets a record")
		}

		// Check
		after := tbl.GetTableParameters()
		assert.Greater(t, after.TotalCapacity, before.TotalCapacity, "table has grown")
		assert.Equal(t, 10, tbl.Records(), "record count preserved across rehash")

		for i := 0; i < 10; i++ {
			value, err := tbl.Get([]byte(fmt.Sprintf("k%d", i)))
			assert.NoError(t, err, "record survived the rehash")
			assert.Equal(t, []byte{byte(i)}, value, "correct value")
		}
	})

	t.Run("at least one resize when inserting twice the threshold", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(1024, 0.125)
		before := tbl.GetTableParameters()
		n := 2 * before.MaxSize

		// Execute
		for i := 0; i < n; i++ {
			_, err := tbl.Set([]byte(fmt.Sprintf("key%d", i)), []byte(fmt.Sprintf("%d", i)))
			assert.NoError(t, err, "sets a record")
		}

		// Check
		after := tbl.GetTableParameters()
		assert.Greater(t, after.TotalCapacity, before.TotalCapacity, "table has grown")
		assert.Equal(t, n, tbl.Records(), "all records present")

		for i := 0; i < n; i++ {
			value, err := tbl.Get([]byte(fmt.Sprintf("key%d", i)))
			assert.NoError(t, err, "record retrievable after growth")
			assert.Equal(t, []byte(fmt.Sprintf("%d", i)), value, "correct value")
		}
	})
}

func TestTable_Reserve(t *testing.T) {
	t.Run("grows in advance of a bulk insert", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(64, 0.125)
		before := tbl.GetTableParameters()

		// Execute
		err := tbl.Reserve(300)

		// Check
		assert.NoError(t, err, "reserves capacity")
		after := tbl.GetTableParameters()
		assert.Greater(t, after.TotalCapacity, before.TotalCapacity, "table has grown")
		assert.GreaterOrEqual(t, after.MaxSize, 300, "threshold accommodates the bulk")
	})

	t.Run("does nothing when capacity suffices", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(1024, 0.125)
		before := tbl.GetTableParameters()

		// Execute
		err := tbl.Reserve(100)

		// Check
		assert.NoError(t, err, "no error")
		assert.Equal(t, before.TotalCapacity, tbl.GetTableParameters().TotalCapacity, "capacity unchanged")
	})
}

func TestTable_Stat(t *testing.T) {
	t.Run("distribution adds up to the record count", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(1024, 0.125)
		for i := 0; i < 200; i++ {
			_, err := tbl.Set([]byte(fmt.Sprintf("key%d", i)), []byte{1})
			assert.NoError(t, err, "sets a record")
		}

		// Execute
		stat := tbl.GetTableStat()

		// Check
		assert.Equal(t, 200, stat.Records, "correct record count")
		sum := 0
		for _, n := range stat.SegmentRecords {
			sum += n
		}
		assert.Equal(t, 200, sum, "distribution adds up")
	})
}
