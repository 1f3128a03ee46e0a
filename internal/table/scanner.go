package table

import (
	"github.com/gostonefire/elastichashmap/crt"
	"github.com/gostonefire/elastichashmap/internal/model"
)

// Scanner - Is used to iterate over table records one by one, in segment order and then slot order.
// The order is not stable across a resize. Mutating the table while a scanner is active gives
// undefined results.
type Scanner struct {
	table     *Table
	segIdx    int
	slotIdx   int
	nextEntry *model.Entry
}

// NewScanner - Returns a pointer to a new Scanner positioned at the first record
func NewScanner(table *Table) *Scanner {
	s := &Scanner{table: table}
	s.advance()

	return s
}

// HasNext - Returns true if there are more records to be fetched from a call to Next
func (S *Scanner) HasNext() bool {
	return S.nextEntry != nil
}

// Next - Returns the next record in iteration order.
// It returns:
//   - entry is a copy of the record, although key and value still refer to the stored slices.
//   - err is an error of type crt.NotFound if the scanner is exhausted.
func (S *Scanner) Next() (entry model.Entry, err error) {
	if S.nextEntry == nil {
		err = crt.NotFound{}
		return
	}

	entry = *S.nextEntry
	S.advance()

	return
}

// advance - Moves the scanner forward to the next occupied slot, or leaves it exhausted
func (S *Scanner) advance() {
	for S.segIdx < len(S.table.segments) {
		seg := S.table.segments[S.segIdx]
		for S.slotIdx < seg.Capacity() {
			e := seg.Slot(S.slotIdx)
			S.slotIdx++
			if e != nil {
				S.nextEntry = e
				return
			}
		}
		S.segIdx++
		S.slotIdx = 0
	}

	S.nextEntry = nil
}
