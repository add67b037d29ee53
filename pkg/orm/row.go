package orm

import (
	"fmt"
	"strconv"
)

// Row is one result row as positional nullable text. Column indexes start at
// zero and follow the select list; a nil value is SQL NULL. Drivers stringify
// every column, so integers arrive as digit strings and the caller converts.
type Row struct {
	columns map[int]*string
}

// NewRow returns an empty row.
func NewRow() Row {
	return Row{columns: make(map[int]*string)}
}

// Set stores the value of column i. A nil pointer records NULL.
func (r Row) Set(i int, v *string) {
	r.columns[i] = v
}

// Value returns the raw nullable value of column i and whether the column
// exists.
func (r Row) Value(i int) (*string, bool) {
	v, ok := r.columns[i]
	return v, ok
}

// String returns column i as text. NULL and missing columns come back as the
// empty string with ok false.
func (r Row) String(i int) (string, bool) {
	v, ok := r.columns[i]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Int returns column i parsed as a signed integer.
func (r Row) Int(i int) (int64, error) {
	s, ok := r.String(i)
	if !ok {
		return 0, fmt.Errorf("orm: column %d is null or absent", i)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("orm: column %d: %w", i, err)
	}
	return n, nil
}

// Len reports how many columns the row holds.
func (r Row) Len() int {
	return len(r.columns)
}
