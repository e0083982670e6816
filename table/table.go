// Package table provides the tabular data contract consumed by the
// serializer, plus Frame, an immutable in-memory implementation.
//
// A Table is an ordered sequence of rows with named columns. Cells are plain
// Go values (int64, float64, string, bool, time.Time, nil, ...), the same
// shapes the readers produce from parquet and CSV files.
//
// Example:
//
//	frame, err := table.FromColumns([]string{"a", "c"}, map[string][]any{
//	    "a": {1, 1, 2},
//	    "c": {1, 2, 1},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, _ := frame.Row(0).Get("c")
package table

import (
	"errors"
	"fmt"
	"sort"
)

// ErrShape is returned when rows or columns do not line up.
var ErrShape = errors.New("malformed table")

// Table is an ordered collection of rows with named columns.
type Table interface {
	// Columns returns the column names in table order
	Columns() []string

	// Len returns the number of rows
	Len() int

	// Row returns the i-th row, 0 <= i < Len()
	Row(i int) Row
}

// Row gives read access to the cells of one row by column name.
type Row interface {
	Get(column string) (interface{}, bool)
}

// Frame is an immutable, row-major Table held in memory.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]interface{}
}

// NewFrame creates a frame from column names and positional rows.
//
// Column names must be unique and non-empty, and every row must have exactly
// one cell per column. The rows are copied.
func NewFrame(columns []string, rows ...[]interface{}) (*Frame, error) {
	f, err := newFrame(columns)
	if err != nil {
		return nil, err
	}

	f.rows = make([][]interface{}, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrShape, i, len(row), len(columns))
		}
		f.rows = append(f.rows, append([]interface{}(nil), row...))
	}

	return f, nil
}

// FromColumns creates a frame from column-major data.
//
// Every name in columns must have an entry in data and all entries must have
// the same length.
func FromColumns(columns []string, data map[string][]interface{}) (*Frame, error) {
	f, err := newFrame(columns)
	if err != nil {
		return nil, err
	}

	length := -1
	for _, col := range columns {
		values, ok := data[col]
		if !ok {
			return nil, fmt.Errorf("%w: no data for column %q", ErrShape, col)
		}
		if length >= 0 && len(values) != length {
			return nil, fmt.Errorf("%w: column %q has %d values, want %d", ErrShape, col, len(values), length)
		}
		length = len(values)
	}
	if length < 0 {
		length = 0
	}

	f.rows = make([][]interface{}, length)
	for i := range f.rows {
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			row[j] = data[col][i]
		}
		f.rows[i] = row
	}

	return f, nil
}

// FromMaps creates a frame from rows represented as maps.
//
// When columns are given they fix the column order and any other keys are
// ignored. Otherwise the columns are the sorted union of all row keys, since
// maps carry no order. Cells absent from a row are nil.
func FromMaps(rows []map[string]interface{}, columns ...string) (*Frame, error) {
	if len(columns) == 0 {
		columns = columnUnion(rows)
	}

	f, err := newFrame(columns)
	if err != nil {
		return nil, err
	}

	f.rows = make([][]interface{}, len(rows))
	for i, m := range rows {
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			row[j] = m[col]
		}
		f.rows[i] = row
	}

	return f, nil
}

func newFrame(columns []string) (*Frame, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if col == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", ErrShape, i)
		}
		if _, dup := index[col]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrShape, col)
		}
		index[col] = i
	}

	return &Frame{
		columns: append([]string(nil), columns...),
		index:   index,
	}, nil
}

// columnUnion returns the sorted set of keys across all rows
func columnUnion(rows []map[string]interface{}) []string {
	seen := make(map[string]bool)
	columns := make([]string, 0)
	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

// Columns returns a copy of the column names.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Row returns the i-th row. It panics if i is out of range, like a slice.
func (f *Frame) Row(i int) Row {
	return frameRow{frame: f, cells: f.rows[i]}
}

// Column returns a copy of all values of one column in row order.
func (f *Frame) Column(name string) ([]interface{}, bool) {
	j, ok := f.index[name]
	if !ok {
		return nil, false
	}
	values := make([]interface{}, len(f.rows))
	for i, row := range f.rows {
		values[i] = row[j]
	}
	return values, true
}

// HasColumn reports whether the frame has a column with the given name.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

type frameRow struct {
	frame *Frame
	cells []interface{}
}

func (r frameRow) Get(column string) (interface{}, bool) {
	j, ok := r.frame.index[column]
	if !ok {
		return nil, false
	}
	return r.cells[j], true
}
