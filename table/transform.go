package table

import "fmt"

// Materialize copies any Table into a Frame. A *Frame is returned as is.
func Materialize(t Table) *Frame {
	if f, ok := t.(*Frame); ok {
		return f
	}

	columns := t.Columns()
	f, err := newFrame(columns)
	if err != nil {
		// Foreign tables with malformed columns still get a usable frame;
		// later lookups simply miss.
		f = &Frame{columns: columns, index: make(map[string]int)}
		for i, col := range columns {
			if _, dup := f.index[col]; !dup {
				f.index[col] = i
			}
		}
	}

	f.rows = make([][]interface{}, t.Len())
	for i := range f.rows {
		f.rows[i] = rowCells(t.Row(i), columns)
	}
	return f
}

// Where returns a frame holding the rows for which keep returns true, in
// table order. The first error returned by keep aborts the scan.
func Where(t Table, keep func(Row) (bool, error)) (*Frame, error) {
	src := Materialize(t)

	out := &Frame{columns: src.columns, index: src.index}
	out.rows = make([][]interface{}, 0)
	for i, cells := range src.rows {
		match, err := keep(frameRow{frame: src, cells: cells})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if match {
			out.rows = append(out.rows, cells)
		}
	}

	return out, nil
}

// Concat stacks frames vertically.
//
// The result's columns are the union of the input columns in order of first
// appearance. Cells for columns a frame does not have are nil.
func Concat(frames ...*Frame) *Frame {
	var columns []string
	seen := make(map[string]bool)
	for _, f := range frames {
		for _, col := range f.columns {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}

	out, err := newFrame(columns)
	if err != nil {
		// Unreachable: the union is unique and every input was validated.
		panic(err)
	}

	out.rows = make([][]interface{}, 0)
	for _, f := range frames {
		for _, cells := range f.rows {
			out.rows = append(out.rows, rowCells(frameRow{frame: f, cells: cells}, columns))
		}
	}
	return out
}

// WithColumn returns a copy of f with an extra column holding value in every
// row. An existing column with the same name is overwritten.
func WithColumn(f *Frame, name string, value interface{}) (*Frame, error) {
	columns := f.columns
	if !f.HasColumn(name) {
		columns = append(append([]string(nil), f.columns...), name)
	}

	out, err := newFrame(columns)
	if err != nil {
		return nil, err
	}

	j := out.index[name]
	out.rows = make([][]interface{}, len(f.rows))
	for i, cells := range f.rows {
		row := make([]interface{}, len(columns))
		copy(row, cells)
		row[j] = value
		out.rows[i] = row
	}
	return out, nil
}

func rowCells(row Row, columns []string) []interface{} {
	cells := make([]interface{}, len(columns))
	for j, col := range columns {
		cells[j], _ = row.Get(col)
	}
	return cells
}
