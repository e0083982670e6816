package serializer

import (
	"fmt"
	"strings"

	"github.com/vegasq/tabshape/table"
)

// Group is a set of rows sharing one grouping key.
type Group struct {
	Key  []interface{} // Values of the key columns, in key column order
	Rows []table.Row   // All rows of the group, in table order
}

// Representative returns the first row of the group. Plain and nested
// fields read from it.
func (g *Group) Representative() table.Row {
	return g.Rows[0]
}

// singleRow wraps one row as a group of its own for the ungrouped path
func singleRow(row table.Row) *Group {
	return &Group{Rows: []table.Row{row}}
}

// GroupRows partitions the rows of t by the values of the key columns.
//
// Groups are returned in order of the first appearance of their key and each
// group keeps its rows in table order, so the result is the same on every
// call for the same input. Cell values are matched with table.Equal.
func GroupRows(t table.Table, columns []string) ([]*Group, error) {
	groups := make([]*Group, 0)
	index := make(map[string]int)

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)

		// Compute group key from the key columns
		key, values, err := computeGroupKey(row, columns)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		// Add row to group
		if pos, exists := index[key]; exists {
			groups[pos].Rows = append(groups[pos].Rows, row)
		} else {
			index[key] = len(groups)
			groups = append(groups, &Group{
				Key:  values,
				Rows: []table.Row{row},
			})
		}
	}

	return groups, nil
}

// computeGroupKey computes a canonical key for a row based on the key columns
func computeGroupKey(row table.Row, columns []string) (string, []interface{}, error) {
	var keyBuilder strings.Builder
	values := make([]interface{}, 0, len(columns))

	for i, col := range columns {
		value, exists := row.Get(col)
		if !exists {
			return "", nil, fmt.Errorf("%w: %q", ErrColumnNotFound, col)
		}

		if i > 0 {
			keyBuilder.WriteString("\x00||\x00") // Use unlikely separator to avoid collisions
		}
		keyBuilder.WriteString(table.Key(value))
		values = append(values, value)
	}

	return keyBuilder.String(), values, nil
}
