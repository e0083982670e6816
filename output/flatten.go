package output

import (
	"encoding/json"
	"fmt"

	"github.com/vegasq/tabshape/serializer"
)

// flatRow is one record flattened to dotted column names, in key order
type flatRow struct {
	columns []string
	values  map[string]interface{}
}

// flatten turns nested records into dotted columns ("n.b"). Lists, both
// reducer results and nested group records, are kept whole as JSON text.
func flatten(record *serializer.Record) (flatRow, error) {
	row := flatRow{values: make(map[string]interface{})}
	if err := flattenInto(&row, "", record); err != nil {
		return flatRow{}, err
	}
	return row, nil
}

func flattenInto(row *flatRow, prefix string, record *serializer.Record) error {
	var err error
	record.Each(func(key string, value interface{}) {
		if err != nil {
			return
		}

		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		switch val := value.(type) {
		case *serializer.Record:
			if val != nil {
				err = flattenInto(row, name, val)
				return
			}
			row.set(name, nil)
		case []interface{}, []*serializer.Record:
			data, jsonErr := json.Marshal(val)
			if jsonErr != nil {
				err = fmt.Errorf("failed to encode %s: %w", name, jsonErr)
				return
			}
			row.set(name, string(data))
		default:
			row.set(name, val)
		}
	})
	return err
}

func (r *flatRow) set(name string, value interface{}) {
	if _, exists := r.values[name]; !exists {
		r.columns = append(r.columns, name)
	}
	r.values[name] = value
}

// flattenAll flattens every record and returns the union of their columns
// in order of first appearance
func flattenAll(records []*serializer.Record) ([]string, []flatRow, error) {
	rows := make([]flatRow, 0, len(records))
	seen := make(map[string]bool)
	var columns []string

	for i, record := range records {
		row, err := flatten(record)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", i, err)
		}
		for _, col := range row.columns {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}
