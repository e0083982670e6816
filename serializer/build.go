package serializer

import (
	"fmt"

	"github.com/vegasq/tabshape/table"
)

// buildRecord walks the schema in declaration order and produces one record
// for the group. Single rows arrive as one-row groups.
func buildRecord(s *Schema, g *Group) (*Record, error) {
	record := NewRecord()

	for _, f := range s.fields {
		value, err := buildValue(f, g)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if f.Spec.IsHidden() {
			continue
		}
		record.Set(f.Name, value)
	}

	return record, nil
}

// buildValue computes the value of one field for a group
func buildValue(f NamedField, g *Group) (interface{}, error) {
	switch spec := f.Spec.(type) {
	case Field:
		return readCell(g.Representative(), sourceOf(spec.Source, f.Name))

	case NestField:
		if spec.Serializer == nil {
			return nil, nil
		}
		// Nested schemas never group: the representative row stands alone
		return buildRecord(spec.Serializer, singleRow(g.Representative()))

	case GroupField:
		column := sourceOf(spec.Source, f.Name)
		values := make([]interface{}, 0, len(g.Rows))
		for _, row := range g.Rows {
			value, err := readCell(row, column)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		if spec.Group.DropDuplicates {
			values = dropDuplicateValues(values)
		}
		result, err := spec.Group.Function.Reduce(values, spec.Group.Function.Arguments)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Group.Function.Name, err)
		}
		return result, nil

	case NestGroupField:
		records := make([]*Record, 0, len(g.Rows))
		if spec.Serializer == nil {
			return records, nil
		}
		for _, row := range g.Rows {
			record, err := buildRecord(spec.Serializer, singleRow(row))
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
		if spec.Group.DropDuplicates {
			records = dropDuplicateRecords(records)
		}
		return records, nil

	default:
		return nil, fmt.Errorf("%w: unsupported spec %T", ErrInvalidField, f.Spec)
	}
}

func readCell(row table.Row, column string) (interface{}, error) {
	value, ok := row.Get(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}
	return value, nil
}

// dropDuplicateValues keeps the first occurrence of each value, in order
func dropDuplicateValues(values []interface{}) []interface{} {
	seen := make(map[string]bool, len(values))
	distinct := make([]interface{}, 0, len(values))
	for _, value := range values {
		key := table.Key(value)
		if !seen[key] {
			seen[key] = true
			distinct = append(distinct, value)
		}
	}
	return distinct
}

// dropDuplicateRecords keeps the first occurrence of each structurally
// equal record, in order
func dropDuplicateRecords(records []*Record) []*Record {
	seen := make(map[string]bool, len(records))
	distinct := make([]*Record, 0, len(records))
	for _, record := range records {
		key := recordKey(record)
		if !seen[key] {
			seen[key] = true
			distinct = append(distinct, record)
		}
	}
	return distinct
}
