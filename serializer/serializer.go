package serializer

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vegasq/tabshape/table"
)

// Serializer binds a schema to a table.
type Serializer struct {
	schema *Schema
	table  table.Table
}

// New creates a serializer for the given schema and table.
//
// A nil table, including a typed nil pointer, fails with ErrSourceNotTable.
// A nil schema fails with ErrNilSchema.
func New(schema *Schema, t table.Table) (*Serializer, error) {
	if isNilTable(t) {
		return nil, fmt.Errorf("%w: got %T", ErrSourceNotTable, t)
	}
	if schema == nil {
		return nil, ErrNilSchema
	}
	return &Serializer{schema: schema, table: t}, nil
}

func isNilTable(t table.Table) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// Schema returns the schema the serializer applies.
func (s *Serializer) Schema() *Schema {
	return s.schema
}

// Represent transforms the table into records.
//
// When the schema declares unique fields, rows are grouped by them and one
// record is produced per group, in order of first appearance. Otherwise one
// record is produced per row, in table order. The table is never modified.
//
// Represent fails with ErrGroupFieldUnique when the schema has group fields
// but no unique field, and with ErrColumnNotFound when the table lacks a
// column the schema reads.
func (s *Serializer) Represent() ([]*Record, error) {
	if err := s.schema.Validate(); err != nil {
		return nil, err
	}
	if err := checkColumns(s.schema, s.table); err != nil {
		return nil, err
	}

	var groups []*Group
	if keys := s.schema.KeyColumns(); len(keys) > 0 {
		var err error
		groups, err = GroupRows(s.table, keys)
		if err != nil {
			return nil, err
		}
	} else {
		groups = make([]*Group, s.table.Len())
		for i := range groups {
			groups[i] = singleRow(s.table.Row(i))
		}
	}

	records := make([]*Record, 0, len(groups))
	for i, g := range groups {
		record, err := buildRecord(s.schema, g)
		if err != nil {
			return nil, fmt.Errorf("schema %q, record %d: %w", s.schema.name, i, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// Represent is shorthand for New followed by Represent.
func Represent(schema *Schema, t table.Table) ([]*Record, error) {
	s, err := New(schema, t)
	if err != nil {
		return nil, err
	}
	return s.Represent()
}

// checkColumns fails fast when the table lacks columns the schema reads
func checkColumns(schema *Schema, t table.Table) error {
	available := make(map[string]bool)
	for _, col := range t.Columns() {
		available[col] = true
	}

	var missing []string
	for _, col := range schema.RequiredColumns() {
		if !available[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema %q: %w: %s (available: %s)",
			schema.name, ErrColumnNotFound, strings.Join(missing, ", "), strings.Join(t.Columns(), ", "))
	}
	return nil
}
