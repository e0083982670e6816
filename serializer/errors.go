package serializer

import "errors"

var (
	// ErrSourceNotTable is returned by New when the source is not a table
	ErrSourceNotTable = errors.New("serializer source is not a table")

	// ErrGroupFieldAction is returned when a group field names a function
	// outside the reducer whitelist
	ErrGroupFieldAction = errors.New("group field function is not allowed")

	// ErrGroupFieldUnique is returned by Represent when a schema has group
	// fields but no unique field to group by
	ErrGroupFieldUnique = errors.New("group fields require at least one unique field")

	// ErrNilSchema is returned by New when no schema is given
	ErrNilSchema = errors.New("serializer schema is nil")

	// ErrDuplicateField is returned when a schema declares a name twice
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrInvalidField is returned for empty names and nil field specs
	ErrInvalidField = errors.New("invalid field declaration")

	// ErrColumnNotFound is returned when the table lacks a column the schema reads
	ErrColumnNotFound = errors.New("column not found")
)
