// Package serializer turns tables into nested, ordered records described by
// a declarative schema.
//
// A schema is an ordered list of named fields. Each field is one of four
// kinds:
//   - Field: reads a column, optionally renamed (Source), hidden from the
//     output (Hidden) or part of the grouping key (Unique)
//   - NestField: embeds a record built by another schema from the same row
//   - GroupField: reduces a column across the rows of a group with one of
//     the whitelisted functions: list, min or max
//   - NestGroupField: embeds one record per row of the group, built by
//     another schema
//
// # Basic Usage
//
// Project every row of a table, renaming one column:
//
//	schema := serializer.MustSchema("users",
//	    serializer.Named("id", serializer.Field{}),
//	    serializer.Named("full_name", serializer.Field{Source: "name"}),
//	)
//
//	records, err := serializer.Represent(schema, frame)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Grouping
//
// Marking fields Unique groups the rows by those columns. Groups come out in
// the order their key first appears in the table:
//
//	schema := serializer.MustSchema("catalogue",
//	    serializer.Named("a", serializer.Field{Unique: true}),
//	    serializer.Named("c", serializer.MustGroupField(serializer.FunctionList, false)),
//	)
//
// For a = [1, 1, 2, 2, 3] and c = [1, 2, 1, 2, 2] this yields
//
//	{"a": 1, "c": [1, 2]}
//	{"a": 2, "c": [1, 2]}
//	{"a": 3, "c": [2]}
//
// # Nesting
//
// Nested schemas are applied to single rows and never group on their own:
//
//	item := serializer.MustSchema("item", serializer.Named("c", serializer.Field{}))
//	schema := serializer.MustSchema("catalogue",
//	    serializer.Named("a", serializer.Field{Unique: true}),
//	    serializer.Named("items", serializer.NewNestGroupField(item, true)),
//	)
//
// # Errors
//
// Schema declaration errors surface when the schema is built
// (ErrGroupFieldAction, ErrDuplicateField, ErrInvalidField). Errors that
// depend on the data or the schema as a whole surface from Represent
// (ErrGroupFieldUnique, ErrColumnNotFound). New rejects missing tables with
// ErrSourceNotTable. All errors can be matched with errors.Is.
//
// Represent performs no I/O and shares no state between calls, so one
// serializer may be used from several goroutines as long as its table is not
// modified concurrently.
package serializer
