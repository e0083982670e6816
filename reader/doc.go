// Package reader loads parquet and CSV files into tables.
//
// This package offers a simple, high-level API for reading input files into
// *table.Frame values. It supports both single-file and multi-file (glob
// pattern) operations.
//
// # Basic Usage
//
// Reading a single parquet file:
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	frame, err := r.ReadAll()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// ReadFile picks the format from the extension:
//
//	frame, err := reader.ReadFile("data.csv")
//
// CSV cells are typed by inference: empty cells are nil, integers become
// int64, other numbers float64, true and false become bool and everything
// else stays a string.
//
// # Multi-file Operations
//
// Reading multiple files using glob patterns:
//
//	frame, err := reader.ReadMultipleFiles("data/*.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Each row read through a glob includes a "_file" column with the source
// file path.
//
// # Column Introspection
//
//	cols, err := reader.Columns("data.parquet")
//	for _, c := range cols {
//	    fmt.Printf("%s: %s\n", c.Name, c.Type)
//	}
//
// The package uses github.com/parquet-go/parquet-go for the underlying
// parquet file operations.
package reader
