// Package output provides formatters for writing serialized records.
//
// This package defines the Formatter interface and provides implementations
// for common output formats. All formatters work with []*serializer.Record
// and keep the key order of the records.
//
// # Supported Formats
//
//   - jsonl: One JSON object per line (suitable for streaming)
//   - json: One indented JSON array
//   - yaml: One YAML sequence of mappings
//   - csv: Comma-separated values with header row
//   - table: Aligned text table for terminals
//
// # Basic Usage
//
// Pick a formatter by name:
//
//	formatter, err := output.New("jsonl", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(records); err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing to Different Destinations
//
// Change output destination dynamically:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//
//	file, err := os.Create("output.jsonl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	formatter.SetOutput(file)
//
// # Type Handling
//
//   - JSON and YAML keep nested records and lists as nested structures
//   - CSV and table flatten nested records into dotted columns such as
//     "n.b" and write lists as JSON text
//   - CSV cells starting with formula characters are prefixed with a quote
//   - Null/nil values are empty cells in CSV and table output
package output
