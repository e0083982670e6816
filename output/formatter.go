package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/tabshape/serializer"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to convert records to the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes records in the formatter's specific format
	Format(records []*serializer.Record) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Format names accepted by New.
const (
	FormatJSONL = "jsonl"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatCSV   = "csv"
	FormatTable = "table"
)

// ErrUnknownFormat is returned by New for unsupported format names.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns the accepted format names.
func Formats() []string {
	return []string{FormatJSONL, FormatJSON, FormatYAML, FormatCSV, FormatTable}
}

// New returns the formatter registered under format, writing to w.
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatJSONL:
		return NewJSONFormatter(w), nil
	case FormatJSON:
		return NewJSONArrayFormatter(w), nil
	case FormatYAML, "yml":
		return NewYAMLFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatTable:
		return NewTableFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}
