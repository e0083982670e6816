package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vegasq/tabshape/serializer"
)

// CSVFormatter outputs records as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes records as CSV.
//
// Nested records are flattened into dotted columns and lists are written as
// JSON text. Columns appear in the order they are first seen across the
// records; cells a record lacks are empty.
func (c *CSVFormatter) Format(records []*serializer.Record) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(records) == 0 {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			return fmt.Errorf("failed to flush CSV writer: %w", err)
		}
		return nil
	}

	columns, rows, err := flattenAll(records)
	if err != nil {
		return err
	}

	// Write header
	if err := csvWriter.Write(columns); err != nil {
		return err
	}

	// Write rows
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatValue(row.values[col])
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	// Flush and check for errors
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// formatValue converts a value to string for CSV and table output
func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		// Sanitize against CSV injection by prefixing dangerous characters
		// that could trigger formula execution in spreadsheet applications
		if len(val) > 0 {
			firstChar := val[0]
			if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' || firstChar == '\t' || firstChar == '\r' || firstChar == '\n' || firstChar == '|' {
				// Escape existing single quotes and prefix with quote to prevent formula injection
				return "'" + strings.ReplaceAll(val, "'", "''")
			}
		}
		return val
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", val)
	}
}
