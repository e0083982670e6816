package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/tabshape/serializer"
)

// TableFormatter outputs records as an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes records as a table with the same flattened columns as the
// CSV formatter. Nothing is written for no records.
func (t *TableFormatter) Format(records []*serializer.Record) error {
	if len(records) == 0 {
		return nil
	}

	columns, rows, err := flattenAll(records)
	if err != nil {
		return err
	}

	tw := tablewriter.NewWriter(t.writer)
	tw.SetHeader(columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatValue(row.values[col])
		}
		tw.Append(cells)
	}

	tw.Render()
	return nil
}
