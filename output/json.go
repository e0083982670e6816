package output

import (
	"encoding/json"
	"io"

	"github.com/vegasq/tabshape/serializer"
)

// JSONFormatter outputs records as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes records as JSON Lines (one JSON object per line)
func (j *JSONFormatter) Format(records []*serializer.Record) error {
	encoder := json.NewEncoder(j.writer)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return err
		}
	}
	return nil
}

// JSONArrayFormatter outputs all records as one indented JSON array
type JSONArrayFormatter struct {
	writer io.Writer
	indent string
}

// NewJSONArrayFormatter creates a new JSON array formatter
func NewJSONArrayFormatter(w io.Writer) *JSONArrayFormatter {
	return &JSONArrayFormatter{writer: w, indent: "  "}
}

// SetOutput sets the output writer
func (j *JSONArrayFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes records as a JSON array. No records yield "[]".
func (j *JSONArrayFormatter) Format(records []*serializer.Record) error {
	if records == nil {
		records = []*serializer.Record{}
	}

	encoder := json.NewEncoder(j.writer)
	encoder.SetIndent("", j.indent)
	return encoder.Encode(records)
}
