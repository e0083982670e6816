package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/tabshape/serializer"
)

// YAMLFormatter outputs records as a YAML sequence of mappings
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// SetOutput sets the output writer
func (y *YAMLFormatter) SetOutput(w io.Writer) {
	y.writer = w
}

// Format writes records as one YAML document. Key order follows the
// records. No records yield "[]".
func (y *YAMLFormatter) Format(records []*serializer.Record) error {
	if records == nil {
		records = []*serializer.Record{}
	}

	encoder := yaml.NewEncoder(y.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}
