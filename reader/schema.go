package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/tabshape/table"
)

// ColumnInfo represents metadata about a single top-level column.
type ColumnInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	LogicalType string `json:"logical_type,omitempty"`
	Optional    bool   `json:"optional"`
	Repeated    bool   `json:"repeated"`
}

// Columns describes the columns of a file.
//
// For parquet files the types come from the file schema. For CSV files they
// are inferred from the data: the first non-empty cell of each column
// decides, and columns with no values are NULL. Glob patterns describe the
// first matching file.
func Columns(pattern string) ([]ColumnInfo, error) {
	path, err := firstMatch(pattern)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return parquetColumns(path)
	case ".csv":
		frame, err := readCSVFile(path)
		if err != nil {
			return nil, err
		}
		return inferredColumns(frame), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func parquetColumns(path string) ([]ColumnInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	fields := r.Schema().Fields()
	infos := make([]ColumnInfo, 0, len(fields))
	for _, field := range fields {
		infos = append(infos, ColumnInfo{
			Name:        field.Name(),
			Type:        getUserFriendlyType(field),
			LogicalType: getLogicalType(field),
			Optional:    field.Optional(),
			Repeated:    field.Repeated(),
		})
	}
	return infos, nil
}

func inferredColumns(frame *table.Frame) []ColumnInfo {
	columns := frame.Columns()
	infos := make([]ColumnInfo, 0, len(columns))
	for _, col := range columns {
		values, _ := frame.Column(col)

		info := ColumnInfo{Name: col, Type: "NULL"}
		for _, v := range values {
			if v == nil {
				info.Optional = true
				continue
			}
			if info.Type == "NULL" {
				info.Type = valueType(v)
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// valueType names the type of an inferred CSV cell
func valueType(v interface{}) string {
	switch v.(type) {
	case int64:
		return "INT64"
	case float64:
		return "FLOAT64"
	case bool:
		return "BOOLEAN"
	default:
		return "STRING"
	}
}

// getLogicalType returns the logical type name of a Parquet field.
func getLogicalType(field parquet.Field) string {
	if field.Type() == nil {
		return ""
	}

	logicalType := field.Type().LogicalType()
	if logicalType == nil {
		return ""
	}

	// Use String() method which provides the logical type name
	return logicalType.String()
}

// getUserFriendlyType returns a user-friendly type name for a Parquet field.
//
// This converts Parquet's physical and logical types into simpler, more
// recognizable type names for end users. Groups are reported as GROUP.
func getUserFriendlyType(field parquet.Field) string {
	if len(field.Fields()) > 0 || field.Type() == nil {
		return "GROUP"
	}

	// Check logical type first for more specific typing. Parameterised
	// types print as NAME(params), so only the name is compared.
	if logicalType := field.Type().LogicalType(); logicalType != nil {
		name := logicalType.String()
		if i := strings.IndexByte(name, '('); i >= 0 {
			name = name[:i]
		}
		switch name {
		case "STRING", "UTF8", "ENUM":
			return "STRING"
		case "UUID", "DATE", "TIME", "TIMESTAMP", "DECIMAL", "JSON", "BSON":
			return name
		}
	}

	// Fall back to physical type
	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}
