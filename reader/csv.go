package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vegasq/tabshape/table"
)

// ReadCSV reads CSV data into a frame.
//
// The first record names the columns. Every cell is typed by inference:
// empty cells become nil, then int64, float64 and bool are tried in that
// order, and anything else stays a string. Surrounding whitespace is kept
// for strings but ignored during inference.
func ReadCSV(r io.Reader) (*table.Frame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read CSV header: empty input")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows [][]interface{}
	for {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(rows)+1, err)
		}

		row := make([]interface{}, len(record))
		for i, cell := range record {
			row[i] = inferValue(cell)
		}
		rows = append(rows, row)
	}

	frame, err := table.NewFrame(header, rows...)
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	return frame, nil
}

// readCSVFile reads a whole CSV file
func readCSVFile(path string) (*table.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadCSV(file)
}

// inferValue converts a CSV cell to the narrowest matching type
func inferValue(cell string) interface{} {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}

	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	// ParseFloat also accepts "nan" and "inf", which stay strings
	if strings.ContainsAny(trimmed, "0123456789") {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	}

	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	}

	return cell
}
