package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vegasq/tabshape/table"
)

// FileColumn is the column added to rows read through a glob pattern.
const FileColumn = "_file"

// maxFiles limits glob expansion to prevent resource exhaustion
const maxFiles = 1000

// ErrUnsupportedFormat is returned for files that are neither parquet nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ReadFile reads one file into a frame, choosing the format from the
// extension: .parquet (or .pq) and .csv, case-insensitively.
func ReadFile(path string) (*table.Frame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return readParquet(path)
	case ".csv":
		return readCSVFile(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadMultipleFiles reads all rows from the files matching a glob pattern.
//
// The pattern can include wildcards:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// Examples:
//   - "data/*.parquet" - all parquet files in data directory
//   - "data/2024-*.csv" - CSV files starting with 2024- in data directory
//   - "data/*/*.parquet" - parquet files in subdirectories of data
//
// Rows read through a glob are tagged with a "_file" column containing the
// source file path. A pattern without wildcards reads a single file and
// leaves its columns untouched. Frames from several files are concatenated
// with the union of their columns.
func ReadMultipleFiles(pattern string) (*table.Frame, error) {
	// Check if pattern contains glob wildcards
	if !isGlob(pattern) {
		// Not a glob pattern, read single file
		return ReadFile(pattern)
	}

	// Expand glob pattern
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}

	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	// Read all matching files
	frames := make([]*table.Frame, 0, len(matches))
	for _, filePath := range matches {
		frame, err := ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		// Tag each row with the source file (only for multi-file reads)
		frame, err = table.WithColumn(frame, FileColumn, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to tag %s: %w", filePath, err)
		}

		frames = append(frames, frame)
	}

	return table.Concat(frames...), nil
}

// ReadInputs reads every pattern with ReadMultipleFiles and concatenates the
// results in argument order.
func ReadInputs(patterns ...string) (*table.Frame, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no input files")
	}

	frames := make([]*table.Frame, 0, len(patterns))
	for _, pattern := range patterns {
		frame, err := ReadMultipleFiles(pattern)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	if len(frames) == 1 {
		return frames[0], nil
	}
	return table.Concat(frames...), nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// firstMatch resolves a pattern to a single path, the first glob match
func firstMatch(pattern string) (string, error) {
	if !isGlob(pattern) {
		return pattern, nil
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no files match pattern: %s", pattern)
	}
	return matches[0], nil
}
