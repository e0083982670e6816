package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/tabshape/table"
)

// Reader reads parquet files into tables.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
//
// Example:
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// Columns returns the top-level column names in schema order.
func (r *Reader) Columns() []string {
	fields := r.pqFile.Schema().Fields()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name()
	}
	return columns
}

// ReadAll reads all rows from the parquet file into a frame.
//
// Columns follow the order of the top-level schema fields. Null values
// become nil cells and nested groups become map cells. The entire file is
// loaded into memory, so this method may not be suitable for very large
// files.
func (r *Reader) ReadAll() (*table.Frame, error) {
	rows := make([]map[string]interface{}, 0, r.pqFile.NumRows())

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			// Use errors.Is for proper EOF detection
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}

	frame, err := table.FromMaps(rows, r.Columns()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	return frame, nil
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close closes the parquet reader and releases associated resources.
//
// Should be called when done reading to avoid resource leaks. It is safe
// to call Close multiple times.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// readParquet reads a whole parquet file and closes it
func readParquet(path string) (*table.Frame, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}

	frame, readErr := r.ReadAll()
	closeErr := r.Close()

	// Preserve the first error encountered
	if readErr != nil {
		return nil, readErr
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close file: %w", closeErr)
	}
	return frame, nil
}
