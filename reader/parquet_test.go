package reader

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type catalogueRow struct {
	A int64 `parquet:"a"`
	B int64 `parquet:"b"`
	C int64 `parquet:"c"`
	D int64 `parquet:"d"`
}

func TestReader_ReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.parquet")
	writeParquet(t, path, []catalogueRow{
		{A: 1, B: 4, C: 1, D: 1},
		{A: 1, B: 4, C: 2, D: 1},
		{A: 2, B: 5, C: 1, D: 1},
	})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, r.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}

	frame, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if frame.Len() != 3 {
		t.Fatalf("ReadAll() returned %d rows, want 3", frame.Len())
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, frame.Columns()); diff != "" {
		t.Errorf("frame columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]interface{}{int64(1), int64(2), int64(1)}, columnValues(t, frame, "c")); diff != "" {
		t.Errorf("c mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_OptionalValuesAreNil(t *testing.T) {
	type row struct {
		ID    int64   `parquet:"id"`
		Label *string `parquet:"label,optional"`
	}

	label := "x"
	path := filepath.Join(t.TempDir(), "optional.parquet")
	writeParquet(t, path, []row{{ID: 1, Label: &label}, {ID: 2}})

	frame, err := readParquet(path)
	if err != nil {
		t.Fatalf("readParquet() error = %v", err)
	}

	if diff := cmp.Diff([]interface{}{"x", nil}, columnValues(t, frame, "label")); diff != "" {
		t.Errorf("label mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_CloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.parquet")
	writeParquet(t, path, []testRow{{ID: 1, Name: "Alice"}})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNewReader_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	notParquet := filepath.Join(tmpDir, "bad.parquet")
	writeFile(t, notParquet, "not a parquet file")

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(tmpDir, "missing.parquet")},
		{"not parquet", notParquet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewReader(tt.path); err == nil {
				t.Errorf("NewReader(%q) expected error", tt.path)
			}
		})
	}
}
