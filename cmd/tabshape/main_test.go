package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/tabshape/internal/filter"
	"github.com/vegasq/tabshape/output"
	"github.com/vegasq/tabshape/schemafile"
)

const (
	catalogueSchema = "../../testdata/catalogue.yaml"
	catalogueCSV    = "../../testdata/catalogue.csv"
)

var catalogueOrders = []string{
	`{"id":1,"customer":{"name":"alice","city":"Paris"},"lines":[{"sku":"A-1","qty":2},{"sku":"B-2","qty":1}],"cheapest":9.5,"skus":["A-1","B-2"]}`,
	`{"id":2,"customer":{"name":"bob","city":"Oslo"},"lines":[{"sku":"A-1","qty":5}],"cheapest":9.5,"skus":["A-1"]}`,
	`{"id":3,"customer":{"name":"alice","city":"Paris"},"lines":[{"sku":"C-3","qty":1},{"sku":"A-1","qty":1}],"cheapest":4.25,"skus":["C-3","A-1"]}`,
}

// OrderLine defines the parquet fixture layout
type OrderLine struct {
	OrderID  int64   `parquet:"order_id"`
	Customer string  `parquet:"customer"`
	City     string  `parquet:"city"`
	SKU      string  `parquet:"sku"`
	Qty      int64   `parquet:"qty"`
	Price    float64 `parquet:"price"`
}

// createTestParquetFile creates a temporary parquet file with the catalogue order lines
func createTestParquetFile(t *testing.T, dir, filename string) string {
	t.Helper()
	testFile := filepath.Join(dir, filename)

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	writer := parquet.NewGenericWriter[OrderLine](f)
	rows := []OrderLine{
		{OrderID: 1, Customer: "alice", City: "Paris", SKU: "A-1", Qty: 2, Price: 9.5},
		{OrderID: 1, Customer: "alice", City: "Paris", SKU: "B-2", Qty: 1, Price: 20},
		{OrderID: 2, Customer: "bob", City: "Oslo", SKU: "A-1", Qty: 5, Price: 9.5},
		{OrderID: 3, Customer: "alice", City: "Paris", SKU: "C-3", Qty: 1, Price: 4.25},
		{OrderID: 3, Customer: "alice", City: "Paris", SKU: "A-1", Qty: 1, Price: 9.5},
	}
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	return testFile
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func outputLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestRun_CSV(t *testing.T) {
	stdout, _, err := runCommand(t, "-s", catalogueSchema, catalogueCSV)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if diff := cmp.Diff(catalogueOrders, outputLines(stdout)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Parquet(t *testing.T) {
	testFile := createTestParquetFile(t, t.TempDir(), "orders.parquet")

	stdout, _, err := runCommand(t, "-s", catalogueSchema, testFile)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if diff := cmp.Diff(catalogueOrders, outputLines(stdout)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Options(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "where filters rows before grouping",
			args: []string{"-where", "price < 9 OR qty >= 5"},
			want: []string{
				`{"id":2,"customer":{"name":"bob","city":"Oslo"},"lines":[{"sku":"A-1","qty":5}],"cheapest":9.5,"skus":["A-1"]}`,
				`{"id":3,"customer":{"name":"alice","city":"Paris"},"lines":[{"sku":"C-3","qty":1}],"cheapest":4.25,"skus":["C-3"]}`,
			},
		},
		{
			name: "limit truncates records",
			args: []string{"-limit", "1"},
			want: catalogueOrders[:1],
		},
		{
			name: "limit larger than output",
			args: []string{"-limit", "10"},
			want: catalogueOrders,
		},
		{
			name: "root selects serializer",
			args: []string{"-root", "customer", "-where", "customer = 'bob'"},
			want: []string{`{"name":"bob","city":"Oslo"}`},
		},
		{
			name: "where matching nothing",
			args: []string{"-where", "qty > 100"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-s", catalogueSchema}, tt.args...)
			args = append(args, catalogueCSV)

			stdout, _, err := runCommand(t, args...)
			if err != nil {
				t.Fatalf("run() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, outputLines(stdout)); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRun_Formats(t *testing.T) {
	tests := []struct {
		format   string
		contains []string
	}{
		{
			format:   "json",
			contains: []string{"[\n  {\n    \"id\": 1,", "\"skus\": [\n      \"C-3\",\n      \"A-1\"\n    ]"},
		},
		{
			format:   "yaml",
			contains: []string{"- id: 1\n  customer:\n    name: alice\n    city: Paris\n", "cheapest: 4.25"},
		},
		{
			format:   "csv",
			contains: []string{"id,customer.name,customer.city,lines,cheapest,skus\n", `2,bob,Oslo,"[{""sku"":""A-1"",""qty"":5}]",9.5,"[""A-1""]"`},
		},
		{
			format:   "table",
			contains: []string{"customer.name", "Oslo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			stdout, _, err := runCommand(t, "-s", catalogueSchema, "-f", tt.format, catalogueCSV)
			if err != nil {
				t.Fatalf("run() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(stdout, want) {
					t.Errorf("%s output missing %q:\n%s", tt.format, want, stdout)
				}
			}
		})
	}
}

func TestRun_GlobAddsFileColumn(t *testing.T) {
	dir := t.TempDir()
	createTestParquetFile(t, dir, "a.parquet")
	createTestParquetFile(t, dir, "b.parquet")

	schemaFile := filepath.Join(dir, "files.yaml")
	schema := "serializers:\n  source:\n    fields:\n      file: {source: _file, unique: true}\n      lines: {kind: group, function: list, source: sku}\n"
	if err := os.WriteFile(schemaFile, []byte(schema), 0o600); err != nil {
		t.Fatalf("failed to write schema: %v", err)
	}

	stdout, _, err := runCommand(t, "-s", schemaFile, filepath.Join(dir, "*.parquet"))
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	lines := outputLines(stdout)
	if len(lines) != 2 {
		t.Fatalf("expected one record per file, got %d:\n%s", len(lines), stdout)
	}
	for i, name := range []string{"a.parquet", "b.parquet"} {
		if !strings.Contains(lines[i], name) {
			t.Errorf("record %d = %s, want file %s", i, lines[i], name)
		}
		if !strings.Contains(lines[i], `"lines":["A-1","B-2","A-1","C-3","A-1"]`) {
			t.Errorf("record %d = %s, want all skus", i, lines[i])
		}
	}
}

func TestRun_Describe(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		stdout, _, err := runCommand(t, "-describe", catalogueCSV)
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}

		lines := outputLines(stdout)
		if len(lines) != 6 {
			t.Fatalf("expected 6 columns, got %d:\n%s", len(lines), stdout)
		}
		want := `{"name":"order_id","type":"INT64","logical_type":"","optional":false,"repeated":false}`
		if lines[0] != want {
			t.Errorf("first column = %s, want %s", lines[0], want)
		}
	})

	t.Run("parquet_csv", func(t *testing.T) {
		testFile := createTestParquetFile(t, t.TempDir(), "orders.parquet")

		stdout, _, err := runCommand(t, "-describe", "-f", "csv", testFile)
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}

		// Verify CSV header
		if !strings.HasPrefix(stdout, "name,type,logical_type,optional,repeated\n") {
			t.Errorf("CSV describe output missing expected headers:\n%s", stdout)
		}
		if !strings.Contains(stdout, "customer,STRING") {
			t.Errorf("describe output missing customer column:\n%s", stdout)
		}
	})
}

func TestRun_Verbose(t *testing.T) {
	_, stderr, err := runCommand(t, "-v", "-s", catalogueSchema, catalogueCSV)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	for _, want := range []string{"run_id=", "msg=\"read inputs\"", "rows=5", "records=3"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("log output missing %q:\n%s", want, stderr)
		}
	}

	_, stderr, err = runCommand(t, "-s", catalogueSchema, catalogueCSV)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if stderr != "" {
		t.Errorf("expected no log output without -v, got:\n%s", stderr)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "negative limit",
			args:    []string{"-s", catalogueSchema, "-limit", "-1", catalogueCSV},
			wantMsg: "-limit must be non-negative",
		},
		{
			name:    "unknown format",
			args:    []string{"-s", catalogueSchema, "-f", "xml", catalogueCSV},
			wantErr: output.ErrUnknownFormat,
		},
		{
			name:    "describe with where",
			args:    []string{"-describe", "-where", "qty > 1", catalogueCSV},
			wantMsg: "cannot be used together",
		},
		{
			name:    "missing input",
			args:    []string{"-s", catalogueSchema},
			wantErr: errUsage,
		},
		{
			name:    "missing schema",
			args:    []string{catalogueCSV},
			wantErr: errUsage,
		},
		{
			name:    "schema file not found",
			args:    []string{"-s", "missing.yaml", catalogueCSV},
			wantErr: os.ErrNotExist,
		},
		{
			name:    "unknown root",
			args:    []string{"-s", catalogueSchema, "-root", "invoice", catalogueCSV},
			wantErr: schemafile.ErrUnknownSerializer,
		},
		{
			name:    "input not found",
			args:    []string{"-s", catalogueSchema, "missing.csv"},
			wantErr: os.ErrNotExist,
		},
		{
			name:    "unknown filter column",
			args:    []string{"-s", catalogueSchema, "-where", "total > 1", catalogueCSV},
			wantErr: filter.ErrUnknownColumn,
			wantMsg: "available columns: order_id, customer, city, sku, qty, price",
		},
		{
			name:    "invalid filter",
			args:    []string{"-s", catalogueSchema, "-where", "qty >", catalogueCSV},
			wantErr: filter.ErrSyntax,
		},
		{
			name:    "help",
			args:    []string{"-h"},
			wantErr: flag.ErrHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCommand(t, tt.args...)
			if err == nil {
				t.Fatalf("run() expected error, got output:\n%s", stdout)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("run() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("run() error = %v, want message containing %q", err, tt.wantMsg)
			}
			if stdout != "" {
				t.Errorf("expected no output on error, got:\n%s", stdout)
			}
		})
	}
}
