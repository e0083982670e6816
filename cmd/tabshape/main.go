package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/vegasq/tabshape/internal/filter"
	"github.com/vegasq/tabshape/output"
	"github.com/vegasq/tabshape/reader"
	"github.com/vegasq/tabshape/schemafile"
	"github.com/vegasq/tabshape/serializer"
)

// errUsage marks command line mistakes reported after the usage text.
var errUsage = errors.New("usage")

type options struct {
	schema   string
	root     string
	format   string
	where    string
	limit    int
	describe bool
	verbose  bool
	inputs   []string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("tabshape", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.schema, "s", "", "Schema file (YAML) declaring the serializers")
	fs.StringVar(&opts.root, "root", "", "Serializer to apply (default: the file's root)")
	fs.StringVar(&opts.format, "f", output.FormatJSONL, "Output format: "+strings.Join(output.Formats(), ", "))
	fs.StringVar(&opts.where, "where", "", "Row filter applied before grouping (e.g., \"age > 30 AND active = true\")")
	fs.IntVar(&opts.limit, "limit", 0, "Limit number of records (0 = unlimited)")
	fs.BoolVar(&opts.describe, "describe", false, "Show input columns instead of data")
	fs.BoolVar(&opts.verbose, "v", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tabshape [options] <file|glob>...\n\n")
		fmt.Fprintf(stderr, "Reshape parquet or CSV rows into nested records.\n\n")
		fmt.Fprintf(stderr, "IMPORTANT: All flags must come BEFORE file arguments.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  tabshape -s catalogue.yaml items.parquet\n")
		fmt.Fprintf(stderr, "  tabshape -s catalogue.yaml -f yaml 'data/*.csv'\n")
		fmt.Fprintf(stderr, "  tabshape -s catalogue.yaml -root item -where \"price > 10\" items.parquet\n")
		fmt.Fprintf(stderr, "  tabshape -describe items.parquet\n")
	}
	return fs
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := newFlagSet(opts, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.inputs = fs.Args()

	// Validate flag values
	if opts.limit < 0 {
		return nil, fmt.Errorf("-limit must be non-negative, got %d", opts.limit)
	}

	// Validate flag combinations
	if opts.describe && opts.where != "" {
		return nil, fmt.Errorf("-describe and -where cannot be used together")
	}
	if len(opts.inputs) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("%w: missing input file argument", errUsage)
	}
	if !opts.describe && opts.schema == "" {
		fs.Usage()
		return nil, fmt.Errorf("%w: missing -s schema file", errUsage)
	}
	return opts, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", uuid.NewString())
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, opts.verbose)

	// Fail on a bad format before reading anything
	formatter, err := output.New(opts.format, stdout)
	if err != nil {
		return err
	}

	if opts.describe {
		return describe(opts.inputs, formatter, logger)
	}

	file, err := schemafile.LoadFile(opts.schema)
	if err != nil {
		return err
	}
	var schema *serializer.Schema
	if opts.root != "" {
		schema, err = file.Schema(opts.root)
	} else {
		schema, err = file.RootSchema()
	}
	if err != nil {
		return err
	}
	logger.Debug("loaded schema", "file", opts.schema, "serializer", schema.Name(), "fields", schema.Len())

	frame, err := reader.ReadInputs(opts.inputs...)
	if err != nil {
		return err
	}
	logger.Debug("read inputs", "patterns", opts.inputs, "rows", frame.Len(), "columns", len(frame.Columns()))

	if opts.where != "" {
		filtered, err := filter.ParseAndApply(frame, opts.where)
		if err != nil {
			return fmt.Errorf("failed to filter rows: %w (available columns: %s)", err, strings.Join(frame.Columns(), ", "))
		}
		logger.Debug("filtered rows", "where", opts.where, "rows", filtered.Len())
		frame = filtered
	}

	records, err := serializer.Represent(schema, frame)
	if err != nil {
		return err
	}
	logger.Debug("represented rows", "records", len(records))

	if opts.limit > 0 && len(records) > opts.limit {
		records = records[:opts.limit]
	}

	if err := formatter.Format(records); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

// describe writes one record per input column of the first pattern.
func describe(inputs []string, formatter output.Formatter, logger *slog.Logger) error {
	if len(inputs) > 1 {
		logger.Warn("describing first input only", "input", inputs[0], "ignored", len(inputs)-1)
	}

	columns, err := reader.Columns(inputs[0])
	if err != nil {
		return err
	}

	records := make([]*serializer.Record, len(columns))
	for i, col := range columns {
		r := serializer.NewRecord()
		r.Set("name", col.Name)
		r.Set("type", col.Type)
		r.Set("logical_type", col.LogicalType)
		r.Set("optional", col.Optional)
		r.Set("repeated", col.Repeated)
		records[i] = r
	}
	return formatter.Format(records)
}
