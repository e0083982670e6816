package schemafile

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/tabshape/serializer"
)

var (
	// ErrUnknownSerializer is returned when a name refers to no serializer
	ErrUnknownSerializer = errors.New("unknown serializer")

	// ErrCycle is returned when serializers refer to each other in a loop
	ErrCycle = errors.New("serializer reference cycle")

	// ErrUnknownKind is returned for a field kind outside field, nest,
	// group and nest_group
	ErrUnknownKind = errors.New("unknown field kind")

	// ErrNoRoot is returned when the root serializer cannot be determined
	ErrNoRoot = errors.New("no root serializer")

	// ErrEmpty is returned for files that declare no serializers
	ErrEmpty = errors.New("no serializers declared")
)

// LoadFile loads and parses a YAML schema file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses YAML data into a File and builds every serializer it
// declares, so definition errors surface here rather than on first use.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	if len(f.Serializers) == 0 {
		return nil, ErrEmpty
	}
	for name, def := range f.Serializers {
		if def == nil {
			f.Serializers[name] = &SerializerDef{}
		}
	}
	if f.Root != "" {
		if _, ok := f.Serializers[f.Root]; !ok {
			return nil, fmt.Errorf("root: %w: %q", ErrUnknownSerializer, f.Root)
		}
	}

	b := &builder{file: &f, built: make(map[string]*serializer.Schema)}
	for _, name := range sortedNames(f.Serializers) {
		if _, err := b.build(name, nil); err != nil {
			return nil, err
		}
	}
	f.schemas = b.built

	return &f, nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Schema returns the built schema of the named serializer.
func (f *File) Schema(name string) (*serializer.Schema, error) {
	s, ok := f.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (declared: %s)", ErrUnknownSerializer, name, strings.Join(f.Names(), ", "))
	}
	return s, nil
}

// RootSchema returns the schema named by Root, or the only serializer when
// Root is empty and exactly one is declared.
func (f *File) RootSchema() (*serializer.Schema, error) {
	if f.Root != "" {
		return f.Schema(f.Root)
	}
	if names := f.Names(); len(names) == 1 {
		return f.Schema(names[0])
	}
	return nil, fmt.Errorf("%w: set root or pick one of %s", ErrNoRoot, strings.Join(f.Names(), ", "))
}

// builder resolves serializer references depth first. The stack holds the
// names being built so a reference back into it is a cycle.
type builder struct {
	file  *File
	built map[string]*serializer.Schema
}

func (b *builder) build(name string, stack []string) (*serializer.Schema, error) {
	if s, ok := b.built[name]; ok {
		return s, nil
	}
	for i, pending := range stack {
		if pending == name {
			path := append(append([]string(nil), stack[i:]...), name)
			return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(path, " -> "))
		}
	}

	def, ok := b.file.Serializers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSerializer, name)
	}
	stack = append(stack, name)

	fields := make([]serializer.NamedField, 0, len(def.Fields))
	for _, fd := range def.Fields {
		spec, err := b.fieldSpec(fd, stack)
		if err != nil {
			return nil, fmt.Errorf("serializer %q, field %q (line %d): %w", name, fd.Name, fd.Line, err)
		}
		fields = append(fields, serializer.Named(fd.Name, spec))
	}

	var (
		s   *serializer.Schema
		err error
	)
	if def.Extends != "" {
		base, baseErr := b.build(def.Extends, stack)
		if baseErr != nil {
			return nil, fmt.Errorf("serializer %q extends: %w", name, baseErr)
		}
		s, err = base.Extend(name, fields...)
	} else {
		s, err = serializer.NewSchema(name, fields...)
	}
	if err != nil {
		return nil, err
	}

	b.built[name] = s
	return s, nil
}

// fieldSpec converts one definition into a field spec, building referenced
// serializers first
func (b *builder) fieldSpec(fd FieldDef, stack []string) (serializer.FieldSpec, error) {
	switch fd.Kind {
	case "", KindField:
		if fd.Function != "" || fd.Serializer != "" || fd.DropDuplicates {
			return nil, fmt.Errorf("%w: plain fields take source, unique and hidden only", serializer.ErrInvalidField)
		}
		return serializer.Field{Source: fd.Source, Unique: fd.Unique, Hidden: fd.Hidden}, nil

	case KindNest:
		if fd.Source != "" || fd.Unique || fd.Function != "" || fd.DropDuplicates {
			return nil, fmt.Errorf("%w: nest fields take serializer and hidden only", serializer.ErrInvalidField)
		}
		nested, err := b.reference(fd, stack)
		if err != nil {
			return nil, err
		}
		return serializer.NestField{Serializer: nested, Hidden: fd.Hidden}, nil

	case KindGroup:
		if fd.Unique {
			return nil, fmt.Errorf("%w: group fields cannot be unique", serializer.ErrInvalidField)
		}
		g, err := serializer.NewGroupField(fd.Function, fd.DropDuplicates)
		if err != nil {
			return nil, err
		}
		g = g.WithSource(fd.Source)
		if fd.Hidden {
			g = g.AsHidden()
		}
		return g, nil

	case KindNestGroup:
		if fd.Source != "" || fd.Unique {
			return nil, fmt.Errorf("%w: nest_group fields cannot take source or unique", serializer.ErrInvalidField)
		}
		if fd.Function != "" && fd.Function != serializer.FunctionList {
			return nil, fmt.Errorf("%w: nest_group fields always collect a list, got %q",
				serializer.ErrGroupFieldAction, fd.Function)
		}
		nested, err := b.reference(fd, stack)
		if err != nil {
			return nil, err
		}
		ng := serializer.NewNestGroupField(nested, fd.DropDuplicates)
		ng.Hidden = fd.Hidden
		return ng, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, fd.Kind)
	}
}

// reference builds the serializer a nest or nest_group field points at.
// An empty reference is allowed and yields a nil schema.
func (b *builder) reference(fd FieldDef, stack []string) (*serializer.Schema, error) {
	if fd.Serializer == "" {
		return nil, nil
	}
	return b.build(fd.Serializer, stack)
}

func sortedNames(defs map[string]*SerializerDef) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
