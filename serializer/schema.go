package serializer

import "fmt"

// NamedField pairs an output key with the field that produces its value.
type NamedField struct {
	Name string
	Spec FieldSpec
}

// Named is shorthand for NamedField{Name: name, Spec: spec}.
func Named(name string, spec FieldSpec) NamedField {
	return NamedField{Name: name, Spec: spec}
}

// Schema is an ordered, immutable set of named fields. The declaration order
// is the key order of every record the schema produces.
type Schema struct {
	name   string
	fields []NamedField
	index  map[string]int
}

// NewSchema creates a schema from fields in output order.
//
// Names must be non-empty and unique, specs non-nil, and every group
// function whitelisted (errors wrap ErrInvalidField, ErrDuplicateField and
// ErrGroupFieldAction respectively). Group reducers are always taken from
// the whitelist by name. Specs and their arguments are copied, so changing
// them afterwards does not affect the schema.
//
// Example:
//
//	item := serializer.MustSchema("item", serializer.Named("c", serializer.Field{}))
//	s, err := serializer.NewSchema("catalogue",
//	    serializer.Named("a", serializer.Field{Unique: true}),
//	    serializer.Named("items", serializer.NewNestGroupField(item, false)),
//	)
func NewSchema(name string, fields ...NamedField) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: make([]NamedField, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		spec, err := normalizeSpec(f)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", name, err)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("schema %q: %w: %q", name, ErrDuplicateField, f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, NamedField{Name: f.Name, Spec: spec})
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(name string, fields ...NamedField) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Extend derives a new schema from s.
//
// A field whose name already exists in s replaces it in place; other fields
// are appended in the order given. s itself is left unchanged.
func (s *Schema) Extend(name string, fields ...NamedField) (*Schema, error) {
	merged := append([]NamedField(nil), s.fields...)

	pending := make(map[string]bool, len(fields))
	for _, f := range fields {
		if pending[f.Name] {
			return nil, fmt.Errorf("schema %q: %w: %q", name, ErrDuplicateField, f.Name)
		}
		pending[f.Name] = true

		if i, ok := s.index[f.Name]; ok {
			merged[i] = f
		} else {
			merged = append(merged, f)
		}
	}

	return NewSchema(name, merged...)
}

// normalizeSpec validates one declaration and dereferences pointer specs
func normalizeSpec(f NamedField) (FieldSpec, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("%w: empty field name", ErrInvalidField)
	}

	switch spec := f.Spec.(type) {
	case nil:
		return nil, fmt.Errorf("%w: field %q has no spec", ErrInvalidField, f.Name)
	case Field:
		return spec, nil
	case *Field:
		if spec == nil {
			return nil, fmt.Errorf("%w: field %q has no spec", ErrInvalidField, f.Name)
		}
		return *spec, nil
	case NestField:
		return spec, nil
	case *NestField:
		if spec == nil {
			return nil, fmt.Errorf("%w: field %q has no spec", ErrInvalidField, f.Name)
		}
		return *spec, nil
	case GroupField:
		fn, err := bindFunction(spec.Group.Function)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		spec.Group.Function = fn
		return spec, nil
	case *GroupField:
		if spec == nil {
			return nil, fmt.Errorf("%w: field %q has no spec", ErrInvalidField, f.Name)
		}
		return normalizeSpec(NamedField{Name: f.Name, Spec: *spec})
	case NestGroupField:
		fn, err := bindFunction(spec.Group.Function)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if fn.Name != FunctionList {
			return nil, fmt.Errorf("field %q: %w: nested group fields only collect with %q, got %q",
				f.Name, ErrGroupFieldAction, FunctionList, fn.Name)
		}
		spec.Group.Function = fn
		return spec, nil
	case *NestGroupField:
		if spec == nil {
			return nil, fmt.Errorf("%w: field %q has no spec", ErrInvalidField, f.Name)
		}
		return normalizeSpec(NamedField{Name: f.Name, Spec: *spec})
	default:
		return nil, fmt.Errorf("%w: field %q has unsupported spec %T", ErrInvalidField, f.Name, f.Spec)
	}
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Len returns the number of declared fields, hidden ones included.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Fields returns copies of the declared fields in order.
func (s *Schema) Fields() []NamedField {
	fields := make([]NamedField, len(s.fields))
	for i, f := range s.fields {
		fields[i] = NamedField{Name: f.Name, Spec: copySpec(f.Spec)}
	}
	return fields
}

// Field returns the spec declared under name.
func (s *Schema) Field(name string) (FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return copySpec(s.fields[i].Spec), true
}

// copySpec detaches the group arguments of a stored spec from the schema
func copySpec(spec FieldSpec) FieldSpec {
	switch v := spec.(type) {
	case GroupField:
		v.Group.Function.Arguments = v.Group.Function.Arguments.clone()
		return v
	case NestGroupField:
		v.Group.Function.Arguments = v.Group.Function.Arguments.clone()
		return v
	default:
		return spec
	}
}

// UniqueFields returns the top-level plain fields marked Unique, in
// declaration order. Together they form the grouping key.
func (s *Schema) UniqueFields() []NamedField {
	var unique []NamedField
	for _, f := range s.fields {
		if field, ok := f.Spec.(Field); ok && field.Unique {
			unique = append(unique, f)
		}
	}
	return unique
}

// KeyColumns returns the source columns of the unique fields.
func (s *Schema) KeyColumns() []string {
	unique := s.UniqueFields()
	columns := make([]string, 0, len(unique))
	for _, f := range unique {
		columns = append(columns, sourceOf(f.Spec.(Field).Source, f.Name))
	}
	return columns
}

// HasGroupFields reports whether any top-level field is a GroupField or a
// NestGroupField. Nested schemas are not inspected.
func (s *Schema) HasGroupFields() bool {
	for _, f := range s.fields {
		switch f.Spec.Kind() {
		case KindGroup, KindNestGroup:
			return true
		}
	}
	return false
}

// Validate checks the rules that depend on the schema as a whole: group
// fields need at least one unique field to group by.
func (s *Schema) Validate() error {
	if s.HasGroupFields() && len(s.UniqueFields()) == 0 {
		return fmt.Errorf("schema %q: %w", s.name, ErrGroupFieldUnique)
	}
	return nil
}

// RequiredColumns returns every column the schema reads, nested schemas
// included, in order of first use.
func (s *Schema) RequiredColumns() []string {
	var columns []string
	seen := make(map[string]bool)
	visiting := make(map[*Schema]bool)
	s.collectColumns(&columns, seen, visiting)
	return columns
}

func (s *Schema) collectColumns(columns *[]string, seen map[string]bool, visiting map[*Schema]bool) {
	if visiting[s] {
		return
	}
	visiting[s] = true
	defer delete(visiting, s)

	add := func(col string) {
		if !seen[col] {
			seen[col] = true
			*columns = append(*columns, col)
		}
	}

	for _, f := range s.fields {
		switch spec := f.Spec.(type) {
		case Field:
			add(sourceOf(spec.Source, f.Name))
		case GroupField:
			add(sourceOf(spec.Source, f.Name))
		case NestField:
			if spec.Serializer != nil {
				spec.Serializer.collectColumns(columns, seen, visiting)
			}
		case NestGroupField:
			if spec.Serializer != nil {
				spec.Serializer.collectColumns(columns, seen, visiting)
			}
		}
	}
}
