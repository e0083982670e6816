package serializer

// Kind identifies which FieldSpec variant a field is.
type Kind int

const (
	KindField     Kind = iota // plain column read
	KindNest                  // nested record from the same row
	KindGroup                 // reduced column values across a group
	KindNestGroup             // nested records, one per group row
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindNest:
		return "nest"
	case KindGroup:
		return "group"
	case KindNestGroup:
		return "nest_group"
	default:
		return "unknown"
	}
}

// FieldSpec describes how to derive one output value from a row or a group.
//
// The set of implementations is closed: Field, NestField, GroupField and
// NestGroupField. Callers switch on the concrete type or on Kind.
type FieldSpec interface {
	Kind() Kind
	IsHidden() bool
	fieldSpec()
}

// Field reads one column from the row, or from the first row of a group.
//
// An empty Source means the column has the same name the field is declared
// under. Unique fields form the grouping key. Hidden fields still take part
// in grouping but are left out of the output record.
type Field struct {
	Source string
	Unique bool
	Hidden bool
}

// NestField embeds a record built by another schema from the same row.
// A nil Serializer is allowed and produces a nil value.
type NestField struct {
	Serializer *Schema
	Hidden     bool
}

// GroupOptions describes how a group field reduces a group's rows.
type GroupOptions struct {
	Function       Function
	DropDuplicates bool
}

// GroupField reduces the values of a column across every row of a group.
// Build it with NewGroupField so the function is checked against the
// reducer whitelist.
type GroupField struct {
	Source string
	Hidden bool
	Group  GroupOptions
}

// NestGroupField embeds one nested record per row of a group, optionally
// keeping only the first occurrence of equal records.
type NestGroupField struct {
	Serializer *Schema
	Hidden     bool
	Group      GroupOptions
}

// NewGroupField creates a group field reducing with the named function.
//
// The function must be one of FunctionNames(); any other name fails with an
// error wrapping ErrGroupFieldAction, before any data is touched.
//
// Example:
//
//	c, err := serializer.NewGroupField(serializer.FunctionList, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewGroupField(function string, dropDuplicates bool) (GroupField, error) {
	fn, err := LookupFunction(function)
	if err != nil {
		return GroupField{}, err
	}
	return GroupField{Group: GroupOptions{Function: fn, DropDuplicates: dropDuplicates}}, nil
}

// MustGroupField is like NewGroupField but panics on error. It simplifies
// schemas declared as package-level variables.
func MustGroupField(function string, dropDuplicates bool) GroupField {
	f, err := NewGroupField(function, dropDuplicates)
	if err != nil {
		panic(err)
	}
	return f
}

// NewNestGroupField creates a nested group field over the given schema.
// Its group function is always list.
func NewNestGroupField(serializer *Schema, dropDuplicates bool) NestGroupField {
	fn, err := LookupFunction(FunctionList)
	if err != nil {
		// list is always registered
		panic(err)
	}
	return NestGroupField{
		Serializer: serializer,
		Group:      GroupOptions{Function: fn, DropDuplicates: dropDuplicates},
	}
}

// WithSource returns a copy of the field reading from the given column.
func (f GroupField) WithSource(source string) GroupField {
	f.Source = source
	return f
}

// AsHidden returns a copy of the field excluded from output.
func (f GroupField) AsHidden() GroupField {
	f.Hidden = true
	return f
}

func (Field) Kind() Kind          { return KindField }
func (NestField) Kind() Kind      { return KindNest }
func (GroupField) Kind() Kind     { return KindGroup }
func (NestGroupField) Kind() Kind { return KindNestGroup }

func (f Field) IsHidden() bool          { return f.Hidden }
func (f NestField) IsHidden() bool      { return f.Hidden }
func (f GroupField) IsHidden() bool     { return f.Hidden }
func (f NestGroupField) IsHidden() bool { return f.Hidden }

func (Field) fieldSpec()          {}
func (NestField) fieldSpec()      {}
func (GroupField) fieldSpec()     {}
func (NestGroupField) fieldSpec() {}

// sourceOf returns the column a field reads, falling back to its name
func sourceOf(source, name string) string {
	if source != "" {
		return source
	}
	return name
}
