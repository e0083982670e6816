package schemafile

import "github.com/vegasq/tabshape/serializer"

// File represents the root of a YAML schema file.
type File struct {
	// Root names the serializer applied to the input table.
	// May be empty when the file declares a single serializer.
	Root string `yaml:"root,omitempty"`

	// Serializers maps a serializer name to its definition.
	Serializers map[string]*SerializerDef `yaml:"serializers"`

	// schemas holds the built schemas, keyed by serializer name.
	schemas map[string]*serializer.Schema
}

// SerializerDef defines one named serializer.
type SerializerDef struct {
	// Extends names another serializer whose fields come first. Fields
	// declared here with the same name replace the inherited ones in place.
	Extends string `yaml:"extends,omitempty"`

	// Fields lists the output fields in declaration order.
	Fields FieldDefs `yaml:"fields"`
}

// FieldDefs is an ordered list of field definitions, written in YAML as a
// mapping from output key to options.
type FieldDefs []FieldDef

// Field kinds as written in schema files.
const (
	KindField     = "field"
	KindNest      = "nest"
	KindGroup     = "group"
	KindNestGroup = "nest_group"
)

// FieldDef holds the options of one field. Which options apply depends on
// Kind:
//   - field: source, unique, hidden
//   - nest: serializer, hidden
//   - group: function, drop_duplicates, source, hidden
//   - nest_group: serializer, drop_duplicates, hidden
type FieldDef struct {
	// Name is the output key, taken from the mapping key.
	Name string `yaml:"-"`

	// Line is the line of the mapping key, for error messages.
	Line int `yaml:"-"`

	Kind           string `yaml:"kind,omitempty"`
	Source         string `yaml:"source,omitempty"`
	Unique         bool   `yaml:"unique,omitempty"`
	Hidden         bool   `yaml:"hidden,omitempty"`
	Function       string `yaml:"function,omitempty"`
	DropDuplicates bool   `yaml:"drop_duplicates,omitempty"`
	Serializer     string `yaml:"serializer,omitempty"`
}

// Names returns the declared serializer names.
func (f *File) Names() []string {
	return sortedNames(f.Serializers)
}
