package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Defaults(t *testing.T) {
	var f Field

	assert.Empty(t, f.Source)
	assert.False(t, f.Unique)
	assert.False(t, f.IsHidden())
	assert.Equal(t, KindField, f.Kind())
}

func TestField_Options(t *testing.T) {
	f := Field{Source: "source", Unique: true, Hidden: true}

	assert.Equal(t, "source", f.Source)
	assert.True(t, f.Unique)
	assert.True(t, f.IsHidden())
}

func TestNestField_NilSerializer(t *testing.T) {
	f := NestField{}

	assert.Nil(t, f.Serializer)
	assert.Equal(t, KindNest, f.Kind())
}

func TestNewGroupField_List(t *testing.T) {
	f, err := NewGroupField(FunctionList, false)
	require.NoError(t, err)

	assert.Equal(t, FunctionList, f.Group.Function.Name)
	assert.NotNil(t, f.Group.Function.Reduce)
	assert.Empty(t, f.Group.Function.Arguments)
	assert.False(t, f.Group.DropDuplicates)
	assert.Equal(t, KindGroup, f.Kind())
}

func TestNewGroupField_MinMaxHaveDefault(t *testing.T) {
	for _, name := range []string{FunctionMin, FunctionMax} {
		t.Run(name, func(t *testing.T) {
			f, err := NewGroupField(name, false)
			require.NoError(t, err)

			def, ok := f.Group.Function.Arguments["default"]
			assert.True(t, ok, "default argument missing")
			assert.Nil(t, def)
		})
	}
}

func TestNewGroupField_DropDuplicates(t *testing.T) {
	f, err := NewGroupField(FunctionList, true)
	require.NoError(t, err)

	assert.True(t, f.Group.DropDuplicates)
}

func TestNewGroupField_InvalidFunction(t *testing.T) {
	for _, name := range []string{"", "sum", "LIST", "count", "avg"} {
		t.Run(name, func(t *testing.T) {
			_, err := NewGroupField(name, false)
			assert.ErrorIs(t, err, ErrGroupFieldAction)
		})
	}
}

func TestMustGroupField_Panics(t *testing.T) {
	assert.Panics(t, func() { MustGroupField("sum", false) })
	assert.NotPanics(t, func() { MustGroupField(FunctionMax, false) })
}

func TestNewGroupField_ArgumentsAreCopies(t *testing.T) {
	a, err := NewGroupField(FunctionMin, false)
	require.NoError(t, err)
	a.Group.Function.Arguments["default"] = 42

	b, err := NewGroupField(FunctionMin, false)
	require.NoError(t, err)
	assert.Nil(t, b.Group.Function.Arguments["default"])
}

func TestGroupField_Copies(t *testing.T) {
	base := MustGroupField(FunctionList, false)
	renamed := base.WithSource("c").AsHidden()

	assert.Equal(t, "c", renamed.Source)
	assert.True(t, renamed.IsHidden())
	assert.Empty(t, base.Source)
	assert.False(t, base.IsHidden())
}

func TestNewNestGroupField_Defaults(t *testing.T) {
	f := NewNestGroupField(nil, false)

	assert.Nil(t, f.Serializer)
	assert.Equal(t, FunctionList, f.Group.Function.Name)
	assert.False(t, f.Group.DropDuplicates)
	assert.Equal(t, KindNestGroup, f.Kind())
}

func TestNewNestGroupField_DropDuplicates(t *testing.T) {
	assert.True(t, NewNestGroupField(nil, true).Group.DropDuplicates)
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindField:     "field",
		KindNest:      "nest",
		KindGroup:     "group",
		KindNestGroup: "nest_group",
		Kind(99):      "unknown",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
	}
}

func TestFunctionNames(t *testing.T) {
	assert.Equal(t, []string{"list", "max", "min"}, FunctionNames())
}
