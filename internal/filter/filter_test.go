package filter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vegasq/tabshape/table"
)

func TestCompare_Numbers(t *testing.T) {
	tests := []struct {
		name     string
		left     interface{}
		operator TokenType
		right    interface{}
		want     bool
	}{
		// Integer comparisons
		{"int equal", int64(30), TokenEqual, int64(30), true},
		{"int not equal", int64(30), TokenNotEqual, int64(25), true},
		{"int less", int32(25), TokenLess, int64(30), true},
		{"int greater", int64(35), TokenGreater, int32(30), true},
		{"int less equal same", int64(30), TokenLessEqual, int64(30), true},
		{"int greater equal greater", int64(35), TokenGreaterEqual, int64(30), true},

		// Float comparisons
		{"float equal", float64(3.14), TokenEqual, float64(3.14), true},
		{"float less", float64(2.5), TokenLess, float64(3.0), true},

		// Mixed int/float comparisons
		{"int vs float equal", int64(30), TokenEqual, float64(30.0), true},
		{"int vs float less", int32(25), TokenLess, float64(30.5), true},

		// Negative results
		{"int not equal same", int64(30), TokenNotEqual, int64(30), false},
		{"int less wrong", int64(35), TokenLess, int64(30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compare(tt.left, tt.operator, tt.right)
			if err != nil {
				t.Errorf("compare() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("compare(%v, %v, %v) = %v, want %v", tt.left, tt.operator, tt.right, got, tt.want)
			}
		})
	}
}

func TestCompare_StringsAndBools(t *testing.T) {
	tests := []struct {
		name     string
		left     interface{}
		operator TokenType
		right    interface{}
		want     bool
	}{
		{"string equal", "alice", TokenEqual, "alice", true},
		{"string case sensitive", "Alice", TokenEqual, "alice", false},
		{"string less", "alice", TokenLess, "bob", true},
		{"bool equal", true, TokenEqual, true, true},
		{"bool not equal", true, TokenNotEqual, false, true},
		{"bool order", false, TokenLess, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compare(tt.left, tt.operator, tt.right)
			if err != nil {
				t.Fatalf("compare() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("compare(%v, %v, %v) = %v, want %v", tt.left, tt.operator, tt.right, got, tt.want)
			}
		})
	}
}

func TestCompare_Nil(t *testing.T) {
	tests := []struct {
		operator TokenType
		want     bool
	}{
		{TokenEqual, false},
		{TokenNotEqual, true},
		{TokenLess, false},
		{TokenGreaterEqual, false},
	}

	for _, tt := range tests {
		t.Run(tt.operator.String(), func(t *testing.T) {
			got, err := compare(nil, tt.operator, int64(1))
			if err != nil {
				t.Fatalf("compare() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("compare(nil, %v, 1) = %v, want %v", tt.operator, got, tt.want)
			}
		})
	}
}

func TestCompare_TypeMismatch(t *testing.T) {
	if _, err := compare("30", TokenEqual, int64(30)); err == nil {
		t.Errorf("compare() expected error for string vs number")
	}
	if _, err := compare(true, TokenGreater, "x"); err == nil {
		t.Errorf("compare() expected error for bool vs string")
	}
}

func usersFrame(t *testing.T) *table.Frame {
	t.Helper()
	f, err := table.FromColumns([]string{"id", "name", "age", "active"}, map[string][]interface{}{
		"id":     {int64(1), int64(2), int64(3), int64(4)},
		"name":   {"alice", "bob", nil, "diana"},
		"age":    {int64(30), int64(25), int64(35), int64(28)},
		"active": {true, false, true, true},
	})
	if err != nil {
		t.Fatalf("FromColumns() error = %v", err)
	}
	return f
}

func ids(t *testing.T, f *table.Frame) []interface{} {
	t.Helper()
	values, ok := f.Column("id")
	if !ok {
		t.Fatalf("id column missing")
	}
	return values
}

func TestParseAndApply(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []interface{}
	}{
		{"blank keeps all", "", []interface{}{int64(1), int64(2), int64(3), int64(4)}},
		{"comparison", "age > 28", []interface{}{int64(1), int64(3)}},
		{"and", "age > 26 AND active = true", []interface{}{int64(1), int64(3), int64(4)}},
		{"or", "name = 'bob' OR age >= 35", []interface{}{int64(2), int64(3)}},
		{"parentheses", "active = true AND (age < 29 OR name = 'alice')", []interface{}{int64(1), int64(4)}},
		{"is null", "name IS NULL", []interface{}{int64(3)}},
		{"is not null", "name IS NOT NULL AND age < 30", []interface{}{int64(2), int64(4)}},
		{"nil differs from literal", "name != 'alice'", []interface{}{int64(2), int64(3), int64(4)}},
		{"no match", "age > 100", []interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAndApply(usersFrame(t), tt.expr)
			if err != nil {
				t.Fatalf("ParseAndApply() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, ids(t, got)); diff != "" {
				t.Errorf("ParseAndApply(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestApply_UnknownColumn(t *testing.T) {
	expr, err := Parse("age > 1 AND salary > 10")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, err = Apply(usersFrame(t), expr)
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Apply() error = %v, want ErrUnknownColumn", err)
	}
}

func TestApply_EvaluationError(t *testing.T) {
	expr, err := Parse("name > 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if _, err := Apply(usersFrame(t), expr); err == nil {
		t.Errorf("Apply() expected error comparing strings with numbers")
	}
}

func TestApply_ShortCircuit(t *testing.T) {
	// The right side would fail on every row if it were evaluated
	got, err := ParseAndApply(usersFrame(t), "age > 100 AND name > 3")
	if err != nil {
		t.Fatalf("ParseAndApply() error = %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("ParseAndApply() returned %d rows, want 0", got.Len())
	}
}

func TestApply_NilExpression(t *testing.T) {
	got, err := Apply(usersFrame(t), nil)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got.Len() != 4 {
		t.Errorf("Apply() returned %d rows, want 4", got.Len())
	}
}

func TestParseAndApply_InvalidExpression(t *testing.T) {
	_, err := ParseAndApply(usersFrame(t), "age >")
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("ParseAndApply() error = %v, want ErrSyntax", err)
	}
}
