package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vegasq/tabshape/table"
)

// compare compares two values using the given operator.
//
// A nil cell differs from every literal and never satisfies an ordering
// operator. Values of unrelated types cannot be compared.
func compare(left interface{}, operator TokenType, right interface{}) (bool, error) {
	// Handle nil values
	if left == nil || right == nil {
		if operator == TokenEqual {
			return left == right, nil
		}
		if operator == TokenNotEqual {
			return left != right, nil
		}
		return false, nil
	}

	cmp, err := table.Compare(left, right)
	if err != nil {
		if errors.Is(err, table.ErrIncomparable) {
			return false, fmt.Errorf("cannot compare %T with %T", left, right)
		}
		return false, err
	}

	switch operator {
	case TokenEqual:
		return cmp == 0, nil
	case TokenNotEqual:
		return cmp != 0, nil
	case TokenLess:
		return cmp < 0, nil
	case TokenGreater:
		return cmp > 0, nil
	case TokenLessEqual:
		return cmp <= 0, nil
	case TokenGreaterEqual:
		return cmp >= 0, nil
	default:
		return false, nil
	}
}

// Apply returns the rows of t for which expr holds, in table order. A nil
// expression keeps every row.
//
// Every column the expression reads must exist in t, otherwise Apply fails
// with ErrUnknownColumn before evaluating any row.
func Apply(t table.Table, expr Expression) (*table.Frame, error) {
	if expr == nil {
		return table.Materialize(t), nil
	}

	available := make(map[string]bool)
	for _, col := range t.Columns() {
		available[col] = true
	}
	var missing []string
	for _, col := range Columns(expr) {
		if !available[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, strings.Join(missing, ", "))
	}

	return table.Where(t, expr.Evaluate)
}

// ParseAndApply parses expr and applies it to t. A blank expression keeps
// every row.
func ParseAndApply(t table.Table, expr string) (*table.Frame, error) {
	if strings.TrimSpace(expr) == "" {
		return table.Materialize(t), nil
	}

	e, err := Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}
	return Apply(t, e)
}
