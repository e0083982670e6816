// Package filter provides WHERE-style row filtering for tables.
//
// It implements a small boolean expression language with comparison
// operators, IS [NOT] NULL tests, AND/OR and parentheses. The package
// includes a lexer for tokenization, a parser for building ASTs, and an
// evaluator for filtering table rows.
//
// Example usage:
//
//	expr, err := filter.Parse("age > 30 AND (name = 'bob' OR active = true)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	filtered, err := filter.Apply(frame, expr)
package filter

import (
	"strconv"

	"github.com/vegasq/tabshape/table"
)

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenAnd TokenType = iota
	TokenOr
	TokenIs
	TokenNot
	TokenNull

	// Operators
	TokenEqual        // =
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Grouping
	TokenLParen // (
	TokenRParen // )

	// Literals
	TokenString
	TokenNumber
	TokenIdent
	TokenBool

	// Special
	TokenEOF
	TokenError
)

var tokenNames = map[TokenType]string{
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenIs:           "IS",
	TokenNot:          "NOT",
	TokenNull:         "NULL",
	TokenEqual:        "=",
	TokenNotEqual:     "!=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenString:       "string",
	TokenNumber:       "number",
	TokenIdent:        "identifier",
	TokenBool:         "boolean",
	TokenEOF:          "end of expression",
	TokenError:        "invalid token",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "TokenType(" + strconv.Itoa(int(t)) + ")"
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Expression represents a boolean expression over one row
type Expression interface {
	Evaluate(row table.Row) (bool, error)
}

// BinaryExpr represents a binary expression (AND/OR)
type BinaryExpr struct {
	Left     Expression
	Operator TokenType // TokenAnd or TokenOr
	Right    Expression
}

// ComparisonExpr represents a comparison expression
type ComparisonExpr struct {
	Column   string
	Operator TokenType
	Value    interface{}
}

// NullExpr represents an IS NULL or IS NOT NULL test
type NullExpr struct {
	Column string
	Negate bool // IS NOT NULL
}

// Evaluate evaluates a binary expression. The right side is skipped when
// the left side decides the result.
func (b *BinaryExpr) Evaluate(row table.Row) (bool, error) {
	left, err := b.Left.Evaluate(row)
	if err != nil {
		return false, err
	}

	switch b.Operator {
	case TokenAnd:
		if !left {
			return false, nil
		}
	case TokenOr:
		if left {
			return true, nil
		}
	default:
		return false, nil
	}

	return b.Right.Evaluate(row)
}

// Evaluate evaluates a comparison expression
func (c *ComparisonExpr) Evaluate(row table.Row) (bool, error) {
	value, exists := row.Get(c.Column)
	if !exists {
		return false, nil
	}

	return compare(value, c.Operator, c.Value)
}

// Evaluate evaluates a null test
func (n *NullExpr) Evaluate(row table.Row) (bool, error) {
	value, _ := row.Get(n.Column)
	return (value == nil) != n.Negate, nil
}

// Columns returns the column names an expression reads, in order of first
// use.
func Columns(expr Expression) []string {
	var columns []string
	seen := make(map[string]bool)

	var walk func(Expression)
	walk = func(e Expression) {
		var col string
		switch v := e.(type) {
		case *BinaryExpr:
			walk(v.Left)
			walk(v.Right)
			return
		case *ComparisonExpr:
			col = v.Column
		case *NullExpr:
			col = v.Column
		default:
			return
		}
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}
	if expr != nil {
		walk(expr)
	}

	return columns
}
