package filter

import (
	"errors"
	"fmt"
)

// Validation constants to prevent DoS and resource exhaustion
const (
	// MaxExpressionLength is the maximum allowed expression length (64KB)
	MaxExpressionLength = 64 * 1024

	// MaxTokens is the maximum number of tokens in an expression
	MaxTokens = 1000

	// MaxExpressionDepth is the maximum nesting depth for expressions
	MaxExpressionDepth = 100

	// MaxColumnNameLength is the maximum length for a column name
	MaxColumnNameLength = 256
)

var (
	// ErrExpressionTooLong is returned when an expression exceeds MaxExpressionLength
	ErrExpressionTooLong = errors.New("expression too long")

	// ErrTooManyTokens is returned when an expression has too many tokens
	ErrTooManyTokens = errors.New("too many tokens in expression")

	// ErrExpressionTooDeep is returned when expression nesting exceeds limit
	ErrExpressionTooDeep = errors.New("expression nesting too deep")

	// ErrColumnNameTooLong is returned when column name is too long
	ErrColumnNameTooLong = errors.New("column name too long")

	// ErrEmptyExpression is returned for blank expressions
	ErrEmptyExpression = errors.New("empty expression")

	// ErrSyntax is returned for malformed expressions
	ErrSyntax = errors.New("syntax error")

	// ErrUnknownColumn is returned by Apply when the expression reads a
	// column the table lacks
	ErrUnknownColumn = errors.New("unknown column")
)

// ValidateExpression performs security validation on expression input
func ValidateExpression(expr string) error {
	if len(expr) > MaxExpressionLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrExpressionTooLong, len(expr), MaxExpressionLength)
	}
	return nil
}

// ValidateColumnName validates column name length
func ValidateColumnName(name string) error {
	if len(name) > MaxColumnNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrColumnNameTooLong, len(name), MaxColumnNameLength)
	}
	return nil
}

// ValidateTokens validates token count
func ValidateTokens(tokens []Token) error {
	if len(tokens) > MaxTokens {
		return fmt.Errorf("%w: %d tokens (max %d)", ErrTooManyTokens, len(tokens), MaxTokens)
	}
	return nil
}

// ExpressionDepthCounter tracks expression nesting depth
type ExpressionDepthCounter struct {
	depth    int
	maxDepth int
}

// NewExpressionDepthCounter creates a new depth counter
func NewExpressionDepthCounter() *ExpressionDepthCounter {
	return &ExpressionDepthCounter{depth: 0, maxDepth: MaxExpressionDepth}
}

// Enter increments depth and returns error if limit exceeded
func (c *ExpressionDepthCounter) Enter() error {
	c.depth++
	if c.depth > c.maxDepth {
		return fmt.Errorf("%w: %d (max %d)", ErrExpressionTooDeep, c.depth, c.maxDepth)
	}
	return nil
}

// Exit decrements depth
func (c *ExpressionDepthCounter) Exit() {
	c.depth--
}
