package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses filter expressions into an AST
type Parser struct {
	tokens       []Token
	pos          int
	depthCounter *ExpressionDepthCounter
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:       tokens,
		pos:          0,
		depthCounter: NewExpressionDepthCounter(),
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// expect checks if current token matches expected type and advances
func (p *Parser) expect(tokType TokenType) error {
	if p.current().Type != tokType {
		return p.errorf("expected %v, got %v", tokType, p.describe())
	}
	p.advance()
	return nil
}

// describe names the current token for error messages
func (p *Parser) describe() string {
	tok := p.current()
	switch tok.Type {
	case TokenEOF:
		return tok.Type.String()
	case TokenError:
		return fmt.Sprintf("invalid input %q", tok.Value)
	default:
		return fmt.Sprintf("%v %q", tok.Type, tok.Value)
	}
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

// Parse parses a filter expression such as
//
//	age > 30 AND (name = 'bob' OR active = true)
func Parse(expr string) (Expression, error) {
	// Validate expression length
	if err := ValidateExpression(expr); err != nil {
		return nil, err
	}
	if strings.TrimSpace(expr) == "" {
		return nil, ErrEmptyExpression
	}

	tokens := Tokenize(expr)

	// Validate token count
	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}

	parser := NewParser(tokens)
	e, err := parser.parseOr()
	if err != nil {
		return nil, err
	}

	if parser.current().Type != TokenEOF {
		return nil, parser.errorf("unexpected %v", parser.describe())
	}

	return e, nil
}

// parseOr parses OR expressions (lowest precedence)
func (p *Parser) parseOr() (Expression, error) {
	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenOr,
			Right:    right,
		}
	}

	return left, nil
}

// parseAnd parses AND expressions (higher precedence than OR)
func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenAnd,
			Right:    right,
		}
	}

	return left, nil
}

// parsePrimary parses a parenthesised expression or a single test
func (p *Parser) parsePrimary() (Expression, error) {
	if p.current().Type != TokenLParen {
		return p.parseComparison()
	}
	p.advance()

	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseComparison parses comparison expressions and null tests
func (p *Parser) parseComparison() (Expression, error) {
	// Parse column name
	if p.current().Type != TokenIdent {
		return nil, p.errorf("expected column name, got %v", p.describe())
	}
	column := p.current().Value

	// Validate column name length
	if err := ValidateColumnName(column); err != nil {
		return nil, err
	}

	p.advance()

	// Parse IS [NOT] NULL
	if p.current().Type == TokenIs {
		p.advance()
		negate := false
		if p.current().Type == TokenNot {
			negate = true
			p.advance()
		}
		if err := p.expect(TokenNull); err != nil {
			return nil, err
		}
		return &NullExpr{Column: column, Negate: negate}, nil
	}

	// Parse operator
	operator := p.current().Type
	switch operator {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		p.advance()
	default:
		return nil, p.errorf("expected comparison operator after %q, got %v", column, p.describe())
	}

	// Parse value
	var value interface{}
	switch p.current().Type {
	case TokenString:
		value = p.current().Value
		p.advance()
	case TokenNumber:
		numStr := p.current().Value
		// Try to parse as int first, then float
		if intVal, err := strconv.ParseInt(numStr, 10, 64); err == nil {
			value = intVal
		} else if floatVal, err := strconv.ParseFloat(numStr, 64); err == nil {
			value = floatVal
		} else {
			return nil, p.errorf("invalid number: %s", numStr)
		}
		p.advance()
	case TokenBool:
		value = strings.ToLower(p.current().Value) == "true"
		p.advance()
	case TokenNull:
		return nil, p.errorf("use IS NULL or IS NOT NULL to test for null")
	default:
		return nil, p.errorf("expected value (string, number, or bool), got %v", p.describe())
	}

	return &ComparisonExpr{
		Column:   column,
		Operator: operator,
		Value:    value,
	}, nil
}
