package filter

import (
	"strings"
	"unicode"
)

// Lexer tokenizes filter expressions
type Lexer struct {
	input string
	pos   int
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = rune(l.input[l.pos])
	}
	l.pos++
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return rune(l.input[l.pos])
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readString reads a quoted string. ok is false when the closing quote is
// missing.
func (l *Lexer) readString(quote rune) (s string, ok bool) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case '\\':
				result.WriteRune('\\')
			case quote:
				result.WriteRune(quote)
			case 0:
				return result.String(), false
			default:
				result.WriteByte(byte(l.ch))
			}
		} else {
			result.WriteByte(byte(l.ch))
		}
		l.readChar()
	}

	if l.ch != quote {
		return result.String(), false
	}
	l.readChar() // skip closing quote

	return result.String(), true
}

// readNumber reads a number, with an optional leading minus sign
func (l *Lexer) readNumber() string {
	var result strings.Builder
	if l.ch == '-' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	for unicode.IsDigit(l.ch) || l.ch == '.' || l.ch == 'e' || l.ch == 'E' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

// readIdentifier reads an identifier or keyword. Dots are allowed so
// dotted column names need no quoting.
func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '.' {
		result.WriteByte(byte(l.ch))
		l.readChar()
	}
	return result.String()
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	var tok Token

	switch l.ch {
	case 0:
		tok = Token{Type: TokenEOF, Value: ""}
	case '=':
		tok = Token{Type: TokenEqual, Value: "="}
		l.readChar()
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenNotEqual, Value: "!="}
			l.readChar()
		} else {
			tok = Token{Type: TokenError, Value: "!"}
			l.readChar()
		}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = Token{Type: TokenLessEqual, Value: "<="}
			l.readChar()
		case '>':
			l.readChar()
			tok = Token{Type: TokenNotEqual, Value: "<>"}
			l.readChar()
		default:
			tok = Token{Type: TokenLess, Value: "<"}
			l.readChar()
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenGreaterEqual, Value: ">="}
			l.readChar()
		} else {
			tok = Token{Type: TokenGreater, Value: ">"}
			l.readChar()
		}
	case '(':
		tok = Token{Type: TokenLParen, Value: "("}
		l.readChar()
	case ')':
		tok = Token{Type: TokenRParen, Value: ")"}
		l.readChar()
	case '\'', '"':
		quote := l.ch
		value, ok := l.readString(quote)
		if !ok {
			tok = Token{Type: TokenError, Value: string(quote) + value}
		} else {
			tok = Token{Type: TokenString, Value: value}
		}
	case '`':
		// Backquoted identifiers allow any column name
		value, ok := l.readString('`')
		if !ok {
			tok = Token{Type: TokenError, Value: "`" + value}
		} else {
			tok = Token{Type: TokenIdent, Value: value}
		}
	default:
		if unicode.IsDigit(l.ch) || (l.ch == '-' && unicode.IsDigit(l.peekChar())) {
			value := l.readNumber()
			tok = Token{Type: TokenNumber, Value: value}
		} else if unicode.IsLetter(l.ch) || l.ch == '_' {
			value := l.readIdentifier()
			tok = Token{Type: identifierType(value), Value: value}
		} else {
			tok = Token{Type: TokenError, Value: string(l.ch)}
			l.readChar()
		}
	}

	return tok
}

var keywords = map[string]TokenType{
	"and":   TokenAnd,
	"or":    TokenOr,
	"is":    TokenIs,
	"not":   TokenNot,
	"null":  TokenNull,
	"true":  TokenBool,
	"false": TokenBool,
}

// identifierType determines if an identifier is a keyword. Keywords are
// matched case-insensitively.
func identifierType(ident string) TokenType {
	if tokType, ok := keywords[strings.ToLower(ident)]; ok {
		return tokType
	}
	return TokenIdent
}

// Tokenize returns all tokens from the input
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}

	return tokens
}
