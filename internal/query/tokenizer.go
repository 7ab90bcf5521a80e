package query

import (
	"strings"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenAttribute
	TokenString
	TokenNumber
	TokenComparison
	TokenLogical
	TokenNot
	TokenLParen
	TokenRParen
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenAttribute:
		return "attribute"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenComparison:
		return "comparison operator"
	case TokenLogical:
		return "logical operator"
	case TokenNot:
		return "NOT"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	}
	return "unknown token"
}

// Token represents a single token in the predicate expression.
// Pos is the byte offset of the token's first character in the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Tokenizer tokenizes predicate expressions
type Tokenizer struct {
	input string
	pos   int
	ch    byte
}

// NewTokenizer creates a new tokenizer
func NewTokenizer(input string) *Tokenizer {
	t := &Tokenizer{
		input: input,
		pos:   0,
	}
	if len(input) > 0 {
		t.ch = input[0]
	}
	return t
}

// advance moves to the next character
func (t *Tokenizer) advance() {
	t.pos++
	if t.pos >= len(t.input) {
		t.ch = 0 // EOF
	} else {
		t.ch = t.input[t.pos]
	}
}

// peek looks ahead without advancing
func (t *Tokenizer) peek() byte {
	return t.peekAt(1)
}

// peekAt looks n characters ahead without advancing
func (t *Tokenizer) peekAt(n int) byte {
	if t.pos+n >= len(t.input) {
		return 0
	}
	return t.input[t.pos+n]
}

// skipWhitespace skips whitespace characters
func (t *Tokenizer) skipWhitespace() {
	for t.ch == ' ' || t.ch == '\t' || t.ch == '\n' || t.ch == '\r' {
		t.advance()
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isWordChar(ch byte) bool {
	return isWordStart(ch) || isDigit(ch)
}

// readString reads a quoted string. The closing quote is required; the
// content between the quotes is taken verbatim, with no escape processing.
func (t *Tokenizer) readString() (string, error) {
	start := t.pos
	quote := t.ch
	t.advance() // skip opening quote

	var result strings.Builder
	for t.ch != 0 && t.ch != quote {
		result.WriteByte(t.ch)
		t.advance()
	}

	if t.ch != quote {
		return "", newSyntaxError(t.input, start, "unterminated string literal")
	}
	t.advance() // skip closing quote

	return result.String(), nil
}

// readNumber reads an integer or float literal. A float has exactly one
// decimal point; an exponent is only part of the number after a decimal
// point, matching the literal grammar (so "1e5" is the integer 1
// followed by the word "e5").
func (t *Tokenizer) readNumber() string {
	var result strings.Builder

	if t.ch == '+' || t.ch == '-' {
		result.WriteByte(t.ch)
		t.advance()
	}

	for isDigit(t.ch) {
		result.WriteByte(t.ch)
		t.advance()
	}

	if t.ch != '.' {
		return result.String()
	}

	result.WriteByte(t.ch)
	t.advance()
	for isDigit(t.ch) {
		result.WriteByte(t.ch)
		t.advance()
	}

	// Exponent, only when followed by at least one digit.
	if t.ch == 'e' || t.ch == 'E' {
		next := t.peek()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(t.peekAt(2))) {
			result.WriteByte(t.ch)
			t.advance()
			if t.ch == '+' || t.ch == '-' {
				result.WriteByte(t.ch)
				t.advance()
			}
			for isDigit(t.ch) {
				result.WriteByte(t.ch)
				t.advance()
			}
		}
	}

	return result.String()
}

// readWord reads a bare word: a letter or underscore followed by
// letters, digits, or underscores.
func (t *Tokenizer) readWord() string {
	var result strings.Builder

	for isWordChar(t.ch) {
		result.WriteByte(t.ch)
		t.advance()
	}

	return result.String()
}

// NextToken returns the next token
func (t *Tokenizer) NextToken() (*Token, error) {
	t.skipWhitespace()

	if t.ch == 0 {
		return &Token{Type: TokenEOF, Pos: t.pos}, nil
	}

	pos := t.pos

	if token, err := t.tokenizeAttribute(pos); token != nil || err != nil {
		return token, err
	}

	if token, err := t.tokenizeString(pos); token != nil || err != nil {
		return token, err
	}

	if token := t.tokenizeNumber(pos); token != nil {
		return token, nil
	}

	if token, err := t.tokenizeOperator(pos); token != nil || err != nil {
		return token, err
	}

	if token := t.tokenizeWord(pos); token != nil {
		return token, nil
	}

	return nil, newSyntaxError(t.input, pos, "unexpected character '"+string(t.ch)+"'")
}

// tokenizeAttribute tokenizes an attribute reference: a dot followed by
// a bare word or quoted string. A dot followed by anything else is an
// error reported at the dot, since no other production starts with one.
func (t *Tokenizer) tokenizeAttribute(pos int) (*Token, error) {
	if t.ch != '.' {
		return nil, nil
	}

	t.advance() // skip the dot

	if t.ch == '\'' || t.ch == '"' {
		name, err := t.readString()
		if err != nil {
			return nil, err
		}
		return &Token{Type: TokenAttribute, Value: name, Pos: pos}, nil
	}

	if !isWordStart(t.ch) {
		return nil, newSyntaxError(t.input, pos, "attribute name must start with a letter or underscore")
	}

	return &Token{Type: TokenAttribute, Value: t.readWord(), Pos: pos}, nil
}

// tokenizeString tokenizes quoted string literals
func (t *Tokenizer) tokenizeString(pos int) (*Token, error) {
	if t.ch != '\'' && t.ch != '"' {
		return nil, nil
	}
	value, err := t.readString()
	if err != nil {
		return nil, err
	}
	return &Token{Type: TokenString, Value: value, Pos: pos}, nil
}

// tokenizeNumber tokenizes numeric literals
func (t *Tokenizer) tokenizeNumber(pos int) *Token {
	if isDigit(t.ch) || ((t.ch == '+' || t.ch == '-') && isDigit(t.peek())) {
		value := t.readNumber()
		return &Token{Type: TokenNumber, Value: value, Pos: pos}
	}
	return nil
}

// tokenizeOperator tokenizes parentheses, comparison operators, and the
// symbolic logical operators. Comparison operators are matched
// longest-first so that "<=" is never read as "<" followed by "=".
func (t *Tokenizer) tokenizeOperator(pos int) (*Token, error) {
	switch t.ch {
	case '(':
		t.advance()
		return &Token{Type: TokenLParen, Value: "(", Pos: pos}, nil
	case ')':
		t.advance()
		return &Token{Type: TokenRParen, Value: ")", Pos: pos}, nil
	case '!':
		if t.peek() == '=' {
			t.advance()
			t.advance()
			return &Token{Type: TokenComparison, Value: "!=", Pos: pos}, nil
		}
		t.advance()
		return &Token{Type: TokenNot, Value: "not", Pos: pos}, nil
	case '=':
		if t.peek() == '=' {
			t.advance()
			t.advance()
			return &Token{Type: TokenComparison, Value: "==", Pos: pos}, nil
		}
		return nil, newSyntaxError(t.input, pos, "unexpected character '=' (did you mean '=='?)")
	case '<', '>':
		op := string(t.ch)
		t.advance()
		if t.ch == '=' {
			op += "="
			t.advance()
		}
		return &Token{Type: TokenComparison, Value: op, Pos: pos}, nil
	case '&':
		if t.peek() == '&' {
			t.advance()
			t.advance()
			return &Token{Type: TokenLogical, Value: "and", Pos: pos}, nil
		}
		return nil, newSyntaxError(t.input, pos, "unexpected character '&' (did you mean '&&'?)")
	case '|':
		if t.peek() == '|' {
			t.advance()
			t.advance()
			return &Token{Type: TokenLogical, Value: "or", Pos: pos}, nil
		}
		return nil, newSyntaxError(t.input, pos, "unexpected character '|' (did you mean '||'?)")
	case '^':
		t.advance()
		return &Token{Type: TokenLogical, Value: "xor", Pos: pos}, nil
	}
	return nil, nil
}

// tokenizeWord tokenizes bare words. The boolean operator keywords are
// recognized case-insensitively; any other word is a string literal.
func (t *Tokenizer) tokenizeWord(pos int) *Token {
	if !isWordStart(t.ch) {
		return nil
	}

	value := t.readWord()

	switch strings.ToLower(value) {
	case "and", "or", "xor":
		return &Token{Type: TokenLogical, Value: strings.ToLower(value), Pos: pos}
	case "not":
		return &Token{Type: TokenNot, Value: "not", Pos: pos}
	}

	return &Token{Type: TokenString, Value: value, Pos: pos}
}

// TokenizeAll returns all tokens from the input
func (t *Tokenizer) TokenizeAll() ([]*Token, error) {
	var tokens []*Token

	for {
		token, err := t.NextToken()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)

		if token.Type == TokenEOF {
			break
		}
	}

	return tokens, nil
}
