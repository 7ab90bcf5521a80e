package query

import (
	"strconv"
	"strings"
)

// Parser turns a predicate string into a validated AST. Parsing is a
// pure function of the input: the same string always yields the same
// tree or the same *SyntaxError.
type Parser struct {
	input   string
	tokens  []*Token
	current int
}

// Parse parses a complete query. The entire input must be consumed;
// trailing tokens after a structurally valid prefix are a syntax error.
func Parse(input string) (*Grammar, error) {
	tokenizer := NewTokenizer(input)
	tokens, err := tokenizer.TokenizeAll()
	if err != nil {
		return nil, err
	}

	p := &Parser{input: input, tokens: tokens}

	expr, err := p.parseXor()
	if err != nil {
		return nil, err
	}

	if tok := p.currentToken(); tok.Type != TokenEOF {
		return nil, p.errorAt(tok, "unexpected "+tok.Type.String()+" after expression")
	}

	return &Grammar{Expr: expr}, nil
}

// currentToken returns the current token
func (p *Parser) currentToken() *Token {
	if p.current >= len(p.tokens) {
		return &Token{Type: TokenEOF, Pos: len(p.input)}
	}
	return p.tokens[p.current]
}

// advance moves to the next token
func (p *Parser) advance() *Token {
	token := p.currentToken()
	if p.current < len(p.tokens) {
		p.current++
	}
	return token
}

// errorAt builds a SyntaxError pointing at the given token.
func (p *Parser) errorAt(tok *Token, message string) error {
	return newSyntaxError(p.input, tok.Pos, message)
}

// atLogical reports whether the current token is the given binary
// boolean operator.
func (p *Parser) atLogical(op BinaryOp) bool {
	tok := p.currentToken()
	return tok.Type == TokenLogical && tok.Value == string(op)
}

// parseBinary parses a left-associative chain of binary expressions at
// one precedence level, delegating operands to the next tighter level.
func (p *Parser) parseBinary(op BinaryOp, next func() (*Expression, error)) (*Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.atLogical(op) {
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr := &BinaryExpression{
			Left:  left,
			Op:    &BoolBinaryOperator{Op: op},
			Right: right,
		}
		if left, err = NewExpression(expr); err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parseXor handles XOR expressions (lowest precedence)
func (p *Parser) parseXor() (*Expression, error) {
	return p.parseBinary(OpXor, p.parseOr)
}

// parseOr handles OR expressions
func (p *Parser) parseOr() (*Expression, error) {
	return p.parseBinary(OpOr, p.parseAnd)
}

// parseAnd handles AND expressions; AND binds tighter than OR and XOR
func (p *Parser) parseAnd() (*Expression, error) {
	return p.parseBinary(OpAnd, p.parseUnary)
}

// parseUnary handles NOT expressions. NOT is right-associative and
// binds to the smallest following expression.
func (p *Parser) parseUnary() (*Expression, error) {
	if p.currentToken().Type != TokenNot {
		return p.parseAtom()
	}

	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	neg, err := NewNegateExpression(&BoolUnaryOperator{Op: OpNot}, operand)
	if err != nil {
		return nil, err
	}
	return NewExpression(neg)
}

// parseAtom handles the atomic forms: a comparison, or a parenthesized
// expression.
func (p *Parser) parseAtom() (*Expression, error) {
	if p.currentToken().Type == TokenLParen {
		p.advance()
		inner, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		if tok := p.currentToken(); tok.Type != TokenRParen {
			return nil, p.errorAt(tok, "expected ')', got "+tok.Type.String())
		}
		p.advance()
		return NewExpression(inner)
	}

	return p.parseComparison()
}

// parseComparison parses "attribute cmp_operator literal". A bare
// identifier or bare literal is not a valid predicate on its own.
func (p *Parser) parseComparison() (*Expression, error) {
	tok := p.currentToken()
	if tok.Type != TokenAttribute {
		return nil, p.errorAt(tok, "expected attribute, got "+tok.Type.String())
	}
	p.advance()
	ident := &Identifier{Attr: &Attribute{Name: tok.Value}}

	tok = p.currentToken()
	if tok.Type != TokenComparison {
		return nil, p.errorAt(tok, "expected comparison operator, got "+tok.Type.String())
	}
	p.advance()
	op := &CmpOperator{Op: CmpOp(tok.Value)}

	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}

	return NewExpression(&Comparison{Ident: ident, Op: op, Value: lit})
}

// parseLiteral parses a literal value: float before integer before
// string, per the literal grammar.
func (p *Parser) parseLiteral() (*LiteralValue, error) {
	tok := p.currentToken()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		value, err := parseNumber(tok.Value)
		if err != nil {
			return nil, p.errorAt(tok, "invalid number "+strconv.Quote(tok.Value))
		}
		return &LiteralValue{Value: value}, nil
	case TokenString:
		p.advance()
		return &LiteralValue{Value: tok.Value}, nil
	default:
		return nil, p.errorAt(tok, "expected literal value, got "+tok.Type.String())
	}
}

// parseNumber elaborates a numeric token into int64 or float64. The
// tokenizer only emits a decimal point for floats, so its presence
// decides the type. Integers too large for int64 degrade to float64.
func parseNumber(text string) (Value, error) {
	if strings.ContainsRune(text, '.') {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return i, nil
	}

	f, ferr := strconv.ParseFloat(text, 64)
	if ferr != nil {
		return nil, err
	}
	return f, nil
}
