package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Construction helpers keep the expected trees readable.

func expr(t *testing.T, inner Node) *Expression {
	t.Helper()
	e, err := NewExpression(inner)
	if err != nil {
		t.Fatalf("NewExpression failed: %v", err)
	}
	return e
}

func comparison(t *testing.T, name string, op CmpOp, value Value) *Expression {
	t.Helper()
	return expr(t, &Comparison{
		Ident: &Identifier{Attr: &Attribute{Name: name}},
		Op:    &CmpOperator{Op: op},
		Value: &LiteralValue{Value: value},
	})
}

func binary(t *testing.T, left *Expression, op BinaryOp, right *Expression) *Expression {
	t.Helper()
	return expr(t, &BinaryExpression{
		Left:  left,
		Op:    &BoolBinaryOperator{Op: op},
		Right: right,
	})
}

func negate(t *testing.T, operand *Expression) *Expression {
	t.Helper()
	neg, err := NewNegateExpression(&BoolUnaryOperator{Op: OpNot}, operand)
	if err != nil {
		t.Fatalf("NewNegateExpression failed: %v", err)
	}
	return expr(t, neg)
}

func TestParseComparisons(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Grammar
	}{
		{
			name:     "Float literal",
			input:    ".avg >= 0.5",
			expected: &Grammar{Expr: comparison(t, "avg", OpGreaterThanOrEqual, 0.5)},
		},
		{
			name:     "Integer literal",
			input:    ".count != 42",
			expected: &Grammar{Expr: comparison(t, "count", OpNotEqual, int64(42))},
		},
		{
			name:     "Negative integer literal",
			input:    ".delta < -7",
			expected: &Grammar{Expr: comparison(t, "delta", OpLessThan, int64(-7))},
		},
		{
			name:     "Float with exponent",
			input:    ".avg > 1.5e2",
			expected: &Grammar{Expr: comparison(t, "avg", OpGreaterThan, 150.0)},
		},
		{
			name:     "Single quoted string",
			input:    ".name == 'hello'",
			expected: &Grammar{Expr: comparison(t, "name", OpEqual, "hello")},
		},
		{
			name:     "Double quoted string",
			input:    `.name == "hello"`,
			expected: &Grammar{Expr: comparison(t, "name", OpEqual, "hello")},
		},
		{
			name:     "Bare word string",
			input:    ".name == hello",
			expected: &Grammar{Expr: comparison(t, "name", OpEqual, "hello")},
		},
		{
			name:     "Empty string",
			input:    ".name == ''",
			expected: &Grammar{Expr: comparison(t, "name", OpEqual, "")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("AST mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	a := func() *Expression { return comparison(t, "a", OpEqual, int64(1)) }
	b := func() *Expression { return comparison(t, "b", OpEqual, int64(2)) }
	c := func() *Expression { return comparison(t, "c", OpEqual, int64(3)) }

	tests := []struct {
		name     string
		input    string
		expected *Grammar
	}{
		{
			name:     "AND binds tighter than OR",
			input:    ".a==1 AND .b==2 OR .c==3",
			expected: &Grammar{Expr: binary(t, binary(t, a(), OpAnd, b()), OpOr, c())},
		},
		{
			name:     "OR binds tighter than XOR",
			input:    ".a==1 XOR .b==2 OR .c==3",
			expected: &Grammar{Expr: binary(t, a(), OpXor, binary(t, b(), OpOr, c()))},
		},
		{
			name:     "NOT binds tighter than AND",
			input:    "NOT .a==1 AND .b==2",
			expected: &Grammar{Expr: binary(t, negate(t, a()), OpAnd, b())},
		},
		{
			name:     "Left associative AND",
			input:    ".a==1 AND .b==2 AND .c==3",
			expected: &Grammar{Expr: binary(t, binary(t, a(), OpAnd, b()), OpAnd, c())},
		},
		{
			name:  "Parentheses override precedence",
			input: ".a==1 AND (.b==2 OR .c==3)",
			expected: &Grammar{
				Expr: binary(t, a(), OpAnd, expr(t, binary(t, b(), OpOr, c()))),
			},
		},
		{
			name:     "Double negation",
			input:    "NOT NOT .a==1",
			expected: &Grammar{Expr: negate(t, negate(t, a()))},
		},
		{
			name:     "Symbol aliases",
			input:    ".a==1 && .b==2 || .c==3",
			expected: &Grammar{Expr: binary(t, binary(t, a(), OpAnd, b()), OpOr, c())},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("AST mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTwiceYieldsEqualTrees(t *testing.T) {
	input := "NOT (.avg >= 0.5 AND .name == 'x') XOR .count < 10"

	first, err := Parse(input)
	if err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}
	second, err := Parse(input)
	if err != nil {
		t.Fatalf("second Parse failed: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parsing twice produced different trees (-first +second):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"Lone equals is not a comparator", ".avg = 0.5", 1, 6},
		{"Trailing unbalanced paren", ".a == 1 )", 1, 9},
		{"Missing closing paren", "(.a == 1", 1, 9},
		{"Bare literal is not a predicate", "42 == 42", 1, 1},
		{"Bare identifier is not a predicate", ".active", 1, 8},
		{"Identifier on the right side", ".a == .b", 1, 7},
		{"Missing operand after AND", ".a == 1 AND", 1, 12},
		{"Empty input", "", 1, 1},
		{"Operator keyword as query", "and", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) should have failed", tt.input)
			}

			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if syntaxErr.Line != tt.line || syntaxErr.Column != tt.column {
				t.Errorf("expected position %d:%d, got %d:%d (%v)",
					tt.line, tt.column, syntaxErr.Line, syntaxErr.Column, err)
			}
		})
	}
}

func TestParseMultilinePosition(t *testing.T) {
	_, err := Parse(".a == 1 AND\n.b = 2")

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Line != 2 || syntaxErr.Column != 4 {
		t.Errorf("expected position 2:4, got %d:%d", syntaxErr.Line, syntaxErr.Column)
	}
	if syntaxErr.SourceLine != ".b = 2" {
		t.Errorf("expected source line %q, got %q", ".b = 2", syntaxErr.SourceLine)
	}
	if syntaxErr.Caret() != "   ^" {
		t.Errorf("unexpected caret rendering %q", syntaxErr.Caret())
	}
}

func TestNegateExpressionRequiresNot(t *testing.T) {
	operand := comparison(t, "a", OpEqual, int64(1))

	if _, err := NewNegateExpression(&BoolUnaryOperator{Op: "and"}, operand); err == nil {
		t.Error("expected a construction error for a non-NOT operator")
	}
	if _, err := NewNegateExpression(nil, operand); err == nil {
		t.Error("expected a construction error for a nil operator")
	}
}

func TestNewExpressionRejectsNonExpressionNodes(t *testing.T) {
	if _, err := NewExpression(&Attribute{Name: "a"}); err == nil {
		t.Error("expected a construction error wrapping an attribute")
	}
	if _, err := NewExpression(&LiteralValue{Value: int64(1)}); err == nil {
		t.Error("expected a construction error wrapping a literal")
	}
}
