package query

import "fmt"

// Node represents a node in the abstract syntax tree. The set of
// implementations is closed; evaluation and printing dispatch over it
// with exhaustive type switches.
type Node interface {
	fmt.Stringer
	astNode()
}

// CmpOp represents a comparison operator token value.
type CmpOp string

const (
	OpEqual              CmpOp = "=="
	OpNotEqual           CmpOp = "!="
	OpLessThan           CmpOp = "<"
	OpLessThanOrEqual    CmpOp = "<="
	OpGreaterThan        CmpOp = ">"
	OpGreaterThanOrEqual CmpOp = ">="
)

// UnaryOp represents a boolean unary operator token value.
type UnaryOp string

// OpNot is the only unary boolean operator.
const OpNot UnaryOp = "not"

// BinaryOp represents a boolean binary operator token value.
type BinaryOp string

const (
	OpAnd BinaryOp = "and"
	OpOr  BinaryOp = "or"
	OpXor BinaryOp = "xor"
)

// Grammar is the root of a parsed query.
type Grammar struct {
	Expr *Expression
}

func (n *Grammar) astNode() {}

func (n *Grammar) String() string {
	return fmt.Sprintf("Grammar(%s)", n.Expr)
}

// Expression is a transparent wrapper unifying the four expression
// kinds: Comparison, NegateExpression, BinaryExpression, and a nested
// (parenthesized) Expression. It exists so traversal and evaluation see
// a single expression type at every level.
type Expression struct {
	Inner Node
}

func (n *Expression) astNode() {}

func (n *Expression) String() string {
	return fmt.Sprintf("Expression(%s)", n.Inner)
}

// NewExpression wraps one of the expression kinds, rejecting any other
// node variant.
func NewExpression(inner Node) (*Expression, error) {
	switch inner.(type) {
	case *Comparison, *NegateExpression, *BinaryExpression, *Expression:
		return &Expression{Inner: inner}, nil
	default:
		return nil, fmt.Errorf("csvpred: %T cannot be wrapped as an expression", inner)
	}
}

// Attribute is a reference to one named column of a row, written ".name".
type Attribute struct {
	Name string
}

func (n *Attribute) astNode() {}

func (n *Attribute) String() string {
	return fmt.Sprintf("Attribute(%q)", n.Name)
}

// Identifier wraps an Attribute. It is kept as its own variant so the
// comparison's left side stays open to other identifier kinds.
type Identifier struct {
	Attr *Attribute
}

func (n *Identifier) astNode() {}

func (n *Identifier) String() string {
	return fmt.Sprintf("Identifier(%s)", n.Attr)
}

// LiteralValue is a constant scalar.
type LiteralValue struct {
	Value Value
}

func (n *LiteralValue) astNode() {}

func (n *LiteralValue) String() string {
	return fmt.Sprintf("LiteralValue(%q)", formatValue(n.Value))
}

// CmpOperator is a comparison operator token.
type CmpOperator struct {
	Op CmpOp
}

func (n *CmpOperator) astNode() {}

func (n *CmpOperator) String() string {
	return fmt.Sprintf("CmpOperator(%q)", string(n.Op))
}

// Comparison is an atomic predicate: attribute, comparison operator,
// literal. The left side is always an identifier and the right side is
// always a literal; the language has no attribute-to-attribute
// comparison.
type Comparison struct {
	Ident *Identifier
	Op    *CmpOperator
	Value *LiteralValue
}

func (n *Comparison) astNode() {}

func (n *Comparison) String() string {
	return fmt.Sprintf("Comparison(%s, %s, %s)", n.Ident, n.Op, n.Value)
}

// BoolUnaryOperator is the unary negation token.
type BoolUnaryOperator struct {
	Op UnaryOp
}

func (n *BoolUnaryOperator) astNode() {}

func (n *BoolUnaryOperator) String() string {
	return fmt.Sprintf("BoolUnaryOperator(%q)", string(n.Op))
}

// NegateExpression is "NOT expr".
type NegateExpression struct {
	Expr *Expression
}

func (n *NegateExpression) astNode() {}

func (n *NegateExpression) String() string {
	return fmt.Sprintf("NegateExpression(%s)", n.Expr)
}

// NewNegateExpression builds a negation, requiring the operator to
// carry NOT. Any other operator value is a construction error.
func NewNegateExpression(op *BoolUnaryOperator, expr *Expression) (*NegateExpression, error) {
	if op == nil || op.Op != OpNot {
		return nil, fmt.Errorf("csvpred: negation requires the NOT operator, got %v", op)
	}
	return &NegateExpression{Expr: expr}, nil
}

// BoolBinaryOperator is a binary boolean operator token.
type BoolBinaryOperator struct {
	Op BinaryOp
}

func (n *BoolBinaryOperator) astNode() {}

func (n *BoolBinaryOperator) String() string {
	return fmt.Sprintf("BoolBinaryOperator(%q)", string(n.Op))
}

// BinaryExpression is "expr OP expr" for a binary boolean operator.
type BinaryExpression struct {
	Left  *Expression
	Op    *BoolBinaryOperator
	Right *Expression
}

func (n *BinaryExpression) astNode() {}

func (n *BinaryExpression) String() string {
	return fmt.Sprintf("BinaryExpression(%s, %s, %s)", n.Left, n.Op, n.Right)
}
