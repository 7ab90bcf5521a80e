package query

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Eval applies a parsed query to one row and returns the boolean
// decision. It is side-effect free and reads no shared state: a single
// tree may be evaluated concurrently against many rows.
func Eval(g *Grammar, row Row) (bool, error) {
	return evalExpression(g.Expr, row)
}

// evalExpression dispatches over the expression kinds. Wrapper
// expressions delegate to their single child, unwrapped.
func evalExpression(e *Expression, row Row) (bool, error) {
	switch inner := e.Inner.(type) {
	case *Expression:
		return evalExpression(inner, row)
	case *Comparison:
		return evalComparison(inner, row)
	case *NegateExpression:
		result, err := evalExpression(inner.Expr, row)
		if err != nil {
			return false, err
		}
		return !result, nil
	case *BinaryExpression:
		return evalBinary(inner, row)
	default:
		return false, fmt.Errorf("csvpred: unknown expression %T", e.Inner)
	}
}

// evalBinary evaluates both operands fully and unconditionally before
// combining them; there is no short-circuit evaluation. Expressions in
// this language have no side effects, so short-circuiting could only
// ever hide an evaluation error in the second operand.
func evalBinary(b *BinaryExpression, row Row) (bool, error) {
	left, leftErr := evalExpression(b.Left, row)
	right, rightErr := evalExpression(b.Right, row)
	if leftErr != nil {
		return false, leftErr
	}
	if rightErr != nil {
		return false, rightErr
	}

	switch b.Op.Op {
	case OpAnd:
		return left && right, nil
	case OpOr:
		return left || right, nil
	case OpXor:
		return left != right, nil
	default:
		return false, &EvalError{
			Code:    EvalErrorTypeMismatch,
			Message: fmt.Sprintf("unknown boolean operator %q", b.Op.Op),
		}
	}
}

// evalComparison resolves the attribute against the row, takes the
// literal's stored scalar, and applies the comparison operator.
func evalComparison(c *Comparison, row Row) (bool, error) {
	left, err := evalIdentifier(c.Ident, row)
	if err != nil {
		return false, err
	}
	right := c.Value.Value
	return compareValues(c.Op.Op, c.Ident.Attr.Name, left, right)
}

// evalIdentifier delegates to the attribute child. A missing column is
// an evaluation error, never a silent default: a silent null would make
// "missing column" indistinguishable from "present but empty".
func evalIdentifier(ident *Identifier, row Row) (Value, error) {
	name := ident.Attr.Name
	value, ok := row[name]
	if !ok {
		return nil, &EvalError{
			Code:    EvalErrorColumnNotFound,
			Column:  name,
			Message: "no such column in row",
		}
	}
	return value, nil
}

// compareValues applies a comparison operator over two scalars.
// Strings compare with strings, numbers with numbers (int64 and float64
// mix freely); every other pairing, including a null operand, is a type
// mismatch rather than a silent false.
func compareValues(op CmpOp, column string, left, right Value) (bool, error) {
	if l, ok := left.(string); ok {
		r, ok := right.(string)
		if !ok {
			return false, mismatch(op, column, left, right)
		}
		return applyOrdering(op, strings.Compare(l, r))
	}

	ld, ok := toDecimal(left)
	if !ok {
		return false, mismatch(op, column, left, right)
	}
	rd, ok := toDecimal(right)
	if !ok {
		return false, mismatch(op, column, left, right)
	}
	return applyOrdering(op, ld.Cmp(rd))
}

// toDecimal converts a numeric scalar to a decimal for exact
// comparison. int64 values beyond float64's exact range would otherwise
// compare incorrectly against float literals. NaN and the infinities
// have no decimal representation and are not ordinally comparable, so
// they are rejected like any other non-numeric value.
func toDecimal(v Value) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(n), true
	default:
		return decimal.Decimal{}, false
	}
}

// applyOrdering maps a three-way comparison result through an operator.
func applyOrdering(op CmpOp, cmp int) (bool, error) {
	switch op {
	case OpEqual:
		return cmp == 0, nil
	case OpNotEqual:
		return cmp != 0, nil
	case OpLessThan:
		return cmp < 0, nil
	case OpLessThanOrEqual:
		return cmp <= 0, nil
	case OpGreaterThan:
		return cmp > 0, nil
	case OpGreaterThanOrEqual:
		return cmp >= 0, nil
	default:
		return false, &EvalError{
			Code:    EvalErrorTypeMismatch,
			Message: fmt.Sprintf("unknown comparison operator %q", op),
		}
	}
}

func mismatch(op CmpOp, column string, left, right Value) *EvalError {
	return &EvalError{
		Code:   EvalErrorTypeMismatch,
		Column: column,
		Message: fmt.Sprintf("cannot compare %s with %s using %q",
			valueTypeName(left), valueTypeName(right), string(op)),
	}
}
