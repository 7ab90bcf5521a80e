package query

import (
	"fmt"
	"io"
	"strings"
)

// Dump renders a diagnostic view of a tree: the repr-style structural
// form on one line, then one line per node as an indented tree. It
// never mutates the tree and has no effect on evaluation.
func Dump(root Node) string {
	var b strings.Builder
	// Errors from strings.Builder writes are impossible.
	_ = Fdump(&b, root)
	return b.String()
}

// Fdump writes the Dump rendering to w.
func Fdump(w io.Writer, root Node) error {
	if _, err := fmt.Fprintln(w, root.String()); err != nil {
		return err
	}
	return dumpNode(w, root, "")
}

const (
	dumpGlyph  = "┗━ "
	dumpIndent = "   "
)

func dumpNode(w io.Writer, n Node, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, dumpGlyph, variantName(n)); err != nil {
		return err
	}
	for _, child := range childNodes(n) {
		switch c := child.(type) {
		case Node:
			if err := dumpNode(w, c, indent+dumpIndent); err != nil {
				return err
			}
		default:
			// A leaf token: print its literal value in parentheses.
			line := fmt.Sprintf("%s%s%s('%s')\n",
				indent+dumpIndent, dumpGlyph, valueTypeName(c), formatValue(c))
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// variantName names a node variant for the tree rendering.
func variantName(n Node) string {
	switch n.(type) {
	case *Grammar:
		return "Grammar"
	case *Expression:
		return "Expression"
	case *Attribute:
		return "Attribute"
	case *Identifier:
		return "Identifier"
	case *LiteralValue:
		return "LiteralValue"
	case *CmpOperator:
		return "CmpOperator"
	case *Comparison:
		return "Comparison"
	case *BoolUnaryOperator:
		return "BoolUnaryOperator"
	case *NegateExpression:
		return "NegateExpression"
	case *BoolBinaryOperator:
		return "BoolBinaryOperator"
	case *BinaryExpression:
		return "BinaryExpression"
	default:
		return fmt.Sprintf("%T", n)
	}
}

// childNodes returns a node's children in declared (source) order.
// Interior children are Nodes; leaf tokens are raw scalars. This single
// exhaustive switch is the only place child order is defined, so the
// node structs keep their strongly typed fields.
func childNodes(n Node) []interface{} {
	switch node := n.(type) {
	case *Grammar:
		return []interface{}{node.Expr}
	case *Expression:
		return []interface{}{node.Inner}
	case *Attribute:
		return []interface{}{node.Name}
	case *Identifier:
		return []interface{}{node.Attr}
	case *LiteralValue:
		return []interface{}{node.Value}
	case *CmpOperator:
		return []interface{}{string(node.Op)}
	case *Comparison:
		return []interface{}{node.Ident, node.Op, node.Value}
	case *BoolUnaryOperator:
		return []interface{}{string(node.Op)}
	case *NegateExpression:
		return []interface{}{node.Expr}
	case *BoolBinaryOperator:
		return []interface{}{string(node.Op)}
	case *BinaryExpression:
		return []interface{}{node.Left, node.Op, node.Right}
	default:
		return nil
	}
}
