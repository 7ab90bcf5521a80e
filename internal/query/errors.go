package query

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for evaluation failures. These can be used with
// errors.Is() regardless of how the host decides to handle them.
var (
	// ErrColumnNotFound indicates the predicate referenced a column
	// that is absent from the row being evaluated.
	ErrColumnNotFound = errors.New("csvpred: column not found")

	// ErrTypeMismatch indicates a comparison between operand types
	// that have no defined ordering or equality.
	ErrTypeMismatch = errors.New("csvpred: operator type mismatch")
)

// SyntaxError reports that a query does not match the grammar. Line and
// Column are 1-based and point at the first character that could not be
// consumed. SourceLine holds the offending input line so hosts can
// render caret-style diagnostics.
type SyntaxError struct {
	Line       int
	Column     int
	SourceLine string
	Message    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d col %d: %s", e.Line, e.Column, e.Message)
}

// Caret returns a marker line with a '^' under the failing column,
// suitable for printing directly beneath SourceLine.
func (e *SyntaxError) Caret() string {
	if e.Column < 1 {
		return "^"
	}
	return strings.Repeat(" ", e.Column-1) + "^"
}

// newSyntaxError builds a SyntaxError from a byte offset into the input.
func newSyntaxError(input string, pos int, message string) *SyntaxError {
	if pos > len(input) {
		pos = len(input)
	}
	lineStart := strings.LastIndexByte(input[:pos], '\n') + 1
	lineEnd := strings.IndexByte(input[pos:], '\n')
	if lineEnd < 0 {
		lineEnd = len(input)
	} else {
		lineEnd += pos
	}
	return &SyntaxError{
		Line:       1 + strings.Count(input[:pos], "\n"),
		Column:     pos - lineStart + 1,
		SourceLine: input[lineStart:lineEnd],
		Message:    message,
	}
}

// EvalErrorCode identifies the kind of evaluation failure.
type EvalErrorCode string

const (
	// EvalErrorColumnNotFound means an attribute named a column absent
	// from the row.
	EvalErrorColumnNotFound EvalErrorCode = "ColumnNotFound"

	// EvalErrorTypeMismatch means the two comparison operands are not
	// ordinally comparable, or a boolean operator received a
	// non-boolean operand.
	EvalErrorTypeMismatch EvalErrorCode = "TypeMismatch"
)

// EvalError reports a per-row evaluation failure. It is surfaced
// distinctly from syntax errors so a host can choose to abort the whole
// run or to skip only the offending row; the evaluator itself performs
// no recovery.
type EvalError struct {
	Code    EvalErrorCode
	Column  string // the column involved, when known
	Message string
}

func (e *EvalError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: %s (column %q)", e.Code, e.Message, e.Column)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap maps the error code to its sentinel so errors.Is works.
func (e *EvalError) Unwrap() error {
	switch e.Code {
	case EvalErrorColumnNotFound:
		return ErrColumnNotFound
	case EvalErrorTypeMismatch:
		return ErrTypeMismatch
	}
	return nil
}
