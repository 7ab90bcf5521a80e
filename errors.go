package csvpred

import (
	"github.com/csvtools/csvpred/internal/query"
)

// Sentinel errors for evaluation failures. These can be used with
// errors.Is() for error handling.
var (
	// ErrColumnNotFound indicates the predicate referenced a column
	// that is absent from the row being evaluated.
	ErrColumnNotFound = query.ErrColumnNotFound

	// ErrTypeMismatch indicates a comparison between operand types
	// that have no defined ordering or equality.
	ErrTypeMismatch = query.ErrTypeMismatch
)

// SyntaxError reports that a query does not match the grammar. It
// carries the 1-based line and column of the failure and the offending
// source line for caret-style diagnostics.
type SyntaxError = query.SyntaxError

// EvalError reports a per-row evaluation failure: a missing column or
// an operator type mismatch. How to react is the host's decision; the
// evaluator performs no recovery and no logging.
type EvalError = query.EvalError

// Evaluation error codes carried by EvalError.
const (
	EvalErrorColumnNotFound = query.EvalErrorColumnNotFound
	EvalErrorTypeMismatch   = query.EvalErrorTypeMismatch
)
