// Package csvpred filters tabular rows by evaluating a textual
// predicate against each row. A query such as
//
//	.avg >= 0.5 AND .active == true
//
// is compiled once into an immutable syntax tree and then applied to
// any number of rows, each row being a mapping from column name to a
// scalar value (string, int64, float64, or null).
package csvpred

import (
	"github.com/csvtools/csvpred/internal/query"
)

// Value is a single scalar cell value: string, int64, float64, or nil.
type Value = query.Value

// Row is one record being tested, keyed by column name.
type Row = query.Row

// programs memoizes compiled queries across Compile calls. Compiled
// trees are immutable, so sharing one tree between queries is safe.
var programs = query.NewCache()

// Query is a compiled predicate. It is immutable and safe for
// concurrent use from multiple goroutines.
type Query struct {
	raw     string
	grammar *query.Grammar
}

// Compile parses a predicate into a Query. Malformed input returns a
// *SyntaxError carrying the 1-based line and column of the first
// character that could not be consumed, plus the offending source line.
func Compile(predicate string) (*Query, error) {
	grammar, err := programs.Parse(predicate)
	if err != nil {
		return nil, err
	}
	return &Query{raw: predicate, grammar: grammar}, nil
}

// MustCompile is like Compile but panics on a syntax error. It is
// intended for predicates known at compile time.
func MustCompile(predicate string) *Query {
	q, err := Compile(predicate)
	if err != nil {
		panic(err)
	}
	return q
}

// Match reports whether the row satisfies the predicate. A reference to
// a missing column or a comparison between incomparable types returns
// an *EvalError; it never degrades to false, since that would be
// indistinguishable from a legitimate non-match.
func (q *Query) Match(row Row) (bool, error) {
	return query.Eval(q.grammar, row)
}

// DumpAST returns a diagnostic rendering of the compiled tree: the
// structural form on one line followed by an indented tree, one line
// per node.
func (q *Query) DumpAST() string {
	return query.Dump(q.grammar)
}

// String returns the original predicate text.
func (q *Query) String() string {
	return q.raw
}
