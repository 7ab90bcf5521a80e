// Package csvio decodes CSV input into rows the query evaluator can
// consume: each record becomes a mapping from column name to a typed
// scalar value.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/csvtools/csvpred/internal/query"
)

// Options configures a Reader.
type Options struct {
	// FieldNames overrides the column names. When set, the input is
	// assumed to have no header line unless SkipHeader is also set.
	FieldNames []string

	// SkipHeader discards the first record. This is the default when
	// FieldNames is empty, since the header is then the only source of
	// column names.
	SkipHeader bool

	// Comma is the field delimiter; ',' when zero.
	Comma rune
}

// Reader streams typed rows from CSV input. It is not safe for
// concurrent use; hosts that parallelize evaluation read sequentially
// and fan out the rows.
type Reader struct {
	csv    *csv.Reader
	header []string
}

// NewReader wraps r, resolving column names from the options or from
// the input's header line.
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	reader := &Reader{csv: cr}

	if opts.SkipHeader || len(opts.FieldNames) == 0 {
		record, err := cr.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("csvio: input has no header line")
		}
		if err != nil {
			return nil, fmt.Errorf("csvio: reading header: %w", err)
		}
		if len(opts.FieldNames) == 0 {
			reader.header = append(reader.header, record...)
		}
	}
	if len(opts.FieldNames) > 0 {
		reader.header = opts.FieldNames
	}

	return reader, nil
}

// Header returns the resolved column names.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next row, or io.EOF when the input is exhausted.
// Records shorter than the header yield null for the missing trailing
// columns; extra cells beyond the header are dropped.
func (r *Reader) Next() (query.Row, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("csvio: reading record: %w", err)
	}

	row := make(query.Row, len(r.header))
	for i, name := range r.header {
		if i >= len(record) {
			row[name] = nil
			continue
		}
		row[name] = typeCell(record[i])
	}
	return row, nil
}

// typeCell infers a scalar type for one cell: int64 when the cell is a
// valid integer, float64 when it is a valid float, otherwise the string
// itself. encoding/csv does not report whether a cell was quoted, so
// quoted numerics are typed as numbers as well; this is the one place
// the Go reader diverges from csv.QUOTE_NONNUMERIC semantics.
func typeCell(cell string) query.Value {
	if cell == "" {
		return ""
	}
	if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return i
	}
	// ParseFloat also accepts "NaN" and "Inf" spellings, which have no
	// ordering and stay strings.
	if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return cell
}
