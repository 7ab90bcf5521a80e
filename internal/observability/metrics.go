package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the csvpred-specific metric instruments.
type Metrics struct {
	runDuration metric.Float64Histogram
	rowsScanned metric.Int64Counter
	rowsMatched metric.Int64Counter
	rowErrors   metric.Int64Counter
	parseErrors metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	// Instrument creation only fails on invalid parameters; fall back
	// to a bare instrument so a partial failure never panics a run.
	var err error

	m.runDuration, err = meter.Float64Histogram(
		"csvpred.run.duration",
		metric.WithDescription("Duration of filtering runs in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.runDuration, _ = meter.Float64Histogram("csvpred.run.duration")
	}

	m.rowsScanned, err = meter.Int64Counter(
		"csvpred.rows.scanned",
		metric.WithDescription("Total number of rows read from the input"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		m.rowsScanned, _ = meter.Int64Counter("csvpred.rows.scanned")
	}

	m.rowsMatched, err = meter.Int64Counter(
		"csvpred.rows.matched",
		metric.WithDescription("Total number of rows that satisfied the predicate"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		m.rowsMatched, _ = meter.Int64Counter("csvpred.rows.matched")
	}

	m.rowErrors, err = meter.Int64Counter(
		"csvpred.rows.failed",
		metric.WithDescription("Total number of rows whose evaluation failed"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		m.rowErrors, _ = meter.Int64Counter("csvpred.rows.failed")
	}

	m.parseErrors, err = meter.Int64Counter(
		"csvpred.parse.errors",
		metric.WithDescription("Total number of queries rejected with a syntax error"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		m.parseErrors, _ = meter.Int64Counter("csvpred.parse.errors")
	}

	return m
}

// RecordRun records metrics for a completed filtering run.
func (m *Metrics) RecordRun(ctx context.Context, scanned, matched, failed int64, duration time.Duration) {
	m.rowsScanned.Add(ctx, scanned)
	m.rowsMatched.Add(ctx, matched)
	m.rowErrors.Add(ctx, failed)
	m.runDuration.Record(ctx, float64(duration.Milliseconds()))
}

// RecordParseError counts a rejected query.
func (m *Metrics) RecordParseError(ctx context.Context) {
	m.parseErrors.Add(ctx, 1)
}
