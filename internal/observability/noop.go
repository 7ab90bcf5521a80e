package observability

import (
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// NewNoopTracer creates a tracer that does nothing.
func NewNoopTracer() *Tracer {
	return &Tracer{tracer: tracenoop.NewTracerProvider().Tracer("")}
}

// NewNoopMetrics creates metrics that do nothing.
func NewNoopMetrics() *Metrics {
	meter := noop.NewMeterProvider().Meter("")
	m := &Metrics{}

	// The noop meter never returns errors, but the results are checked
	// to satisfy the linter.
	m.runDuration, _ = meter.Float64Histogram("csvpred.run.duration") //nolint:errcheck
	m.rowsScanned, _ = meter.Int64Counter("csvpred.rows.scanned")     //nolint:errcheck
	m.rowsMatched, _ = meter.Int64Counter("csvpred.rows.matched")     //nolint:errcheck
	m.rowErrors, _ = meter.Int64Counter("csvpred.rows.failed")        //nolint:errcheck
	m.parseErrors, _ = meter.Int64Counter("csvpred.parse.errors")     //nolint:errcheck

	return m
}
