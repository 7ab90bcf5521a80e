package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps an OpenTelemetry tracer with csvpred-specific span
// creation methods.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider) *Tracer {
	return &Tracer{tracer: tp.Tracer(TracerName)}
}

// StartParse starts a span for compiling a query.
func (t *Tracer) StartParse(ctx context.Context, query string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "csvpred.parse", trace.WithAttributes(
		QueryAttr(query),
	))
}

// StartRun starts a span for one filtering run.
func (t *Tracer) StartRun(ctx context.Context, query, runID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "csvpred.run", trace.WithAttributes(
		QueryAttr(query),
		RunIDAttr(runID),
	))
}

// RecordRowCounts attaches the final row counters to a span.
func (t *Tracer) RecordRowCounts(span trace.Span, scanned, matched, failed int64) {
	span.SetAttributes(
		attribute.Int64(AttrRowsScanned, scanned),
		attribute.Int64(AttrRowsMatched, matched),
		attribute.Int64(AttrRowsFailed, failed),
	)
}

// RecordError marks a span as failed and records the error.
func (t *Tracer) RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
