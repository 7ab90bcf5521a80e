// Package observability provides OpenTelemetry-based instrumentation
// for csvpred filtering runs.
//
// All observability features are opt-in. When not configured, no-op
// implementations are used with zero performance overhead.
package observability

import "go.opentelemetry.io/otel/attribute"

// Instrumentation identity constants
const (
	// TracerName is the instrumentation name for tracing.
	TracerName = "github.com/csvtools/csvpred"
	// MeterName is the instrumentation name for metrics.
	MeterName = "github.com/csvtools/csvpred"
)

// csvpred semantic attribute keys following OpenTelemetry conventions.
const (
	AttrQuery       = "csvpred.query"
	AttrRunID       = "csvpred.run_id"
	AttrRowsScanned = "csvpred.rows.scanned"
	AttrRowsMatched = "csvpred.rows.matched"
	AttrRowsFailed  = "csvpred.rows.failed"
	AttrErrorCode   = "csvpred.error.code"
)

// QueryAttr builds the query string attribute.
func QueryAttr(query string) attribute.KeyValue {
	return attribute.String(AttrQuery, query)
}

// RunIDAttr builds the run ID attribute.
func RunIDAttr(runID string) attribute.KeyValue {
	return attribute.String(AttrRunID, runID)
}

// ErrorCodeAttr builds the error code attribute.
func ErrorCodeAttr(code string) attribute.KeyValue {
	return attribute.String(AttrErrorCode, code)
}
