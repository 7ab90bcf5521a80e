package csvpred

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/csvtools/csvpred/internal/observability"
)

// Source supplies rows to a Runner. Next returns io.EOF when the input
// is exhausted. Sources are read sequentially; the Runner fans the rows
// out for evaluation.
type Source interface {
	Next() (Row, error)
}

// RowErrorPolicy decides what a Runner does when evaluating one row
// fails (missing column, incomparable types).
type RowErrorPolicy int

const (
	// FailFast aborts the whole run on the first row error.
	FailFast RowErrorPolicy = iota
	// SkipRows drops the offending rows, counts them, and continues.
	SkipRows
)

// RunnerConfig controls optional Runner behaviours. The zero value
// fails fast, sizes the worker pool from GOMAXPROCS, and disables
// tracing and metrics.
type RunnerConfig struct {
	// Workers bounds concurrent row evaluation. Values below 1 use
	// runtime.GOMAXPROCS(0).
	Workers int

	// RowErrors selects the per-row error policy.
	RowErrors RowErrorPolicy

	// Logger receives structured diagnostics. Defaults to slog.Default.
	Logger *slog.Logger

	// Tracer and Metrics enable OpenTelemetry instrumentation. Both
	// default to no-op implementations.
	Tracer  *observability.Tracer
	Metrics *observability.Metrics
}

// RunStats summarizes one filtering run.
type RunStats struct {
	// RunID uniquely identifies the run in logs and traces.
	RunID string
	// Scanned counts all rows read from the source.
	Scanned int64
	// Matched counts rows that satisfied the predicate.
	Matched int64
	// Failed counts rows skipped under the SkipRows policy.
	Failed int64
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Runner executes filtering jobs for one compiled query. The query tree
// is read-only, so a single Runner may execute runs concurrently.
type Runner struct {
	query   *Query
	workers int
	policy  RowErrorPolicy
	logger  *slog.Logger
	tracer  *observability.Tracer
	metrics *observability.Metrics
}

// NewRunner creates a Runner for the query.
func NewRunner(q *Query, cfg RunnerConfig) *Runner {
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = observability.NewNoopTracer()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewNoopMetrics()
	}
	return &Runner{
		query:   q,
		workers: workers,
		policy:  cfg.RowErrors,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

type indexedRow struct {
	index int64
	row   Row
}

// Run reads every row from src, evaluates the predicate against each,
// and returns the matching rows in input order.
//
// The source is consumed sequentially while evaluation fans out across
// the worker pool; no locking is needed around the query tree because
// evaluation never mutates it.
func (r *Runner) Run(ctx context.Context, src Source) ([]Row, RunStats, error) {
	stats := RunStats{RunID: uuid.NewString()}
	start := time.Now()

	ctx, span := r.tracer.StartRun(ctx, r.query.String(), stats.RunID)
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	var (
		mu      sync.Mutex
		matches []indexedRow
		matched int64
		failed  int64
	)

	var index int64
readLoop:
	for {
		select {
		case <-ctx.Done():
			break readLoop
		default:
		}

		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Drain in-flight evaluations before reporting.
			_ = g.Wait() //nolint:errcheck
			r.tracer.RecordError(span, err)
			return nil, stats, err
		}

		i := index
		index++

		g.Go(func() error {
			ok, err := r.query.Match(row)
			if err != nil {
				if r.policy == FailFast {
					return err
				}
				mu.Lock()
				failed++
				mu.Unlock()
				r.logger.Warn("skipping row",
					slog.String("run_id", stats.RunID),
					slog.Int64("row", i),
					slog.Any("error", err))
				return nil
			}
			if ok {
				mu.Lock()
				matches = append(matches, indexedRow{index: i, row: row})
				matched++
				mu.Unlock()
			}
			return nil
		})
	}

	err := g.Wait()

	stats.Scanned = index
	stats.Matched = matched
	stats.Failed = failed
	stats.Elapsed = time.Since(start)

	r.tracer.RecordRowCounts(span, stats.Scanned, stats.Matched, stats.Failed)
	r.metrics.RecordRun(ctx, stats.Scanned, stats.Matched, stats.Failed, stats.Elapsed)

	if err != nil {
		r.tracer.RecordError(span, err)
		return nil, stats, err
	}

	sort.Slice(matches, func(a, b int) bool {
		return matches[a].index < matches[b].index
	})
	rows := make([]Row, len(matches))
	for i, m := range matches {
		rows[i] = m.row
	}

	r.logger.Debug("run complete",
		slog.String("run_id", stats.RunID),
		slog.Int64("scanned", stats.Scanned),
		slog.Int64("matched", stats.Matched),
		slog.Int64("failed", stats.Failed),
		slog.Duration("elapsed", stats.Elapsed))

	return rows, stats, nil
}
