// Package ingest loads the four transit-network source files into the store
// as one atomic refresh.
//
// Stages run in dependency order: reset, lines, points, routes, route points.
// External ids from the files are only meaningful during a run; each stage
// records external id -> generated id so later stages can resolve their
// foreign keys. Rows whose references cannot be resolved are skipped with a
// warning. Anything else (missing file, malformed number or row, store
// failure, cancellation) aborts the run and rolls back everything, including
// the reset.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lineamx/linea/internal/domain"
	"github.com/lineamx/linea/internal/repo"
	"github.com/lineamx/linea/internal/tsv"
)

// contextCheckInterval is how often (in rows) a stage checks for cancellation.
const contextCheckInterval = 500

// Transactor runs fn inside one transaction, committing only when fn returns
// nil. *repo.TxManager satisfies it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repo.Store) error) error
}

// Pipeline performs import runs. It holds configuration only; all per-run
// state lives in a run value, so a Pipeline is safe to reuse.
type Pipeline struct {
	tx        Transactor
	layout    Layout
	batchSize int
	log       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLayout overrides the source file names.
func WithLayout(l Layout) Option {
	return func(p *Pipeline) { p.layout = l }
}

// WithBatchSize caps how many route points go into one bulk write.
// n <= 0 writes all of them at once.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) { p.batchSize = n }
}

// WithLogger sets the logger used for progress and row diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// New constructs a Pipeline writing through tx.
func New(tx Transactor, opts ...Option) *Pipeline {
	p := &Pipeline{
		tx:     tx,
		layout: DefaultLayout(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run replaces the contents of the store with the source files found in dir.
// On error nothing is committed and the store is exactly as before the call.
func (p *Pipeline) Run(ctx context.Context, dir string) (domain.ImportSummary, error) {
	runID := uuid.New()
	log := p.log.With("run_id", runID.String())
	start := time.Now()

	log.Info("import started", "dir", dir)

	var summary domain.ImportSummary
	err := p.tx.WithinTx(ctx, func(s repo.Store) error {
		r := newRun(s, log)
		if err := r.execute(ctx, dir, p.layout, p.batchSize); err != nil {
			return err
		}
		summary = r.summary
		return nil
	})
	if err != nil {
		log.Error("import failed; store left unchanged", "error", err)
		return domain.ImportSummary{}, fmt.Errorf("ingest.Pipeline.Run: %w", err)
	}

	summary.RunID = runID
	summary.Duration = time.Since(start)

	log.Info("import completed",
		"lines", summary.Lines,
		"points", summary.Points,
		"routes", summary.Routes,
		"route_points", summary.RoutePoints,
		"skipped_routes", summary.SkippedRoutes,
		"skipped_route_points", summary.SkippedRoutePoints,
		"duration_ms", summary.Duration.Milliseconds(),
	)
	return summary, nil
}

// run is the state of one import attempt: the id remapping tables and the
// running counts. It is discarded when the transaction ends.
type run struct {
	store repo.Store
	log   *slog.Logger

	lines  map[int64]int64 // external line id -> lines.id
	points map[int64]int64 // external point id -> points.id
	routes map[int64]int64 // external route id -> routes.id

	summary domain.ImportSummary
}

func newRun(s repo.Store, log *slog.Logger) *run {
	return &run{
		store:  s,
		log:    log,
		lines:  make(map[int64]int64),
		points: make(map[int64]int64),
		routes: make(map[int64]int64),
	}
}

func (r *run) execute(ctx context.Context, dir string, layout Layout, batchSize int) error {
	if err := r.store.Maintenance.LockImport(ctx); err != nil {
		return err
	}

	r.log.Info("clearing existing data")
	if err := r.store.Maintenance.Reset(ctx); err != nil {
		return err
	}

	r.log.Info("loading lines", "stage", "1/4", "file", layout.Lines)
	if err := r.each(ctx, dir, layout.Lines, r.loadLine(ctx)); err != nil {
		return err
	}

	r.log.Info("loading points", "stage", "2/4", "file", layout.Points)
	if err := r.each(ctx, dir, layout.Points, r.loadPoint(ctx)); err != nil {
		return err
	}

	r.log.Info("loading routes", "stage", "3/4", "file", layout.Routes)
	if err := r.each(ctx, dir, layout.Routes, r.loadRoute(ctx)); err != nil {
		return err
	}

	r.log.Info("loading route points", "stage", "4/4", "file", layout.RoutePoints)
	var pending []domain.RoutePoint
	if err := r.each(ctx, dir, layout.RoutePoints, r.collectRoutePoint(&pending)); err != nil {
		return err
	}
	if err := r.flushRoutePoints(ctx, pending, batchSize); err != nil {
		return sourceError(layout.RoutePoints, err)
	}
	return nil
}

// each streams one source file through fn, checking for cancellation every
// contextCheckInterval rows. Every error is tagged with the file name.
func (r *run) each(ctx context.Context, dir, name string, fn func(tsv.Row) error) error {
	n := 0
	err := tsv.EachFile(filepath.Join(dir, name), func(row tsv.Row) error {
		if n%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("cancelled at line %d: %w", row.Line, err)
			}
		}
		n++
		return fn(row)
	})
	if err != nil {
		return sourceError(name, err)
	}
	return nil
}
