// Package pipeline runs the floorsheet report end to end: load the input
// files, combine them, aggregate each side, join and reshape, write the
// report and optionally persist it.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guttosm/floorsheet/internal/domain/models"
	"github.com/guttosm/floorsheet/internal/ingestion"
	"github.com/guttosm/floorsheet/internal/logger"
	"github.com/guttosm/floorsheet/internal/metrics"
	"github.com/guttosm/floorsheet/internal/report"
)

// TableLoader yields the parsed input tables and the files it had to skip.
type TableLoader interface {
	LoadAll(ctx context.Context) (*ingestion.LoadResult, error)
}

// ReportWriter writes the final report rows to path.
type ReportWriter interface {
	Write(path string, rows []models.ReportRow) error
}

// ReportStore persists a finished report and its run summary.
type ReportStore interface {
	ReplaceReport(ctx context.Context, runID string, rows []models.ReportRow) error
	RecordRun(ctx context.Context, run *models.Run) error
}

// Options names the files a run reads and writes.
type Options struct {
	InputFiles []string
	OutputFile string
	// XLSXFile is written with Runner.XLSX when both are set.
	XLSXFile string
}

// Runner executes one report run. XLSX, Store and Metrics are optional.
type Runner struct {
	opts   Options
	loader TableLoader
	writer ReportWriter

	XLSX    ReportWriter
	Store   ReportStore
	Metrics *metrics.Metrics

	newID func() string
	now   func() time.Time
}

// NewRunner returns a runner that loads with loader and writes the report
// with writer.
func NewRunner(opts Options, loader TableLoader, writer ReportWriter) *Runner {
	return &Runner{
		opts:   opts,
		loader: loader,
		writer: writer,
		newID:  func() string { return uuid.New().String() },
		now:    time.Now,
	}
}

// Run executes the pipeline once.
//
// Behavior:
//   - Load: unreadable files are skipped; a canceled ctx aborts the run.
//   - Combine: no loaded table halts with ErrNoValidData.
//   - Aggregate each side; an empty side halts with ErrNothingToJoin.
//   - Join and reshape, then write the report (ErrWriteReport on failure)
//     and the optional workbook.
//   - Persist when a Store is set (ErrPersistReport on failure). The report
//     file is already on disk at that point.
//
// Returns:
//   - the run summary, also on any error that happens after loading.
//   - an error that ExitCode maps to the process exit status.
func (r *Runner) Run(ctx context.Context) (*models.Run, error) {
	run := &models.Run{
		ID:         r.newID(),
		StartedAt:  r.now().UTC(),
		InputFiles: append([]string(nil), r.opts.InputFiles...),
		OutputFile: r.opts.OutputFile,
	}
	l := logger.For("pipeline").With().Str("run_id", run.ID).Logger()
	l.Info().Strs("inputs", run.InputFiles).Str("output", run.OutputFile).Msg("run start")
	defer func() {
		if r.Metrics != nil {
			r.Metrics.RunDuration.Observe(r.now().Sub(run.StartedAt).Seconds())
		}
	}()

	loaded, err := r.loader.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	run.LoadedFiles = make([]string, 0, len(loaded.Tables))
	for _, t := range loaded.Tables {
		run.LoadedFiles = append(run.LoadedFiles, t.Source)
	}
	run.SkippedFiles = make([]string, 0, len(loaded.Skipped))
	for _, s := range loaded.Skipped {
		run.SkippedFiles = append(run.SkippedFiles, s.Path)
	}
	if r.Metrics != nil {
		r.Metrics.Files.WithLabelValues("loaded").Add(float64(len(run.LoadedFiles)))
		r.Metrics.Files.WithLabelValues("skipped").Add(float64(len(run.SkippedFiles)))
	}

	combined, err := ingestion.Combine(loaded.Tables)
	if err != nil {
		l.Error().Err(err).Msg(ErrNoValidData.Error())
		return run, fmt.Errorf("%w: %v", ErrNoValidData, err)
	}
	run.RowsCombined = combined.Len()
	if r.Metrics != nil {
		r.Metrics.RowsCombined.Set(float64(run.RowsCombined))
	}
	l.Info().Int("rows", run.RowsCombined).Int("columns", len(combined.Header)).Msg("tables combined")

	buyers := r.aggregate(&l, combined, report.SideBuyer)
	sellers := r.aggregate(&l, combined, report.SideSeller)
	if buyers.Empty() || sellers.Empty() {
		l.Error().Int("buyer_groups", buyers.Len()).Int("seller_groups", sellers.Len()).Msg(ErrNothingToJoin.Error())
		return run, ErrNothingToJoin
	}

	joined := report.FullOuterJoin(buyers, sellers)
	for _, j := range joined {
		if !j.Key.Lossless() {
			l.Warn().Str("key", j.Key.String()).Msg("key field contains the delimiter; its textual key will not parse back")
		}
	}
	rows := report.Reshape(joined)
	run.ReportRows = len(rows)
	l.Info().Int("rows", run.ReportRows).Msg("report joined")

	if err := r.writer.Write(r.opts.OutputFile, rows); err != nil {
		l.Error().Err(err).Str("file", r.opts.OutputFile).Msg("report write failed")
		return run, fmt.Errorf("%w: %s: %v", ErrWriteReport, r.opts.OutputFile, err)
	}
	if r.XLSX != nil && r.opts.XLSXFile != "" {
		if err := r.XLSX.Write(r.opts.XLSXFile, rows); err != nil {
			l.Error().Err(err).Str("file", r.opts.XLSXFile).Msg("workbook write failed")
			return run, fmt.Errorf("%w: %s: %v", ErrWriteReport, r.opts.XLSXFile, err)
		}
		l.Info().Str("file", r.opts.XLSXFile).Msg("workbook written")
	}
	if r.Metrics != nil {
		r.Metrics.ReportRows.Set(float64(run.ReportRows))
	}
	run.FinishedAt = r.now().UTC()
	l.Info().Str("file", r.opts.OutputFile).Msgf("Merged analysis exported to %s", r.opts.OutputFile)

	if r.Store != nil {
		if err := r.persist(ctx, run, rows); err != nil {
			l.Error().Err(err).Msg("report persist failed")
			return run, fmt.Errorf("%w: %v", ErrPersistReport, err)
		}
		l.Info().Int("rows", len(rows)).Msg("report persisted")
	}

	l.Info().Dur("elapsed", run.FinishedAt.Sub(run.StartedAt)).Msg("run done")
	return run, nil
}

// aggregate groups one side, logging and degrading to an empty aggregate on
// failure so the join check reports it.
func (r *Runner) aggregate(l *zerolog.Logger, t *models.Table, side report.Side) *report.Aggregate {
	agg, err := report.AggregateBy(t, side)
	if err != nil {
		l.Error().Err(err).Str("side", side.String()).Msg("aggregation failed")
		return report.NewAggregate(side)
	}
	l.Info().Str("side", side.String()).Int("groups", agg.Len()).Msg("side aggregated")
	return agg
}

func (r *Runner) persist(ctx context.Context, run *models.Run, rows []models.ReportRow) error {
	if err := r.Store.ReplaceReport(ctx, run.ID, rows); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	if err := r.Store.RecordRun(ctx, run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
