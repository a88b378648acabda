package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guttosm/floorsheet/internal/domain/models"
	pq "github.com/lib/pq"
)

// CopyBatchSize is the number of report rows sent per COPY statement.
const CopyBatchSize = 5000

// DefaultListLimit caps ListBrokerActivity when the filter sets no limit.
const DefaultListLimit = 100

// ReportRepository defines contract for DB operations.
type ReportRepository interface {
	ReplaceReport(ctx context.Context, runID string, rows []models.ReportRow) error
	RecordRun(ctx context.Context, run *models.Run) error
	LatestRun(ctx context.Context) (*models.Run, error)
	ListBrokerActivity(ctx context.Context, filter models.BrokerFilter) ([]models.ReportRow, error)
	FindByKey(ctx context.Context, rowKey string) (*models.ReportRow, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository returns a Postgres-backed ReportRepository. The schema
// must already be migrated (see Migrate).
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

// ReplaceReport swaps the stored report for rows in a single transaction.
func (r *reportRepository) ReplaceReport(ctx context.Context, runID string, rows []models.ReportRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM broker_report`); err != nil {
		_ = tx.Rollback()
		return err
	}

	for start := 0; start < len(rows); start += CopyBatchSize {
		end := start + CopyBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := copyBatch(ctx, tx, runID, rows[start:end]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("copy rows %d-%d: %w", start, end, err)
		}
	}

	return tx.Commit()
}

func copyBatch(ctx context.Context, tx *sql.Tx, runID string, rows []models.ReportRow) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"broker_report",
		"run_id",
		"row_key",
		"trade_date",
		"symbol",
		"broker",
		"quantity_buyer",
		"amount_buyer",
		"quantity_seller",
		"amount_seller",
	))
	if err != nil {
		return err
	}

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			runID,
			row.RowKey,
			row.Date,
			row.Script,
			row.Broker,
			row.QuantityBuyer,
			row.AmountBuyer,
			row.QuantitySeller,
			row.AmountSeller,
		); err != nil {
			_ = stmt.Close()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return err
	}
	return stmt.Close()
}

// RecordRun stores the summary of a finished run.
func (r *reportRepository) RecordRun(ctx context.Context, run *models.Run) error {
	if run == nil {
		return errors.New("nil run")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO report_runs (run_id, started_at, finished_at, input_files, loaded_files, skipped_files, rows_combined, report_rows, output_file)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		run.ID,
		run.StartedAt,
		run.FinishedAt,
		pq.Array(run.InputFiles),
		pq.Array(run.LoadedFiles),
		pq.Array(run.SkippedFiles),
		run.RowsCombined,
		run.ReportRows,
		run.OutputFile,
	)
	return err
}

// LatestRun returns the most recently finished run, or nil when none exists.
func (r *reportRepository) LatestRun(ctx context.Context) (*models.Run, error) {
	var run models.Run
	err := r.db.QueryRowContext(ctx, `
		SELECT run_id, started_at, finished_at, input_files, loaded_files, skipped_files, rows_combined, report_rows, output_file
		FROM report_runs
		ORDER BY finished_at DESC
		LIMIT 1
	`).Scan(
		&run.ID,
		&run.StartedAt,
		&run.FinishedAt,
		pq.Array(&run.InputFiles),
		pq.Array(&run.LoadedFiles),
		pq.Array(&run.SkippedFiles),
		&run.RowsCombined,
		&run.ReportRows,
		&run.OutputFile,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListBrokerActivity returns stored report rows matching filter, ordered by
// row key.
func (r *reportRepository) ListBrokerActivity(ctx context.Context, filter models.BrokerFilter) ([]models.ReportRow, error) {
	// Placeholders are numbered in the order the optional filters are appended.
	conditions := "TRUE"
	var args []interface{}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conditions += fmt.Sprintf(" AND trade_date = $%d", len(args))
	}
	if filter.Script != "" {
		args = append(args, filter.Script)
		conditions += fmt.Sprintf(" AND symbol = $%d", len(args))
	}
	if filter.Broker != "" {
		args = append(args, filter.Broker)
		conditions += fmt.Sprintf(" AND broker = $%d", len(args))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT row_key, trade_date, symbol, broker, quantity_buyer, amount_buyer, quantity_seller, amount_seller
		FROM broker_report
		WHERE %s
		ORDER BY row_key
		LIMIT $%d
	`, conditions, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.ReportRow, 0)
	for rows.Next() {
		row, err := scanReportRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *row)
	}
	return out, rows.Err()
}

// FindByKey returns the stored row whose textual key equals rowKey exactly,
// or nil when there is none.
func (r *reportRepository) FindByKey(ctx context.Context, rowKey string) (*models.ReportRow, error) {
	row, err := scanReportRow(r.db.QueryRowContext(ctx, `
		SELECT row_key, trade_date, symbol, broker, quantity_buyer, amount_buyer, quantity_seller, amount_seller
		FROM broker_report
		WHERE row_key = $1
		LIMIT 1
	`, rowKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReportRow(s rowScanner) (*models.ReportRow, error) {
	var row models.ReportRow
	if err := s.Scan(
		&row.RowKey,
		&row.Date,
		&row.Script,
		&row.Broker,
		&row.QuantityBuyer,
		&row.AmountBuyer,
		&row.QuantitySeller,
		&row.AmountSeller,
	); err != nil {
		return nil, err
	}
	return &row, nil
}
