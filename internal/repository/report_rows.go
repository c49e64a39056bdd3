package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"clinic-etl/internal/models"

	"go.uber.org/zap"
)

// ReportEntry is one coded row with the identity of its patient.
type ReportEntry struct {
	PatientID   int
	ConsultDate string
	Row         models.ReportRow
}

// ReportRowsRepository stores coded report rows in Postgres.
type ReportRowsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReportRowsRepository creates the repository.
func NewReportRowsRepository(db *sql.DB, logger *zap.Logger) *ReportRowsRepository {
	return &ReportRowsRepository{
		db:     db,
		logger: logger,
	}
}

const createReportRowsTable = `
	CREATE TABLE IF NOT EXISTS report_rows (
		batch_id     UUID        NOT NULL,
		patient_id   INTEGER     NOT NULL,
		name         TEXT        NOT NULL,
		consult_date TEXT,
		row_json     JSONB       NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (batch_id, patient_id)
	)
`

// EnsureSchema creates the report_rows table when missing.
func (r *ReportRowsRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createReportRowsTable); err != nil {
		return fmt.Errorf("failed to create report_rows: %w", err)
	}
	return nil
}

// SaveBatch inserts every entry of a batch in one transaction.
func (r *ReportRowsRepository) SaveBatch(ctx context.Context, batchID string, entries []ReportEntry) error {
	if batchID == "" {
		return fmt.Errorf("batch_id is required")
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO report_rows (batch_id, patient_id, name, consult_date, row_json)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, e := range entries {
		rowJSON, err := json.Marshal(e.Row.Map())
		if err != nil {
			return fmt.Errorf("failed to encode row of patient %d: %w", e.PatientID, err)
		}
		var consultDate sql.NullString
		if e.ConsultDate != "" {
			consultDate = sql.NullString{String: e.ConsultDate, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, query, batchID, e.PatientID, e.Row.Name, consultDate, rowJSON); err != nil {
			return fmt.Errorf("failed to insert row of patient %d: %w", e.PatientID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch %s: %w", batchID, err)
	}

	r.logger.Info("Report rows saved",
		zap.String("batch_id", batchID),
		zap.Int("rows", len(entries)),
	)
	return nil
}

// CountBatch returns how many rows a batch holds.
func (r *ReportRowsRepository) CountBatch(ctx context.Context, batchID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM report_rows WHERE batch_id = $1`, batchID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count batch %s: %w", batchID, err)
	}
	return n, nil
}
