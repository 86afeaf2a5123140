package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/safinirasol/WellMind-IBM/internal/burnout/domain"
	"github.com/safinirasol/WellMind-IBM/internal/db"
)

const resultColumns = `id, employee_id, risk_score, label, work_hours, stress_level, ledger_ref, workflow_status, submitted_at`

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a burnout result repository that uses the given db for persistence.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// WithTx returns a repository bound to tx.
func (r *PostgresRepository) WithTx(tx *sql.Tx) *PostgresRepository {
	return &PostgresRepository{db: tx}
}

// Create persists res. The id, workflow status and submission time are assigned by the database.
func (r *PostgresRepository) Create(ctx context.Context, res *domain.Result) error {
	if err := res.Validate(); err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO burnout_results (employee_id, risk_score, label, work_hours, stress_level, workflow_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, workflow_status, submitted_at`,
		res.EmployeeID, res.RiskScore, res.Label, res.WorkHours, res.StressLevel, res.WorkflowStatus,
	).Scan(&res.ID, &res.WorkflowStatus, &res.SubmittedAt)
}

// AttachLedgerRef sets ledger_ref once; a second call for the same result is a no-op.
func (r *PostgresRepository) AttachLedgerRef(ctx context.Context, id int64, ref string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE burnout_results SET ledger_ref = $2 WHERE id = $1 AND ledger_ref IS NULL`, id, ref)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// GetByID returns the result for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.Result, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+resultColumns+` FROM burnout_results WHERE id = $1`, id)
	res, err := scanResult(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

// ListByEmployee returns the employee's results, newest first.
func (r *PostgresRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.Result, error) {
	return r.list(ctx, `SELECT `+resultColumns+` FROM burnout_results
		WHERE employee_id = $1 ORDER BY submitted_at DESC, id DESC`, employeeID)
}

// ListAll returns every result, newest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*domain.Result, error) {
	return r.list(ctx, `SELECT `+resultColumns+` FROM burnout_results ORDER BY submitted_at DESC, id DESC`)
}

// LatestByEmployee returns each employee's newest result keyed by employee id.
func (r *PostgresRepository) LatestByEmployee(ctx context.Context) (map[int64]*domain.Result, error) {
	list, err := r.list(ctx, `SELECT DISTINCT ON (employee_id) `+resultColumns+` FROM burnout_results
		ORDER BY employee_id, submitted_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]*domain.Result, len(list))
	for _, res := range list {
		out[res.EmployeeID] = res
	}
	return out, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Result, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanResult(s scanner) (*domain.Result, error) {
	var (
		res          domain.Result
		hours, level sql.NullInt64
		ledgerRef    sql.NullString
	)
	if err := s.Scan(&res.ID, &res.EmployeeID, &res.RiskScore, &res.Label, &hours, &level,
		&ledgerRef, &res.WorkflowStatus, &res.SubmittedAt); err != nil {
		return nil, err
	}
	res.WorkHours = int(hours.Int64)
	res.StressLevel = int(level.Int64)
	res.LedgerRef = ledgerRef.String
	return &res, nil
}
