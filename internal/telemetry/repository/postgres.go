package repository

import (
	"context"
	"errors"

	"github.com/safinirasol/WellMind-IBM/internal/db"
	"github.com/safinirasol/WellMind-IBM/internal/telemetry/domain"
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns an event repository that uses the given db for persistence.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// Save inserts e into submission_events.
func (r *PostgresRepository) Save(ctx context.Context, e *domain.Event) error {
	if e == nil || e.ID == "" {
		return errors.New("event id is required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO submission_events (id, event_type, source, employee_id, result_id, department, label, score,
			ledger_delivered, workflow_delivered, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING`,
		e.ID, e.EventType, e.Source, e.EmployeeID, e.ResultID, e.Department, e.Label, e.Score,
		e.LedgerDelivered, e.WorkflowDelivered, e.CreatedAt,
	)
	return err
}

// Emit implements telemetry.EventEmitter by saving the event.
func (r *PostgresRepository) Emit(ctx context.Context, e *domain.Event) error {
	return r.Save(ctx, e)
}
