package repository

import (
	"context"

	"github.com/safinirasol/WellMind-IBM/internal/burnout/domain"
)

// Repository defines persistence for burnout results. Results are never deleted.
type Repository interface {
	// Create inserts r and sets its ID, WorkflowStatus and SubmittedAt from the stored row.
	Create(ctx context.Context, r *domain.Result) error
	// AttachLedgerRef sets the ledger reference on a result that has none. Returns false if the
	// result does not exist or already carries a reference.
	AttachLedgerRef(ctx context.Context, id int64, ref string) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Result, error)
	// ListByEmployee returns the employee's results, newest first.
	ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.Result, error)
	// ListAll returns every result, newest first.
	ListAll(ctx context.Context) ([]*domain.Result, error)
	// LatestByEmployee returns each employee's newest result keyed by employee id.
	LatestByEmployee(ctx context.Context) (map[int64]*domain.Result, error)
}
