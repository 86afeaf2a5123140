package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/safinirasol/WellMind-IBM/internal/db"
	"github.com/safinirasol/WellMind-IBM/internal/employee/domain"
)

const employeeColumns = `id, name, email, department, created_at`

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns an employee repository that uses the given db for persistence.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// WithTx returns a repository bound to tx.
func (r *PostgresRepository) WithTx(tx *sql.Tx) *PostgresRepository {
	return &PostgresRepository{db: tx}
}

// GetByID returns the employee for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// GetByEmail returns the employee with the given email, or nil if not found.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// FindOrCreate upserts on the email unique key. The no-op update makes RETURNING yield the existing row,
// and xmax = 0 holds only for freshly inserted tuples.
func (r *PostgresRepository) FindOrCreate(ctx context.Context, e *domain.Employee) (*domain.Employee, bool, error) {
	if err := e.Validate(); err != nil {
		return nil, false, err
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (name, email, department)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING `+employeeColumns+`, (xmax = 0) AS inserted`,
		e.Name, e.Email, e.Department)

	var out domain.Employee
	var inserted bool
	if err := row.Scan(&out.ID, &out.Name, &out.Email, &out.Department, &out.CreatedAt, &inserted); err != nil {
		return nil, false, err
	}
	return &out, inserted, nil
}

// List returns all employees ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of employees.
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(s scanner) (*domain.Employee, error) {
	var e domain.Employee
	if err := s.Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
