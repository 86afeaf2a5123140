package service

import (
	"context"
	"database/sql"

	burnoutrepo "github.com/safinirasol/WellMind-IBM/internal/burnout/repository"
	"github.com/safinirasol/WellMind-IBM/internal/db"
	employeerepo "github.com/safinirasol/WellMind-IBM/internal/employee/repository"
)

// PostgresStore is the Store backed by the employee and burnout Postgres repositories.
type PostgresStore struct {
	db        *sql.DB
	employees *employeerepo.PostgresRepository
	results   *burnoutrepo.PostgresRepository
}

// NewPostgresStore returns a Store over conn.
func NewPostgresStore(conn *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:        conn,
		employees: employeerepo.NewPostgresRepository(conn),
		results:   burnoutrepo.NewPostgresRepository(conn),
	}
}

// InTx implements Store.
func (s *PostgresStore) InTx(ctx context.Context, fn func(employees EmployeeRepo, results ResultRepo) error) error {
	return db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(s.employees.WithTx(tx), s.results.WithTx(tx))
	})
}

// Results implements Store.
func (s *PostgresStore) Results() ResultRepo {
	return s.results
}
