package repository

import (
	"context"

	"github.com/safinirasol/WellMind-IBM/internal/employee/domain"
)

// Repository defines persistence for employees.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	// FindOrCreate returns the employee with e.Email, inserting e when none exists.
	// An existing employee keeps its stored name and department. created reports whether a row was inserted.
	FindOrCreate(ctx context.Context, e *domain.Employee) (emp *domain.Employee, created bool, err error)
	// List returns all employees ordered by id.
	List(ctx context.Context) ([]*domain.Employee, error)
	Count(ctx context.Context) (int, error)
}
