package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/safinirasol/WellMind-IBM/internal/employee/domain"
)

var cols = []string{"id", "name", "email", "department", "created_at"}

func newMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewPostgresRepository(conn), mock
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM employees WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cols))

	e, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if e != nil {
		t.Errorf("GetByID = %+v, want nil", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM employees WHERE email").
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "Ada", "ada@example.com", "Engineering", now))

	e, err := repo.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if e == nil || e.ID != 1 || e.Department != "Engineering" || !e.CreatedAt.Equal(now) {
		t.Errorf("GetByEmail = %+v", e)
	}
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM employees WHERE id").WillReturnError(errors.New("connection reset"))

	if _, err := repo.GetByID(context.Background(), 1); err == nil {
		t.Error("GetByID should return database errors")
	}
}

func TestFindOrCreate(t *testing.T) {
	tests := []struct {
		name        string
		inserted    bool
		storedName  string
		wantCreated bool
	}{
		{"new employee", true, "Ada", true},
		{"existing employee keeps stored name", false, "Ada Lovelace", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)
			mock.ExpectQuery("INSERT INTO employees (.+) ON CONFLICT \\(email\\)").
				WithArgs("Ada", "ada@example.com", "Engineering").
				WillReturnRows(sqlmock.NewRows(append(cols, "inserted")).
					AddRow(3, tt.storedName, "ada@example.com", "Engineering", time.Now(), tt.inserted))

			e, created, err := repo.FindOrCreate(context.Background(), &domain.Employee{
				Name: " Ada ", Email: "ada@example.com", Department: "Engineering",
			})
			if err != nil {
				t.Fatalf("FindOrCreate: %v", err)
			}
			if created != tt.wantCreated {
				t.Errorf("created = %v, want %v", created, tt.wantCreated)
			}
			if e.ID != 3 || e.Name != tt.storedName {
				t.Errorf("employee = %+v", e)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestFindOrCreate_InvalidSkipsQuery(t *testing.T) {
	repo, mock := newMock(t)
	_, _, err := repo.FindOrCreate(context.Background(), &domain.Employee{Name: "Ada", Department: "Ops"})
	if err == nil {
		t.Fatal("FindOrCreate should reject a missing email")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries: %v", err)
	}
}

func TestListAndCount(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM employees ORDER BY id").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "Ada", "ada@example.com", "Engineering", now).
			AddRow(2, "Grace", "grace@example.com", "Finance", now))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[1].Name != "Grace" {
		t.Errorf("List = %+v", list)
	}
	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}
