package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/safinirasol/WellMind-IBM/internal/telemetry"
	"github.com/safinirasol/WellMind-IBM/internal/telemetry/domain"
)

var _ telemetry.EventEmitter = (*PostgresRepository)(nil)

func newMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewPostgresRepository(conn), mock
}

func TestEmit_SavesEvent(t *testing.T) {
	repo, mock := newMock(t)
	e := domain.NewSubmissionEvent(3, 11, "Ops", "High", 2500000025, true, false)
	mock.ExpectExec("INSERT INTO submission_events").
		WithArgs(e.ID, domain.EventTypeSurveySubmitted, domain.EventSource, int64(3), int64(11), "Ops", "High", 2500000025, true, false, e.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Emit(context.Background(), e); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSave_Errors(t *testing.T) {
	repo, mock := newMock(t)
	if err := repo.Save(context.Background(), &domain.Event{CreatedAt: time.Now()}); err == nil {
		t.Error("Save should reject an event without id")
	}
	if err := repo.Save(context.Background(), nil); err == nil {
		t.Error("Save should reject a nil event")
	}

	boom := errors.New("relation does not exist")
	mock.ExpectExec("INSERT INTO submission_events").WillReturnError(boom)
	if err := repo.Save(context.Background(), domain.NewSubmissionEvent(1, 2, "Ops", "Low", 10, false, false)); !errors.Is(err, boom) {
		t.Errorf("Save err = %v, want %v", err, boom)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
