package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/fortifile/fortifile/internal/logger"
	"github.com/fortifile/fortifile/models"
)

func newTestEventRepo(t *testing.T) (*eventRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &eventRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestAppendEvent_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO events").
		WithArgs("Login successful", int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.AppendEvent(context.Background(), models.Event{Description: "Login successful", OwnerID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAppendEvent_DBError(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO events").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))

	err := repo.AppendEvent(context.Background(), models.Event{Description: "x", OwnerID: 1})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestListEventsByOwner_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"id", "description", "occurred_at", "owner_id"}).
		AddRow(2, "File uploaded: taxes.pdf", now, 1).
		AddRow(1, "Login successful", now.Add(-time.Minute), 1)

	mock.ExpectQuery("SELECT id, description").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	events, err := repo.ListEventsByOwner(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Description != "File uploaded: taxes.pdf" {
		t.Errorf("expected newest event first, got %q", events[0].Description)
	}
}

func TestListEventsByOwner_WithLimit(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"id", "description", "occurred_at", "owner_id"}).
		AddRow(5, "Password changed", now, 1)

	// positive limit renders a LIMIT clause into the built query
	mock.ExpectQuery("SELECT id, description").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	events, err := repo.ListEventsByOwner(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
}

func TestListEventsByOwner_QueryError(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, description").
		WithArgs(int64(1)).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.ListEventsByOwner(context.Background(), 1, 0)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestDeleteEventsByOwner_ReturnsAffectedCount(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM events").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	affected, err := repo.DeleteEventsByOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 4 {
		t.Errorf("expected 4 affected rows, got %d", affected)
	}
}
