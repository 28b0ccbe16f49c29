// session_repo_test.go
package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"tasktracker/internal/models"
)

func newMockSessionRepo(t *testing.T) (*SessionSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewSessionSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestSessionSQLite_Create(t *testing.T) {
	repo, mock, cleanup := newMockSessionRepo(t)
	defer cleanup()

	expiry := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(insertSessionSQL)).
		WithArgs("sess-1", 7, expiry).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), models.Session{
		ID:        "sess-1",
		UserID:    7,
		ExpiresAt: expiry,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSessionSQLite_Get(t *testing.T) {
	repo, mock, cleanup := newMockSessionRepo(t)
	defer cleanup()

	expiry := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "expires_at"}).
		AddRow("sess-1", 7, expiry)
	mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
		WithArgs("sess-1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
		WithArgs("gone").
		WillReturnError(sql.ErrNoRows)

	s, err := repo.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s == nil {
		t.Fatalf("expected session, got nil")
	}
	if s.UserID != 7 || !s.ExpiresAt.Equal(expiry) {
		t.Fatalf("unexpected session: %+v", s)
	}

	s, err = repo.Get(context.Background(), "gone")
	if err != nil {
		t.Fatalf("unexpected error for missing session: %v", err)
	}
	if s != nil {
		t.Fatalf("expected nil session, got %+v", s)
	}
}

func TestSessionSQLite_Delete(t *testing.T) {
	repo, mock, cleanup := newMockSessionRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// deleting an unknown id is a silent no-op
	mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), "gone"); err != nil {
		t.Fatalf("unexpected error for missing session: %v", err)
	}
}
