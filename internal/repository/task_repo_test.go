// task_repo_test.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"tasktracker/internal/models"
)

func newMockTaskRepo(t *testing.T) (*TaskSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewTaskSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func taskColumns() []string {
	return []string{"id", "name", "assigned_user_id", "status", "due_date"}
}

func TestTaskSQLite_Create(t *testing.T) {
	assignee := 4
	due := "2026-09-01"

	tests := []struct {
		name       string
		task       models.Task
		mockExpect func(sqlmock.Sqlmock)
		wantID     int
		wantErr    bool
	}{
		{
			name: "all fields set",
			task: models.Task{Name: "Write report", AssignedUserID: &assignee, Status: models.StatusInProgress, DueDate: &due},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertTaskSQL)).
					WithArgs("Write report", 4, models.StatusInProgress, "2026-09-01").
					WillReturnResult(sqlmock.NewResult(5, 1))
			},
			wantID: 5,
		},
		{
			name: "nullable fields become NULL",
			task: models.Task{Name: "Ship release", Status: models.StatusUnassigned},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertTaskSQL)).
					WithArgs("Ship release", nil, models.StatusUnassigned, nil).
					WillReturnResult(sqlmock.NewResult(6, 1))
			},
			wantID: 6,
		},
		{
			name: "exec error",
			task: models.Task{Name: "Broken", Status: models.StatusUnassigned},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertTaskSQL)).
					WithArgs("Broken", nil, models.StatusUnassigned, nil).
					WillReturnError(errors.New("db exec failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockTaskRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), tt.task)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("unexpected id: want %d, got %d", tt.wantID, id)
			}
		})
	}
}

func TestTaskSQLite_GetByID(t *testing.T) {
	repo, mock, cleanup := newMockTaskRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows(taskColumns()).
		AddRow(3, "Write report", 4, models.StatusInProgress, "2026-09-01")
	mock.ExpectQuery(regexp.QuoteMeta(selectTaskSQL)).
		WithArgs(3).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(selectTaskSQL)).
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)

	task, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task == nil {
		t.Fatalf("expected task, got nil")
	}
	if task.AssignedUserID == nil || *task.AssignedUserID != 4 {
		t.Fatalf("unexpected assignee: %+v", task.AssignedUserID)
	}
	if task.DueDate == nil || *task.DueDate != "2026-09-01" {
		t.Fatalf("unexpected due date: %+v", task.DueDate)
	}

	task, err = repo.GetByID(context.Background(), 404)
	if err != nil {
		t.Fatalf("unexpected error for missing id: %v", err)
	}
	if task != nil {
		t.Fatalf("expected nil task for missing id, got %+v", task)
	}
}

func TestTaskSQLite_List(t *testing.T) {
	repo, mock, cleanup := newMockTaskRepo(t)
	defer cleanup()

	// Board order: dated tasks first, undated last.
	rows := sqlmock.NewRows(taskColumns()).
		AddRow(2, "Write report", 4, models.StatusInProgress, "2026-09-01").
		AddRow(1, "Ship release", nil, models.StatusUnassigned, nil)
	mock.ExpectQuery(regexp.QuoteMeta(listTasksSQL)).WillReturnRows(rows)

	tasks, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != 2 || tasks[1].ID != 1 {
		t.Fatalf("unexpected order: %+v", tasks)
	}
	if tasks[1].AssignedUserID != nil || tasks[1].DueDate != nil {
		t.Fatalf("NULL columns must scan to nil pointers: %+v", tasks[1])
	}
}

func TestTaskSQLite_Update(t *testing.T) {
	repo, mock, cleanup := newMockTaskRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(updateTaskSQL)).
		WithArgs("Write report", nil, models.StatusCompleted, nil, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), models.Task{
		ID:     3,
		Name:   "Write report",
		Status: models.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskSQLite_Delete(t *testing.T) {
	repo, mock, cleanup := newMockTaskRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteTaskSQL)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteTaskSQL)).
		WithArgs(404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatalf("expected deleted=true for existing row")
	}

	deleted, err = repo.Delete(context.Background(), 404)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Fatalf("expected deleted=false when no row matched")
	}
}

func TestTaskSQLite_DeleteMany(t *testing.T) {
	repo, mock, cleanup := newMockTaskRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE id IN (?, ?, ?)`)).
		WithArgs(1, 2, 999).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteMany(context.Background(), []int{1, 2, 999})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows deleted, got %d", n)
	}
}

func TestTaskSQLite_DeleteMany_EmptyInput(t *testing.T) {
	repo, mock, cleanup := newMockTaskRepo(t)
	defer cleanup()
	_ = mock // no statement may reach the database

	n, err := repo.DeleteMany(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 deletions for empty input, got %d", n)
	}
}
