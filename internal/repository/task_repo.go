package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tasktracker/internal/models"
)

type TaskSQLite struct {
	db *sql.DB
}

func NewTaskSQLite(db *sql.DB) *TaskSQLite { return &TaskSQLite{db: db} }

var _ TaskRepo = (*TaskSQLite)(nil)

const (
	insertTaskSQL = `INSERT INTO tasks (name, assigned_user_id, status, due_date) VALUES (?, ?, ?, ?)`

	selectTaskSQL = `SELECT id, name, assigned_user_id, status, due_date FROM tasks WHERE id = ?`

	// Undated tasks sort after every dated task; id breaks ties so the
	// order is stable across requests.
	listTasksSQL = `
		SELECT id, name, assigned_user_id, status, due_date
		FROM tasks
		ORDER BY due_date IS NULL, due_date ASC, id ASC
	`

	updateTaskSQL = `UPDATE tasks SET name = ?, assigned_user_id = ?, status = ?, due_date = ? WHERE id = ?`

	deleteTaskSQL = `DELETE FROM tasks WHERE id = ?`
)

// scanTask reads one row into a Task, converting nullable columns.
func scanTask(scan func(dest ...any) error) (models.Task, error) {
	var (
		t        models.Task
		assignee sql.NullInt64
		due      sql.NullString
	)
	if err := scan(&t.ID, &t.Name, &assignee, &t.Status, &due); err != nil {
		return models.Task{}, err
	}
	if assignee.Valid {
		id := int(assignee.Int64)
		t.AssignedUserID = &id
	}
	if due.Valid && due.String != "" {
		d := due.String
		t.DueDate = &d
	}
	return t, nil
}

// nullableArgs converts the Task's optional fields to driver values.
func nullableArgs(t models.Task) (assignee any, due any) {
	if t.AssignedUserID != nil {
		assignee = *t.AssignedUserID
	}
	if t.DueDate != nil && *t.DueDate != "" {
		due = *t.DueDate
	}
	return assignee, due
}

// Create inserts a new task and returns its ID.
func (r *TaskSQLite) Create(ctx context.Context, t models.Task) (int, error) {
	assignee, due := nullableArgs(t)
	res, err := r.db.ExecContext(ctx, insertTaskSQL, t.Name, assignee, t.Status, due)
	if err != nil {
		return 0, fmt.Errorf("insert task %q: %w", t.Name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for task %q: %w", t.Name, err)
	}
	return int(lastID), nil
}

// GetByID fetches a task by primary key. Returns (nil, nil) if not found.
func (r *TaskSQLite) GetByID(ctx context.Context, id int) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, selectTaskSQL, id)
	t, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select task id=%d: %w", id, err)
	}
	return &t, nil
}

// List returns all tasks ordered by due date ascending, undated last.
func (r *TaskSQLite) List(ctx context.Context) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, listTasksSQL)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := make([]models.Task, 0, 32)
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}
	return out, nil
}

// Update overwrites every mutable column of the task row in one write.
func (r *TaskSQLite) Update(ctx context.Context, t models.Task) error {
	assignee, due := nullableArgs(t)
	_, err := r.db.ExecContext(ctx, updateTaskSQL, t.Name, assignee, t.Status, due, t.ID)
	if err != nil {
		return fmt.Errorf("update task id=%d: %w", t.ID, err)
	}
	return nil
}

// Delete removes one task. Returns false if no row matched.
func (r *TaskSQLite) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteTaskSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete task id=%d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for task id=%d: %w", id, err)
	}
	return n > 0, nil
}

// DeleteMany removes every task whose id appears in ids; ids that match
// nothing are ignored. Returns the number of rows actually deleted.
func (r *TaskSQLite) DeleteMany(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	q := `DELETE FROM tasks WHERE id IN (` + strings.Join(placeholders, ", ") + `)`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk delete tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for bulk delete: %w", err)
	}
	return int(n), nil
}
