package service

import (
	"context"
	"strconv"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

// TaskService owns all task mutations. It needs the user repository to
// confirm assignees exist before a task may point at them.
type TaskService struct {
	taskRepo repository.TaskRepo
	userRepo repository.Authorization
}

var _ Tasks = (*TaskService)(nil)

func NewTaskService(taskRepo repository.TaskRepo, userRepo repository.Authorization) *TaskService {
	return &TaskService{taskRepo: taskRepo, userRepo: userRepo}
}

// Create validates every field of the input at once and persists the
// task. Nothing is written when any field fails, and the caller gets
// the full list of field errors for redisplay.
func (s *TaskService) Create(ctx context.Context, in NewTask) (models.Task, error) {
	t := models.Task{
		Name:   in.Name,
		Status: models.StatusUnassigned,
	}

	verr := &ValidationError{}
	if in.Name == "" {
		verr.add("name", "task name is required")
	} else if len(in.Name) > models.MaxTaskNameLen {
		verr.add("name", "task name must be at most 64 characters")
	}

	if in.Status != "" {
		if !models.IsValidStatus(in.Status) {
			verr.add("status", "invalid status choice")
		} else {
			t.Status = in.Status
		}
	}

	if in.AssigneeID != "" {
		u, err := s.lookupAssignee(in.AssigneeID)
		if err != nil {
			return models.Task{}, err
		}
		if u == nil {
			verr.add("assigned_user", "selected assignee does not exist")
		} else {
			t.AssignedUserID = &u.ID
		}
	}

	if in.DueDate != "" {
		due, err := parseDueDate(in.DueDate)
		if err != nil {
			verr.add("due_date", "invalid date format, expected YYYY-MM-DD")
		} else {
			t.DueDate = &due
		}
	}

	if !verr.ok() {
		return models.Task{}, verr
	}

	id, err := s.taskRepo.Create(ctx, t)
	if err != nil {
		return models.Task{}, err
	}
	t.ID = id
	return t, nil
}

// List returns all tasks in board order (due date ascending, undated last).
func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	return s.taskRepo.List(ctx)
}

// Update applies an inline per-row edit. Fields are validated in fixed
// order (status, assignee, due date) and the first failure aborts the
// whole update; the row is written once, only after every submitted
// field passed.
func (s *TaskService) Update(ctx context.Context, id int, in TaskUpdate) (models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if task == nil {
		return models.Task{}, ErrTaskNotFound
	}
	t := *task

	if in.Status != "" {
		if !models.IsValidStatus(in.Status) {
			return models.Task{}, fieldError("status", "invalid status choice")
		}
		t.Status = in.Status
	}

	// Blank assignee means "leave unchanged", not "clear".
	if in.AssigneeID != "" {
		u, err := s.lookupAssignee(in.AssigneeID)
		if err != nil {
			return models.Task{}, err
		}
		if u == nil {
			return models.Task{}, fieldError("assigned_user", "selected assignee does not exist")
		}
		t.AssignedUserID = &u.ID
	}

	// A submitted empty due date clears it; an absent field (nil) keeps it.
	if in.DueDate != nil {
		if *in.DueDate == "" {
			t.DueDate = nil
		} else {
			due, err := parseDueDate(*in.DueDate)
			if err != nil {
				return models.Task{}, fieldError("due_date", "invalid date format, expected YYYY-MM-DD")
			}
			t.DueDate = &due
		}
	}

	if err := s.taskRepo.Update(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Delete removes one task; a missing id is reported as ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, id int) error {
	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// BulkDelete removes every matching task and silently ignores unknown
// ids. Returns the number of rows deleted.
func (s *TaskService) BulkDelete(ctx context.Context, ids []int) (int, error) {
	return s.taskRepo.DeleteMany(ctx, ids)
}

// lookupAssignee resolves a raw form id to a user; (nil, nil) when the
// value is malformed or names nobody.
func (s *TaskService) lookupAssignee(raw string) (*models.User, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, nil
	}
	return s.userRepo.GetByID(id)
}

// parseDueDate validates a YYYY-MM-DD string and returns it normalized.
func parseDueDate(s string) (string, error) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return "", err
	}
	return t.Format(models.DateLayout), nil
}
