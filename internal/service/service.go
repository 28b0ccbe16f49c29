package service

import (
	"context"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

// Authorization covers account lifecycle and session tokens. Every
// token a handler sees is resolved against the session store, so
// logout genuinely ends the session.
type Authorization interface {
	// SignUp creates the account and establishes a session for it.
	SignUp(ctx context.Context, username, password, passwordConfirm string) (int, string, error)
	SignIn(ctx context.Context, username, password string) (string, error)
	// Authenticate resolves an access token to a user id.
	Authenticate(ctx context.Context, accessToken string) (int, error)
	Logout(ctx context.Context, accessToken string) error
}

// Tasks exposes the shared board: create, list, inline update, delete.
type Tasks interface {
	Create(ctx context.Context, in NewTask) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, id int, in TaskUpdate) (models.Task, error)
	Delete(ctx context.Context, id int) error
	BulkDelete(ctx context.Context, ids []int) (int, error)
}

// Users exposes read-only user listing for the assignee selector.
type Users interface {
	List(ctx context.Context) ([]models.User, error)
}

// NewTask is the input for task creation. Zero-value fields fall back
// to defaults (status "Unassigned", no assignee, no due date).
type NewTask struct {
	Name       string
	AssigneeID string // raw form value; empty means unassigned
	Status     string
	DueDate    string // YYYY-MM-DD; empty means none
}

// TaskUpdate is the input for an inline per-row update. Empty Status
// and AssigneeID mean "leave unchanged". DueDate distinguishes absent
// (nil, unchanged) from present-empty ("", clear the date).
type TaskUpdate struct {
	Status     string
	AssigneeID string
	DueDate    *string
}

// AuthConfig carries token signing settings loaded from config.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

type Service struct {
	Authorization
	Tasks
	Users
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, policy PasswordPolicy, authCfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, repos.Sessions, policy, authCfg),
		Tasks:         NewTaskService(repos.Tasks, repos.Auth),
		Users:         NewUserService(repos.Auth),
	}
}
