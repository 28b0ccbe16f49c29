package repository

import (
	"context"
	"database/sql"

	"tasktracker/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	List() ([]models.User, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t models.Task) (int, error)
	GetByID(ctx context.Context, id int) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, t models.Task) error
	Delete(ctx context.Context, id int) (bool, error)
	DeleteMany(ctx context.Context, ids []int) (int, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Auth     Authorization
	Tasks    TaskRepo
	Sessions SessionRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:     NewUserRepository(db),
		Tasks:    NewTaskSQLite(db),
		Sessions: NewSessionSQLite(db),
	}
}
