package service

import (
	"context"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

// UserService is the read-only directory behind the assignee selector.
type UserService struct {
	userRepo repository.Authorization
}

var _ Users = (*UserService)(nil)

func NewUserService(userRepo repository.Authorization) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns all users ordered by username.
func (s *UserService) List(_ context.Context) ([]models.User, error) {
	return s.userRepo.List()
}
