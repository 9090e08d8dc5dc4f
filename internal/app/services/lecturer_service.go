package services

import (
	"context"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// LecturerService serves the lecturer directory and teaching rosters.
type LecturerService struct {
	users   repositories.UserRepository
	classes repositories.ClassRepository
}

// NewLecturerService creates a new lecturer service
func NewLecturerService(users repositories.UserRepository, classes repositories.ClassRepository) *LecturerService {
	return &LecturerService{users: users, classes: classes}
}

// List returns all lecturers.
func (s *LecturerService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx, models.RoleLecturer)
}

// Get returns one lecturer's profile.
func (s *LecturerService) Get(ctx context.Context, lecturerID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, lecturerID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != models.RoleLecturer {
		return nil, apperrors.ErrResourceNotFound
	}
	return user, nil
}

// Classes returns the classes a lecturer teaches.
func (s *LecturerService) Classes(ctx context.Context, lecturerID string) ([]*models.Class, error) {
	if _, err := s.Get(ctx, lecturerID); err != nil {
		return nil, err
	}
	return s.classes.ListByInstructor(ctx, lecturerID)
}
