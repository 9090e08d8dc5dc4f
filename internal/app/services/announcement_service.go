package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/logger"
)

// AnnouncementService handles class and system-wide announcements, filtered
// by the requester's role and class membership.
type AnnouncementService struct {
	announcements repositories.AnnouncementRepository
	enrollments   repositories.EnrollmentRepository
	classes       repositories.ClassRepository
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(announcements repositories.AnnouncementRepository, enrollments repositories.EnrollmentRepository, classes repositories.ClassRepository) *AnnouncementService {
	return &AnnouncementService{announcements: announcements, enrollments: enrollments, classes: classes}
}

// ListForUser returns the announcements visible to the requester: admins
// see everything; others see published system-wide announcements targeting
// their role plus class announcements of their own classes.
func (s *AnnouncementService) ListForUser(ctx context.Context, user *models.User) ([]*models.Announcement, error) {
	all, err := s.announcements.List(ctx)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleAdmin {
		return all, nil
	}

	memberOf := make(map[string]bool)
	switch user.Role {
	case models.RoleStudent:
		enrollments, err := s.enrollments.ListByStudent(ctx, user.UserID)
		if err != nil {
			return nil, err
		}
		for _, e := range enrollments {
			if e.Active() {
				memberOf[e.ClassID] = true
			}
		}
	case models.RoleLecturer:
		taught, err := s.classes.ListByInstructor(ctx, user.UserID)
		if err != nil {
			return nil, err
		}
		for _, class := range taught {
			memberOf[class.ClassID] = true
		}
	}

	visible := make([]*models.Announcement, 0, len(all))
	for _, a := range all {
		if !a.VisibleTo(user.Role) {
			continue
		}
		if !a.SystemWide() && !memberOf[*a.ClassID] {
			continue
		}
		visible = append(visible, a)
	}
	return visible, nil
}

// ListByClass returns one class's announcements.
func (s *AnnouncementService) ListByClass(ctx context.Context, classID string) ([]*models.Announcement, error) {
	return s.announcements.ListByClass(ctx, classID)
}

// Get returns one announcement.
func (s *AnnouncementService) Get(ctx context.Context, announcementID string) (*models.Announcement, error) {
	announcement, err := s.announcements.Get(ctx, announcementID)
	if err != nil {
		return nil, err
	}
	if announcement == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return announcement, nil
}

// Create posts an announcement. Lecturers may only post to classes they
// teach; system-wide announcements are admin-only.
func (s *AnnouncementService) Create(ctx context.Context, req *dto.CreateAnnouncementRequest, requester *models.User) (*models.Announcement, error) {
	if req.ClassID == nil && requester.Role != models.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}
	if req.ClassID != nil && requester.Role == models.RoleLecturer {
		teaches, err := teachesClass(ctx, s.classes, *req.ClassID, requester.UserID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	announcement := &models.Announcement{
		AnnouncementID: newAnnouncementID(),
		ClassID:        req.ClassID,
		Title:          req.Title,
		Content:        req.Content,
		PostedBy:       requester.UserID,
		IsPublished:    true,
		Priority:       models.PriorityMedium,
	}
	if req.Priority != "" {
		announcement.Priority = models.AnnouncementPriority(req.Priority)
	}
	if req.IsPublished != nil {
		announcement.IsPublished = *req.IsPublished
	}
	if req.TargetAudience != nil {
		audience := models.Audience(*req.TargetAudience)
		announcement.TargetAudience = &audience
	}

	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, err
	}
	logger.Info().Str("announcementId", announcement.AnnouncementID).Msg("Announcement posted")
	return announcement, nil
}

// Update merges the given fields into an announcement. Lecturers may only
// edit their own posts.
func (s *AnnouncementService) Update(ctx context.Context, announcementID string, req *dto.UpdateAnnouncementRequest, requester *models.User) (*models.Announcement, error) {
	announcement, err := s.Get(ctx, announcementID)
	if err != nil {
		return nil, err
	}
	if requester.Role != models.RoleAdmin && announcement.PostedBy != requester.UserID {
		return nil, apperrors.ErrPermissionDenied
	}
	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Content != nil {
		announcement.Content = *req.Content
	}
	if req.Priority != nil {
		announcement.Priority = models.AnnouncementPriority(*req.Priority)
	}
	if req.IsPublished != nil {
		announcement.IsPublished = *req.IsPublished
	}
	if err := s.announcements.Update(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// Delete removes an announcement. Lecturers may only delete their own posts.
func (s *AnnouncementService) Delete(ctx context.Context, announcementID string, requester *models.User) error {
	announcement, err := s.Get(ctx, announcementID)
	if err != nil {
		return err
	}
	if requester.Role != models.RoleAdmin && announcement.PostedBy != requester.UserID {
		return apperrors.ErrPermissionDenied
	}
	return s.announcements.Delete(ctx, announcementID)
}

// newAnnouncementID mints a key in the same shape as the seeded ANNxxx ids.
func newAnnouncementID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("ANN-%s", suffix)
}
