package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// AnnouncementStore is the in-memory announcement repository.
type AnnouncementStore struct {
	s *Store
}

func (r *AnnouncementStore) collect(keep func(*models.Announcement) bool) []*models.Announcement {
	var announcements []*models.Announcement
	for _, announcement := range r.s.announcements {
		if !keep(announcement) {
			continue
		}
		a := *announcement
		announcements = append(announcements, &a)
	}
	sort.Slice(announcements, func(i, j int) bool {
		if !announcements[i].PostedAt.Equal(announcements[j].PostedAt) {
			return announcements[i].PostedAt.After(announcements[j].PostedAt)
		}
		return announcements[i].AnnouncementID < announcements[j].AnnouncementID
	})
	return announcements
}

// List retrieves all announcements, newest first.
func (r *AnnouncementStore) List(ctx context.Context) ([]*models.Announcement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(*models.Announcement) bool { return true }), nil
}

// ListByClass retrieves the announcements of one class, newest first.
func (r *AnnouncementStore) ListByClass(ctx context.Context, classID string) ([]*models.Announcement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(a *models.Announcement) bool {
		return a.ClassID != nil && *a.ClassID == classID
	}), nil
}

// Get retrieves an announcement by its id.
func (r *AnnouncementStore) Get(ctx context.Context, announcementID string) (*models.Announcement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	announcement, ok := r.s.announcements[announcementID]
	if !ok {
		return nil, nil
	}
	a := *announcement
	return &a, nil
}

// Create inserts an announcement.
func (r *AnnouncementStore) Create(ctx context.Context, announcement *models.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.announcements[announcement.AnnouncementID]; ok {
		return apperrors.ErrDuplicateKey
	}
	if announcement.ClassID != nil {
		if _, ok := r.s.classes[*announcement.ClassID]; !ok {
			return apperrors.ErrResourceNotFound
		}
	}
	if announcement.PostedAt.IsZero() {
		announcement.PostedAt = time.Now()
	}
	a := *announcement
	r.s.announcements[a.AnnouncementID] = &a
	return nil
}

// Update applies a partial-field merge to an announcement.
func (r *AnnouncementStore) Update(ctx context.Context, announcement *models.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.announcements[announcement.AnnouncementID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	existing.Title = announcement.Title
	existing.Content = announcement.Content
	existing.Priority = announcement.Priority
	existing.IsPublished = announcement.IsPublished
	return nil
}

// Delete removes an announcement.
func (r *AnnouncementStore) Delete(ctx context.Context, announcementID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.announcements[announcementID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(r.s.announcements, announcementID)
	return nil
}
