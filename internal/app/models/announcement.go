package models

import "time"

// Announcement is either class-scoped (ClassID set) or system-wide
// (ClassID nil, TargetAudience set).
type Announcement struct {
	AnnouncementID string               `json:"announcementId" db:"announcement_id" example:"ANN001"`
	ClassID        *string              `json:"classId,omitempty" db:"class_id"`
	Title          string               `json:"title" db:"title"`
	Content        string               `json:"content" db:"content"`
	PostedBy       string               `json:"postedBy" db:"posted_by"`
	PostedAt       time.Time            `json:"postedAt" db:"posted_at"`
	IsPublished    bool                 `json:"isPublished" db:"is_published"`
	Priority       AnnouncementPriority `json:"priority" db:"priority"`
	TargetAudience *Audience            `json:"targetAudience,omitempty" db:"target_audience"`
}

// SystemWide reports whether the announcement targets an audience rather
// than a single class.
func (a *Announcement) SystemWide() bool {
	return a.ClassID == nil
}

// VisibleTo reports whether a published announcement should be listed for
// the given role.
func (a *Announcement) VisibleTo(role Role) bool {
	if !a.IsPublished {
		return false
	}
	if !a.SystemWide() {
		return true
	}
	if a.TargetAudience == nil || *a.TargetAudience == AudienceAll {
		return true
	}
	switch role {
	case RoleStudent:
		return *a.TargetAudience == AudienceStudents
	case RoleLecturer:
		return *a.TargetAudience == AudienceLecturers
	case RoleAdmin:
		return *a.TargetAudience == AudienceAdmins
	}
	return false
}
