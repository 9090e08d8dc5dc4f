package dto

// CreateAnnouncementRequest posts either a class announcement (ClassID set)
// or a system-wide one (TargetAudience set).
type CreateAnnouncementRequest struct {
	ClassID        *string `json:"classId,omitempty" binding:"omitempty,max=15"`
	Title          string  `json:"title" binding:"required,max=200"`
	Content        string  `json:"content" binding:"required,max=2000"`
	Priority       string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	TargetAudience *string `json:"targetAudience,omitempty" binding:"omitempty,oneof=all students lecturers admins"`
	IsPublished    *bool   `json:"isPublished,omitempty"`
}

// UpdateAnnouncementRequest is a partial-field merge for an announcement.
type UpdateAnnouncementRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Content     *string `json:"content,omitempty" binding:"omitempty,max=2000"`
	Priority    *string `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}
