package dto

import "time"

// CreateAssignmentRequest creates coursework for a class.
type CreateAssignmentRequest struct {
	ClassID     string     `json:"classId" binding:"required,max=15"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=500"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	MaxScore    float64    `json:"maxScore" binding:"required,gt=0"`
}

// UpdateAssignmentRequest is a partial-field merge for an assignment.
type UpdateAssignmentRequest struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=500"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	MaxScore    *float64   `json:"maxScore,omitempty" binding:"omitempty,gt=0"`
}

// SubmitAssignmentRequest is a student's submission. Resubmitting
// overwrites the previous content and clears any score.
type SubmitAssignmentRequest struct {
	Content  *string `json:"content,omitempty" binding:"omitempty,max=5000"`
	FilePath *string `json:"filePath,omitempty" binding:"omitempty,max=255"`
}

// GradeSubmissionRequest scores a student's submission.
type GradeSubmissionRequest struct {
	StudentID string  `json:"studentId" binding:"required,max=10"`
	Score     float64 `json:"score" binding:"min=0"`
}
