package models

import "time"

// Assignment is coursework attached to a class.
type Assignment struct {
	AssignmentID int64      `json:"assignmentId" db:"assignment_id"`
	ClassID      string     `json:"classId" db:"class_id"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description,omitempty" db:"description"`
	DueDate      *time.Time `json:"dueDate,omitempty" db:"due_date"`
	MaxScore     float64    `json:"maxScore" db:"max_score"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`

	// Joined fields for student assignment listings.
	CourseName  string     `json:"courseName,omitempty" db:"course_name"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty" db:"submitted_at"`
	Score       *float64   `json:"score,omitempty" db:"score"`
}

// Submission is a student's answer to an assignment. At most one row per
// (assignment, student) pair; resubmission overwrites content and clears
// the score.
type Submission struct {
	AssignmentID int64     `json:"assignmentId" db:"assignment_id"`
	StudentID    string    `json:"studentId" db:"student_id"`
	SubmittedAt  time.Time `json:"submittedAt" db:"submitted_at"`
	Content      *string   `json:"content,omitempty" db:"content"`
	FilePath     *string   `json:"filePath,omitempty" db:"file_path"`
	Score        *float64  `json:"score,omitempty" db:"score"`
}
