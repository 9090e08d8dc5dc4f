package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/db"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/dberrors"
)

// PostgresAssignmentRepository handles database operations for coursework
// and submissions.
type PostgresAssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(pool *pgxpool.Pool) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{db: pool}
}

// ListByClass retrieves the assignments of one class.
func (r *PostgresAssignmentRepository) ListByClass(ctx context.Context, classID string) ([]*models.Assignment, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT assignment_id, class_id, title, description, due_date, max_score, created_at
		FROM assignments
		WHERE class_id = $1
		ORDER BY due_date NULLS LAST, assignment_id`, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		var a models.Assignment
		err := rows.Scan(&a.AssignmentID, &a.ClassID, &a.Title, &a.Description,
			&a.DueDate, &a.MaxScore, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning assignment: %w", err)
		}
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}

// ListForStudent joins each assignment of the student's active classes with
// the student's own submission, if any.
func (r *PostgresAssignmentRepository) ListForStudent(ctx context.Context, studentID string) ([]*models.Assignment, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT a.assignment_id, a.class_id, a.title, a.description, a.due_date, a.max_score, a.created_at,
		       co.course_name, s.submitted_at, s.score
		FROM assignments a
		JOIN enrollments e ON e.class_id = a.class_id AND e.student_id = $1 AND e.status = 'enrolled'
		JOIN classes c ON c.class_id = a.class_id
		JOIN courses co ON co.course_code = c.course_code
		LEFT JOIN submissions s ON s.assignment_id = a.assignment_id AND s.student_id = $1
		ORDER BY a.due_date NULLS LAST, a.assignment_id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments for student: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		var a models.Assignment
		err := rows.Scan(&a.AssignmentID, &a.ClassID, &a.Title, &a.Description,
			&a.DueDate, &a.MaxScore, &a.CreatedAt, &a.CourseName, &a.SubmittedAt, &a.Score)
		if err != nil {
			return nil, fmt.Errorf("error scanning assignment: %w", err)
		}
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}

// Get retrieves an assignment by its id.
func (r *PostgresAssignmentRepository) Get(ctx context.Context, assignmentID int64) (*models.Assignment, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	var a models.Assignment
	err := r.db.QueryRow(ctx, `
		SELECT assignment_id, class_id, title, description, due_date, max_score, created_at
		FROM assignments WHERE assignment_id = $1`, assignmentID).
		Scan(&a.AssignmentID, &a.ClassID, &a.Title, &a.Description, &a.DueDate, &a.MaxScore, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting assignment: %w", err)
	}
	return &a, nil
}

// Create inserts an assignment and fills in its generated id.
func (r *PostgresAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO assignments (class_id, title, description, due_date, max_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING assignment_id, created_at`,
		assignment.ClassID, assignment.Title, assignment.Description,
		assignment.DueDate, assignment.MaxScore).
		Scan(&assignment.AssignmentID, &assignment.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating assignment: %w", err)
	}
	return nil
}

// Update applies a partial-field merge to an assignment.
func (r *PostgresAssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE assignments SET title = $1, description = $2, due_date = $3, max_score = $4
		WHERE assignment_id = $5`,
		assignment.Title, assignment.Description, assignment.DueDate,
		assignment.MaxScore, assignment.AssignmentID)
	if err != nil {
		return fmt.Errorf("error updating assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes an assignment and its submissions.
func (r *PostgresAssignmentRepository) Delete(ctx context.Context, assignmentID int64) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM assignments WHERE assignment_id = $1`, assignmentID)
	if err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Submit upserts the (assignment, student) submission. A resubmission
// replaces the content and clears any earlier score.
func (r *PostgresAssignmentRepository) Submit(ctx context.Context, submission *models.Submission) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO submissions (assignment_id, student_id, content, file_path)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (assignment_id, student_id)
		DO UPDATE SET content = EXCLUDED.content, file_path = EXCLUDED.file_path,
		              submitted_at = now(), score = NULL
		RETURNING submitted_at`,
		submission.AssignmentID, submission.StudentID, submission.Content, submission.FilePath).
		Scan(&submission.SubmittedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error submitting assignment: %w", err)
	}
	return nil
}

// GetSubmission retrieves one student's submission for an assignment.
func (r *PostgresAssignmentRepository) GetSubmission(ctx context.Context, assignmentID int64, studentID string) (*models.Submission, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	var s models.Submission
	err := r.db.QueryRow(ctx, `
		SELECT assignment_id, student_id, submitted_at, content, file_path, score
		FROM submissions WHERE assignment_id = $1 AND student_id = $2`,
		assignmentID, studentID).
		Scan(&s.AssignmentID, &s.StudentID, &s.SubmittedAt, &s.Content, &s.FilePath, &s.Score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting submission: %w", err)
	}
	return &s, nil
}

// ListSubmissions retrieves every submission for an assignment.
func (r *PostgresAssignmentRepository) ListSubmissions(ctx context.Context, assignmentID int64) ([]*models.Submission, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT assignment_id, student_id, submitted_at, content, file_path, score
		FROM submissions WHERE assignment_id = $1 ORDER BY student_id`, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		var s models.Submission
		err := rows.Scan(&s.AssignmentID, &s.StudentID, &s.SubmittedAt, &s.Content, &s.FilePath, &s.Score)
		if err != nil {
			return nil, fmt.Errorf("error scanning submission: %w", err)
		}
		submissions = append(submissions, &s)
	}
	return submissions, rows.Err()
}

// ScoreSubmission records a score on an existing submission.
func (r *PostgresAssignmentRepository) ScoreSubmission(ctx context.Context, assignmentID int64, studentID string, score float64) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE submissions SET score = $1
		WHERE assignment_id = $2 AND student_id = $3`,
		score, assignmentID, studentID)
	if err != nil {
		return fmt.Errorf("error scoring submission: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
