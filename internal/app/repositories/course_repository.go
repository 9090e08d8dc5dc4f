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

// PostgresCourseRepository handles database operations for catalog courses.
type PostgresCourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(pool *pgxpool.Pool) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: pool}
}

// List retrieves all catalog courses.
func (r *PostgresCourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT course_code, course_name, credit, course_type FROM courses ORDER BY course_code`)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.CourseCode, &course.CourseName, &course.Credit, &course.CourseType); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, &course)
	}
	return courses, rows.Err()
}

// Get retrieves a course by its code.
func (r *PostgresCourseRepository) Get(ctx context.Context, courseCode string) (*models.Course, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	var course models.Course
	err := r.db.QueryRow(ctx,
		`SELECT course_code, course_name, credit, course_type FROM courses WHERE course_code = $1`,
		courseCode).Scan(&course.CourseCode, &course.CourseName, &course.Credit, &course.CourseType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return &course, nil
}

// Create inserts a catalog course.
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`INSERT INTO courses (course_code, course_name, credit, course_type) VALUES ($1, $2, $3, $4)`,
		course.CourseCode, course.CourseName, course.Credit, course.CourseType)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateKey
		}
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// Update applies a partial-field merge to a course.
func (r *PostgresCourseRepository) Update(ctx context.Context, course *models.Course) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE courses SET course_name = $1, credit = $2, course_type = $3 WHERE course_code = $4`,
		course.CourseName, course.Credit, course.CourseType, course.CourseCode)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes a course. Courses with scheduled classes are protected by
// the classes foreign key and cannot be deleted.
func (r *PostgresCourseRepository) Delete(ctx context.Context, courseCode string) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE course_code = $1`, courseCode)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferentialConflict
		}
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
