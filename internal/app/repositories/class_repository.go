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

// PostgresClassRepository handles database operations for class offerings
// and instructor assignments.
type PostgresClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new class repository
func NewClassRepository(pool *pgxpool.Pool) *PostgresClassRepository {
	return &PostgresClassRepository{db: pool}
}

const classSelect = `
	SELECT c.class_id, c.course_code, c.semester_code, c.year, c.capacity, c.current_enrollment, co.course_name
	FROM classes c
	JOIN courses co ON co.course_code = c.course_code`

func scanClasses(rows pgx.Rows) ([]*models.Class, error) {
	defer rows.Close()
	var classes []*models.Class
	for rows.Next() {
		var class models.Class
		err := rows.Scan(&class.ClassID, &class.CourseCode, &class.SemesterCode,
			&class.Year, &class.Capacity, &class.CurrentEnrollment, &class.CourseName)
		if err != nil {
			return nil, fmt.Errorf("error scanning class: %w", err)
		}
		classes = append(classes, &class)
	}
	return classes, rows.Err()
}

// List retrieves all class offerings with their course names.
func (r *PostgresClassRepository) List(ctx context.Context) ([]*models.Class, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, classSelect+` ORDER BY c.class_id`)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	return scanClasses(rows)
}

// ListByCourse retrieves all offerings of one catalog course.
func (r *PostgresClassRepository) ListByCourse(ctx context.Context, courseCode string) ([]*models.Class, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, classSelect+` WHERE c.course_code = $1 ORDER BY c.class_id`, courseCode)
	if err != nil {
		return nil, fmt.Errorf("error listing classes by course: %w", err)
	}
	return scanClasses(rows)
}

// ListByInstructor retrieves the classes an instructor is assigned to.
func (r *PostgresClassRepository) ListByInstructor(ctx context.Context, instructorID string) ([]*models.Class, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, classSelect+`
		JOIN class_instructors ci ON ci.class_id = c.class_id
		WHERE ci.instructor_id = $1
		ORDER BY c.class_id`, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error listing classes by instructor: %w", err)
	}
	return scanClasses(rows)
}

// Get retrieves a class by its id.
func (r *PostgresClassRepository) Get(ctx context.Context, classID string) (*models.Class, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	var class models.Class
	err := r.db.QueryRow(ctx, classSelect+` WHERE c.class_id = $1`, classID).Scan(
		&class.ClassID, &class.CourseCode, &class.SemesterCode,
		&class.Year, &class.Capacity, &class.CurrentEnrollment, &class.CourseName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting class: %w", err)
	}
	return &class, nil
}

// Create inserts a class offering with an empty roster.
func (r *PostgresClassRepository) Create(ctx context.Context, class *models.Class) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO classes (class_id, course_code, semester_code, year, capacity, current_enrollment)
		VALUES ($1, $2, $3, $4, $5, 0)`,
		class.ClassID, class.CourseCode, class.SemesterCode, class.Year, class.Capacity)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateKey
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating class: %w", err)
	}
	return nil
}

// Update changes a class's capacity. The enrollment counter is only written
// by the enrollment repository.
func (r *PostgresClassRepository) Update(ctx context.Context, class *models.Class) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE classes SET capacity = $1 WHERE class_id = $2`,
		class.Capacity, class.ClassID)
	if err != nil {
		return fmt.Errorf("error updating class: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes a class. Classes with enrollments or schedules cannot be
// deleted.
func (r *PostgresClassRepository) Delete(ctx context.Context, classID string) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM classes WHERE class_id = $1`, classID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferentialConflict
		}
		return fmt.Errorf("error deleting class: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// AssignInstructor attaches a lecturer to a class, overwriting the role if
// the pair already exists.
func (r *PostgresClassRepository) AssignInstructor(ctx context.Context, ci *models.ClassInstructor) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO class_instructors (class_id, instructor_id, role, semester_code, year)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (class_id, instructor_id) DO UPDATE SET role = EXCLUDED.role`,
		ci.ClassID, ci.InstructorID, ci.Role, ci.SemesterCode, ci.Year)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error assigning instructor: %w", err)
	}
	return nil
}
