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

// PostgresEnrollmentRepository owns the seat counter on classes alongside
// the enrollment rows themselves.
type PostgresEnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(pool *pgxpool.Pool) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{db: pool}
}

const enrollmentSelect = `
	SELECT e.class_id, e.student_id, e.status, e.grade, e.enrolled_at,
	       c.course_code, co.course_name, co.credit, c.semester_code, c.year
	FROM enrollments e
	JOIN classes c ON c.class_id = e.class_id
	JOIN courses co ON co.course_code = c.course_code`

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	err := row.Scan(&e.ClassID, &e.StudentID, &e.Status, &e.Grade, &e.EnrolledAt,
		&e.CourseCode, &e.CourseName, &e.Credit, &e.SemesterCode, &e.Year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning enrollment: %w", err)
	}
	return &e, nil
}

// Enroll occupies a seat. The seat counter is incremented with a conditional
// update so two concurrent requests for the last seat cannot both succeed;
// the counter update and the enrollment row land in one transaction.
func (r *PostgresEnrollmentRepository) Enroll(ctx context.Context, classID, studentID string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var status models.EnrollmentStatus
		err := tx.QueryRow(ctx,
			`SELECT status FROM enrollments WHERE class_id = $1 AND student_id = $2 FOR UPDATE`,
			classID, studentID).Scan(&status)
		switch {
		case err == nil:
			if status == models.EnrollmentEnrolled {
				return apperrors.ErrAlreadyEnrolled
			}
		case errors.Is(err, pgx.ErrNoRows):
			// first enrollment for this pair
		default:
			return fmt.Errorf("error checking enrollment: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `
			UPDATE classes
			SET current_enrollment = current_enrollment + 1
			WHERE class_id = $1 AND current_enrollment < capacity`, classID)
		if err != nil {
			return fmt.Errorf("error incrementing enrollment counter: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM classes WHERE class_id = $1)`, classID).Scan(&exists); err != nil {
				return fmt.Errorf("error checking class existence: %w", err)
			}
			if !exists {
				return apperrors.ErrResourceNotFound
			}
			return apperrors.ErrClassFull
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO enrollments (class_id, student_id, status, enrolled_at)
			VALUES ($1, $2, 'enrolled', now())
			ON CONFLICT (class_id, student_id)
			DO UPDATE SET status = 'enrolled', enrolled_at = now(), grade = NULL`,
			classID, studentID)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrResourceNotFound
			}
			return fmt.Errorf("error creating enrollment: %w", err)
		}
		return nil
	})
}

// Unenroll releases a seat. Only an active row can be dropped; the counter
// decrement is floored at zero.
func (r *PostgresEnrollmentRepository) Unenroll(ctx context.Context, classID, studentID string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE enrollments SET status = 'dropped'
			WHERE class_id = $1 AND student_id = $2 AND status = 'enrolled'`,
			classID, studentID)
		if err != nil {
			return fmt.Errorf("error dropping enrollment: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotEnrolled
		}

		_, err = tx.Exec(ctx, `
			UPDATE classes
			SET current_enrollment = current_enrollment - 1
			WHERE class_id = $1 AND current_enrollment > 0`, classID)
		if err != nil {
			return fmt.Errorf("error decrementing enrollment counter: %w", err)
		}
		return nil
	})
}

// Get retrieves one enrollment row with its course context.
func (r *PostgresEnrollmentRepository) Get(ctx context.Context, classID, studentID string) (*models.Enrollment, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, enrollmentSelect+` WHERE e.class_id = $1 AND e.student_id = $2`, classID, studentID)
	return scanEnrollment(row)
}

func (r *PostgresEnrollmentRepository) list(ctx context.Context, where string, arg string) ([]*models.Enrollment, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, enrollmentSelect+where, arg)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// ListByClass retrieves the roster of a class.
func (r *PostgresEnrollmentRepository) ListByClass(ctx context.Context, classID string) ([]*models.Enrollment, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	return r.list(ctx, ` WHERE e.class_id = $1 ORDER BY e.student_id`, classID)
}

// ListByStudent retrieves a student's enrollment history.
func (r *PostgresEnrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	return r.list(ctx, ` WHERE e.student_id = $1 ORDER BY c.year DESC, e.class_id`, studentID)
}

// SetGrade records a final grade and closes the enrollment with the given
// status.
func (r *PostgresEnrollmentRepository) SetGrade(ctx context.Context, classID, studentID string, grade float64, status models.EnrollmentStatus) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE enrollments SET grade = $1, status = $2
		WHERE class_id = $3 AND student_id = $4`,
		grade, status, classID, studentID)
	if err != nil {
		return fmt.Errorf("error setting grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
