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

// PostgresSemesterRepository handles database operations for teaching terms.
type PostgresSemesterRepository struct {
	db *pgxpool.Pool
}

// NewSemesterRepository creates a new semester repository
func NewSemesterRepository(pool *pgxpool.Pool) *PostgresSemesterRepository {
	return &PostgresSemesterRepository{db: pool}
}

// List retrieves all semesters, newest year first.
func (r *PostgresSemesterRepository) List(ctx context.Context) ([]*models.Semester, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT semester_code, year FROM semesters ORDER BY year DESC, semester_code`)
	if err != nil {
		return nil, fmt.Errorf("error listing semesters: %w", err)
	}
	defer rows.Close()

	var semesters []*models.Semester
	for rows.Next() {
		var semester models.Semester
		if err := rows.Scan(&semester.SemesterCode, &semester.Year); err != nil {
			return nil, fmt.Errorf("error scanning semester: %w", err)
		}
		semesters = append(semesters, &semester)
	}
	return semesters, rows.Err()
}

// Get retrieves a semester by its composite key.
func (r *PostgresSemesterRepository) Get(ctx context.Context, semesterCode string, year int) (*models.Semester, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	var semester models.Semester
	err := r.db.QueryRow(ctx,
		`SELECT semester_code, year FROM semesters WHERE semester_code = $1 AND year = $2`,
		semesterCode, year).Scan(&semester.SemesterCode, &semester.Year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting semester: %w", err)
	}
	return &semester, nil
}

// Create inserts a semester.
func (r *PostgresSemesterRepository) Create(ctx context.Context, semester *models.Semester) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`INSERT INTO semesters (semester_code, year) VALUES ($1, $2)`,
		semester.SemesterCode, semester.Year)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateKey
		}
		return fmt.Errorf("error creating semester: %w", err)
	}
	return nil
}

// Delete removes a semester. Semesters with scheduled classes cannot be
// deleted.
func (r *PostgresSemesterRepository) Delete(ctx context.Context, semesterCode string, year int) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM semesters WHERE semester_code = $1 AND year = $2`, semesterCode, year)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferentialConflict
		}
		return fmt.Errorf("error deleting semester: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
