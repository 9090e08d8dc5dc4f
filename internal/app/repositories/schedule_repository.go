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

// PostgresScheduleRepository handles database operations for room and
// time-slot placements.
type PostgresScheduleRepository struct {
	db *pgxpool.Pool
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(pool *pgxpool.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{db: pool}
}

const scheduleSelect = `SELECT schedule_id, class_id, room, time_slot FROM schedules`

func scanSchedules(rows pgx.Rows) ([]*models.Schedule, error) {
	defer rows.Close()
	var schedules []*models.Schedule
	for rows.Next() {
		var s models.Schedule
		if err := rows.Scan(&s.ScheduleID, &s.ClassID, &s.Room, &s.TimeSlot); err != nil {
			return nil, fmt.Errorf("error scanning schedule: %w", err)
		}
		schedules = append(schedules, &s)
	}
	return schedules, rows.Err()
}

// List retrieves all schedules.
func (r *PostgresScheduleRepository) List(ctx context.Context) ([]*models.Schedule, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, scheduleSelect+` ORDER BY schedule_id`)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules: %w", err)
	}
	return scanSchedules(rows)
}

// ListByClass retrieves the schedules of one class.
func (r *PostgresScheduleRepository) ListByClass(ctx context.Context, classID string) ([]*models.Schedule, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, scheduleSelect+` WHERE class_id = $1 ORDER BY schedule_id`, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules by class: %w", err)
	}
	return scanSchedules(rows)
}

// ListByStudent retrieves the schedules of every class the student is
// actively enrolled in.
func (r *PostgresScheduleRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.Schedule, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT s.schedule_id, s.class_id, s.room, s.time_slot
		FROM schedules s
		JOIN enrollments e ON e.class_id = s.class_id
		WHERE e.student_id = $1 AND e.status = 'enrolled'
		ORDER BY s.schedule_id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules by student: %w", err)
	}
	return scanSchedules(rows)
}

// Get retrieves a schedule by its id.
func (r *PostgresScheduleRepository) Get(ctx context.Context, scheduleID string) (*models.Schedule, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	var s models.Schedule
	err := r.db.QueryRow(ctx, scheduleSelect+` WHERE schedule_id = $1`, scheduleID).
		Scan(&s.ScheduleID, &s.ClassID, &s.Room, &s.TimeSlot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting schedule: %w", err)
	}
	return &s, nil
}

// Create inserts a schedule.
func (r *PostgresScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`INSERT INTO schedules (schedule_id, class_id, room, time_slot) VALUES ($1, $2, $3, $4)`,
		schedule.ScheduleID, schedule.ClassID, schedule.Room, schedule.TimeSlot)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateKey
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating schedule: %w", err)
	}
	return nil
}

// Update changes a schedule's room and time slot.
func (r *PostgresScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE schedules SET room = $1, time_slot = $2 WHERE schedule_id = $3`,
		schedule.Room, schedule.TimeSlot, schedule.ScheduleID)
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes a schedule. Sessions with attendance records cannot be
// deleted.
func (r *PostgresScheduleRepository) Delete(ctx context.Context, scheduleID string) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM schedules WHERE schedule_id = $1`, scheduleID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferentialConflict
		}
		return fmt.Errorf("error deleting schedule: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
