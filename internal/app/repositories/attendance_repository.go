package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/db"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/dberrors"
)

// PostgresAttendanceRepository handles database operations for per-session
// attendance records.
type PostgresAttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(pool *pgxpool.Pool) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{db: pool}
}

const attendanceSelect = `
	SELECT ar.schedule_id, ar.student_id, ar.attendance_date, ar.status, ar.recorded_by, ar.recorded_at,
	       s.room, s.time_slot, s.class_id, co.course_name
	FROM attendance_records ar
	JOIN schedules s ON s.schedule_id = ar.schedule_id
	JOIN classes c ON c.class_id = s.class_id
	JOIN courses co ON co.course_code = c.course_code`

// Record upserts the (schedule, student, date) row. Re-recording a session
// overwrites the earlier status.
func (r *PostgresAttendanceRepository) Record(ctx context.Context, record *models.AttendanceRecord) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO attendance_records (schedule_id, student_id, attendance_date, status, recorded_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (schedule_id, student_id, attendance_date)
		DO UPDATE SET status = EXCLUDED.status, recorded_by = EXCLUDED.recorded_by, recorded_at = now()
		RETURNING recorded_at`,
		record.ScheduleID, record.StudentID, record.AttendanceDate, record.Status, record.RecordedBy).
		Scan(&record.RecordedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error recording attendance: %w", err)
	}
	return nil
}

func (r *PostgresAttendanceRepository) list(ctx context.Context, suffix string, args ...interface{}) ([]*models.AttendanceRecord, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, attendanceSelect+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance records: %w", err)
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		var ar models.AttendanceRecord
		err := rows.Scan(&ar.ScheduleID, &ar.StudentID, &ar.AttendanceDate, &ar.Status,
			&ar.RecordedBy, &ar.RecordedAt, &ar.Room, &ar.TimeSlot, &ar.ClassID, &ar.CourseName)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendance record: %w", err)
		}
		records = append(records, &ar)
	}
	return records, rows.Err()
}

// ListBySchedule retrieves a session's attendance sheet, optionally for a
// single calendar day.
func (r *PostgresAttendanceRepository) ListBySchedule(ctx context.Context, scheduleID string, date *time.Time) ([]*models.AttendanceRecord, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	if date != nil {
		return r.list(ctx, ` WHERE ar.schedule_id = $1 AND ar.attendance_date = $2 ORDER BY ar.student_id`,
			scheduleID, *date)
	}
	return r.list(ctx, ` WHERE ar.schedule_id = $1 ORDER BY ar.attendance_date DESC, ar.student_id`, scheduleID)
}

// ListByStudent retrieves a student's attendance history, newest first.
func (r *PostgresAttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.AttendanceRecord, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	return r.list(ctx, ` WHERE ar.student_id = $1 ORDER BY ar.attendance_date DESC, ar.schedule_id`, studentID)
}
