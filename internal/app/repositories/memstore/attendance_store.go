package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// AttendanceStore is the in-memory attendance repository.
type AttendanceStore struct {
	s *Store
}

func (r *AttendanceStore) decorate(record *models.AttendanceRecord) {
	if schedule, ok := r.s.schedules[record.ScheduleID]; ok {
		record.Room = schedule.Room
		record.TimeSlot = schedule.TimeSlot
		record.ClassID = schedule.ClassID
		record.CourseName = r.s.courseNameForClass(schedule.ClassID)
	}
}

// Record upserts the (schedule, student, date) row.
func (r *AttendanceStore) Record(ctx context.Context, record *models.AttendanceRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.schedules[record.ScheduleID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	if _, ok := r.s.users[record.StudentID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	record.RecordedAt = time.Now()
	ar := *record
	r.s.attendance[attendanceKey(ar.ScheduleID, ar.StudentID, ar.AttendanceDate)] = &ar
	return nil
}

func (r *AttendanceStore) collect(keep func(*models.AttendanceRecord) bool) []*models.AttendanceRecord {
	var records []*models.AttendanceRecord
	for _, record := range r.s.attendance {
		if !keep(record) {
			continue
		}
		ar := *record
		r.decorate(&ar)
		records = append(records, &ar)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].AttendanceDate.Equal(records[j].AttendanceDate) {
			return records[i].AttendanceDate.After(records[j].AttendanceDate)
		}
		if records[i].ScheduleID != records[j].ScheduleID {
			return records[i].ScheduleID < records[j].ScheduleID
		}
		return records[i].StudentID < records[j].StudentID
	})
	return records
}

// ListBySchedule retrieves a session's attendance sheet, optionally for a
// single calendar day.
func (r *AttendanceStore) ListBySchedule(ctx context.Context, scheduleID string, date *time.Time) ([]*models.AttendanceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(ar *models.AttendanceRecord) bool {
		if ar.ScheduleID != scheduleID {
			return false
		}
		if date != nil {
			y1, m1, d1 := ar.AttendanceDate.Date()
			y2, m2, d2 := date.Date()
			return y1 == y2 && m1 == m2 && d1 == d2
		}
		return true
	}), nil
}

// ListByStudent retrieves a student's attendance history, newest first.
func (r *AttendanceStore) ListByStudent(ctx context.Context, studentID string) ([]*models.AttendanceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(ar *models.AttendanceRecord) bool { return ar.StudentID == studentID }), nil
}
