package models

import "time"

// AttendanceRecord marks one student's attendance for one scheduled session
// on one date. The (ScheduleID, StudentID, AttendanceDate) triple is the key.
type AttendanceRecord struct {
	ScheduleID     string           `json:"scheduleId" db:"schedule_id"`
	StudentID      string           `json:"studentId" db:"student_id"`
	AttendanceDate time.Time        `json:"attendanceDate" db:"attendance_date"`
	Status         AttendanceStatus `json:"status" db:"status"`
	RecordedBy     string           `json:"recordedBy" db:"recorded_by"`
	RecordedAt     time.Time        `json:"recordedAt" db:"recorded_at"`

	// Joined fields for student attendance listings.
	Room       string `json:"room,omitempty" db:"room"`
	TimeSlot   string `json:"timeSlot,omitempty" db:"time_slot"`
	ClassID    string `json:"classId,omitempty" db:"class_id"`
	CourseName string `json:"courseName,omitempty" db:"course_name"`
}
