package dto

// CreateClassRequest creates a scheduled offering of a course.
type CreateClassRequest struct {
	ClassID      string `json:"classId" binding:"required,max=15"`
	CourseCode   string `json:"courseCode" binding:"required,max=10"`
	SemesterCode string `json:"semesterCode" binding:"required,max=20"`
	Year         int    `json:"year" binding:"required,min=2000,max=2100"`
	Capacity     int    `json:"capacity" binding:"required,min=1"`
}

// UpdateClassRequest changes class capacity. The enrollment counter is never
// written directly through the API.
type UpdateClassRequest struct {
	Capacity *int `json:"capacity,omitempty" binding:"omitempty,min=1"`
}

// AssignInstructorRequest binds an instructor to a class.
type AssignInstructorRequest struct {
	InstructorID string `json:"instructorId" binding:"required,max=10"`
	Role         string `json:"role" binding:"required,oneof=primary assistant"`
}

// CreateScheduleRequest places a class in a room at a time slot.
type CreateScheduleRequest struct {
	ScheduleID string `json:"scheduleId,omitempty" binding:"omitempty,max=15"`
	ClassID    string `json:"classId" binding:"required,max=15"`
	Room       string `json:"room" binding:"required,max=50"`
	TimeSlot   string `json:"timeSlot" binding:"required,max=50"`
}

// UpdateScheduleRequest is a partial-field merge for a schedule row.
type UpdateScheduleRequest struct {
	Room     *string `json:"room,omitempty" binding:"omitempty,max=50"`
	TimeSlot *string `json:"timeSlot,omitempty" binding:"omitempty,max=50"`
}

// SetGradeRequest records a grade and final status for an enrollment.
type SetGradeRequest struct {
	StudentID string  `json:"studentId" binding:"required,max=10"`
	Grade     float64 `json:"grade" binding:"min=0,max=10"`
	Status    string  `json:"status" binding:"required,oneof=enrolled completed dropped failed"`
}
