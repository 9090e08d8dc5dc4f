package dto

// RecordAttendanceRequest marks one student's attendance for one session.
// The date is a calendar day in YYYY-MM-DD form.
type RecordAttendanceRequest struct {
	ScheduleID     string `json:"scheduleId" binding:"required,max=15"`
	StudentID      string `json:"studentId" binding:"required,max=10"`
	AttendanceDate string `json:"attendanceDate" binding:"required,datetime=2006-01-02"`
	Status         string `json:"status" binding:"required,oneof=present absent late excused"`
}

// CreateTuitionRequest records a tuition payment for a student.
type CreateTuitionRequest struct {
	StudentID     string  `json:"studentId" binding:"required,max=10"`
	SemesterCode  string  `json:"semesterCode" binding:"required,max=20"`
	Year          int     `json:"year" binding:"required,min=2000,max=2100"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required,max=50"`
	Status        string  `json:"status" binding:"omitempty,oneof=paid pending failed refunded"`
}

// UpdateTuitionRequest changes a payment's status and optionally attaches
// a receipt number.
type UpdateTuitionRequest struct {
	Status        string  `json:"status" binding:"required,oneof=paid pending failed refunded"`
	ReceiptNumber *string `json:"receiptNumber,omitempty" binding:"omitempty,max=50"`
}
