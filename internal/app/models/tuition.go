package models

import "time"

// TuitionPayment records one tuition payment by a student for a semester.
type TuitionPayment struct {
	PaymentID     int64         `json:"paymentId" db:"payment_id"`
	StudentID     string        `json:"studentId" db:"student_id"`
	SemesterCode  string        `json:"semesterCode" db:"semester_code"`
	Year          int           `json:"year" db:"year"`
	Amount        float64       `json:"amount" db:"amount"`
	PaymentDate   time.Time     `json:"paymentDate" db:"payment_date"`
	PaymentMethod string        `json:"paymentMethod" db:"payment_method"`
	Status        PaymentStatus `json:"status" db:"status"`
	ReceiptNumber *string       `json:"receiptNumber,omitempty" db:"receipt_number"`
}
