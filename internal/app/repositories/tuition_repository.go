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

// PostgresTuitionRepository handles database operations for tuition
// payments.
type PostgresTuitionRepository struct {
	db *pgxpool.Pool
}

// NewTuitionRepository creates a new tuition repository
func NewTuitionRepository(pool *pgxpool.Pool) *PostgresTuitionRepository {
	return &PostgresTuitionRepository{db: pool}
}

const tuitionColumns = `payment_id, student_id, semester_code, year, amount, payment_date, payment_method, status, receipt_number`

func scanPayment(row pgx.Row) (*models.TuitionPayment, error) {
	var p models.TuitionPayment
	err := row.Scan(&p.PaymentID, &p.StudentID, &p.SemesterCode, &p.Year,
		&p.Amount, &p.PaymentDate, &p.PaymentMethod, &p.Status, &p.ReceiptNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning tuition payment: %w", err)
	}
	return &p, nil
}

func (r *PostgresTuitionRepository) query(ctx context.Context, suffix string, args ...interface{}) ([]*models.TuitionPayment, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+tuitionColumns+` FROM tuition_payments`+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing tuition payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.TuitionPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// List retrieves all payments, newest first.
func (r *PostgresTuitionRepository) List(ctx context.Context) ([]*models.TuitionPayment, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	return r.query(ctx, ` ORDER BY payment_date DESC, payment_id DESC`)
}

// ListByStudent retrieves one student's payment history, newest first.
func (r *PostgresTuitionRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.TuitionPayment, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	return r.query(ctx, ` WHERE student_id = $1 ORDER BY payment_date DESC, payment_id DESC`, studentID)
}

// Get retrieves a payment by its id.
func (r *PostgresTuitionRepository) Get(ctx context.Context, paymentID int64) (*models.TuitionPayment, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx,
		`SELECT `+tuitionColumns+` FROM tuition_payments WHERE payment_id = $1`, paymentID)
	return scanPayment(row)
}

// Create inserts a payment and fills in its generated id.
func (r *PostgresTuitionRepository) Create(ctx context.Context, payment *models.TuitionPayment) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO tuition_payments (student_id, semester_code, year, amount, payment_method, status, receipt_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING payment_id, payment_date`,
		payment.StudentID, payment.SemesterCode, payment.Year, payment.Amount,
		payment.PaymentMethod, payment.Status, payment.ReceiptNumber).
		Scan(&payment.PaymentID, &payment.PaymentDate)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating tuition payment: %w", err)
	}
	return nil
}

// UpdateStatus changes a payment's status and optionally attaches a receipt
// number.
func (r *PostgresTuitionRepository) UpdateStatus(ctx context.Context, paymentID int64, status models.PaymentStatus, receiptNumber *string) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE tuition_payments
		SET status = $1, receipt_number = COALESCE($2, receipt_number)
		WHERE payment_id = $3`,
		status, receiptNumber, paymentID)
	if err != nil {
		return fmt.Errorf("error updating tuition payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
