package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// TuitionStore is the in-memory tuition repository.
type TuitionStore struct {
	s *Store
}

func (r *TuitionStore) collect(keep func(*models.TuitionPayment) bool) []*models.TuitionPayment {
	var payments []*models.TuitionPayment
	for _, payment := range r.s.tuition {
		if !keep(payment) {
			continue
		}
		p := *payment
		payments = append(payments, &p)
	}
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].PaymentDate.Equal(payments[j].PaymentDate) {
			return payments[i].PaymentDate.After(payments[j].PaymentDate)
		}
		return payments[i].PaymentID > payments[j].PaymentID
	})
	return payments
}

// List retrieves all payments, newest first.
func (r *TuitionStore) List(ctx context.Context) ([]*models.TuitionPayment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(*models.TuitionPayment) bool { return true }), nil
}

// ListByStudent retrieves one student's payment history, newest first.
func (r *TuitionStore) ListByStudent(ctx context.Context, studentID string) ([]*models.TuitionPayment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(p *models.TuitionPayment) bool { return p.StudentID == studentID }), nil
}

// Get retrieves a payment by its id.
func (r *TuitionStore) Get(ctx context.Context, paymentID int64) (*models.TuitionPayment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	payment, ok := r.s.tuition[paymentID]
	if !ok {
		return nil, nil
	}
	p := *payment
	return &p, nil
}

// Create inserts a payment and fills in its generated id.
func (r *TuitionStore) Create(ctx context.Context, payment *models.TuitionPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[payment.StudentID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	payment.PaymentID = r.s.nextPaymentID
	r.s.nextPaymentID++
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}
	p := *payment
	r.s.tuition[p.PaymentID] = &p
	return nil
}

// UpdateStatus changes a payment's status and optionally attaches a receipt
// number.
func (r *TuitionStore) UpdateStatus(ctx context.Context, paymentID int64, status models.PaymentStatus, receiptNumber *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	payment, ok := r.s.tuition[paymentID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	payment.Status = status
	if receiptNumber != nil {
		payment.ReceiptNumber = receiptNumber
	}
	return nil
}
