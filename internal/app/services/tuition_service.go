package services

import (
	"context"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/logger"
)

// TuitionService handles tuition payments.
type TuitionService struct {
	tuition repositories.TuitionRepository
	users   repositories.UserRepository
}

// NewTuitionService creates a new tuition service
func NewTuitionService(tuition repositories.TuitionRepository, users repositories.UserRepository) *TuitionService {
	return &TuitionService{tuition: tuition, users: users}
}

// List returns all payments.
func (s *TuitionService) List(ctx context.Context) ([]*models.TuitionPayment, error) {
	return s.tuition.List(ctx)
}

// Get returns one payment.
func (s *TuitionService) Get(ctx context.Context, paymentID int64) (*models.TuitionPayment, error) {
	payment, err := s.tuition.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return payment, nil
}

// Create records a payment for a student. Status defaults to pending.
func (s *TuitionService) Create(ctx context.Context, req *dto.CreateTuitionRequest) (*models.TuitionPayment, error) {
	student, err := s.users.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil || student.Role != models.RoleStudent {
		return nil, apperrors.NotFoundError("student not found")
	}

	payment := &models.TuitionPayment{
		StudentID:     req.StudentID,
		SemesterCode:  req.SemesterCode,
		Year:          req.Year,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentPending,
	}
	if req.Status != "" {
		payment.Status = models.PaymentStatus(req.Status)
	}
	if err := s.tuition.Create(ctx, payment); err != nil {
		return nil, err
	}
	logger.Info().Int64("paymentId", payment.PaymentID).Str("studentId", payment.StudentID).Msg("Tuition payment recorded")
	return payment, nil
}

// UpdateStatus changes a payment's status and optionally attaches a receipt
// number.
func (s *TuitionService) UpdateStatus(ctx context.Context, paymentID int64, req *dto.UpdateTuitionRequest) (*models.TuitionPayment, error) {
	status := models.PaymentStatus(req.Status)
	if !status.Valid() {
		return nil, apperrors.ValidationError("unknown payment status")
	}
	if err := s.tuition.UpdateStatus(ctx, paymentID, status, req.ReceiptNumber); err != nil {
		return nil, err
	}
	return s.Get(ctx, paymentID)
}
