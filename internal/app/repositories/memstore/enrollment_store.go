package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// EnrollmentStore is the in-memory enrollment repository. It owns the seat
// counter on classes; the store mutex makes the counter check and the row
// write one atomic step, so the last free seat goes to exactly one caller.
type EnrollmentStore struct {
	s *Store
}

// Enroll occupies a seat.
func (r *EnrollmentStore) Enroll(ctx context.Context, classID, studentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	class, ok := r.s.classes[classID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	if _, ok := r.s.users[studentID]; !ok {
		return apperrors.ErrResourceNotFound
	}

	key := pairKey(classID, studentID)
	if existing, ok := r.s.enrollments[key]; ok && existing.Active() {
		return apperrors.ErrAlreadyEnrolled
	}
	if class.CurrentEnrollment >= class.Capacity {
		return apperrors.ErrClassFull
	}

	class.CurrentEnrollment++
	r.s.enrollments[key] = &models.Enrollment{
		ClassID:    classID,
		StudentID:  studentID,
		Status:     models.EnrollmentEnrolled,
		EnrolledAt: time.Now(),
	}
	return nil
}

// Unenroll releases a seat, floored at zero.
func (r *EnrollmentStore) Unenroll(ctx context.Context, classID, studentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	enrollment, ok := r.s.enrollments[pairKey(classID, studentID)]
	if !ok || !enrollment.Active() {
		return apperrors.ErrNotEnrolled
	}
	enrollment.Status = models.EnrollmentDropped
	if class, ok := r.s.classes[classID]; ok && class.CurrentEnrollment > 0 {
		class.CurrentEnrollment--
	}
	return nil
}

// Get retrieves one enrollment row with its course context.
func (r *EnrollmentStore) Get(ctx context.Context, classID, studentID string) (*models.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	enrollment, ok := r.s.enrollments[pairKey(classID, studentID)]
	if !ok {
		return nil, nil
	}
	e := *enrollment
	r.s.decorateEnrollment(&e)
	return &e, nil
}

func (r *EnrollmentStore) collect(keep func(*models.Enrollment) bool) []*models.Enrollment {
	var enrollments []*models.Enrollment
	for _, enrollment := range r.s.enrollments {
		if !keep(enrollment) {
			continue
		}
		e := *enrollment
		r.s.decorateEnrollment(&e)
		enrollments = append(enrollments, &e)
	}
	sort.Slice(enrollments, func(i, j int) bool {
		if enrollments[i].ClassID != enrollments[j].ClassID {
			return enrollments[i].ClassID < enrollments[j].ClassID
		}
		return enrollments[i].StudentID < enrollments[j].StudentID
	})
	return enrollments
}

// ListByClass retrieves the roster of a class.
func (r *EnrollmentStore) ListByClass(ctx context.Context, classID string) ([]*models.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(e *models.Enrollment) bool { return e.ClassID == classID }), nil
}

// ListByStudent retrieves a student's enrollment history.
func (r *EnrollmentStore) ListByStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(e *models.Enrollment) bool { return e.StudentID == studentID }), nil
}

// SetGrade records a final grade and closes the enrollment.
func (r *EnrollmentStore) SetGrade(ctx context.Context, classID, studentID string, grade float64, status models.EnrollmentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	enrollment, ok := r.s.enrollments[pairKey(classID, studentID)]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	enrollment.Grade = &grade
	enrollment.Status = status
	return nil
}
