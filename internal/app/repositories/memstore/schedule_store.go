package memstore

import (
	"context"
	"sort"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// ScheduleStore is the in-memory schedule repository.
type ScheduleStore struct {
	s *Store
}

func (r *ScheduleStore) collect(keep func(*models.Schedule) bool) []*models.Schedule {
	var schedules []*models.Schedule
	for _, schedule := range r.s.schedules {
		if !keep(schedule) {
			continue
		}
		sched := *schedule
		schedules = append(schedules, &sched)
	}
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].ScheduleID < schedules[j].ScheduleID })
	return schedules
}

// List retrieves all schedules.
func (r *ScheduleStore) List(ctx context.Context) ([]*models.Schedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(*models.Schedule) bool { return true }), nil
}

// ListByClass retrieves the schedules of one class.
func (r *ScheduleStore) ListByClass(ctx context.Context, classID string) ([]*models.Schedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(s *models.Schedule) bool { return s.ClassID == classID }), nil
}

// ListByStudent retrieves the schedules of every class the student is
// actively enrolled in.
func (r *ScheduleStore) ListByStudent(ctx context.Context, studentID string) ([]*models.Schedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	active := make(map[string]bool)
	for _, e := range r.s.enrollments {
		if e.StudentID == studentID && e.Active() {
			active[e.ClassID] = true
		}
	}
	return r.collect(func(s *models.Schedule) bool { return active[s.ClassID] }), nil
}

// Get retrieves a schedule by its id.
func (r *ScheduleStore) Get(ctx context.Context, scheduleID string) (*models.Schedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	schedule, ok := r.s.schedules[scheduleID]
	if !ok {
		return nil, nil
	}
	sched := *schedule
	return &sched, nil
}

// Create inserts a schedule. The referenced class must exist.
func (r *ScheduleStore) Create(ctx context.Context, schedule *models.Schedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.schedules[schedule.ScheduleID]; ok {
		return apperrors.ErrDuplicateKey
	}
	if _, ok := r.s.classes[schedule.ClassID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	sched := *schedule
	r.s.schedules[sched.ScheduleID] = &sched
	return nil
}

// Update changes a schedule's room and time slot.
func (r *ScheduleStore) Update(ctx context.Context, schedule *models.Schedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.schedules[schedule.ScheduleID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	existing.Room = schedule.Room
	existing.TimeSlot = schedule.TimeSlot
	return nil
}

// Delete removes a schedule unless attendance records still reference it.
func (r *ScheduleStore) Delete(ctx context.Context, scheduleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.schedules[scheduleID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	for _, record := range r.s.attendance {
		if record.ScheduleID == scheduleID {
			return apperrors.ErrReferentialConflict
		}
	}
	delete(r.s.schedules, scheduleID)
	return nil
}
