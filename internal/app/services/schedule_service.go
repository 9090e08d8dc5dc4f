package services

import (
	"context"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// ScheduleService handles room and time-slot placements.
type ScheduleService struct {
	schedules repositories.ScheduleRepository
}

// NewScheduleService creates a new schedule service
func NewScheduleService(schedules repositories.ScheduleRepository) *ScheduleService {
	return &ScheduleService{schedules: schedules}
}

// List returns all schedules, or one class's schedules when classID is set.
func (s *ScheduleService) List(ctx context.Context, classID string) ([]*models.Schedule, error) {
	if classID != "" {
		return s.schedules.ListByClass(ctx, classID)
	}
	return s.schedules.List(ctx)
}

// Get returns one schedule.
func (s *ScheduleService) Get(ctx context.Context, scheduleID string) (*models.Schedule, error) {
	schedule, err := s.schedules.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return schedule, nil
}

// Create places a class in a room at a time slot.
func (s *ScheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest) (*models.Schedule, error) {
	schedule := &models.Schedule{
		ScheduleID: req.ScheduleID,
		ClassID:    req.ClassID,
		Room:       req.Room,
		TimeSlot:   req.TimeSlot,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Update changes a schedule's room and time slot.
func (s *ScheduleService) Update(ctx context.Context, scheduleID string, req *dto.UpdateScheduleRequest) (*models.Schedule, error) {
	schedule, err := s.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if req.Room != nil {
		schedule.Room = *req.Room
	}
	if req.TimeSlot != nil {
		schedule.TimeSlot = *req.TimeSlot
	}
	if err := s.schedules.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Delete removes a schedule without attendance records.
func (s *ScheduleService) Delete(ctx context.Context, scheduleID string) error {
	return s.schedules.Delete(ctx, scheduleID)
}
