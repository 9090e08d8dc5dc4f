package memstore

import (
	"context"
	"sort"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// ClassStore is the in-memory class repository.
type ClassStore struct {
	s *Store
}

func (r *ClassStore) collect(keep func(*models.Class) bool) []*models.Class {
	var classes []*models.Class
	for _, class := range r.s.classes {
		if !keep(class) {
			continue
		}
		c := *class
		c.CourseName = r.s.courseNameForClass(c.ClassID)
		classes = append(classes, &c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ClassID < classes[j].ClassID })
	return classes
}

// List retrieves all class offerings with their course names.
func (r *ClassStore) List(ctx context.Context) ([]*models.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(*models.Class) bool { return true }), nil
}

// ListByCourse retrieves all offerings of one catalog course.
func (r *ClassStore) ListByCourse(ctx context.Context, courseCode string) ([]*models.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(c *models.Class) bool { return c.CourseCode == courseCode }), nil
}

// ListByInstructor retrieves the classes an instructor is assigned to.
func (r *ClassStore) ListByInstructor(ctx context.Context, instructorID string) ([]*models.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	assigned := make(map[string]bool)
	for _, ci := range r.s.classInstructors {
		if ci.InstructorID == instructorID {
			assigned[ci.ClassID] = true
		}
	}
	return r.collect(func(c *models.Class) bool { return assigned[c.ClassID] }), nil
}

// Get retrieves a class by its id.
func (r *ClassStore) Get(ctx context.Context, classID string) (*models.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	class, ok := r.s.classes[classID]
	if !ok {
		return nil, nil
	}
	c := *class
	c.CourseName = r.s.courseNameForClass(c.ClassID)
	return &c, nil
}

// Create inserts a class offering with an empty roster. The referenced
// course and semester must exist.
func (r *ClassStore) Create(ctx context.Context, class *models.Class) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.classes[class.ClassID]; ok {
		return apperrors.ErrDuplicateKey
	}
	if _, ok := r.s.courses[class.CourseCode]; !ok {
		return apperrors.ErrResourceNotFound
	}
	if _, ok := r.s.semesters[semesterKey(class.SemesterCode, class.Year)]; !ok {
		return apperrors.ErrResourceNotFound
	}
	c := *class
	c.CurrentEnrollment = 0
	r.s.classes[c.ClassID] = &c
	return nil
}

// Update changes a class's capacity.
func (r *ClassStore) Update(ctx context.Context, class *models.Class) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.classes[class.ClassID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	existing.Capacity = class.Capacity
	return nil
}

// Delete removes a class unless enrollments or schedules still reference it.
func (r *ClassStore) Delete(ctx context.Context, classID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.classes[classID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	for _, e := range r.s.enrollments {
		if e.ClassID == classID {
			return apperrors.ErrReferentialConflict
		}
	}
	for _, sched := range r.s.schedules {
		if sched.ClassID == classID {
			return apperrors.ErrReferentialConflict
		}
	}
	for key, ci := range r.s.classInstructors {
		if ci.ClassID == classID {
			delete(r.s.classInstructors, key)
		}
	}
	delete(r.s.classes, classID)
	return nil
}

// AssignInstructor attaches a lecturer to a class, overwriting the role if
// the pair already exists.
func (r *ClassStore) AssignInstructor(ctx context.Context, ci *models.ClassInstructor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.classes[ci.ClassID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	if _, ok := r.s.users[ci.InstructorID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	assignment := *ci
	r.s.classInstructors[pairKey(ci.ClassID, ci.InstructorID)] = &assignment
	return nil
}
