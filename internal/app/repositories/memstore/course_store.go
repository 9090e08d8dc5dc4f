package memstore

import (
	"context"
	"sort"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// CourseStore is the in-memory course repository.
type CourseStore struct {
	s *Store
}

// List retrieves all catalog courses ordered by code.
func (r *CourseStore) List(ctx context.Context) ([]*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var courses []*models.Course
	for _, course := range r.s.courses {
		c := *course
		courses = append(courses, &c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CourseCode < courses[j].CourseCode })
	return courses, nil
}

// Get retrieves a course by its code.
func (r *CourseStore) Get(ctx context.Context, courseCode string) (*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	course, ok := r.s.courses[courseCode]
	if !ok {
		return nil, nil
	}
	c := *course
	return &c, nil
}

// Create inserts a catalog course.
func (r *CourseStore) Create(ctx context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.courses[course.CourseCode]; ok {
		return apperrors.ErrDuplicateKey
	}
	c := *course
	r.s.courses[c.CourseCode] = &c
	return nil
}

// Update applies a partial-field merge to a course.
func (r *CourseStore) Update(ctx context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.courses[course.CourseCode]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	existing.CourseName = course.CourseName
	existing.Credit = course.Credit
	existing.CourseType = course.CourseType
	return nil
}

// Delete removes a course unless classes still reference it.
func (r *CourseStore) Delete(ctx context.Context, courseCode string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.courses[courseCode]; !ok {
		return apperrors.ErrResourceNotFound
	}
	for _, class := range r.s.classes {
		if class.CourseCode == courseCode {
			return apperrors.ErrReferentialConflict
		}
	}
	delete(r.s.courses, courseCode)
	return nil
}

// SemesterStore is the in-memory semester repository.
type SemesterStore struct {
	s *Store
}

// List retrieves all semesters, newest year first.
func (r *SemesterStore) List(ctx context.Context) ([]*models.Semester, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var semesters []*models.Semester
	for _, semester := range r.s.semesters {
		sem := *semester
		semesters = append(semesters, &sem)
	}
	sort.Slice(semesters, func(i, j int) bool {
		if semesters[i].Year != semesters[j].Year {
			return semesters[i].Year > semesters[j].Year
		}
		return semesters[i].SemesterCode < semesters[j].SemesterCode
	})
	return semesters, nil
}

// Get retrieves a semester by its composite key.
func (r *SemesterStore) Get(ctx context.Context, semesterCode string, year int) (*models.Semester, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	semester, ok := r.s.semesters[semesterKey(semesterCode, year)]
	if !ok {
		return nil, nil
	}
	sem := *semester
	return &sem, nil
}

// Create inserts a semester.
func (r *SemesterStore) Create(ctx context.Context, semester *models.Semester) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := semesterKey(semester.SemesterCode, semester.Year)
	if _, ok := r.s.semesters[key]; ok {
		return apperrors.ErrDuplicateKey
	}
	sem := *semester
	r.s.semesters[key] = &sem
	return nil
}

// Delete removes a semester unless classes still reference it.
func (r *SemesterStore) Delete(ctx context.Context, semesterCode string, year int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := semesterKey(semesterCode, year)
	if _, ok := r.s.semesters[key]; !ok {
		return apperrors.ErrResourceNotFound
	}
	for _, class := range r.s.classes {
		if class.SemesterCode == semesterCode && class.Year == year {
			return apperrors.ErrReferentialConflict
		}
	}
	delete(r.s.semesters, key)
	return nil
}
