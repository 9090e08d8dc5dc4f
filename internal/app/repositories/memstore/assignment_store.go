package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// AssignmentStore is the in-memory assignment and submission repository.
type AssignmentStore struct {
	s *Store
}

func sortAssignments(assignments []*models.Assignment) {
	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.AssignmentID < b.AssignmentID
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		case !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
		return a.AssignmentID < b.AssignmentID
	})
}

// ListByClass retrieves the assignments of one class.
func (r *AssignmentStore) ListByClass(ctx context.Context, classID string) ([]*models.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var assignments []*models.Assignment
	for _, assignment := range r.s.assignments {
		if assignment.ClassID != classID {
			continue
		}
		a := *assignment
		assignments = append(assignments, &a)
	}
	sortAssignments(assignments)
	return assignments, nil
}

// ListForStudent joins each assignment of the student's active classes with
// the student's own submission, if any.
func (r *AssignmentStore) ListForStudent(ctx context.Context, studentID string) ([]*models.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	active := make(map[string]bool)
	for _, e := range r.s.enrollments {
		if e.StudentID == studentID && e.Active() {
			active[e.ClassID] = true
		}
	}

	var assignments []*models.Assignment
	for _, assignment := range r.s.assignments {
		if !active[assignment.ClassID] {
			continue
		}
		a := *assignment
		a.CourseName = r.s.courseNameForClass(a.ClassID)
		if sub, ok := r.s.submissions[submissionKey(a.AssignmentID, studentID)]; ok {
			submittedAt := sub.SubmittedAt
			a.SubmittedAt = &submittedAt
			a.Score = sub.Score
		}
		assignments = append(assignments, &a)
	}
	sortAssignments(assignments)
	return assignments, nil
}

// Get retrieves an assignment by its id.
func (r *AssignmentStore) Get(ctx context.Context, assignmentID int64) (*models.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	assignment, ok := r.s.assignments[assignmentID]
	if !ok {
		return nil, nil
	}
	a := *assignment
	return &a, nil
}

// Create inserts an assignment and fills in its generated id.
func (r *AssignmentStore) Create(ctx context.Context, assignment *models.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.classes[assignment.ClassID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	assignment.AssignmentID = r.s.nextAssignmentID
	r.s.nextAssignmentID++
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now()
	}
	a := *assignment
	r.s.assignments[a.AssignmentID] = &a
	return nil
}

// Update applies a partial-field merge to an assignment.
func (r *AssignmentStore) Update(ctx context.Context, assignment *models.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.assignments[assignment.AssignmentID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	existing.Title = assignment.Title
	existing.Description = assignment.Description
	existing.DueDate = assignment.DueDate
	existing.MaxScore = assignment.MaxScore
	return nil
}

// Delete removes an assignment and its submissions.
func (r *AssignmentStore) Delete(ctx context.Context, assignmentID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.assignments[assignmentID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(r.s.assignments, assignmentID)
	for key, sub := range r.s.submissions {
		if sub.AssignmentID == assignmentID {
			delete(r.s.submissions, key)
		}
	}
	return nil
}

// Submit upserts the (assignment, student) submission. A resubmission
// replaces the content and clears any earlier score.
func (r *AssignmentStore) Submit(ctx context.Context, submission *models.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.assignments[submission.AssignmentID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	if _, ok := r.s.users[submission.StudentID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	submission.SubmittedAt = time.Now()
	submission.Score = nil
	sub := *submission
	r.s.submissions[submissionKey(sub.AssignmentID, sub.StudentID)] = &sub
	return nil
}

// GetSubmission retrieves one student's submission for an assignment.
func (r *AssignmentStore) GetSubmission(ctx context.Context, assignmentID int64, studentID string) (*models.Submission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	submission, ok := r.s.submissions[submissionKey(assignmentID, studentID)]
	if !ok {
		return nil, nil
	}
	sub := *submission
	return &sub, nil
}

// ListSubmissions retrieves every submission for an assignment.
func (r *AssignmentStore) ListSubmissions(ctx context.Context, assignmentID int64) ([]*models.Submission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var submissions []*models.Submission
	for _, submission := range r.s.submissions {
		if submission.AssignmentID != assignmentID {
			continue
		}
		sub := *submission
		submissions = append(submissions, &sub)
	}
	sort.Slice(submissions, func(i, j int) bool { return submissions[i].StudentID < submissions[j].StudentID })
	return submissions, nil
}

// ScoreSubmission records a score on an existing submission.
func (r *AssignmentStore) ScoreSubmission(ctx context.Context, assignmentID int64, studentID string, score float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	submission, ok := r.s.submissions[submissionKey(assignmentID, studentID)]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	submission.Score = &score
	return nil
}
