package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// UserStore is the in-memory user repository.
type UserStore struct {
	s *Store
}

// Create inserts the user, rejecting duplicate ids or usernames the way the
// database unique constraints would.
func (r *UserStore) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !user.Role.Valid() {
		return apperrors.ErrInvalidRole
	}
	if _, ok := r.s.users[user.UserID]; ok {
		return apperrors.ErrDuplicateIdentity
	}
	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return apperrors.ErrDuplicateIdentity
		}
	}

	u := *user
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.s.users[u.UserID] = &u
	*user = u
	return nil
}

// GetByID retrieves a user by id.
func (r *UserStore) GetByID(ctx context.Context, userID string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[userID]
	if !ok {
		return nil, nil
	}
	u := *user
	return &u, nil
}

// GetByUsername retrieves a user by username.
func (r *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, nil
}

// List retrieves users, optionally filtered by role, ordered by full name.
func (r *UserStore) List(ctx context.Context, role models.Role) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var users []*models.User
	for _, user := range r.s.users {
		if role != "" && user.Role != role {
			continue
		}
		u := *user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].FullName < users[j].FullName })
	return users, nil
}

// Update applies a partial-field merge to the user. Role is immutable.
func (r *UserStore) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.UserID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	existing.FullName = user.FullName
	existing.Email = user.Email
	existing.DateOfBirth = user.DateOfBirth
	existing.Address = user.Address
	existing.PhoneNumber = user.PhoneNumber
	return nil
}

// Delete removes a user unless enrollments, submissions or payments still
// reference it.
func (r *UserStore) Delete(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	for _, e := range r.s.enrollments {
		if e.StudentID == userID {
			return apperrors.ErrReferentialConflict
		}
	}
	for _, sub := range r.s.submissions {
		if sub.StudentID == userID {
			return apperrors.ErrReferentialConflict
		}
	}
	for _, p := range r.s.tuition {
		if p.StudentID == userID {
			return apperrors.ErrReferentialConflict
		}
	}
	for _, ci := range r.s.classInstructors {
		if ci.InstructorID == userID {
			return apperrors.ErrReferentialConflict
		}
	}
	delete(r.s.users, userID)
	return nil
}

// Exists checks whether a user id or username is already taken.
func (r *UserStore) Exists(ctx context.Context, userID, username string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.users[userID]; ok {
		return true, nil
	}
	for _, user := range r.s.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}
