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

// PostgresUserRepository handles database operations for users and their
// role-subtype rows.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: pool}
}

const userColumns = `user_id, username, password_hash, full_name, role, email, date_of_birth, address, phone_number, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.Role,
		&user.Email,
		&user.DateOfBirth,
		&user.Address,
		&user.PhoneNumber,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &user, nil
}

// Create inserts the user row and the matching role-subtype row in one
// transaction so a failed subtype insert leaves no orphan user.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (user_id, username, password_hash, full_name, role, email, date_of_birth, address, phone_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			user.UserID, user.Username, user.PasswordHash, user.FullName, user.Role,
			user.Email, user.DateOfBirth, user.Address, user.PhoneNumber,
		)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrDuplicateIdentity
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		var subtypeQuery string
		switch user.Role {
		case models.RoleStudent:
			subtypeQuery = `INSERT INTO students (student_id) VALUES ($1)`
		case models.RoleLecturer:
			subtypeQuery = `INSERT INTO lecturers (lecturer_id) VALUES ($1)`
		case models.RoleAdmin:
			subtypeQuery = `INSERT INTO admins (admin_id) VALUES ($1)`
		default:
			return apperrors.ErrInvalidRole
		}

		if _, err := tx.Exec(ctx, subtypeQuery, user.UserID); err != nil {
			return fmt.Errorf("error creating role subtype row: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a user by id.
func (r *PostgresUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	return scanUser(row)
}

// GetByUsername retrieves a user by username.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// List retrieves users, optionally filtered by role.
func (r *PostgresUserRepository) List(ctx context.Context, role models.Role) ([]*models.User, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY full_name`
	args := []interface{}{}
	if role != "" {
		query = `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY full_name`
		args = append(args, role)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Update applies a partial-field merge to the user row. Role is immutable
// after creation and is not written here.
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET full_name = $1, email = $2, date_of_birth = $3, address = $4, phone_number = $5
		WHERE user_id = $6`,
		user.FullName, user.Email, user.DateOfBirth, user.Address, user.PhoneNumber, user.UserID,
	)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes the user and its subtype row. Users still referenced by
// enrollments, submissions or payments cannot be deleted.
func (r *PostgresUserRepository) Delete(ctx context.Context, userID string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, q := range []string{
			`DELETE FROM students WHERE student_id = $1`,
			`DELETE FROM lecturers WHERE lecturer_id = $1`,
			`DELETE FROM admins WHERE admin_id = $1`,
		} {
			if _, err := tx.Exec(ctx, q, userID); err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrReferentialConflict
				}
				return fmt.Errorf("error deleting role subtype row: %w", err)
			}
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrReferentialConflict
			}
			return fmt.Errorf("error deleting user: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrResourceNotFound
		}
		return nil
	})
}

// Exists checks whether a user id or username is already taken.
func (r *PostgresUserRepository) Exists(ctx context.Context, userID, username string) (bool, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1 OR username = $2)`,
		userID, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	return exists, nil
}
