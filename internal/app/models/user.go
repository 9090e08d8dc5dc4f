package models

import (
	"time"
)

// User defines the user model based on the 'users' table. Every user has
// exactly one role-subtype row (students/lecturers/admins) keyed by the
// same UserID.
type User struct {
	UserID       string     `json:"userId" db:"user_id" example:"STU001"`
	Username     string     `json:"username" db:"username" example:"student1"`
	PasswordHash string     `json:"-" db:"password_hash"` // excluded from JSON
	FullName     string     `json:"fullName" db:"full_name" example:"Alice Johnson"`
	Role         Role       `json:"role" db:"role" example:"student"`
	Email        *string    `json:"email,omitempty" db:"email"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Address      *string    `json:"address,omitempty" db:"address"`
	PhoneNumber  *string    `json:"phoneNumber,omitempty" db:"phone_number"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}
