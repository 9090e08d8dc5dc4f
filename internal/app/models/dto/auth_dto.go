package dto

import "github.com/bruce184/OCMS/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token alongside the user's public fields.
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType" example:"Bearer"`
	ExpiresIn int          `json:"expiresIn"`
	User      UserResponse `json:"user"`
}

// RegisterRequest represents an admin creating a new user account.
type RegisterRequest struct {
	UserID      string      `json:"userId" binding:"required,max=10"`
	Username    string      `json:"username" binding:"required,max=50"`
	Password    string      `json:"password" binding:"required,min=6"`
	FullName    string      `json:"fullName" binding:"required,max=100"`
	Role        models.Role `json:"role" binding:"required"`
	Email       *string     `json:"email,omitempty" binding:"omitempty,email"`
	DateOfBirth *string     `json:"dateOfBirth,omitempty"`
	Address     *string     `json:"address,omitempty"`
	PhoneNumber *string     `json:"phoneNumber,omitempty" binding:"omitempty,max=15"`
}

// UserResponse represents a user's public fields.
type UserResponse struct {
	UserID      string      `json:"userId"`
	Username    string      `json:"username"`
	FullName    string      `json:"fullName"`
	Role        models.Role `json:"role"`
	Email       *string     `json:"email,omitempty"`
	Address     *string     `json:"address,omitempty"`
	PhoneNumber *string     `json:"phoneNumber,omitempty"`
	CreatedAt   string      `json:"createdAt"`
}

// NewUserResponse maps a user model to its public fields.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Username:    u.Username,
		FullName:    u.FullName,
		Role:        u.Role,
		Email:       u.Email,
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
