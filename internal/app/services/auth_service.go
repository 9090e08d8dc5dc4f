package services

import (
	"context"
	"time"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/auth"
	"github.com/bruce184/OCMS/internal/pkg/logger"
)

// AuthService handles login, registration and token issuance.
type AuthService struct {
	users      repositories.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service
func NewAuthService(users repositories.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{users: users, jwtService: jwtService}
}

// Authenticate verifies credentials and issues a token. Unknown username and
// wrong password return the same error, so a caller cannot probe which
// usernames exist.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, string, int, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", 0, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.UserID)
	if err != nil {
		return nil, "", 0, err
	}

	logger.Info().Str("userId", user.UserID).Str("role", string(user.Role)).Msg("User logged in")
	return user, token, expiresIn, nil
}

// Register creates a new account. The user row and its role-subtype row are
// written in one step; a failure leaves neither behind.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	taken, err := s.users.Exists(ctx, req.UserID, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateIdentity
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserID:       req.UserID,
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		Email:        req.Email,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, apperrors.ValidationError("dateOfBirth must be in YYYY-MM-DD form")
		}
		user.DateOfBirth = &dob
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("userId", user.UserID).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// GetProfile returns the live user row for a token subject.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return user, nil
}
