package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/app/repositories/memstore"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/auth"
)

func newTestRepos() *repositories.Repositories {
	return memstore.NewRepositories(memstore.NewStore())
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "ocms-test",
	})
}

func registerTestUser(t *testing.T, svc *AuthService, userID, username string, role models.Role) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		UserID:   userID,
		Username: username,
		Password: "password123",
		FullName: "Test " + userID,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("Register(%s) error = %v", userID, err)
	}
	return user
}

func TestAuthenticate(t *testing.T) {
	repos := newTestRepos()
	svc := NewAuthService(repos.Users, newTestJWTService())
	registerTestUser(t, svc, "STU001", "student1", models.RoleStudent)

	user, token, expiresIn, err := svc.Authenticate(context.Background(), "student1", "password123")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.UserID != "STU001" {
		t.Errorf("Authenticate() userID = %q, want STU001", user.UserID)
	}
	if token == "" || expiresIn <= 0 {
		t.Errorf("Authenticate() token = %q, expiresIn = %d", token, expiresIn)
	}

	claims, err := newTestJWTService().ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "STU001" {
		t.Errorf("token subject = %q, want STU001", claims.UserID)
	}
}

// A failed login must not reveal whether the username exists, so the
// unknown-user and wrong-password paths return the identical error value.
func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	repos := newTestRepos()
	svc := NewAuthService(repos.Users, newTestJWTService())
	registerTestUser(t, svc, "STU001", "student1", models.RoleStudent)

	_, _, _, unknownErr := svc.Authenticate(context.Background(), "nobody", "password123")
	_, _, _, wrongPwdErr := svc.Authenticate(context.Background(), "student1", "wrong")

	if !errors.Is(unknownErr, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongPwdErr, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPwdErr)
	}
	if unknownErr.Error() != wrongPwdErr.Error() {
		t.Errorf("error messages differ: %q vs %q", unknownErr, wrongPwdErr)
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := NewAuthService(repos.Users, newTestJWTService())
	registerTestUser(t, svc, "STU001", "student1", models.RoleStudent)

	tests := []struct {
		name    string
		req     dto.RegisterRequest
		wantErr error
	}{
		{
			name:    "invalid role",
			req:     dto.RegisterRequest{UserID: "XXX001", Username: "xxx1", Password: "password123", FullName: "X", Role: "superuser"},
			wantErr: apperrors.ErrInvalidRole,
		},
		{
			name:    "duplicate user id",
			req:     dto.RegisterRequest{UserID: "STU001", Username: "fresh", Password: "password123", FullName: "X", Role: models.RoleStudent},
			wantErr: apperrors.ErrDuplicateIdentity,
		},
		{
			name:    "duplicate username",
			req:     dto.RegisterRequest{UserID: "STU099", Username: "student1", Password: "password123", FullName: "X", Role: models.RoleStudent},
			wantErr: apperrors.ErrDuplicateIdentity,
		},
		{
			name:    "malformed date of birth",
			req:     dto.RegisterRequest{UserID: "STU098", Username: "dob1", Password: "password123", FullName: "X", Role: models.RoleStudent, DateOfBirth: ptr("01/02/2000")},
			wantErr: apperrors.ErrValidationFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, &tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
			// A rejected registration leaves no partial account behind.
			if tt.req.UserID != "STU001" {
				user, err := repos.Users.GetByID(ctx, tt.req.UserID)
				if err != nil {
					t.Fatalf("GetByID() error = %v", err)
				}
				if user != nil {
					t.Errorf("rejected registration persisted user %s", tt.req.UserID)
				}
			}
		})
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	repos := newTestRepos()
	svc := NewAuthService(repos.Users, newTestJWTService())
	user := registerTestUser(t, svc, "LEC001", "lecturer1", models.RoleLecturer)

	if user.PasswordHash == "password123" {
		t.Error("Register() stored the raw password")
	}
	if !auth.CheckPassword(user.PasswordHash, "password123") {
		t.Error("stored hash does not match the password")
	}
}

func TestGetProfile(t *testing.T) {
	repos := newTestRepos()
	svc := NewAuthService(repos.Users, newTestJWTService())
	registerTestUser(t, svc, "STU001", "student1", models.RoleStudent)

	user, err := svc.GetProfile(context.Background(), "STU001")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if user.Username != "student1" {
		t.Errorf("GetProfile() username = %q, want student1", user.Username)
	}

	if _, err := svc.GetProfile(context.Background(), "GHOST"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("GetProfile(GHOST) error = %v, want ErrResourceNotFound", err)
	}
}

func ptr[T any](v T) *T { return &v }
