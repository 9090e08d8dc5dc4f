package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    exp,
		TokenIssuer: "ocms-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	token, expiresIn, err := svc.GenerateToken("STU001")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if expiresIn != 3600 {
		t.Errorf("GenerateToken() expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "STU001" {
		t.Errorf("ValidateToken() userID = %q, want %q", claims.UserID, "STU001")
	}
	if claims.Issuer != "ocms-test" {
		t.Errorf("ValidateToken() issuer = %q, want %q", claims.Issuer, "ocms-test")
	}
}

func TestValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	expiredToken, _, err := newTestService(-time.Minute).GenerateToken("STU001")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	foreignToken, _, err := NewJWTService(JWTConfig{
		SecretKey:   "other-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "ocms-test",
	}).GenerateToken("STU001")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty token", token: "", wantErr: ErrInvalidToken},
		{name: "garbage token", token: "not.a.jwt", wantErr: ErrInvalidToken},
		{name: "wrong secret", token: foreignToken, wantErr: ErrInvalidToken},
		{name: "expired token", token: expiredToken, wantErr: ErrExpiredToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateToken(tt.token); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "empty header", header: "", wantErr: ErrInvalidFormat},
		{name: "missing scheme", header: "abc.def.ghi", wantErr: ErrInvalidFormat},
		{name: "wrong scheme", header: "Basic abc.def.ghi", wantErr: ErrInvalidFormat},
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExtractBearerToken() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
