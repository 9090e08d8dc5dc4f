package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "password123" {
		t.Fatal("HashPassword() returned the raw password")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("HashPassword() = %q, want a bcrypt hash", hash)
	}

	if !CheckPassword(hash, "password123") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hash, "password124") {
		t.Error("CheckPassword() accepted a wrong password")
	}
	if CheckPassword("not-a-hash", "password123") {
		t.Error("CheckPassword() accepted a malformed hash")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	h1, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	h2, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if h1 == h2 {
		t.Error("HashPassword() produced identical hashes for two calls")
	}
}
