package auth

import (
	"strings"
	"testing"
)

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("password-123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "password-123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %s", hash)
	}

	if !svc.Verify(hash, "password-123") {
		t.Error("correct password should verify")
	}
	if svc.Verify(hash, "password-124") {
		t.Error("altered password must not verify")
	}
	if svc.Verify(hash, "") {
		t.Error("empty password must not verify")
	}
}

func TestPasswordServiceImpl_HashesAreSalted(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.Hash("password-123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	second, err := svc.Hash("password-123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}
