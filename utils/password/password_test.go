package password_test

import (
	"testing"

	"github.com/nlhsang/chat-account/utils/password"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "password123" {
		t.Fatal("Hash() must not return the plaintext")
	}

	if !password.Verify("password123", hash) {
		t.Fatal("Verify() = false for the original password")
	}
	if password.Verify("wrongpassword", hash) {
		t.Fatal("Verify() = true for a wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := password.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
}
