package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("Str0ng!Passw0rd")
	if err != nil {
		t.Fatalf("Hash() returned error: %v", err)
	}
	if hash == "" {
		t.Fatal("Hash() returned empty string")
	}
	if hash == "Str0ng!Passw0rd" {
		t.Fatal("Hash() must not return the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected bcrypt format hash, got %q", hash)
	}

	if !hasher.Verify(hash, "Str0ng!Passw0rd") {
		t.Error("Verify() should accept the original password")
	}
	if hasher.Verify(hash, "Str0ng!Passw0rd ") {
		t.Error("Verify() should reject a near-miss password")
	}
	if hasher.Verify(hash, "") {
		t.Error("Verify() should reject an empty password")
	}
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("same-password-1X!")
	if err != nil {
		t.Fatalf("Hash() returned error: %v", err)
	}
	second, err := hasher.Hash("same-password-1X!")
	if err != nil {
		t.Fatalf("Hash() returned error: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ")
	}
	if !hasher.Verify(first, "same-password-1X!") || !hasher.Verify(second, "same-password-1X!") {
		t.Error("both salted hashes should verify the original password")
	}
}

func TestPasswordHasher_VerifyMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	malformed := []string{
		"",
		"not-a-bcrypt-hash",
		"$2a$bad",
		"plaintext-password",
	}

	for _, hash := range malformed {
		if hasher.Verify(hash, "anything") {
			t.Errorf("Verify(%q) should return false, never panic or succeed", hash)
		}
	}
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	tests := []struct {
		name         string
		cost         int
		expectedCost int
	}{
		{name: "below minimum", cost: 1, expectedCost: bcrypt.DefaultCost},
		{name: "above maximum", cost: 99, expectedCost: bcrypt.DefaultCost},
		{name: "within range", cost: bcrypt.MinCost, expectedCost: bcrypt.MinCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewPasswordHasher(tt.cost)
			hash, err := hasher.Hash("Cost-Probe-1!")
			if err != nil {
				t.Fatalf("Hash() returned error: %v", err)
			}
			cost, err := bcrypt.Cost([]byte(hash))
			if err != nil {
				t.Fatalf("could not read cost from hash: %v", err)
			}
			if cost != tt.expectedCost {
				t.Errorf("expected cost %d, got %d", tt.expectedCost, cost)
			}
		})
	}
}
