package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPasswordAndVerify(t *testing.T) {
	password := "offside-trap-2026"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if hash == "" || hash == password {
		t.Fatalf("unexpected hash %q", hash)
	}

	if !VerifyPassword(hash, password) {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword(hash, "offside-trap-2025") {
		t.Fatal("expected password mismatch to fail")
	}
}

func TestHashPasswordRejectsBadLengths(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     error
	}{
		{name: "too short", password: "short", want: ErrPasswordTooShort},
		{name: "too long", password: strings.Repeat("a", 73), want: ErrPasswordTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := HashPassword(tc.password); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestVerifyPasswordWithInvalidHash(t *testing.T) {
	if VerifyPassword("not-a-valid-hash", "password") {
		t.Fatal("expected invalid hash to fail verification")
	}
}
