package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func init() {
	SetCost(bcrypt.MinCost)
}

func TestHash_NeverPlaintextAndSalted(t *testing.T) {
	h1, err := Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if h1 == "pw1" || strings.Contains(h1, "pw1") {
		t.Errorf("Hash() leaked plaintext: %q", h1)
	}
	if h1 == h2 {
		t.Error("Hash() should produce different hashes for the same password")
	}
}

func TestVerify(t *testing.T) {
	hash, err := Hash("testpassword123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
	}{
		{"correct password", hash, "testpassword123", nil},
		{"wrong password", hash, "wrongpassword", ErrMismatch},
		{"empty password", hash, "", ErrMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Verify(tt.password, tt.hash); !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	err := Verify("pw", "not-a-bcrypt-hash")
	if err == nil {
		t.Fatal("Verify() expected error for malformed hash")
	}
	if errors.Is(err, ErrMismatch) {
		t.Error("Verify() malformed hash should not be reported as mismatch")
	}
}

func TestHash_TooLong(t *testing.T) {
	_, err := Hash(strings.Repeat("a", 73))
	if !errors.Is(err, ErrTooLong) {
		t.Errorf("Hash() error = %v, want ErrTooLong", err)
	}
}

func TestSetCost_OutOfRange(t *testing.T) {
	defer SetCost(bcrypt.MinCost)

	SetCost(100)
	if cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want default %d", cost, bcrypt.DefaultCost)
	}
	SetCost(bcrypt.MinCost)
	if cost != bcrypt.MinCost {
		t.Errorf("cost = %d, want %d", cost, bcrypt.MinCost)
	}
}
