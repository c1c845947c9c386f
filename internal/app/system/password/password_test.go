package password_test

import (
	"testing"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/password"
)

// Low cost keeps the test fast; correctness is cost-independent.
func newHasher() *password.Hasher { return password.NewHasher(4) }

func TestHash_NotPlaintext(t *testing.T) {
	h := newHasher()

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "s3cret" {
		t.Error("hash must not equal the plaintext")
	}
	if hash == "" {
		t.Error("hash must not be empty")
	}
}

func TestVerify_Roundtrip(t *testing.T) {
	h := newHasher()

	hash, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if !h.Verify("pw1", hash) {
		t.Error("Verify rejected the correct password")
	}
	if h.Verify("pw2", hash) {
		t.Error("Verify accepted a wrong password")
	}
}

func TestHash_DistinctSalts(t *testing.T) {
	h := newHasher()

	h1, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	h2, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestNewHasher_BadCostFallsBack(t *testing.T) {
	h := password.NewHasher(99)

	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash with fallback cost failed: %v", err)
	}
	if !h.Verify("pw", hash) {
		t.Error("Verify failed after cost fallback")
	}
}
