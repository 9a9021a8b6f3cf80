package auth

import "testing"

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if !CheckPassword("password123", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("wrong-password", hash) {
		t.Error("expected mismatched password to fail")
	}
	if CheckPassword("password123", "not-a-bcrypt-hash") {
		t.Error("expected malformed hash to fail")
	}
	if CheckPassword("", hash) {
		t.Error("expected empty password to fail")
	}
}
