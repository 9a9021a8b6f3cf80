package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	subject, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if subject != "user-1" {
		t.Errorf("subject = %q, want %q", subject, "user-1")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	token, err := issuer.IssueWithTTL("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// mutate a handful of positions across header, payload, and signature;
	// the final character is skipped because its low padding bits are not
	// significant in base64url
	for _, pos := range []int{0, len(token) / 3, len(token) / 2, len(token) - 2} {
		mutated := []byte(token)
		if mutated[pos] == 'a' {
			mutated[pos] = 'b'
		} else {
			mutated[pos] = 'a'
		}
		if string(mutated) == token {
			continue
		}
		if _, err := issuer.Verify(string(mutated)); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for mutation at %d, got %v", pos, err)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)
	other := NewTokenIssuer("other-secret", 30*time.Minute)

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for foreign secret, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJub25lIn0..", "x.y"} {
		if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	token, err := issuer.Issue("")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for empty subject, got %v", err)
	}
}
