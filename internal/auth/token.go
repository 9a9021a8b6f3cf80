package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed structure, unexpected algorithm, or expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried by issued access tokens. The subject is
// the authenticated user id.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies signed, time-limited identity tokens.
// The signing secret and default TTL are fixed at construction.
type TokenIssuer struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewTokenIssuer(secret string, defaultTTL time.Duration) *TokenIssuer {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
	}
}

// Issue signs a token for the subject using the default TTL.
func (i *TokenIssuer) Issue(subjectID string) (string, error) {
	return i.IssueWithTTL(subjectID, i.defaultTTL)
}

// IssueWithTTL signs a token for the subject that expires after ttl.
func (i *TokenIssuer) IssueWithTTL(subjectID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verify checks signature and expiry together and returns the subject id.
// Any failure yields ErrInvalidToken; verification never partially
// succeeds.
func (i *TokenIssuer) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
