// Package auth checks the admin password and throttles attempts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/williambechay/portfolio/internal/backend"
)

// Verdict details returned to clients. They never echo the password.
const (
	DetailNotConfigured = "admin password not configured"
	DetailInvalid       = "invalid password"
	DetailEmpty         = "password is required"
)

// Verifier compares passwords against a bcrypt hash.
type Verifier struct {
	hash []byte
}

// NewVerifier returns a Verifier for hash. An empty hash yields a verifier
// that rejects every attempt. A malformed hash is an error.
func NewVerifier(hash string) (*Verifier, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return &Verifier{}, nil
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	return &Verifier{hash: []byte(hash)}, nil
}

// Configured reports whether a hash is set.
func (v *Verifier) Configured() bool { return v != nil && len(v.hash) > 0 }

// Verify checks password. A mismatch is a verdict, not an error.
func (v *Verifier) Verify(ctx context.Context, password string) (backend.Verification, error) {
	if err := ctx.Err(); err != nil {
		return backend.Verification{}, err
	}
	if !v.Configured() {
		return backend.Verification{Success: false, Error: DetailNotConfigured}, nil
	}
	if password == "" {
		return backend.Verification{Success: false, Error: DetailEmpty}, nil
	}
	err := bcrypt.CompareHashAndPassword(v.hash, []byte(password))
	switch {
	case err == nil:
		return backend.Verification{Success: true}, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return backend.Verification{Success: false, Error: DetailInvalid}, nil
	default:
		return backend.Verification{}, fmt.Errorf("compare admin password: %w", err)
	}
}

// HashPassword returns the bcrypt hash of password at cost (bcrypt.DefaultCost
// when zero).
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
