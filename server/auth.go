package server

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Auth verifies the shared sync secret. When a bcrypt hash is configured
// it takes precedence over the plain password; plain comparison is
// constant-time.
type Auth struct {
	password string
	hash     []byte
}

// NewAuth creates an Auth from the configured password and optional
// bcrypt hash.
func NewAuth(password, passwordHash string) *Auth {
	return &Auth{
		password: password,
		hash:     []byte(passwordHash),
	}
}

// Verify reports whether the presented secret matches the configured one.
func (a *Auth) Verify(secret string) bool {
	if len(a.hash) > 0 {
		return bcrypt.CompareHashAndPassword(a.hash, []byte(secret)) == nil
	}
	if a.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.password), []byte(secret)) == 1
}
