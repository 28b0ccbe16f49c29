package service

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// PasswordPolicy abstracts hashing, verification and strength checking
// so handlers and services never touch raw hashing primitives.
type PasswordPolicy interface {
	Hash(raw string) (string, error)
	Verify(raw, hash string) error
	// Check validates password strength; username is available so the
	// policy can reject passwords equal to the account name.
	Check(raw, username string) error
}

// BcryptPolicy is the default policy: bcrypt hashing plus a small set
// of strength rules.
type BcryptPolicy struct {
	MinLength int
}

const defaultMinPasswordLen = 8

var _ PasswordPolicy = (*BcryptPolicy)(nil)

func NewBcryptPolicy(minLength int) *BcryptPolicy {
	if minLength <= 0 {
		minLength = defaultMinPasswordLen
	}
	return &BcryptPolicy{MinLength: minLength}
}

// Hash returns a bcrypt hash of the raw password.
func (p *BcryptPolicy) Hash(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fieldError("password", "password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares a raw password against a stored hash.
func (p *BcryptPolicy) Verify(raw, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
}

// Check enforces the strength rules: minimum length, not entirely
// numeric, not equal to the username.
func (p *BcryptPolicy) Check(raw, username string) error {
	if len(raw) < p.MinLength {
		return fieldError("password", fmt.Sprintf("password must be at least %d characters long", p.MinLength))
	}
	if isAllDigits(raw) {
		return fieldError("password", "password cannot be entirely numeric")
	}
	if username != "" && strings.EqualFold(raw, username) {
		return fieldError("password", "password cannot be the same as the username")
	}
	return nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
