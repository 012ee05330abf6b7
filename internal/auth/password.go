package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the fixed work factor for newly hashed passwords.
const bcryptCost = 12

// PasswordHasher hashes and verifies passwords. Plaintext is normalized with
// a sha256 hex digest before bcrypt, so inputs longer than bcrypt's 72-byte
// limit hash correctly instead of being silently truncated.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the production cost factor.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// NewPasswordHasherWithCost lets tests lower the work factor. Not for
// production use.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted bcrypt hash of the prehashed plaintext. Two calls
// with the same input produce different hashes.
func (p *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(prehash(plaintext), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. Records written
// before the prehash step was introduced hold bcrypt over the raw plaintext,
// so a failed prehashed comparison falls back to the raw form. A malformed
// stored hash is a verification failure, never an error.
func (p *PasswordHasher) Verify(plaintext, storedHash string) bool {
	hash := []byte(storedHash)
	if err := bcrypt.CompareHashAndPassword(hash, prehash(plaintext)); err == nil {
		return true
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(plaintext)) == nil
}

func prehash(plaintext string) []byte {
	sum := sha256.Sum256([]byte(plaintext))
	return []byte(hex.EncodeToString(sum[:]))
}
