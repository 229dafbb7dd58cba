// Package cryptox provides the one-way password hashing primitive used by
// the account services. Hashes are bcrypt digests; verification is
// constant-time inside the bcrypt comparison.
package cryptox

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt digest.
// Any comparison error (including a malformed digest) counts as a mismatch.
func VerifyPassword(plain string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
