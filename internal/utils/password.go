package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash for storage at registration and
// password reset. Cost comes from config so tests can use a cheap one.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash.
// Login treats any mismatch the same as an unknown account.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
