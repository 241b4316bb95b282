package password

import "golang.org/x/crypto/bcrypt"

// Work factor 10 matches bcrypt.DefaultCost; kept explicit so the hashing
// cost is visible at the call site.
const hashCost = 10

// Hash derives a salted one-way hash from the plaintext. The salt is random
// per call, so hashing the same plaintext twice yields different values.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch is a
// false return, never an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
