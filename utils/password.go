package utils

import "golang.org/x/crypto/bcrypt"

// Work factor matches what existing stored hashes were generated with.
const bcryptCost = 10

// HashPassword returns the bcrypt hash of the password. Callers must invoke
// this exactly once, when the password field is being set or changed;
// re-saving a document without touching its password must not re-hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares the bcrypt hashed password with its possible plaintext equivalent.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
