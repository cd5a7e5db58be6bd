package sec

import "golang.org/x/crypto/bcrypt"

// HashPassword generates the bcrypt hash for a given password at the default
// cost. It errors if the password is longer than 72 bytes.
func HashPassword[T ~string | ~[]byte](password T) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// ComparePassword returns an error if the provided password does not resolve
// to the given hash.
func ComparePassword[T ~string | ~[]byte](password T, hash []byte) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}
