package utils

import "golang.org/x/crypto/bcrypt"

// HashAnalystPassword hashes a plaintext password for storage. Never store plaintext.
func HashAnalystPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckAnalystPassword returns nil if plain matches the stored bcrypt hash.
func CheckAnalystPassword(plain, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
