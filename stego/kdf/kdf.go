package kdf

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyLength is the size in bytes of derived keys.
	KeyLength = 32

	// DefaultIterations is the default PBKDF2 iteration count. It trades
	// roughly 100ms of stretching per call against brute-force resistance
	// and must match between encode and decode for the same image.
	DefaultIterations = 100000
)

// Derive stretches a password into a KeyLength-byte key using
// PBKDF2-HMAC-SHA256. The same password, salt, and iteration count always
// produce the same key. The empty password is valid input. Callers must not
// retain the returned key beyond the operation that needed it.
func Derive(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, KeyLength, sha256.New)
}
