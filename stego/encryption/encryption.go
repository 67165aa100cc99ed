package encryption

import (
	"github.com/google/tink/go/aead/subtle"
	"github.com/pkg/errors"
)

const (
	// KeyLength is the key size in bytes required by Seal and Open.
	// 32 bytes selects AES-256.
	KeyLength = 32

	// NonceLength is the size in bytes of the random nonce prepended to
	// every sealed payload.
	NonceLength = subtle.AESGCMIVSize

	// TagLength is the size in bytes of the authentication tag appended to
	// every sealed payload.
	TagLength = subtle.AESGCMTagSize

	// Overhead is the number of bytes Seal adds on top of the plaintext.
	Overhead = NonceLength + TagLength
)

// ErrAuthentication is returned by Open when the payload cannot be
// authenticated. A wrong key, a truncated payload, and tampered bytes are
// deliberately indistinguishable.
var ErrAuthentication = errors.New("authentication failed: wrong password or corrupted data")

// Seal encrypts plaintext with AES-256-GCM under the given key. A fresh
// random nonce is generated for every call, so sealing the same plaintext
// twice yields different outputs. The sealed payload has the layout:
//
//	|  byte 0 .. 11  |  byte 12 .. (n+11)  |  last 16 bytes  |
//	|----------------|---------------------|-----------------|
//	|     nonce      |      ciphertext     |     GCM tag     |
func Seal(key, plaintext []byte) ([]byte, error) {
	gcm, err := newCipher(key)
	if err != nil {
		return nil, err
	}
	sealed, err := gcm.Encrypt(plaintext, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt payload")
	}
	return sealed, nil
}

// Open authenticates and decrypts a payload produced by Seal. Every failure
// mode maps to ErrAuthentication so callers cannot build a decryption oracle
// out of the error message.
func Open(key, sealed []byte) ([]byte, error) {
	gcm, err := newCipher(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Decrypt(sealed, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

// newCipher rejects any key that does not select AES-256. Tink would also
// accept an AES-128 key, which is not part of this package's contract.
func newCipher(key []byte) (*subtle.AESGCM, error) {
	if len(key) != KeyLength {
		return nil, errors.Errorf("invalid key size: expected %d bytes, got %d", KeyLength, len(key))
	}
	gcm, err := subtle.NewAESGCM(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize cipher")
	}
	return gcm, nil
}
