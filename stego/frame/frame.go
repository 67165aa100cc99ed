package frame

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	// LengthSize is the size in bytes of the length field that leads every
	// frame.
	LengthSize = 4

	// MagicSize is the size in bytes of the magic marker.
	MagicSize = 4

	// SaltSize is the size in bytes of the key-derivation salt carried in
	// every frame.
	SaltSize = 16

	// HeaderSize is the fixed portion of a frame: length field, magic
	// marker, and salt.
	HeaderSize = LengthSize + MagicSize + SaltSize

	// MinBodySize is the smallest legal value of the length field, i.e. a
	// body carrying the magic marker and salt but no ciphertext.
	MinBodySize = MagicSize + SaltSize
)

var (
	// Encoding is the byte order used for frame serialization.
	Encoding = binary.BigEndian

	// magic marks the body of a genuine frame. Bits extracted from an
	// image that was never encoded yield noise here, which is how plain
	// images are told apart from carrier images.
	magic = []byte("STG1")

	// ErrBadMagic is returned when the expected magic marker is absent,
	// meaning the image carries no recoverable payload.
	ErrBadMagic = errors.New("no hidden payload found in image")

	// ErrTruncated is returned when a frame announces more data than its
	// carrier can actually hold.
	ErrTruncated = errors.New("hidden payload is truncated or corrupted")
)

// Build serializes a frame around the given ciphertext and salt.
//
//	|  byte 0 .. 3  |  byte 4 .. 7  |  byte 8 .. 23  |  byte 24 .. (n+23)  |
//	|---------------|---------------|----------------|---------------------|
//	|  body length  |  magic "STG1" |      salt      |      ciphertext     |
//
// The length field is big-endian and counts every byte after itself: magic,
// salt, and ciphertext.
func Build(ciphertext, salt []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, errors.Errorf("invalid salt size: expected %d bytes, got %d", SaltSize, len(salt))
	}
	var (
		buf = make([]byte, HeaderSize+len(ciphertext))
		pos = 0
	)
	Encoding.PutUint32(buf[pos:], uint32(MinBodySize+len(ciphertext)))
	pos += LengthSize
	copy(buf[pos:], magic)
	pos += MagicSize
	copy(buf[pos:], salt)
	pos += SaltSize
	copy(buf[pos:], ciphertext)
	return buf, nil
}

// BodyLength decodes the leading length field of a frame. The result counts
// the magic, salt, and ciphertext bytes that follow the field, allowing the
// caller to extract exactly the remainder of the frame.
func BodyLength(field []byte) (uint32, error) {
	if len(field) < LengthSize {
		return 0, ErrTruncated
	}
	return Encoding.Uint32(field), nil
}

// ParseBody validates a frame body, everything after the length field, and
// splits it into salt and ciphertext. A body too short to hold the header
// fields or one without the magic marker yields ErrBadMagic, since either
// means the carrier never held a frame.
func ParseBody(body []byte) ([]byte, []byte, error) {
	if len(body) < MinBodySize {
		return nil, nil, ErrBadMagic
	}
	if !bytes.Equal(body[:MagicSize], magic) {
		return nil, nil, ErrBadMagic
	}
	var (
		salt       = body[MagicSize : MagicSize+SaltSize]
		ciphertext = body[MagicSize+SaltSize:]
	)
	return salt, ciphertext, nil
}
