package stego

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/pixelseal/pixelseal/stego/encryption"
	"github.com/pixelseal/pixelseal/stego/frame"
)

// Errors the codec hands to its callers. They are discriminated values:
// boundary layers match on them with errors.Is and errors.As rather than by
// inspecting strings.
var (
	// ErrEmptyMessage is returned by Encode when there is no message to
	// hide. It is raised before any cryptographic work happens.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrImageTooSmall is returned by Encode when the carrier cannot hold
	// even a frame header. It is raised before any cryptographic work
	// happens.
	ErrImageTooSmall = errors.New("image is too small to hold a hidden message")

	// ErrInvalidText is returned by Decode when the authenticated payload
	// decrypts to bytes that are not valid UTF-8 text.
	ErrInvalidText = errors.New("hidden payload is not valid text")

	// ErrBadMagic reports an image with no recoverable payload,
	// re-exported from the frame package for callers that only import
	// stego.
	ErrBadMagic = frame.ErrBadMagic

	// ErrTruncated reports a frame announcing more data than its carrier
	// holds, re-exported from the frame package.
	ErrTruncated = frame.ErrTruncated

	// ErrAuthentication reports a wrong password or a tampered payload,
	// deliberately indistinguishable, re-exported from the encryption
	// package.
	ErrAuthentication = encryption.ErrAuthentication
)

// CapacityError is returned by Encode when the framed message does not fit
// in the carrier image. Callers recover by shortening the message to at most
// MaxMessageBytes or by choosing a larger image.
type CapacityError struct {
	// Capacity is the number of payload bits the image can hold.
	Capacity uint64

	// Required is the number of bits the framed message needs.
	Required uint64

	// MaxMessageBytes is the size of the largest message the image can
	// hold once frame and cipher overhead are accounted for.
	MaxMessageBytes int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("message too large for image: it can hide at most %s bytes",
		humanize.Comma(int64(e.MaxMessageBytes)))
}
