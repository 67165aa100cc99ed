// Package stego hides encrypted text messages inside the least significant
// bits of raster images and recovers them with the right password.
//
// A hidden message travels as a single binary frame (see the frame package)
// whose ciphertext is sealed with a key derived from the password and a salt
// drawn fresh for every encode (see the kdf and encryption packages). The
// frame's bits are spread over the low bits of the image's R, G, and B
// channels in row-major order (see the lsb package), changing each touched
// channel value by at most one.
package stego

import (
	"crypto/rand"
	"image"
	"io"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/pixelseal/pixelseal/stego/encryption"
	"github.com/pixelseal/pixelseal/stego/frame"
	"github.com/pixelseal/pixelseal/stego/imaging"
	"github.com/pixelseal/pixelseal/stego/kdf"
	"github.com/pixelseal/pixelseal/stego/logger"
	"github.com/pixelseal/pixelseal/stego/lsb"
)

// minEncodeBits is the smallest raster capacity accepted for encoding: room
// for the frame's length field and magic marker. The check runs before any
// key derivation so absurd carriers fail fast.
const minEncodeBits = (frame.LengthSize + frame.MagicSize) * 8

// Codec hides messages in rasters and recovers them. It holds no state
// between calls, so concurrent calls operating on distinct images need no
// locking. Construct with New.
type Codec struct {
	config *Config
	logger logger.Logger

	// rand supplies salt bytes. Production codecs read crypto/rand; tests
	// swap in a deterministic reader.
	rand io.Reader
}

// New creates a Codec with the given configuration. Passing nil is
// equivalent to passing NewDefaultConfig().
func New(config *Config) *Codec {
	if config == nil {
		config = NewDefaultConfig()
	}
	if config.KDFIterations < 1 {
		config.KDFIterations = kdf.DefaultIterations
	}
	if config.OutputFormat == "" {
		config.OutputFormat = imaging.PNG
	}
	l := logger.NewLogger(config.LogLevel)
	if config.LogSilent {
		l.Silent(true)
	}
	return &Codec{
		config: config,
		logger: l,
		rand:   rand.Reader,
	}
}

// Encode hides message inside the given image and returns the modified image
// serialized in the configured output format. The input may be PNG, BMP, or
// JPEG; the output is always lossless. The returned buffer is freshly
// allocated and shares nothing with imageData.
func (c *Codec) Encode(imageData []byte, message, password string) ([]byte, error) {
	img, _, err := imaging.Decode(imageData)
	if err != nil {
		return nil, err
	}
	if err := c.EncodeImage(img, message, password); err != nil {
		return nil, err
	}
	return imaging.Encode(img, c.config.OutputFormat)
}

// EncodeImage hides message inside the raster in place. Every touched byte
// changes by at most one; alpha bytes and channels past the end of the frame
// are not written at all. If the message does not fit, the raster is left
// untouched and the returned CapacityError reports the largest message that
// would fit.
func (c *Codec) EncodeImage(img *image.NRGBA, message, password string) error {
	if len(message) == 0 {
		return ErrEmptyMessage
	}
	stream := lsb.NewPixelStream(img)
	capacity := stream.Capacity()
	if capacity < minEncodeBits {
		return ErrImageTooSmall
	}

	start := time.Now()

	salt := make([]byte, frame.SaltSize)
	if _, err := io.ReadFull(c.rand, salt); err != nil {
		return errors.Wrap(err, "failed to generate salt")
	}

	key := kdf.Derive(password, salt, c.config.KDFIterations)
	sealed, err := encryption.Seal(key, []byte(message))
	if err != nil {
		return err
	}
	payload, err := frame.Build(sealed, salt)
	if err != nil {
		return err
	}

	required := uint64(len(payload)) * 8
	if required > capacity {
		return &CapacityError{
			Capacity:        capacity,
			Required:        required,
			MaxMessageBytes: maxMessageBytes(capacity),
		}
	}
	if err := stream.Embed(payload); err != nil {
		return err
	}

	bounds := img.Bounds()
	c.logger.Debugf("hid %d byte frame in %dx%d raster (%d of %d bits) in %s",
		len(payload), bounds.Dx(), bounds.Dy(), required, capacity, time.Since(start))
	return nil
}

// Decode recovers the hidden message from an encoded image.
func (c *Codec) Decode(imageData []byte, password string) (string, error) {
	img, _, err := imaging.Decode(imageData)
	if err != nil {
		return "", err
	}
	return c.DecodeImage(img, password)
}

// DecodeImage recovers the hidden message from an encoded raster. The raster
// is only read. Failures are typed: ErrBadMagic and ErrTruncated mean the
// image does not carry a recoverable frame, ErrAuthentication means the
// password is wrong or the payload was tampered with, and ErrInvalidText
// means the recovered bytes are not text. No failure is retried.
func (c *Codec) DecodeImage(img *image.NRGBA, password string) (string, error) {
	stream := lsb.NewPixelStream(img)
	capacity := stream.Capacity()
	if capacity < frame.LengthSize*8 {
		return "", frame.ErrTruncated
	}

	start := time.Now()

	field, err := stream.Extract(0, frame.LengthSize*8)
	if err != nil {
		return "", err
	}
	bodyLen, err := frame.BodyLength(field)
	if err != nil {
		return "", err
	}
	if bodyLen == 0 {
		return "", frame.ErrBadMagic
	}
	if uint64(bodyLen)*8 > capacity-frame.LengthSize*8 {
		return "", frame.ErrTruncated
	}

	body, err := stream.Extract(frame.LengthSize*8, uint64(bodyLen)*8)
	if err != nil {
		return "", err
	}
	salt, ciphertext, err := frame.ParseBody(body)
	if err != nil {
		return "", err
	}

	key := kdf.Derive(password, salt, c.config.KDFIterations)
	plaintext, err := encryption.Open(key, ciphertext)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", ErrInvalidText
	}

	bounds := img.Bounds()
	c.logger.Debugf("recovered %d byte frame from %dx%d raster in %s",
		bodyLen+frame.LengthSize, bounds.Dx(), bounds.Dy(), time.Since(start))
	return string(plaintext), nil
}

// MaxMessageSize decodes imageData and reports the size in bytes of the
// largest message it can carry.
func (c *Codec) MaxMessageSize(imageData []byte) (int, error) {
	img, _, err := imaging.Decode(imageData)
	if err != nil {
		return 0, err
	}
	return MaxMessageSize(img), nil
}

// MaxMessageSize returns the size in bytes of the largest message the raster
// can carry once frame and cipher overhead are accounted for.
func MaxMessageSize(img *image.NRGBA) int {
	return maxMessageBytes(lsb.NewPixelStream(img).Capacity())
}

// maxMessageBytes converts a capacity in bits into a maximum message size:
// the bytes that fit, less the frame header and the cipher's nonce and tag.
func maxMessageBytes(capacity uint64) int {
	max := int(capacity/8) - frame.HeaderSize - encryption.Overhead
	if max < 0 {
		return 0
	}
	return max
}
