package imaging

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/jpeg" // register JPEG decoding
	"image/png"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// Format identifies an image container format. The values match the names
// reported by image.Decode.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	JPEG Format = "jpeg"
)

// ErrLossyFormat is returned when a carrier image is asked to be written in
// a format whose compression would destroy the embedded payload bits.
var ErrLossyFormat = errors.New("lossy image formats cannot carry a hidden payload")

// ParseFormat resolves a user-supplied format name. It accepts the common
// "jpg" spelling for JPEG and is case-insensitive.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return "", errors.Errorf("unknown image format %q", name)
}

// Extension returns the conventional file extension for the format,
// including the leading dot.
func (f Format) Extension() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Lossless reports whether the format preserves every pixel byte exactly.
// Only lossless formats are usable as carrier output.
func (f Format) Lossless() bool {
	return f == PNG || f == BMP
}

// Decode reads a PNG, BMP, or JPEG image and normalizes it into an NRGBA
// raster. The reported Format is the container the bytes were decoded from,
// which callers can use to pick a default output format.
func Decode(data []byte) (*image.NRGBA, Format, error) {
	src, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to decode image")
	}
	return Normalize(src), Format(name), nil
}

// Normalize converts an arbitrary decoded image into a non-premultiplied
// NRGBA raster, the only representation whose channel bytes survive an
// encode and decode round trip bit for bit. An image that is already NRGBA
// is returned as is, sharing its pixel buffer.
func Normalize(src image.Image) *image.NRGBA {
	if img, ok := src.(*image.NRGBA); ok {
		return img
	}
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

// Encode serializes a raster into the given lossless container format.
// JPEG output is refused with ErrLossyFormat.
func Encode(img image.Image, format Format) ([]byte, error) {
	var (
		buf bytes.Buffer
		err error
	)
	switch format {
	case PNG:
		err = png.Encode(&buf, img)
	case BMP:
		err = bmp.Encode(&buf, img)
	case JPEG:
		return nil, ErrLossyFormat
	default:
		return nil, errors.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s image", format)
	}
	return buf.Bytes(), nil
}
