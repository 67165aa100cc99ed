package lsb

import (
	"image"

	"github.com/pkg/errors"
)

// channelsPerPixel is the number of payload-bearing channels per pixel. The
// low bit of each of R, G, and B carries one payload bit. Alpha is never
// touched so transparency survives a round trip exactly.
const channelsPerPixel = 3

// PixelStream provides ordered access to the payload bits of a raster:
// pixels in row-major order and channels R, G, B within each pixel. Payload
// bytes are consumed and produced most significant bit first.
type PixelStream struct {
	img *image.NRGBA
}

// NewPixelStream returns a PixelStream over the given raster. The raster is
// shared, not copied, so Embed mutates the caller's image.
func NewPixelStream(img *image.NRGBA) *PixelStream {
	return &PixelStream{img: img}
}

// Capacity returns the number of payload bits the raster can carry.
func (s *PixelStream) Capacity() uint64 {
	bounds := s.img.Bounds()
	return uint64(bounds.Dx()) * uint64(bounds.Dy()) * channelsPerPixel
}

// Embed writes data into the low bits of the raster. If the payload does not
// fit, the raster is left completely untouched.
func (s *PixelStream) Embed(data []byte) error {
	need := uint64(len(data)) * 8
	if capacity := s.Capacity(); need > capacity {
		return errors.Errorf("payload of %d bits exceeds image capacity of %d bits", need, capacity)
	}
	for i := uint64(0); i < need; i++ {
		p := s.channel(i)
		if bit := (data[i/8] >> (7 - i%8)) & 1; bit == 1 {
			*p |= 1
		} else {
			*p &^= 1
		}
	}
	return nil
}

// Extract reads count bits starting at the given bit offset and packs them
// into bytes, most significant bit first. The final byte is zero-padded when
// count is not a multiple of eight.
func (s *PixelStream) Extract(offset, count uint64) ([]byte, error) {
	if end := offset + count; end > s.Capacity() || end < offset {
		return nil, errors.Errorf("extraction of %d bits at offset %d exceeds image capacity of %d bits",
			count, offset, s.Capacity())
	}
	out := make([]byte, (count+7)/8)
	for i := uint64(0); i < count; i++ {
		if *s.channel(offset+i)&1 == 1 {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	return out, nil
}

// channel returns a pointer to the raster byte holding payload bit i.
func (s *PixelStream) channel(i uint64) *uint8 {
	var (
		bounds = s.img.Bounds()
		pixel  = i / channelsPerPixel
		width  = uint64(bounds.Dx())
		x      = bounds.Min.X + int(pixel%width)
		y      = bounds.Min.Y + int(pixel/width)
	)
	return &s.img.Pix[s.img.PixOffset(x, y)+int(i%channelsPerPixel)]
}
