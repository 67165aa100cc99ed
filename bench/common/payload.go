package common

import (
	"image"
	"math/rand"
)

// messageAlphabet is the character set for generated messages. Plain ASCII
// keeps a message's byte count equal to its requested size.
const messageAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 .,!?"

// PreGenerateMessages creates all messages upfront. This allows benchmarks
// to measure pure codec performance without including data generation time.
func PreGenerateMessages(numMessages, messageSize int) []string {
	messages := make([]string, numMessages)
	for i := range messages {
		messages[i] = RandomMessage(messageSize)
	}
	return messages
}

// RandomMessage returns a printable message of exactly size bytes.
func RandomMessage(size int) string {
	b := make([]byte, size)
	for i := range b {
		b[i] = messageAlphabet[rand.Intn(len(messageAlphabet))]
	}
	return string(b)
}

// CarrierImage returns a gradient raster to hide benchmark payloads in. A
// gradient is closer to a photograph than uniform noise and exercises the
// embedder on varied channel values.
func CarrierImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(x)
			img.Pix[i+1] = uint8(y)
			img.Pix[i+2] = uint8(x + y)
			img.Pix[i+3] = 0xFF
		}
	}
	return img
}
