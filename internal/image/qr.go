package imagepkg

import (
	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize = 64
	maxQRSize = 2048
)

// QRCodePNG renders text as a QR code PNG of size x size pixels.
// size is clamped to a sane range.
func QRCodePNG(text string, size int) ([]byte, error) {
	if size < minQRSize {
		size = minQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return q.PNG(size)
}
