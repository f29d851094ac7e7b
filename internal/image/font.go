package imagepkg

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	apperrors "github.com/youruser/hashprint/internal/errors"
)

// BundledFont is the TTF compiled into the binary, used when no font path is configured.
var BundledFont = goregular.TTF

// LoadFont parses the TTF/OTF at path, or the bundled font when path is empty.
func LoadFont(path string) (*opentype.Font, error) {
	data := BundledFont
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindFontUnavailable, "font.load", "read "+path, err)
		}
		data = b
	}
	return ParseFont(data)
}

func ParseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindFontUnavailable, "font.parse", "invalid font data", err)
	}
	return f, nil
}

// newFace sizes f so that ascent plus descent spans size pixels.
func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := faceAt(f, size)
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	height := float64(m.Ascent+m.Descent) / 64
	if height <= 0 {
		return face, nil
	}
	face.Close()
	return faceAt(f, size*size/height)
}

func faceAt(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindFontUnavailable, "font.face", "cannot create face", err)
	}
	return face, nil
}
