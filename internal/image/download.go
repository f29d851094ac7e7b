package imagepkg

import (
	"bytes"
	"context"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	apperrors "github.com/youruser/hashprint/internal/errors"
	"github.com/youruser/hashprint/internal/util"
)

// Fetcher downloads and decodes a remote image.
type Fetcher struct {
	client *util.Client
}

func NewFetcher(client *util.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch downloads url and decodes it, detecting the format from content.
func (f *Fetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	body, err := f.client.GetBytes(ctx, url)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindNetwork, "image.fetch", "download failed", err)
	}
	return DecodeBytes(body)
}

// DecodeBytes decodes an in-memory image, applying EXIF orientation.
func DecodeBytes(b []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDecode, "image.decode", "unrecognized image data", err)
	}
	return img, nil
}

// Open decodes the image file at path.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDecode, "image.open", "cannot open "+path, err)
	}
	return img, nil
}
