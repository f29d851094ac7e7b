package imagepkg

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	apperrors "github.com/youruser/hashprint/internal/errors"
	"github.com/youruser/hashprint/internal/util"
)

// Save encodes img to path in the format implied by its extension.
// The file is written to a temp sibling first and renamed, so path is either
// the complete new image or untouched.
func Save(img image.Image, path string, jpegQuality int) error {
	const op = "image.save"

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return apperrors.Wrap(apperrors.KindStorage, op, "unsupported output extension", err)
	}
	if err := util.EnsureParentDir(path); err != nil {
		return apperrors.Wrap(apperrors.KindStorage, op, "create output directory", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return apperrors.Wrap(apperrors.KindStorage, op, "create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := imaging.Encode(tmp, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		tmp.Close()
		return apperrors.Wrap(apperrors.KindStorage, op, fmt.Sprintf("encode %s", format), err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return apperrors.Wrap(apperrors.KindStorage, op, "set file mode", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrap(apperrors.KindStorage, op, "flush temp file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return apperrors.Wrap(apperrors.KindStorage, op, "move into place", err)
	}
	return nil
}
