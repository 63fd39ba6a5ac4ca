package mathdoku

import (
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"
)

// saveGrayPNG writes g to path as a grayscale PNG, creating any missing
// parent directory. Used only from debug sinks, so a failure here is logged
// by the caller rather than propagated as a pipeline error.
func saveGrayPNG(path string, g *rasterimg.GrayImage) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	copy(img.Pix, g.Pix)
	return png.Encode(f, img)
}
