// Package rasterimg provides the single-channel grayscale raster utilities
// the recognition pipeline is built on: decoding, cropping, upscaling,
// thresholding, morphology, and connected-component extraction.
//
// The working type is a dense 8-bit single-channel matrix (GrayImage) rather
// than image.Image, because every pipeline stage after decode only ever
// reads luminance and a flat []uint8 buffer is cheaper to scan and slice.
package rasterimg

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// GrayImage is a row-major 8-bit grayscale matrix: 0 is dark, 255 is bright.
// Immutable by convention after construction — stages that transform it
// return a new GrayImage rather than mutating in place.
type GrayImage struct {
	W, H int
	Pix  []uint8 // len == W*H, Pix[y*W+x]
}

// NewGray allocates a zeroed w x h image.
func NewGray(w, h int) *GrayImage {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &GrayImage{W: w, H: h, Pix: make([]uint8, w*h)}
}

// At returns the intensity at (x, y), clamping out-of-range coordinates to
// the nearest edge pixel. Clamped sampling keeps border-strip and
// structuring-element code from special-casing edges.
func (g *GrayImage) At(x, y int) uint8 {
	x = clampInt(x, 0, g.W-1)
	y = clampInt(y, 0, g.H-1)
	return g.Pix[y*g.W+x]
}

// Set assigns the intensity at (x, y). No-op if out of bounds.
func (g *GrayImage) Set(x, y int, v uint8) {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return
	}
	g.Pix[y*g.W+x] = v
}

// Clone returns an independent copy.
func (g *GrayImage) Clone() *GrayImage {
	out := NewGray(g.W, g.H)
	copy(out.Pix, g.Pix)
	return out
}

// Crop returns the sub-image [x0,y0)-[x0+w,y0+h), clamped to bounds.
func (g *GrayImage) Crop(x0, y0, w, h int) *GrayImage {
	x0 = clampInt(x0, 0, g.W)
	y0 = clampInt(y0, 0, g.H)
	x1 := clampInt(x0+w, 0, g.W)
	y1 := clampInt(y0+h, 0, g.H)
	out := NewGray(x1-x0, y1-y0)
	for y := y0; y < y1; y++ {
		srcRow := g.Pix[y*g.W+x0 : y*g.W+x1]
		copy(out.Pix[(y-y0)*out.W:(y-y0)*out.W+out.W], srcRow)
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FromImage converts any image.Image to a GrayImage using Rec. 709
// luminance weights.
func FromImage(src image.Image) *GrayImage {
	b := src.Bounds()
	out := NewGray(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bch, _ := src.At(x, y).RGBA()
			// r,g,b are 16-bit; reduce to 8-bit before weighting.
			lum := 0.2126*float64(r>>8) + 0.7152*float64(g>>8) + 0.0722*float64(bch>>8)
			out.Set(x-b.Min.X, y-b.Min.Y, uint8(clampFloat(lum, 0, 255)))
		}
	}
	return out
}

// ToImage converts g to a standard library image.Gray, for handing off to
// an OCR engine or an encoder that expects image.Image.
func (g *GrayImage) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	copy(img.Pix, g.Pix)
	return img
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Decode reads an image file from disk and converts it to grayscale, using
// whichever stdlib image codec (png, jpeg, gif) matches the file's contents.
func Decode(path string) (*GrayImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rasterimg: open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("rasterimg: decode %s: %w", path, err)
	}
	return FromImage(img), nil
}
