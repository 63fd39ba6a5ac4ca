// Package synth renders a mathdoku.PuzzleSpec back into a grid image. It
// exists to drive round-trip tests: render a known puzzle, run it back
// through the recognition pipeline, and check that the two specs match.
package synth

import (
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/valyala/fastrand"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mlnoga/mathdoku-ocr/pkg/mathdoku"
)

// Options controls the geometry of a rendered grid.
type Options struct {
	CellPx      int // side length of one cell, in pixels
	Margin      int // white margin around the grid
	ThinBorder  int // pixel thickness of a non-cage-boundary line
	ThickBorder int // pixel thickness of a cage-boundary line
	JitterPx    int // max random per-line offset applied to internal gridlines, 0=off
	Seed        uint32
}

// DefaultOptions renders comfortably-sized cells for a clean OCR pass.
func DefaultOptions() Options {
	return Options{CellPx: 80, Margin: 20, ThinBorder: 1, ThickBorder: 4}
}

// jitter returns a per-line pixel offset in [-opt.JitterPx, opt.JitterPx],
// used to generate non-perfectly-aligned fixtures that still round-trip.
// Only needs to be fast and seedable, not cryptographically strong.
func jitter(rng *fastrand.RNG, maxPx int) int {
	if maxPx <= 0 {
		return 0
	}
	return int(rng.Uint32n(uint32(2*maxPx+1))) - maxPx
}

// Render draws spec as a black-on-white grid image: an outer frame, thin
// internal gridlines, thick cage-boundary lines, and each cage's label
// ("<value><op>") in its top-left cell.
func Render(spec mathdoku.PuzzleSpec, opt Options) *image.Gray {
	n := spec.Size
	side := n*opt.CellPx + 2*opt.Margin
	img := image.NewGray(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	cageOf := make([][]int, n)
	for r := range cageOf {
		cageOf[r] = make([]int, n)
	}
	for ci, cage := range spec.Cages {
		for _, cell := range cage.Cells {
			cageOf[cell.R][cell.C] = ci
		}
	}

	lineAt := func(x0, y0, x1, y1, thickness int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if x >= 0 && x < side && y >= 0 && y < side {
					img.SetGray(x, y, color.Gray{Y: 0})
				}
			}
		}
		_ = thickness
	}

	gx := func(c int) int { return opt.Margin + c*opt.CellPx }
	gy := func(r int) int { return opt.Margin + r*opt.CellPx }

	rng := &fastrand.RNG{}
	if opt.Seed != 0 {
		rng.Seed(opt.Seed)
	}

	// Outer frame, always thick.
	t := opt.ThickBorder
	lineAt(gx(0)-t/2, gy(0)-t/2, gx(n)+t/2, gy(0)+t/2, t)
	lineAt(gx(0)-t/2, gy(n)-t/2, gx(n)+t/2, gy(n)+t/2, t)
	lineAt(gx(0)-t/2, gy(0)-t/2, gx(0)+t/2, gy(n)+t/2, t)
	lineAt(gx(n)-t/2, gy(0)-t/2, gx(n)+t/2, gy(n)+t/2, t)

	// Internal horizontal segments: thick when they separate two cages.
	for r := 1; r < n; r++ {
		j := jitter(rng, opt.JitterPx)
		for c := 0; c < n; c++ {
			th := opt.ThinBorder
			if cageOf[r-1][c] != cageOf[r][c] {
				th = opt.ThickBorder
			}
			lineAt(gx(c)-th/2, gy(r)+j-th/2, gx(c+1)+th/2, gy(r)+j+th/2, th)
		}
	}
	// Internal vertical segments.
	for c := 1; c < n; c++ {
		j := jitter(rng, opt.JitterPx)
		for r := 0; r < n; r++ {
			th := opt.ThinBorder
			if cageOf[r][c-1] != cageOf[r][c] {
				th = opt.ThickBorder
			}
			lineAt(gx(c)+j-th/2, gy(r)-th/2, gx(c)+j+th/2, gy(r+1)+th/2, th)
		}
	}

	for _, cage := range spec.Cages {
		tl := cage.Cells[0]
		label := cage.Value.Raw
		if cage.Value.Known {
			label = itoa(cage.Value.Int)
		}
		label += cage.Op.Glyph()
		drawLabel(img, gx(tl.C)+4, gy(tl.R)+2, label)
	}

	return img
}

func drawLabel(img *image.Gray, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+basicfont.Face7x13.Height),
	}
	d.DrawString(text)
}

// RenderCageOverlay renders spec on a canvas with the same geometry as
// Render, filling every cell with a distinct, perceptually well-separated
// color per cage. It draws no gridlines and no labels, only the cell fills
// inside a white margin, so a human reviewing a misclassified grid can see
// cage membership at a glance instead of reading raw thick/thin lines.
// Hues are spaced evenly around the wheel and lifted to a fixed lightness/
// chroma via HCL, so adjacent cages never land on perceptually similar
// colors the way evenly-spaced RGB hues can.
func RenderCageOverlay(spec mathdoku.PuzzleSpec, opt Options) *image.NRGBA {
	n := spec.Size
	side := n*opt.CellPx + 2*opt.Margin
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	cageOf := make([][]int, n)
	for r := range cageOf {
		cageOf[r] = make([]int, n)
	}
	for ci, cage := range spec.Cages {
		for _, cell := range cage.Cells {
			cageOf[cell.R][cell.C] = ci
		}
	}

	numCages := len(spec.Cages)
	cageColor := make([]color.NRGBA, numCages)
	for ci := range cageColor {
		hue := 360 * float64(ci) / float64(maxInt(numCages, 1))
		c := colorful.Hcl(hue, 0.55, 0.78).Clamped()
		r, g, b := c.RGB255()
		cageColor[ci] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}

	gx := func(c int) int { return opt.Margin + c*opt.CellPx }
	gy := func(r int) int { return opt.Margin + r*opt.CellPx }
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			fill := cageColor[cageOf[r][c]]
			for y := gy(r); y < gy(r+1); y++ {
				for x := gx(c); x < gx(c+1); x++ {
					img.SetNRGBA(x, y, fill)
				}
			}
		}
	}
	return img
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
