package mathdoku

import (
	"github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"
)

// LocateGrid finds the puzzle's outer rectangle in the full image, trying
// the line-based strategy first and falling back to a white-region search
// for screenshots whose outer frame is too faint for line detection to
// pick up.
func LocateGrid(ctx *Context, g *rasterimg.GrayImage) (GridBBox, error) {
	if bbox, ok := locateByLines(g); ok {
		ctx.Debugf("grid located by line strategy: %+v", bbox)
		return bbox, nil
	}
	if bbox, ok := locateByWhiteRegion(g); ok {
		ctx.Debugf("grid located by white-region fallback: %+v", bbox)
		return bbox, nil
	}
	return GridBBox{}, ErrGridNotFound
}

func locateByLines(g *rasterimg.GrayImage) (GridBBox, bool) {
	mask := rasterimg.BinarizeOtsu(g, true)

	longSide := minInt(g.H, g.W) / 3
	if longSide < 1 {
		longSide = 1
	}
	horiz := rasterimg.Open(mask, longSide, 1)
	vert := rasterimg.Open(mask, 1, longSide)
	merged := rasterimg.Or(horiz, vert)
	merged = rasterimg.Dilate(merged, 5, 5)
	merged = rasterimg.Dilate(merged, 5, 5)

	return bestGridContour(merged, g.W, g.H)
}

func locateByWhiteRegion(g *rasterimg.GrayImage) (GridBBox, bool) {
	mask := rasterimg.BinarizeFixed(g, 200, false)
	mask = rasterimg.Close(mask, 15, 15)
	return bestGridContour(mask, g.W, g.H)
}

// bestGridContour returns the largest contour in mask passing the grid
// bounding-box invariants: area >= 5% of image area, aspect ratio (min/max
// side) >= 0.70.
func bestGridContour(mask *rasterimg.BinaryMask, imgW, imgH int) (GridBBox, bool) {
	contours := rasterimg.FindComponents(mask)
	minArea := 0.05 * float64(imgW) * float64(imgH)

	var best rasterimg.Contour
	found := false
	for _, c := range contours {
		if float64(c.W*c.H) < minArea {
			continue
		}
		aspect := aspectRatio(c.W, c.H)
		if aspect < 0.70 {
			continue
		}
		if !found || c.Area > best.Area {
			best = c
			found = true
		}
	}
	if !found {
		return GridBBox{}, false
	}
	return GridBBox{X: best.X, Y: best.Y, W: best.W, H: best.H}, true
}

func aspectRatio(w, h int) float64 {
	if w == 0 || h == 0 {
		return 0
	}
	lo, hi := float64(w), float64(h)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo / hi
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
