package mathdoku

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"
)

// ClassifyBorders measures every internal lattice segment's local darkness
// and splits the resulting scores into thick (cage boundary) and thin
// (intra-cage) with an automatically chosen threshold.
func ClassifyBorders(g *rasterimg.GrayImage, bbox GridBBox, n int, hLines, vLines []int) *InternalBorders {
	crop := g.Crop(bbox.X, bbox.Y, bbox.W, bbox.H)

	type segment struct {
		horizontal bool
		r, c       int
		score      float64
	}
	var segments []segment

	cellH := float64(bbox.H) / float64(n)
	cellW := float64(bbox.W) / float64(n)
	radius := maxInt(2, int(0.02*minFloat(cellH, cellW)))

	// Horizontal borders: between rows r-1/r, at column c.
	for r := 1; r <= n-1; r++ {
		y := hLines[r]
		for c := 0; c <= n-1; c++ {
			x0 := vLines[c]
			x1 := vLines[c+1]
			inset := int(0.25 * float64(x1-x0))
			score := stripDarkness(crop, x0+inset, x1-inset, y-radius, y+radius)
			segments = append(segments, segment{horizontal: true, r: r, c: c, score: score})
		}
	}
	// Vertical borders: between columns c-1/c, at row r.
	for c := 1; c <= n-1; c++ {
		x := vLines[c]
		for r := 0; r <= n-1; r++ {
			y0 := hLines[r]
			y1 := hLines[r+1]
			inset := int(0.25 * float64(y1-y0))
			score := stripDarkness(crop, x-radius, x+radius, y0+inset, y1-inset)
			segments = append(segments, segment{horizontal: false, r: r, c: c, score: score})
		}
	}

	scores := make([]float64, len(segments))
	for i, s := range segments {
		scores[i] = s.score
	}
	threshold := otsuOverFloats(scores)
	if threshold < 3.0 {
		threshold = 3.0
	}

	borders := NewInternalBorders(n)
	for _, s := range segments {
		thick := s.score > threshold
		if s.horizontal {
			borders.HThick[s.r][s.c] = thick
		} else {
			borders.VThick[s.r][s.c] = thick
		}
	}
	return borders
}

// stripDarkness samples the narrow rectangular strip [x0,x1]x[y0,y1] and
// returns 255 - the 10th percentile of its intensities: using a low
// percentile rather than the minimum keeps a single stray dark pixel from
// a nearby label glyph from dominating the score.
func stripDarkness(g *rasterimg.GrayImage, x0, x1, y0, y1 int) float64 {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	var values []uint8
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			values = append(values, g.At(x, y))
		}
	}
	if len(values) == 0 {
		return 0
	}
	return 255 - rasterimg.Percentile(values, 10)
}

// otsuOverFloats finds the threshold maximizing between-class variance
// over an arbitrary set of float64 scores (not necessarily 0..255, unlike
// rasterimg.OtsuThreshold which assumes an 8-bit sample).
func otsuOverFloats(values []float64) float64 {
	distinct := distinctSorted(values)
	if len(distinct) == 0 {
		return 0
	}
	bestVar := -1.0
	bestT := distinct[0]
	for _, t := range distinct {
		var lo, hi []float64
		for _, v := range values {
			if v <= t {
				lo = append(lo, v)
			} else {
				hi = append(hi, v)
			}
		}
		if len(lo) == 0 || len(hi) == 0 {
			continue
		}
		between := float64(len(lo)) * float64(len(hi)) * sqFloat(stat.Mean(hi, nil)-stat.Mean(lo, nil))
		if between > bestVar {
			bestVar = between
			bestT = t
		}
	}
	return bestT
}

func distinctSorted(values []float64) []float64 {
	seen := make(map[float64]bool, len(values))
	var out []float64
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func sqFloat(v float64) float64 { return v * v }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
