package rasterimg

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// BinaryMask is a dense 0/1 mask, one byte per pixel for simplicity (the
// morphology and connected-component passes below are not performance
// critical at the sizes this tool works with: a puzzle grid is at most a
// few thousand pixels per side).
type BinaryMask struct {
	W, H int
	On   []bool
}

func NewMask(w, h int) *BinaryMask {
	return &BinaryMask{W: w, H: h, On: make([]bool, w*h)}
}

func (m *BinaryMask) Get(x, y int) bool {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return false
	}
	return m.On[y*m.W+x]
}

func (m *BinaryMask) Set(x, y int, v bool) {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return
	}
	m.On[y*m.W+x] = v
}

func (m *BinaryMask) Clone() *BinaryMask {
	out := NewMask(m.W, m.H)
	copy(out.On, m.On)
	return out
}

// OtsuThreshold finds the intensity threshold that maximizes between-class
// variance over an arbitrary 1-D sample of uint8 values. The returned value
// is the first intensity of the bright class, so "v < t" selects exactly the
// dark class. Used by BinarizeOtsu; border-darkness scoring in package
// mathdoku splits its float scores with its own otsuOverFloats.
func OtsuThreshold(values []uint8) uint8 {
	var hist [256]int
	for _, v := range values {
		hist[v]++
	}
	return otsuFromHistogram(hist[:], len(values))
}

func otsuFromHistogram(hist []int, total int) uint8 {
	if total == 0 {
		return 128
	}
	sumAll := 0.0
	for i, c := range hist {
		sumAll += float64(i * c)
	}
	sumB, wB := 0.0, 0
	bestVar, bestT := -1.0, 0
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t * hist[t])
		mB := sumB / float64(wB)
		mF := (sumAll - sumB) / float64(wF)
		between := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar, bestT = between, t
		}
	}
	if bestVar < 0 {
		return uint8(bestT)
	}
	// Intensities <= bestT form the dark class.
	return uint8(bestT + 1)
}

// BinarizeOtsu thresholds g with Otsu's method. If invert is true, pixels
// strictly below the threshold become "on" (dark-on-light foreground,
// THRESH_BINARY_INV in the original); otherwise pixels at or above the
// threshold become "on".
func BinarizeOtsu(g *GrayImage, invert bool) *BinaryMask {
	t := OtsuThreshold(g.Pix)
	out := NewMask(g.W, g.H)
	for i, v := range g.Pix {
		on := v >= t
		if invert {
			on = v < t
		}
		out.On[i] = on
	}
	return out
}

// BinarizeFixed thresholds at a fixed intensity, used by the label
// trim-to-text pass, which binarizes at a hard-coded 160 rather than an
// adaptive or Otsu threshold because label text is reliably darker than
// that regardless of lighting.
func BinarizeFixed(g *GrayImage, thresh uint8, invert bool) *BinaryMask {
	out := NewMask(g.W, g.H)
	for i, v := range g.Pix {
		on := v >= thresh
		if invert {
			on = v < thresh
		}
		out.On[i] = on
	}
	return out
}

// AdaptiveThreshold applies a local-mean threshold over a blockSize x
// blockSize window, offset by C, inverting for dark-on-light: a pixel is
// foreground iff it is darker than its local neighborhood mean by more than
// C. Uses an integral image so the mean over any window is O(1) regardless
// of blockSize.
func AdaptiveThreshold(g *GrayImage, blockSize int, c float64) *BinaryMask {
	if blockSize <= 0 {
		blockSize = 15
	}
	w, h := g.W, g.H
	integ := make([]float64, (w+1)*(h+1))
	for y := 1; y <= h; y++ {
		rowSum := 0.0
		for x := 1; x <= w; x++ {
			rowSum += float64(g.Pix[(y-1)*w+(x-1)])
			integ[y*(w+1)+x] = integ[(y-1)*(w+1)+x] + rowSum
		}
	}
	half := blockSize / 2
	out := NewMask(w, h)
	for y := 0; y < h; y++ {
		y0 := clampInt(y-half, 0, h-1)
		y1 := clampInt(y+half, 0, h-1)
		for x := 0; x < w; x++ {
			x0 := clampInt(x-half, 0, w-1)
			x1 := clampInt(x+half, 0, w-1)
			sx, ex := x0+1, x1+1
			sy, ey := y0+1, y1+1
			area := float64((x1 - x0 + 1) * (y1 - y0 + 1))
			s := integ[ey*(w+1)+ex] - integ[(sy-1)*(w+1)+ex] - integ[ey*(w+1)+(sx-1)] + integ[(sy-1)*(w+1)+(sx-1)]
			mean := s / area
			v := float64(g.Pix[y*w+x])
			out.Set(x, y, v < mean-c)
		}
	}
	return out
}

// Percentile returns the p-th percentile (0..100) of values using linear
// interpolation between closest ranks, matching numpy.percentile's default
// behavior. Delegates the interpolation itself to gonum/stat, which requires
// its sample pre-sorted ascending.
func Percentile(values []uint8, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	// stat.LinInterp interpolates the empirical CDF at rank p*n; remap p so
	// the interpolated rank is numpy's p*(n-1), counted from the first sample.
	n := float64(len(sorted))
	q := ((n-1)*p/100 + 1) / n
	return stat.Quantile(q, stat.LinInterp, sorted, nil)
}
