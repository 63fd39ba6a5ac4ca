package mathdoku

import (
	"testing"

	"github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"
)

func TestOtsuOverFloatsSeparatesTwoClusters(t *testing.T) {
	values := []float64{1, 1.5, 2, 40, 41, 42}
	th := otsuOverFloats(values)
	if th < 2 || th >= 40 {
		t.Fatalf("threshold %v should fall between the two clusters", th)
	}
}

func TestOtsuOverFloatsEmpty(t *testing.T) {
	if got := otsuOverFloats(nil); got != 0 {
		t.Fatalf("otsuOverFloats(nil) = %v, want 0", got)
	}
}

func TestClassifyBordersDetectsThickOuterLikeSegment(t *testing.T) {
	// A 2x2 grid where the single internal vertical border is painted
	// black (thick, a cage boundary) and the single internal horizontal
	// border is left white (thin, an opening).
	const cell = 40
	g := rasterimg.NewGray(2*cell, 2*cell)
	for y := 0; y < 2*cell; y++ {
		for x := 0; x < 2*cell; x++ {
			g.Set(x, y, 255)
		}
	}
	for y := 0; y < 2*cell; y++ {
		for dx := -2; dx <= 2; dx++ {
			g.Set(cell+dx, y, 0)
		}
	}

	bbox := GridBBox{X: 0, Y: 0, W: 2 * cell, H: 2 * cell}
	lines := []int{0, cell, 2 * cell}
	borders := ClassifyBorders(g, bbox, 2, lines, lines)

	if !borders.VThick[0][1] || !borders.VThick[1][1] {
		t.Fatalf("expected the painted vertical border to be classified thick: %+v", borders.VThick)
	}
	if borders.HThick[1][0] || borders.HThick[1][1] {
		t.Fatalf("expected the unpainted horizontal border to be classified thin: %+v", borders.HThick)
	}
}
