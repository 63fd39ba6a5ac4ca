package synth

import (
	"testing"

	"github.com/mlnoga/mathdoku-ocr/pkg/mathdoku"
)

func fourByFourSpec() mathdoku.PuzzleSpec {
	return mathdoku.PuzzleSpec{
		Size:       4,
		Difficulty: "easy",
		Operations: true,
		Cages: []mathdoku.Cage{
			{Cells: []mathdoku.CellId{{R: 0, C: 0}, {R: 0, C: 1}}, Value: mathdoku.KnownValue(7), Op: mathdoku.OpAdd},
			{Cells: []mathdoku.CellId{{R: 0, C: 2}, {R: 0, C: 3}, {R: 1, C: 3}}, Value: mathdoku.KnownValue(6), Op: mathdoku.OpMul},
			{Cells: []mathdoku.CellId{{R: 1, C: 0}, {R: 2, C: 0}}, Value: mathdoku.KnownValue(3), Op: mathdoku.OpSub},
			{Cells: []mathdoku.CellId{{R: 1, C: 1}, {R: 1, C: 2}}, Value: mathdoku.KnownValue(2), Op: mathdoku.OpDiv},
			{Cells: []mathdoku.CellId{{R: 2, C: 1}, {R: 2, C: 2}, {R: 2, C: 3}, {R: 3, C: 3}}, Value: mathdoku.KnownValue(11), Op: mathdoku.OpAdd},
			{Cells: []mathdoku.CellId{{R: 3, C: 0}, {R: 3, C: 1}, {R: 3, C: 2}}, Value: mathdoku.KnownValue(9), Op: mathdoku.OpAdd},
		},
	}
}

func TestRenderProducesExpectedCanvasSize(t *testing.T) {
	spec := fourByFourSpec()
	opt := DefaultOptions()
	img := Render(spec, opt)

	want := spec.Size*opt.CellPx + 2*opt.Margin
	b := img.Bounds()
	if b.Dx() != want || b.Dy() != want {
		t.Fatalf("canvas size = %dx%d, want %dx%d", b.Dx(), b.Dy(), want, want)
	}
}

func TestRenderDrawsThickOuterFrame(t *testing.T) {
	spec := fourByFourSpec()
	opt := DefaultOptions()
	img := Render(spec, opt)

	y := opt.Margin
	for x := opt.Margin; x < opt.Margin+opt.CellPx; x++ {
		if img.GrayAt(x, y).Y != 0 {
			t.Fatalf("expected outer frame pixel at (%d,%d) to be black", x, y)
		}
	}
}

func TestRenderMarksCageBoundaryThicker(t *testing.T) {
	spec := fourByFourSpec()
	opt := Options{CellPx: 80, Margin: 20, ThinBorder: 1, ThickBorder: 6}
	img := Render(spec, opt)

	// Row 0/1 boundary at column 0 separates cage 0 from cage 2: thick.
	boundaryY := opt.Margin + opt.CellPx
	x := opt.Margin + opt.CellPx/2
	blackRun := 0
	for dy := -opt.ThickBorder; dy <= opt.ThickBorder; dy++ {
		if img.GrayAt(x, boundaryY+dy).Y == 0 {
			blackRun++
		}
	}
	if blackRun < opt.ThickBorder {
		t.Fatalf("expected a thick cage boundary around y=%d, got %d black rows", boundaryY, blackRun)
	}
}

func TestRenderCageOverlayAssignsDistinctColorsPerCage(t *testing.T) {
	spec := fourByFourSpec()
	opt := DefaultOptions()
	img := RenderCageOverlay(spec, opt)

	gx := func(c int) int { return opt.Margin + c*opt.CellPx + opt.CellPx/2 }
	gy := func(r int) int { return opt.Margin + r*opt.CellPx + opt.CellPx/2 }

	c0 := img.NRGBAAt(gx(0), gy(0)) // cage 0, cell (0,0)
	c1 := img.NRGBAAt(gx(2), gy(0)) // cage 1, cell (0,2)
	if c0 == c1 {
		t.Fatalf("expected distinct fill colors for different cages, both got %+v", c0)
	}
}

func TestRenderJitterPerturbsInternalLinesDeterministically(t *testing.T) {
	spec := fourByFourSpec()
	opt := Options{CellPx: 80, Margin: 20, ThinBorder: 1, ThickBorder: 4, JitterPx: 6, Seed: 7}

	img1 := Render(spec, opt)
	img2 := Render(spec, opt)
	if img1.Bounds() != img2.Bounds() {
		t.Fatalf("jittered renders should keep the same canvas size")
	}
	for i := range img1.Pix {
		if img1.Pix[i] != img2.Pix[i] {
			t.Fatalf("same seed should reproduce the same jittered render, differed at pixel %d", i)
		}
	}
}

func TestItoaMatchesStrconv(t *testing.T) {
	cases := []int{0, 7, 42, -5, 100}
	want := []string{"0", "7", "42", "-5", "100"}
	for i, c := range cases {
		if got := itoa(c); got != want[i] {
			t.Errorf("itoa(%d) = %q, want %q", c, got, want[i])
		}
	}
}
