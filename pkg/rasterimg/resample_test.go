package rasterimg

import "testing"

func TestUpscaleFactorDimensions(t *testing.T) {
	src := NewGray(4, 3)
	out := UpscaleFactor(src, 3)
	if out.W != 12 || out.H != 9 {
		t.Fatalf("dims = %dx%d, want 12x9", out.W, out.H)
	}
}

func TestUpscaleFactorClampsBelowOne(t *testing.T) {
	src := NewGray(4, 3)
	out := UpscaleFactor(src, 0)
	if out.W != 4 || out.H != 3 {
		t.Fatalf("factor 0 should behave as factor 1, got %dx%d", out.W, out.H)
	}
}

func TestUpscaleCubicPreservesFlatField(t *testing.T) {
	src := NewGray(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			src.Set(x, y, 100)
		}
	}
	out := UpscaleCubic(src, 9, 9)
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			if v := out.At(x, y); v < 99 || v > 101 {
				t.Fatalf("flat field should upscale flat: at (%d,%d) got %d", x, y, v)
			}
		}
	}
}

func TestUpscaleCubicNilSource(t *testing.T) {
	out := UpscaleCubic(nil, 5, 5)
	if out.W != 5 || out.H != 5 {
		t.Fatalf("expected blank canvas of requested size for nil source, got %dx%d", out.W, out.H)
	}
}
