package rasterimg

import "testing"

func maskFromRows(rows []string) *BinaryMask {
	h := len(rows)
	w := len(rows[0])
	m := NewMask(w, h)
	for y, row := range rows {
		for x, ch := range row {
			m.Set(x, y, ch == '#')
		}
	}
	return m
}

func TestOpenRemovesIsolatedSpeck(t *testing.T) {
	m := maskFromRows([]string{
		"....",
		"..#.",
		"....",
		"....",
	})
	out := Open(m, 3, 3)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if out.Get(x, y) {
				t.Fatalf("expected Open to erase isolated speck at (%d,%d)", x, y)
			}
		}
	}
}

func TestCloseFillsSmallGap(t *testing.T) {
	m := maskFromRows([]string{
		"#####",
		"###.#",
		"#####",
	})
	out := Close(m, 3, 3)
	if !out.Get(3, 1) {
		t.Fatalf("expected Close to fill the single-pixel gap at (3,1)")
	}
}

func TestOrUnion(t *testing.T) {
	a := maskFromRows([]string{"#."})
	b := maskFromRows([]string{".#"})
	out := Or(a, b)
	if !out.Get(0, 0) || !out.Get(1, 0) {
		t.Fatalf("expected Or to set both pixels")
	}
}
