package mathdoku

import "testing"

// fourByFourBorders returns the InternalBorders for a 4x4 grid with six
// cages: three dominoes, an L-shaped triple, a straight triple, and a
// four-cell cage.
func fourByFourBorders() *InternalBorders {
	b := NewInternalBorders(4)
	// Cage A: (0,0)-(0,1) — open vertical border between columns 0/1, row 0.
	b.VThick[0][1] = false
	// Cage B: (0,2)-(0,3)-(1,3) — open (0,2)-(0,3) and (0,3)-(1,3).
	b.VThick[0][3] = false
	b.HThick[1][3] = false
	// Cage C: (1,0)-(2,0) — open horizontal border between rows 1/2, col 0.
	b.HThick[2][0] = false
	// Cage D: (1,1)-(1,2) — open vertical border col 1/2, row 1.
	b.VThick[1][2] = false
	// Cage E: (2,1)-(2,2)-(2,3)-(3,3).
	b.VThick[2][2] = false
	b.VThick[2][3] = false
	b.HThick[3][3] = false
	// Cage F: (3,0)-(3,1)-(3,2).
	b.VThick[3][1] = false
	b.VThick[3][2] = false
	return b
}

func TestBuildCagesGroupsBySixCages(t *testing.T) {
	cages := BuildCages(4, fourByFourBorders())
	if len(cages) != 6 {
		t.Fatalf("expected 6 cages, got %d", len(cages))
	}
	total := 0
	for _, c := range cages {
		total += len(c.Cells)
	}
	if total != 16 {
		t.Fatalf("expected 16 total cells across all cages, got %d", total)
	}
}

func TestBuildCagesOrderedRowMajorByFirstCell(t *testing.T) {
	cages := BuildCages(4, fourByFourBorders())
	for i := 1; i < len(cages); i++ {
		a, b := cages[i-1].Cells[0], cages[i].Cells[0]
		if a.R > b.R || (a.R == b.R && a.C > b.C) {
			t.Fatalf("cages not in row-major order at index %d: %v before %v", i, a, b)
		}
	}
}

func TestBuildCagesAllThickGivesSingletons(t *testing.T) {
	cages := BuildCages(2, NewInternalBorders(2))
	if len(cages) != 4 {
		t.Fatalf("expected 4 singleton cages for an all-thick 2x2 grid, got %d", len(cages))
	}
	for _, c := range cages {
		if len(c.Cells) != 1 {
			t.Fatalf("expected every cage to be a singleton, got %d cells", len(c.Cells))
		}
	}
}

func TestBuildCagesAllThinMergesIntoOne(t *testing.T) {
	b := NewInternalBorders(2)
	b.VThick[0][1] = false
	b.HThick[1][0] = false
	b.HThick[1][1] = false
	b.VThick[1][1] = false
	cages := BuildCages(2, b)
	if len(cages) != 1 {
		t.Fatalf("expected a single merged cage, got %d", len(cages))
	}
	if len(cages[0].Cells) != 4 {
		t.Fatalf("expected the merged cage to hold all 4 cells, got %d", len(cages[0].Cells))
	}
}
