package mathdoku

import "testing"

func linesFor(n, extent int) []int {
	out := make([]int, n+1)
	spacing := float64(extent) / float64(n)
	for k := 0; k <= n; k++ {
		out[k] = int(spacing * float64(k))
	}
	return out
}

func TestSelectSizePicksMatchingCandidateCount(t *testing.T) {
	want := 5
	extent := 400
	lines := linesFor(want, extent)
	n, hLines, vLines, err := SelectSize(lines, lines, extent, extent, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != want {
		t.Fatalf("selected n = %d, want %d", n, want)
	}
	if len(hLines) != want+1 || len(vLines) != want+1 {
		t.Fatalf("expected %d lines per axis, got h=%d v=%d", want+1, len(hLines), len(vLines))
	}
}

func TestSelectSizeForcedN(t *testing.T) {
	lines := linesFor(6, 300)
	n, _, _, err := SelectSize(lines, lines, 300, 300, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 6 {
		t.Fatalf("forced n not honored: got %d", n)
	}
}

func TestSelectSizeRejectsForcedNOutOfRange(t *testing.T) {
	if _, _, _, err := SelectSize(nil, nil, 100, 100, 12); err == nil {
		t.Fatalf("expected an error for forcedN=12 (out of [4,9])")
	}
}

func TestSelectSizeNoCandidatesFails(t *testing.T) {
	if _, _, _, err := SelectSize(nil, nil, 100, 100, 0); err == nil {
		t.Fatalf("expected an error when no line candidates are available")
	}
}

func TestFitLinesFallsBackToEquallySpacedWhenSparse(t *testing.T) {
	out := fitLines([]int{0}, 100, 4)
	if len(out) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(out))
	}
	if out[0] != 0 || out[4] != 100 {
		t.Fatalf("expected equally spaced fallback to span [0,100], got %v", out)
	}
}
