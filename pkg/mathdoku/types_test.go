package mathdoku

import "testing"

func TestOperatorGlyph(t *testing.T) {
	cases := []struct {
		op   Operator
		want string
	}{
		{OpNone, ""},
		{OpAdd, "+"},
		{OpSub, "-"},
		{OpMul, "x"},
		{OpDiv, "/"},
		{OpUnknown, "?"},
	}
	for _, c := range cases {
		if got := c.op.Glyph(); got != c.want {
			t.Errorf("Glyph(%v) = %q, want %q", c.op, got, c.want)
		}
	}
}

func TestOperatorStringFallsBackToNone(t *testing.T) {
	if got := OpNone.String(); got != "none" {
		t.Errorf("OpNone.String() = %q, want %q", got, "none")
	}
}

func TestKnownAndUnknownValue(t *testing.T) {
	kv := KnownValue(42)
	if !kv.Known || kv.Int != 42 || kv.Raw != "42" {
		t.Errorf("KnownValue(42) = %+v", kv)
	}
	uv := UnknownValue("")
	if uv.Known || uv.Raw != "?" {
		t.Errorf("UnknownValue(\"\") = %+v, want Raw=?", uv)
	}
}

func TestNewInternalBordersDefaultsToThick(t *testing.T) {
	b := NewInternalBorders(3)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if !b.HThick[r][c] || !b.VThick[r][c] {
				t.Fatalf("expected all borders to default to thick at (%d,%d)", r, c)
			}
		}
	}
}

func TestHasUnresolvedDetectsUnknownValue(t *testing.T) {
	spec := PuzzleSpec{
		Size: 1,
		Cages: []Cage{
			{Cells: []CellId{{R: 0, C: 0}}, Value: UnknownValue("?"), Op: OpNone},
		},
	}
	if !spec.HasUnresolved() {
		t.Fatalf("expected HasUnresolved to report the unknown cage value")
	}
}

func TestHasUnresolvedDetectsMissingOperator(t *testing.T) {
	spec := PuzzleSpec{
		Size:       2,
		Operations: true,
		Cages: []Cage{
			{Cells: []CellId{{R: 0, C: 0}, {R: 0, C: 1}}, Value: KnownValue(5), Op: OpNone},
		},
	}
	if !spec.HasUnresolved() {
		t.Fatalf("expected HasUnresolved to report the missing operator on a multi-cell cage")
	}
}

func TestHasUnresolvedFalseWhenComplete(t *testing.T) {
	spec := PuzzleSpec{
		Size:       1,
		Operations: false,
		Cages: []Cage{
			{Cells: []CellId{{R: 0, C: 0}}, Value: KnownValue(9), Op: OpNone},
		},
	}
	if spec.HasUnresolved() {
		t.Fatalf("expected a fully resolved singleton puzzle to report no unresolved cages")
	}
}
