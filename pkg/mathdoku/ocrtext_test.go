package mathdoku

import "testing"

func TestFoldGlyphs(t *testing.T) {
	cases := map[string]string{
		"12×":  "12x",
		"8÷2":  "8/2",
		"5−":   "5-",
		"1O":   "10",
		"l2":   "12",
	}
	for in, want := range cases {
		if got := foldGlyphs(in); got != want {
			t.Errorf("foldGlyphs(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLabelDirectMatch(t *testing.T) {
	p, ok := parseLabel("12+")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if p.digits != "12" || p.op != "+" {
		t.Fatalf("got digits=%q op=%q", p.digits, p.op)
	}
}

func TestParseLabelStripsCommas(t *testing.T) {
	p, ok := parseLabel("1,2-")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if p.digits != "12" {
		t.Fatalf("expected commas stripped, got %q", p.digits)
	}
}

func TestParseLabelSalvagesTrailingOperator(t *testing.T) {
	p, ok := parseLabel("7#")
	if !ok {
		t.Fatalf("expected salvage parse to succeed")
	}
	if p.digits != "7" || p.op != "?" {
		t.Fatalf("got digits=%q op=%q, want digits=7 op=?", p.digits, p.op)
	}
}

func TestParseLabelRejectsNonDigitPrefix(t *testing.T) {
	if _, ok := parseLabel("abc"); ok {
		t.Fatalf("expected parse to fail for non-digit text")
	}
}

func TestVoteLabelMajority(t *testing.T) {
	parsed := []parsedLabel{
		{digits: "12", op: "+"},
		{digits: "12", op: "+"},
		{digits: "1", op: "+"},
	}
	digits, op, ok := voteLabel(parsed)
	if !ok {
		t.Fatalf("expected a winner")
	}
	if digits != "12" || op != "+" {
		t.Fatalf("got digits=%q op=%q, want 12 +", digits, op)
	}
}

func TestVoteLabelShortestLengthWinsWithoutMajority(t *testing.T) {
	parsed := []parsedLabel{
		{digits: "12", op: "+"},
		{digits: "13", op: "+"},
		{digits: "9", op: "+"},
	}
	digits, _, ok := voteLabel(parsed)
	if !ok {
		t.Fatalf("expected a winner")
	}
	if digits != "9" {
		t.Fatalf("expected the shortest length (no 2-length majority) to win, got %q", digits)
	}
}

func TestVoteLabelEmptyInput(t *testing.T) {
	if _, _, ok := voteLabel(nil); ok {
		t.Fatalf("expected no winner for empty input")
	}
}
