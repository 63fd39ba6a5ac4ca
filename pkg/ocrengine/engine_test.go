package ocrengine

import "testing"

func TestDigitConfigsOrder(t *testing.T) {
	if len(DigitConfigs) != 8 {
		t.Fatalf("expected 8 digit configs, got %d", len(DigitConfigs))
	}
	if DigitConfigs[0] != "--oem 1 --psm 7 -c tessedit_char_whitelist=0123456789+x-/," {
		t.Fatalf("unexpected first config: %q", DigitConfigs[0])
	}
	last := DigitConfigs[len(DigitConfigs)-1]
	if last != "--psm 8" {
		t.Fatalf("expected last digit config to be unconstrained --psm 8, got %q", last)
	}
}

func TestOperatorConfigsOrder(t *testing.T) {
	if len(OperatorConfigs) != 6 {
		t.Fatalf("expected 6 operator configs, got %d", len(OperatorConfigs))
	}
	if OperatorConfigs[0] != "--psm 10 -c tessedit_char_whitelist=+-x/" {
		t.Fatalf("unexpected first operator config: %q", OperatorConfigs[0])
	}
}

func TestTesseractEngineAvailableMissingBinary(t *testing.T) {
	e := NewTesseractEngine("/definitely/not/a/real/path/tesseract", "")
	if e.Available() {
		t.Fatalf("expected Available() to be false for a nonexistent path")
	}
}
