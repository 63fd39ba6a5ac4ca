// Package ocrengine abstracts the single external collaborator the
// recognition pipeline depends on: something that turns a small cropped
// grayscale image of a printed digit string (or operator glyph) into text.
package ocrengine

import (
	"context"
	"image"
)

// Engine recognizes text in a single pre-processed crop. Implementations
// are expected to be stateless per call: config selects OCR engine mode and
// page-segmentation mode, and the caller (not the Engine) owns any
// multi-config voting.
type Engine interface {
	// Recognize returns the raw text the engine reads from img under the
	// given config string, trimmed of surrounding whitespace. An engine
	// that can't produce a reading (rather than one that reads nothing)
	// returns a non-nil error.
	Recognize(ctx context.Context, img image.Image, config string) (string, error)
}

// DigitConfigs are the fixed, ordered set of engine configs tried for a
// cage-value label: six character-whitelisted passes (PSM 7, 8 and 13, first
// with --oem 1 and then with the default engine mode), followed by two
// passes (PSM 7 and 8) without the whitelist, so a reading the whitelist
// constrains too aggressively still gets an unconstrained second look.
var DigitConfigs = []string{
	"--oem 1 --psm 7 -c tessedit_char_whitelist=0123456789+x-/,",
	"--oem 1 --psm 8 -c tessedit_char_whitelist=0123456789+x-/,",
	"--oem 1 --psm 13 -c tessedit_char_whitelist=0123456789+x-/,",
	"--psm 7 -c tessedit_char_whitelist=0123456789+x-/,",
	"--psm 8 -c tessedit_char_whitelist=0123456789+x-/,",
	"--psm 13 -c tessedit_char_whitelist=0123456789+x-/,",
	"--psm 7",
	"--psm 8",
}

// OperatorConfigs are tried against a single isolated operator glyph when
// DigitConfigs didn't surface one, using PSM 10 (treat the crop as one
// character) ahead of PSM 13 (raw line, no layout analysis).
var OperatorConfigs = []string{
	"--psm 10 -c tessedit_char_whitelist=+-x/",
	"--oem 1 --psm 10 -c tessedit_char_whitelist=+-x/",
	"--psm 13 -c tessedit_char_whitelist=+-x/",
	"--oem 1 --psm 13 -c tessedit_char_whitelist=+-x/",
	"--psm 10",
	"--psm 13",
}
