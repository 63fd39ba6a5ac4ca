package mathdoku

import (
	"context"
	"strconv"
	"sync"

	"github.com/mlnoga/mathdoku-ocr/pkg/ocrengine"
	"github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"
)

const minCellForOCR = 50

// ReadLabels reads the (value, operator) pair for every cage's label and
// returns one CageValue/Operator pair per cage, in cage order. Cages are
// not mutated; callers fold the results in via Assemble.
func ReadLabels(ctx *Context, g *rasterimg.GrayImage, bbox GridBBox, lattice Lattice, cages []Cage) ([]CageValue, []Operator) {
	n := lattice.N()
	cellH := float64(lattice.H[n]-lattice.H[0]) / float64(n)
	cellW := float64(lattice.V[n]-lattice.V[0]) / float64(n)
	minCell := cellH
	if cellW < minCell {
		minCell = cellW
	}

	var gridUp *rasterimg.GrayImage
	upscale := 1
	if minCell < minCellForOCR {
		upscale = maxInt(2, int(minCellForOCR/minCell)+1)
		gridUp = upscaleGridRegion(g, bbox, lattice, upscale)
		ctx.Debugf("pre-upscaled grid %dx for small cells (min=%.1fpx)", upscale, minCell)
	}

	values := make([]CageValue, len(cages))
	ops := make([]Operator, len(cages))

	readOne := func(idx int) {
		cage := cages[idx]
		raw := readOneLabel(ctx, g, bbox, lattice, gridUp, upscale, cage, idx)
		v, o := parseRawLabel(raw)
		values[idx] = v
		ops[idx] = o
	}

	if ctx != nil && ctx.Parallel {
		var wg sync.WaitGroup
		for idx := range cages {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				readOne(i)
			}(idx)
		}
		wg.Wait()
	} else {
		for idx := range cages {
			readOne(idx)
		}
	}

	if gridUp != nil {
		retryTwoDigitReadings(ctx, g, bbox, lattice, cages, values, ops)
	}
	recoverMultiCellOperators(ctx, g, bbox, lattice, cages, values, ops)

	return values, ops
}

// upscaleGridRegion crops the full grid region (with a small margin) and
// upscales it once, so individual label crops are extracted from a
// higher-resolution copy instead of each being upscaled separately.
func upscaleGridRegion(g *rasterimg.GrayImage, bbox GridBBox, lattice Lattice, upscale int) *rasterimg.GrayImage {
	n := lattice.N()
	w := lattice.V[n] + 20
	h := lattice.H[n] + 20
	crop := g.Crop(bbox.X, bbox.Y, w, h)
	return rasterimg.UpscaleFactor(crop, upscale)
}

// labelCellRect returns the label-crop rectangle (in bbox-local, un-upscaled
// coordinates) for the top-left cell of a cage, given an extra margin.
func labelCellRect(lattice Lattice, cage Cage, margin int) (x, y, w, h int) {
	tl := cage.Cells[0]
	cx, cy := lattice.V[tl.C], lattice.H[tl.R]
	cw := lattice.V[tl.C+1] - cx
	ch := lattice.H[tl.R+1] - cy
	x = cx + margin
	y = cy + margin
	w = int(0.92 * float64(cw))
	h = int(0.42 * float64(ch))
	return x, y, w, h
}

// readOneLabel extracts and OCRs a single cage's label, retrying with
// wider margins if the first attempt doesn't parse.
func readOneLabel(ctx *Context, g *rasterimg.GrayImage, bbox GridBBox, lattice Lattice, gridUp *rasterimg.GrayImage, upscale int, cage Cage, idx int) string {
	cell := func(margin int) *rasterimg.GrayImage {
		x, y, w, h := labelCellRect(lattice, cage, margin)
		if gridUp != nil {
			return gridUp.Crop(x*upscale, y*upscale, w*upscale, h*upscale)
		}
		return g.Crop(bbox.X+x, bbox.Y+y, w, h)
	}

	tl := cage.Cells[0]
	cw := lattice.V[tl.C+1] - lattice.V[tl.C]
	ch := lattice.H[tl.R+1] - lattice.H[tl.R]
	baseMargin := maxInt(3, int(0.03*minFloat(float64(cw), float64(ch))))
	if gridUp != nil {
		baseMargin = maxInt(3, int(0.03*minFloat(float64(cw*upscale), float64(ch*upscale))))
	}

	crop := cell(baseMargin)
	raw := ocrCrop(ctx, crop)
	if !labelPattern.MatchString(raw) {
		for _, margin2 := range []int{baseMargin * 2, baseMargin * 3, baseMargin * 4} {
			c2 := cell(margin2)
			if c2.W < 5 || c2.H < 5 {
				continue
			}
			raw2 := ocrCrop(ctx, c2)
			if labelPattern.MatchString(raw2) {
				ctx.Debugf("cage %d: margin retry %d improved %q -> %q", idx, margin2, raw, raw2)
				raw = raw2
				break
			}
		}
	}
	if crop.W < 5 || crop.H < 5 {
		return "?"
	}
	ctx.DebugSave("debug_label_"+strconv.Itoa(idx)+".png", crop)
	return raw
}

// parseRawLabel converts a raw OCR string (already the winner of
// multi-config voting) into a CageValue/Operator pair, applying the
// exact-"0"-means-"9" correction.
func parseRawLabel(raw string) (CageValue, Operator) {
	m := labelPattern.FindStringSubmatch(raw)
	if m == nil {
		return UnknownValue("?"), OpNone
	}
	digits, opGlyph := m[1], m[2]
	if digits == "0" {
		digits = "9"
	}
	var op Operator
	switch opGlyph {
	case "+":
		op = OpAdd
	case "-":
		op = OpSub
	case "x":
		op = OpMul
	case "/":
		op = OpDiv
	case "?":
		op = OpUnknown
	default:
		op = OpNone
	}
	if n, err := strconv.Atoi(digits); err == nil {
		return KnownValue(n), op
	}
	return UnknownValue(digits), op
}

// ocrCrop trims a label crop to its text, prepares it for OCR, and runs the
// fixed multi-configuration voting pass, returning the winning raw string
// (already glyph-folded) or "?" on total failure.
func ocrCrop(ctx *Context, crop *rasterimg.GrayImage) string {
	if crop.W < 10 || crop.H < 10 {
		return "?"
	}
	trimmed := trimToText(crop)
	if trimmed.W < 5 || trimmed.H < 5 {
		return "?"
	}
	prepared := prepareForOCR(trimmed)

	var parsed []parsedLabel
	var bestRaw string
	for _, cfg := range ocrengine.DigitConfigs {
		text, err := ctx.recognize(prepared, cfg)
		if err != nil {
			continue
		}
		text = foldGlyphs(text)
		if p, ok := parseLabel(text); ok {
			parsed = append(parsed, p)
		} else if len(text) > len(bestRaw) {
			bestRaw = text
		}
	}
	if len(parsed) == 0 {
		if bestRaw == "" {
			return "?"
		}
		return bestRaw
	}
	digits, op, _ := voteLabel(parsed)
	return digits + op
}

// recognize is a nil-safe, context.Background()-using wrapper around
// Context.OCR.Recognize, so pipeline code doesn't need to check for a nil
// engine at every call site (a misconfigured Context fails once, loudly,
// at startup via Available()). A nil Context or engine yields
// ErrConfiguration, which callers treat like any failed config.
func (c *Context) recognize(img *rasterimg.GrayImage, config string) (string, error) {
	if c == nil || c.OCR == nil {
		return "", ErrConfiguration
	}
	return c.OCR.Recognize(context.Background(), img.ToImage(), config)
}
