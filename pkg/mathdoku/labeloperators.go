package mathdoku

import (
	"sort"
	"strings"

	"github.com/mlnoga/mathdoku-ocr/pkg/ocrengine"
	"github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"
)

// retryTwoDigitReadings re-OCRs exactly-two-digit readings at a sharper,
// individually-upscaled crop of the original (non-pre-upscaled) image: the
// grid-wide pre-upscale pass trades a little per-label sharpness for
// overall speed, which can cost a leading digit on borderline cases.
func retryTwoDigitReadings(ctx *Context, g *rasterimg.GrayImage, bbox GridBBox, lattice Lattice, cages []Cage, values []CageValue, ops []Operator) {
	for idx, cage := range cages {
		raw := values[idx].Raw
		if raw == "" || raw == "?" || len(raw) != 2 {
			continue
		}
		tl := cage.Cells[0]
		cx, cy := lattice.V[tl.C], lattice.H[tl.R]
		cw := lattice.V[tl.C+1] - cx
		ch := lattice.H[tl.R+1] - cy

		for _, margin := range []int{3, 4} {
			rw := int(0.95 * float64(cw))
			rh := int(0.45 * float64(ch))
			cropRaw := g.Crop(bbox.X+cx+margin, bbox.Y+cy+margin, rw, rh)
			if cropRaw.H < 5 {
				continue
			}
			cropHi := rasterimg.UpscaleFactor(cropRaw, 3)
			rawHi := ocrCrop(ctx, cropHi)
			m := labelPattern.FindStringSubmatch(rawHi)
			if m == nil || len(m[1]) <= len(values[idx].Raw) {
				continue
			}
			hiOp := glyphToOperator(m[2])
			if ops[idx] != OpNone && hiOp != OpNone && hiOp != ops[idx] {
				continue
			}
			newOp := hiOp
			if newOp == OpNone {
				newOp = ops[idx]
			}
			ctx.Debugf("cage %d: 3x retry %s%s -> %s%s", idx, values[idx].Raw, ops[idx], m[1], newOp)
			values[idx] = valueFromDigits(m[1])
			ops[idx] = newOp
			break
		}
	}
}

// recoverMultiCellOperators decides whether the puzzle shows operators at
// all, and if so, runs three escalating strategies against every
// multi-cell cage that still has none.
func recoverMultiCellOperators(ctx *Context, g *rasterimg.GrayImage, bbox GridBBox, lattice Lattice, cages []Cage, values []CageValue, ops []Operator) {
	multiWithOp, multiWithoutOp := 0, 0
	for idx, cage := range cages {
		if len(cage.Cells) <= 1 {
			continue
		}
		if ops[idx] != OpNone {
			multiWithOp++
		} else {
			multiWithoutOp++
		}
	}
	if multiWithOp <= multiWithoutOp {
		return
	}

	for idx, cage := range cages {
		if len(cage.Cells) <= 1 || ops[idx] != OpNone {
			continue
		}
		ctx.Debugf("cage %d: multi-cell without operator, value=%q", idx, values[idx].Raw)

		// Strategy 1: a trailing 0 or 4 is commonly a misread '+'.
		if raw := values[idx].Raw; len(raw) >= 2 && (raw[len(raw)-1] == '0' || raw[len(raw)-1] == '4') {
			ctx.Debugf("cage %d: -> %s+ (digit-to-op correction)", idx, raw[:len(raw)-1])
			values[idx] = valueFromDigits(raw[:len(raw)-1])
			ops[idx] = OpAdd
			continue
		}

		if recoverOperatorByRetry(ctx, g, bbox, lattice, cage, idx, values, ops) {
			continue
		}
		recoverOperatorByComponent(ctx, g, bbox, lattice, cage, idx, values, ops)
	}
}

// recoverOperatorByRetry re-OCRs the label at higher individual upscale
// factors and margins, accepting the result only if it carries a genuine
// (non-"?") operator.
func recoverOperatorByRetry(ctx *Context, g *rasterimg.GrayImage, bbox GridBBox, lattice Lattice, cage Cage, idx int, values []CageValue, ops []Operator) bool {
	tl := cage.Cells[0]
	cx, cy := lattice.V[tl.C], lattice.H[tl.R]
	cw := lattice.V[tl.C+1] - cx
	ch := lattice.H[tl.R+1] - cy

	for _, scale := range []int{4, 6} {
		for _, margin := range []int{2, 3, 4} {
			rw := int(0.95 * float64(cw))
			rh := int(0.45 * float64(ch))
			cropRaw := g.Crop(bbox.X+cx+margin, bbox.Y+cy+margin, rw, rh)
			if cropRaw.H < 5 {
				continue
			}
			cropHi := rasterimg.UpscaleFactor(cropRaw, scale)
			rawHi := ocrCrop(ctx, cropHi)
			m := labelPattern.FindStringSubmatch(rawHi)
			if m == nil || m[2] == "" || m[2] == "?" {
				continue
			}
			if len(values[idx].Raw) <= 2 && m[1] != values[idx].Raw {
				continue
			}
			ctx.Debugf("cage %d: -> %s%s (retry %dx margin=%d)", idx, m[1], m[2], scale, margin)
			values[idx] = valueFromDigits(m[1])
			ops[idx] = glyphToOperator(m[2])
			return true
		}
	}
	return false
}

// recoverOperatorByComponent isolates the rightmost connected component of
// the trimmed label and classifies it as an operator, either by
// single-character OCR or, failing that, by its shape.
func recoverOperatorByComponent(ctx *Context, g *rasterimg.GrayImage, bbox GridBBox, lattice Lattice, cage Cage, idx int, values []CageValue, ops []Operator) {
	x, y, w, h := labelCellRect(lattice, cage, 2)
	if w < 5 || h < 5 {
		return
	}
	crop := g.Crop(bbox.X+x, bbox.Y+y, w, h)
	op, ok := detectTrailingOperator(ctx, crop)
	if !ok {
		return
	}
	ctx.Debugf("cage %d: -> %s%s (component-based op detection)", idx, values[idx].Raw, op)
	ops[idx] = op
}

// detectTrailingOperator isolates the rightmost glyph of a trimmed label
// crop and classifies it as an operator via single-character OCR, falling
// back to shape-based classification if OCR yields nothing.
func detectTrailingOperator(ctx *Context, crop *rasterimg.GrayImage) (Operator, bool) {
	trimmed := trimToText(crop)
	if trimmed.W < 5 || trimmed.H < 5 {
		return OpNone, false
	}
	w, h := trimmed.W, trimmed.H
	binary := rasterimg.BinarizeOtsu(trimmed, true)

	const bp = 2
	padded := padMask(binary, bp)
	contours := rasterimg.FindComponents(padded)
	if len(contours) < 2 {
		return OpNone, false
	}
	sort.Slice(contours, func(i, j int) bool { return contours[i].X < contours[j].X })
	last := contours[len(contours)-1]
	lx, ly := last.X-bp, last.Y-bp

	if float64(lx) < 0.35*float64(w) {
		return OpNone, false
	}
	if last.W*last.H > int(0.35*float64(w)*float64(h)) {
		return OpNone, false
	}

	const pad = 4
	ox := maxInt(0, lx-pad)
	oy := maxInt(0, ly-pad)
	ow := minInt(w-ox, last.W+2*pad)
	oh := minInt(h-oy, last.H+2*pad)
	opCrop := trimmed.Crop(ox, oy, ow, oh)
	if opCrop.W < 3 || opCrop.H < 3 {
		return OpNone, false
	}
	if opCrop.H < 60 {
		opCrop = rasterimg.UpscaleFactor(opCrop, maxInt(4, 60/opCrop.H))
	}
	prepared := prepareForOCR(opCrop)

	votes := map[string]int{}
	for _, cfg := range ocrengine.OperatorConfigs {
		text, err := ctx.recognize(prepared, cfg)
		if err != nil {
			continue
		}
		text = foldGlyphs(text)
		if len(text) == 1 && strings.ContainsAny(text, "+-x/") {
			votes[text]++
		}
	}
	if len(votes) > 0 {
		best := ""
		for g, c := range votes {
			if best == "" || c > votes[best] {
				best = g
			}
		}
		ctx.Debugf("operator detection votes: %v -> %s", votes, best)
		return glyphToOperator(best), true
	}

	// Shape-based fallback.
	aspect := float64(last.W) / float64(maxInt(1, last.H))
	if aspect > 0.6 && aspect < 1.6 {
		cxC := lx + last.W/2
		cyC := ly + last.H/2
		hFill := stripFillFraction(binary, lx, lx+last.W, maxInt(0, cyC-1), cyC+1)
		vFill := stripFillFraction(binary, maxInt(0, cxC-1), cxC+1, ly, ly+last.H)
		if hFill > 0.5 && vFill > 0.5 {
			return OpAdd, true
		}
		return OpNone, false
	}
	if aspect > 2.0 {
		return OpSub, true
	}
	return OpNone, false
}

func stripFillFraction(m *rasterimg.BinaryMask, x0, x1, y0, y1 int) float64 {
	total, on := 0, 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			total++
			if m.Get(x, y) {
				on++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(on) / float64(total)
}

func glyphToOperator(glyph string) Operator {
	switch glyph {
	case "+":
		return OpAdd
	case "-":
		return OpSub
	case "x":
		return OpMul
	case "/":
		return OpDiv
	case "?":
		return OpUnknown
	default:
		return OpNone
	}
}

func valueFromDigits(digits string) CageValue {
	if digits == "0" {
		digits = "9"
	}
	if n, ok := parseDigits(digits); ok {
		return KnownValue(n)
	}
	return UnknownValue(digits)
}

func parseDigits(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
