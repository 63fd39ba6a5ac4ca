package mathdoku

import "github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"

// trimToText removes cage-border remnants from a label crop and tightens
// the bounding box around the glyphs, so a crop that includes a sliver of
// the cell's own border line doesn't confuse OCR or the operator-detection
// pass downstream.
func trimToText(crop *rasterimg.GrayImage) *rasterimg.GrayImage {
	// Label text is always darker than 160; lighter candidate marks drop out.
	binary := rasterimg.BinarizeFixed(crop, 160, true)

	maxStrip := minInt(crop.W, crop.H) / 6
	left, top := 0, 0
	for c := 0; c < minInt(maxStrip, crop.W); c++ {
		if columnDarkFraction(binary, c) > 0.90 {
			left = c + 1
		} else {
			break
		}
	}
	for r := 0; r < minInt(maxStrip, crop.H); r++ {
		if rowDarkFraction(binary, r) > 0.90 {
			top = r + 1
		} else {
			break
		}
	}
	if left > 0 || top > 0 {
		crop = crop.Crop(left, top, crop.W-left, crop.H-top)
		if crop.H < 5 || crop.W < 5 {
			return crop
		}
		binary = rasterimg.BinarizeFixed(crop, 160, true)
	}

	const border = 2
	padded := padMask(binary, border)
	contours := rasterimg.FindComponents(padded)
	if len(contours) == 0 {
		return crop
	}

	w, h := crop.W, crop.H
	minArea := maxInt(5, int(0.002*float64(w)*float64(h)))

	kept := false
	minX, minY, maxX, maxY := 0, 0, 0, 0
	for _, c := range contours {
		if c.W*c.H < minArea {
			continue
		}
		aspect := aspectRatio(c.W, c.H)
		isShortHorizontal := c.W > c.H*2 && c.W < int(0.7*float64(w)) && c.H < int(0.3*float64(h))
		if aspect < 0.08 && !isShortHorizontal {
			continue
		}
		x0, y0 := c.X-border, c.Y-border
		x1, y1 := x0+c.W, y0+c.H
		if !kept {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			kept = true
			continue
		}
		if x0 < minX {
			minX = x0
		}
		if y0 < minY {
			minY = y0
		}
		if x1 > maxX {
			maxX = x1
		}
		if y1 > maxY {
			maxY = y1
		}
	}
	if !kept {
		return crop
	}

	const pad = 3
	bx := maxInt(0, minX-pad)
	by := maxInt(0, minY-pad)
	bw := minInt(w-bx, (maxX-minX)+2*pad)
	bh := minInt(h-by, (maxY-minY)+2*pad)
	return crop.Crop(bx, by, bw, bh)
}

func columnDarkFraction(m *rasterimg.BinaryMask, x int) float64 {
	on := 0
	for y := 0; y < m.H; y++ {
		if m.Get(x, y) {
			on++
		}
	}
	if m.H == 0 {
		return 0
	}
	return float64(on) / float64(m.H)
}

func rowDarkFraction(m *rasterimg.BinaryMask, y int) float64 {
	on := 0
	for x := 0; x < m.W; x++ {
		if m.Get(x, y) {
			on++
		}
	}
	if m.W == 0 {
		return 0
	}
	return float64(on) / float64(m.W)
}

// padMask returns a copy of m surrounded by border pixels of "off", so
// FindComponents sees components touching the original edge as closed
// contours rather than clipped ones.
func padMask(m *rasterimg.BinaryMask, border int) *rasterimg.BinaryMask {
	out := rasterimg.NewMask(m.W+2*border, m.H+2*border)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			out.Set(x+border, y+border, m.Get(x, y))
		}
	}
	return out
}

// prepareForOCR scales a trimmed crop to a workable size, binarizes it
// with Otsu, normalizes polarity to "mostly white background, dark text",
// and pads with white so glyphs never touch the image edge.
func prepareForOCR(crop *rasterimg.GrayImage) *rasterimg.GrayImage {
	if crop.H < 80 {
		scale := maxInt(2, 80/crop.H)
		crop = rasterimg.UpscaleFactor(crop, scale)
	}

	mask := rasterimg.BinarizeOtsu(crop, false)
	onCount := 0
	for _, v := range mask.On {
		if v {
			onCount++
		}
	}
	total := crop.W * crop.H
	if total > 0 && onCount*2 < total {
		for i := range mask.On {
			mask.On[i] = !mask.On[i]
		}
	}

	const pad = 12
	out := rasterimg.NewGray(crop.W+2*pad, crop.H+2*pad)
	for i := range out.Pix {
		out.Pix[i] = 255
	}
	for y := 0; y < crop.H; y++ {
		for x := 0; x < crop.W; x++ {
			v := uint8(0)
			if mask.Get(x, y) {
				v = 255
			}
			out.Set(x+pad, y+pad, v)
		}
	}
	return out
}
