package rasterimg

// Contour is an axis-aligned bounding box plus pixel count for one
// 8-connected component of a binary mask. Area is pixel count, not polygon
// area — adequate for rectangle-likeness filtering, where only a bounding
// box and fill ratio matter, not a precise outline.
type Contour struct {
	X, Y, W, H int
	Area       int
}

// FindComponents enumerates the 8-connected components of mask's "on"
// pixels and returns one Contour per component, using a seed-stack,
// visited-bitmask scanline flood fill restarted from each not-yet-visited
// "on" pixel, accumulating a bounding box instead of painting pixels.
func FindComponents(mask *BinaryMask) []Contour {
	w, h := mask.W, mask.H
	visited := make([]bool, w*h)
	var out []Contour

	type seed struct{ x, y int }

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			idx0 := sy*w + sx
			if visited[idx0] || !mask.On[idx0] {
				continue
			}
			minX, minY, maxX, maxY, area := sx, sy, sx, sy, 0
			stack := []seed{{sx, sy}}
			for len(stack) > 0 {
				s := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				x, y := s.x, s.y
				if x < 0 || x >= w || y < 0 || y >= h {
					continue
				}
				idx := y*w + x
				if visited[idx] || !mask.On[idx] {
					continue
				}
				// expand the contiguous run on this row before queuing
				// the rows above/below it (scanline flood fill).
				xl := x
				for xl-1 >= 0 && !visited[y*w+xl-1] && mask.On[y*w+xl-1] {
					xl--
				}
				xr := x
				for xr+1 < w && !visited[y*w+xr+1] && mask.On[y*w+xr+1] {
					xr++
				}
				for xi := xl; xi <= xr; xi++ {
					visited[y*w+xi] = true
					area++
					if xi < minX {
						minX = xi
					}
					if xi > maxX {
						maxX = xi
					}
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
				for _, adjY := range [2]int{y - 1, y + 1} {
					if adjY < 0 || adjY >= h {
						continue
					}
					startX, endX := xl-1, xr+1
					if startX < 0 {
						startX = 0
					}
					if endX >= w {
						endX = w - 1
					}
					for x2 := startX; x2 <= endX; x2++ {
						idx2 := adjY*w + x2
						if !visited[idx2] && mask.On[idx2] {
							stack = append(stack, seed{x2, adjY})
						}
					}
				}
			}
			out = append(out, Contour{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1, Area: area})
		}
	}
	return out
}
