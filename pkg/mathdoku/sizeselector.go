package mathdoku

import (
	"math"
	"sort"
)

// SelectSize picks N in [4,9] (or uses forcedN if nonzero) that best
// explains the detected line candidates, and returns the N+1 line
// positions for each axis.
func SelectSize(hCandidates, vCandidates []int, bboxH, bboxW, forcedN int) (n int, hLines, vLines []int, err error) {
	if forcedN != 0 {
		if forcedN < 4 || forcedN > 9 {
			return 0, nil, nil, ErrNoValidSize
		}
		h := fitLines(hCandidates, bboxH, forcedN)
		v := fitLines(vCandidates, bboxW, forcedN)
		return forcedN, h, v, nil
	}

	bestN := 0
	bestScore := math.Inf(1)
	for candidate := 4; candidate <= 9; candidate++ {
		total := scoreFit(hCandidates, bboxH, candidate) + scoreFit(vCandidates, bboxW, candidate)
		if total < bestScore {
			bestScore = total
			bestN = candidate
		}
	}
	if bestN == 0 || math.IsInf(bestScore, 1) {
		return 0, nil, nil, ErrNoValidSize
	}
	return bestN, fitLines(hCandidates, bboxH, bestN), fitLines(vCandidates, bboxW, bestN), nil
}

// fitLines produces exactly n+1 line positions for a fixed n, snapping to
// observed candidates where close enough and falling back to the expected
// equally-spaced position otherwise.
func fitLines(candidates []int, extent, n int) []int {
	sorted := sortedCopy(candidates)
	if len(sorted) < 2 {
		return equallySpaced(extent, n)
	}
	first, last := float64(sorted[0]), float64(sorted[len(sorted)-1])
	spacing := (last - first) / float64(n)
	if spacing < 10 {
		return equallySpaced(extent, n)
	}

	out := make([]int, n+1)
	for k := 0; k <= n; k++ {
		expected := first + float64(k)*spacing
		snapped, ok := nearestWithin(sorted, expected, 0.20*spacing)
		if ok {
			out[k] = snapped
		} else {
			out[k] = int(math.Round(expected))
		}
	}
	return out
}

// scoreFit computes the fit score for a fixed n: lower is better. Returns
// +Inf when spacing is degenerate or there are fewer than two candidates.
func scoreFit(candidates []int, extent, n int) float64 {
	sorted := sortedCopy(candidates)
	if len(sorted) < 2 {
		return math.Inf(1)
	}
	first, last := float64(sorted[0]), float64(sorted[len(sorted)-1])
	spacing := (last - first) / float64(n)
	if spacing < 10 {
		return math.Inf(1)
	}

	snapCount := 0
	errSum := 0.0
	for k := 0; k <= n; k++ {
		expected := first + float64(k)*spacing
		snapped, ok := nearestWithin(sorted, expected, 0.20*spacing)
		if ok {
			errSum += math.Abs(float64(snapped) - expected)
			snapCount++
		} else {
			errSum += 0.5 * spacing
		}
	}
	return -1000*float64(snapCount) + errSum/float64(n+1)
}

func equallySpaced(extent, n int) []int {
	out := make([]int, n+1)
	if n == 0 {
		return out
	}
	spacing := float64(extent) / float64(n)
	for k := 0; k <= n; k++ {
		out[k] = int(math.Round(float64(k) * spacing))
	}
	return out
}

func nearestWithin(sorted []int, target, tolerance float64) (int, bool) {
	best := 0
	bestDist := math.Inf(1)
	for _, c := range sorted {
		d := math.Abs(float64(c) - target)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if bestDist <= tolerance {
		return best, true
	}
	return 0, false
}

func sortedCopy(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	sort.Ints(out)
	return out
}
