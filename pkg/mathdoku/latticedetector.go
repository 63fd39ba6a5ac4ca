package mathdoku

import "github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"

// DetectLattice crops g to bbox and returns candidate horizontal
// (row-index) and vertical (column-index) line offsets in bbox-local
// coordinates, each list monotonic by construction.
func DetectLattice(g *rasterimg.GrayImage, bbox GridBBox) (hCandidates, vCandidates []int) {
	crop := g.Crop(bbox.X, bbox.Y, bbox.W, bbox.H)
	mask := rasterimg.AdaptiveThreshold(crop, 15, 5)

	hProj := make([]float64, crop.H)
	for y := 0; y < crop.H; y++ {
		on := 0
		for x := 0; x < crop.W; x++ {
			if mask.Get(x, y) {
				on++
			}
		}
		hProj[y] = float64(on) / float64(crop.W)
	}

	vProj := make([]float64, crop.W)
	for x := 0; x < crop.W; x++ {
		on := 0
		for y := 0; y < crop.H; y++ {
			if mask.Get(x, y) {
				on++
			}
		}
		vProj[x] = float64(on) / float64(crop.H)
	}

	return peakRuns(hProj), peakRuns(vProj)
}

// peakRuns scans proj, opening a run when the value first exceeds 0.25 and
// closing it when it drops back to <= 0.25; within each run it reports the
// index of the maximum value.
func peakRuns(proj []float64) []int {
	const openThresh = 0.25
	var peaks []int
	inRun := false
	runMaxIdx := 0
	runMaxVal := 0.0

	for i, v := range proj {
		if !inRun {
			if v > openThresh {
				inRun = true
				runMaxIdx = i
				runMaxVal = v
			}
			continue
		}
		if v > runMaxVal {
			runMaxVal = v
			runMaxIdx = i
		}
		if v <= openThresh {
			peaks = append(peaks, runMaxIdx)
			inRun = false
		}
	}
	if inRun {
		peaks = append(peaks, runMaxIdx)
	}
	return peaks
}
