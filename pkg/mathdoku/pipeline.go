package mathdoku

import "github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"

// Recognize runs the full pipeline over an already-decoded grayscale image
// and returns the assembled PuzzleSpec. It is a pure function of img and
// ctx.ForcedN; the only side effects are the optional debug logging/image
// dumps reached through ctx.
func Recognize(ctx *Context, img *rasterimg.GrayImage, difficulty string) (PuzzleSpec, error) {
	bbox, err := LocateGrid(ctx, img)
	if err != nil {
		return PuzzleSpec{}, err
	}

	hCandidates, vCandidates := DetectLattice(img, bbox)
	n, hLines, vLines, err := SelectSize(hCandidates, vCandidates, bbox.H, bbox.W, ctx.ForcedN)
	if err != nil {
		return PuzzleSpec{}, err
	}
	lattice := Lattice{H: hLines, V: vLines}
	ctx.Debugf("grid %dx%d h=%v v=%v", n, n, hLines, vLines)

	borders := ClassifyBorders(img, bbox, n, hLines, vLines)
	cages := BuildCages(n, borders)
	ctx.Debugf("cages: %d", len(cages))

	values, ops := ReadLabels(ctx, img, bbox, lattice, cages)
	return Assemble(n, cages, values, ops, difficulty), nil
}
