package mathdoku

import "errors"

// Configuration, I/O, and Structural failures are fatal (the CLI maps them
// to a non-zero exit code). Recognition and operator-ambiguity failures are
// carried in-band in the emitted PuzzleSpec (a "?" value or missing
// operator) and never returned as an error from the pipeline itself — named
// here only so callers that want to detect "some cage came back unresolved"
// can check for them via PuzzleSpec.HasUnresolved(), not via an error
// return.
var (
	// ErrConfiguration: the OCR engine executable is unavailable.
	ErrConfiguration = errors.New("mathdoku: OCR engine not configured")
	// ErrIO: the image file could not be read or decoded.
	ErrIO = errors.New("mathdoku: image could not be read")
	// ErrGridNotFound: GridLocator found no candidate rectangle under
	// either strategy.
	ErrGridNotFound = errors.New("mathdoku: grid bounding box not found")
	// ErrNoValidSize: SizeSelector found no usable line-candidate fit for
	// any N in [4,9].
	ErrNoValidSize = errors.New("mathdoku: no usable grid size in [4,9]")
)

// HasUnresolved reports whether any cage still carries a "?" value or a
// missing operator in an operations-shown puzzle, surfaced for a reviewer
// rather than as a Go error.
func (p PuzzleSpec) HasUnresolved() bool {
	for _, cage := range p.Cages {
		if !cage.Value.Known && cage.Value.Raw == "?" {
			return true
		}
		if p.Operations && len(cage.Cells) > 1 && cage.Op == OpNone {
			return true
		}
	}
	return false
}
