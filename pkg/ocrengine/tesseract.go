package ocrengine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// TesseractEngine shells out to the tesseract CLI binary, the same
// exec-a-subprocess approach pytesseract itself uses rather than a cgo
// binding: no C toolchain requirement, and the binary's stderr/exit code
// double as the error-reporting protocol.
type TesseractEngine struct {
	// Path to the tesseract executable. Empty means "tesseract" resolved
	// from PATH.
	Path string
	// Lang is passed as -l when non-empty.
	Lang string

	// mu serializes invocations. tesseract writes to a working directory
	// of temp files internally and two concurrent runs racing over the
	// same crop can corrupt each other's output file, so callers that
	// want per-cage parallelism still funnel through one process at a
	// time here.
	mu sync.Mutex
}

// NewTesseractEngine returns an engine that invokes the named binary (or
// "tesseract" from PATH if path is empty) with the given language.
func NewTesseractEngine(path, lang string) *TesseractEngine {
	return &TesseractEngine{Path: path, Lang: lang}
}

func (e *TesseractEngine) bin() string {
	if e.Path != "" {
		return e.Path
	}
	return "tesseract"
}

// Recognize writes img to a temp PNG, invokes tesseract against it with
// config, and returns the trimmed stdout text.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image, config string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tmp, err := os.CreateTemp("", "mathdoku-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("ocrengine: create temp image: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", fmt.Errorf("ocrengine: encode temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("ocrengine: close temp image: %w", err)
	}

	args := []string{tmpPath, "stdout"}
	if e.Lang != "" {
		args = append(args, "-l", e.Lang)
	}
	args = append(args, strings.Fields(config)...)

	cmd := exec.CommandContext(ctx, e.bin(), args...)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ocrengine: tesseract %s: %w: %s", config, err, strings.TrimSpace(errOut.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

// Available reports whether the configured tesseract binary can actually
// be invoked, for a fail-fast check before the pipeline starts OCR'ing.
func (e *TesseractEngine) Available() bool {
	path, err := exec.LookPath(e.bin())
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
