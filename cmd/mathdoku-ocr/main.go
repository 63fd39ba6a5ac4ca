// Command mathdoku-ocr reads a photographed Mathdoku/KenKen grid and emits
// its puzzle specification as YAML.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
	"gopkg.in/yaml.v3"

	"github.com/mlnoga/mathdoku-ocr/internal"
	"github.com/mlnoga/mathdoku-ocr/internal/rest"
	"github.com/mlnoga/mathdoku-ocr/pkg/mathdoku"
	"github.com/mlnoga/mathdoku-ocr/pkg/ocrengine"
	"github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"
)

const version = "0.1.0"

var totalMiBs = memory.TotalMemory() / 1024 / 1024

var size = flag.Int("size", 0, "force grid size N (skip auto-detection), 0=auto")
var difficulty = flag.String("difficulty", "", "difficulty label recorded in the output")
var out = flag.String("out", "", "save output YAML to `file` (default: stdout)")
var logPath = flag.String("log", "%auto", "save log output to `file`. `%auto` replaces the -out suffix with .log")
var debugDir = flag.String("debugDir", "", "save intermediate pipeline crops to this directory, empty=off")

var tesseractPath = flag.String("tesseractPath", "", "path to the tesseract binary, empty=resolve from PATH")
var tesseractLang = flag.String("tesseractLang", "", "tesseract -l language argument, empty=tesseract default")

var parallel = flag.Bool("parallel", true, "OCR cage labels concurrently, one goroutine per cage")

var port = flag.Int("port", 8080, "port for serving the HTTP recognition API")

func main() {
	start := time.Now()
	flag.Usage = func() {
		internal.LogPrintf(`mathdoku-ocr reads a photographed Mathdoku/KenKen grid and emits its
puzzle specification as YAML.

Usage: %s [-flag value] (recognize|serve|version|help) [image-path]

Commands:
  recognize  Recognize a single photographed grid and print its PuzzleSpec
  serve      Serve the recognizer over HTTP
  version    Show version information
  help       Show this usage text

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *logPath == "%auto" {
		if *out != "" {
			*logPath = strings.TrimSuffix(*out, filepath.Ext(*out)) + ".log"
		} else {
			*logPath = ""
		}
	}
	if *logPath != "" {
		if err := internal.LogAlsoToFile(*logPath); err != nil {
			internal.LogFatalf("unable to open log file %s: %s\n", *logPath, err)
		}
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		return
	}

	var err error
	switch args[0] {
	case "recognize":
		err = runRecognize(args[1:])
	case "serve":
		err = runServe()
	case "version":
		internal.LogPrintf("mathdoku-ocr version %s (%d MiB physical memory, AVX2=%v)\n",
			version, totalMiBs, cpuid.CPU.AVX2())
	case "help", "?":
		flag.Usage()
	default:
		internal.LogPrintf("Unknown command %q\n\n", args[0])
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		internal.LogPrintf("Error: %s\n", err.Error())
		internal.LogSync()
		os.Exit(1)
	}

	internal.LogPrintf("\nDone after %s\n", time.Since(start).Round(time.Millisecond*10))
	internal.LogSync()
}

func runRecognize(args []string) error {
	if len(args) < 1 || args[0] == "" {
		return fmt.Errorf("usage: mathdoku-ocr recognize [flags] <image-path>")
	}
	path := args[0]

	gray, err := rasterimg.Decode(path)
	if err != nil {
		return fmt.Errorf("%w: %v", mathdoku.ErrIO, err)
	}

	engine := ocrengine.NewTesseractEngine(*tesseractPath, *tesseractLang)
	if !engine.Available() {
		return fmt.Errorf("%w: tesseract binary not found (set -tesseractPath)", mathdoku.ErrConfiguration)
	}

	ctx := &mathdoku.Context{
		OCR:      engine,
		ForcedN:  *size,
		Debug:    *debugDir != "",
		DebugDir: *debugDir,
		Parallel: *parallel,
	}

	spec, err := mathdoku.Recognize(ctx, gray, *difficulty)
	if err != nil {
		return err
	}
	if spec.HasUnresolved() {
		internal.LogPrintln("warning: some cages could not be fully recognized")
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(spec)
}

func runServe() error {
	engine := ocrengine.NewTesseractEngine(*tesseractPath, *tesseractLang)
	internal.LogPrintf("Serving on port %d (%d MiB physical memory available for concurrent OCR)\n", *port, totalMiBs)
	return rest.Serve(&rest.Server{Engine: engine, Parallel: *parallel}, *port)
}
