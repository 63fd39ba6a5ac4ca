package mathdoku

import (
	"fmt"

	"github.com/mlnoga/mathdoku-ocr/internal"
	"github.com/mlnoga/mathdoku-ocr/pkg/ocrengine"
	"github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"
)

// Context threads pipeline-wide configuration through every stage in place
// of global mutable state: which OCR engine to call, whether the grid size
// is forced or auto-detected, and where (if anywhere) to dump intermediate
// images for inspection.
type Context struct {
	OCR      ocrengine.Engine
	ForcedN  int  // 0 means auto-detect (SizeSelector picks N)
	Debug    bool
	DebugDir string
	Parallel bool // allow concurrent per-cage OCR
}

// Debugf logs a verbose trace line when Debug is set.
func (c *Context) Debugf(format string, args ...any) {
	if c == nil || !c.Debug {
		return
	}
	internal.LogPrintf("[debug] "+format+"\n", args...)
}

// DebugSave writes a debug PNG under DebugDir when debugging is enabled.
// No-op if DebugDir is empty.
func (c *Context) DebugSave(name string, g *rasterimg.GrayImage) {
	if c == nil || !c.Debug || c.DebugDir == "" || g == nil {
		return
	}
	if err := saveGrayPNG(fmt.Sprintf("%s/%s", c.DebugDir, name), g); err != nil {
		internal.LogPrintf("debug: failed to save %s: %v\n", name, err)
	}
}
