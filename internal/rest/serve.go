// Package rest exposes the recognition pipeline over HTTP, for callers
// that would rather POST an image and get a PuzzleSpec back than shell out
// to the batch CLI.
package rest

import (
	"fmt"
	"image"
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"github.com/mlnoga/mathdoku-ocr/pkg/mathdoku"
	"github.com/mlnoga/mathdoku-ocr/pkg/ocrengine"
	"github.com/mlnoga/mathdoku-ocr/pkg/rasterimg"
)

// availabilityChecker is implemented by ocrengine.TesseractEngine; the API
// refuses recognize requests outright when the configured engine isn't
// reachable rather than failing on the first OCR call deep in the pipeline.
type availabilityChecker interface {
	Available() bool
}

// Server bundles the recognizer dependencies each request needs: the OCR
// engine to call and whether cage labels may be read concurrently.
type Server struct {
	Engine   ocrengine.Engine
	Parallel bool
}

// New builds a gin engine serving the recognizer API under /api/v1.
func New(s *Server) *gin.Engine {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/ping", getPing)
			v1.POST("/recognize", s.postRecognize)
		}
	}
	return r
}

// Serve starts the HTTP API on the given port, blocking until the process
// is killed.
func Serve(s *Server, port int) error {
	return New(s).Run(fmt.Sprintf(":%d", port))
}

func getPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// postRecognize accepts a multipart "image" file field, optional "size" and
// "difficulty" form fields, and returns the recognized PuzzleSpec as YAML.
func (s *Server) postRecognize(c *gin.Context) {
	if avail, ok := s.Engine.(availabilityChecker); ok && !avail.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": mathdoku.ErrConfiguration.Error()})
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing \"image\" file field"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	decoded, _, decErr := image.Decode(f)
	if decErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": decErr.Error()})
		return
	}

	size := 0
	if v := c.PostForm("size"); v != "" {
		fmt.Sscanf(v, "%d", &size)
	}

	ctx := &mathdoku.Context{
		OCR:      s.Engine,
		ForcedN:  size,
		Parallel: s.Parallel,
	}
	spec, err := mathdoku.Recognize(ctx, rasterimg.FromImage(decoded), c.PostForm("difficulty"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	out, err := yaml.Marshal(spec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/x-yaml", out)
}
