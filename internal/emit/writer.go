package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/steamforge/langgen/internal/steamd"
)

// Writer renders schemas and persists them under an output directory.
type Writer struct {
	renderer Renderer
	outDir   string
}

// NewWriter creates a Writer that renders with renderer into outDir.
func NewWriter(renderer Renderer, outDir string) *Writer {
	return &Writer{renderer: renderer, outDir: outDir}
}

// Write renders schema and writes it under outDir, mirroring the input's
// relative path so same-named inputs in different directories never
// collide, e.g. msgs/steammsg.steamd -> <outDir>/msgs/steammsg.rs.
// Returns the output path.
func (w *Writer) Write(relPath string, schema *steamd.Schema) (string, error) {
	data, err := w.renderer.Render(schema)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", relPath, err)
	}

	base := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	outPath := filepath.Join(w.outDir, filepath.Dir(relPath), base+w.renderer.Ext())
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return outPath, nil
}
