// Package emit renders compiled steamd schemas as target-language source.
package emit

import (
	"fmt"

	"github.com/steamforge/langgen/internal/steamd"
)

// Renderer turns a schema into one target-language source file. Renderers
// are pure; writing the output to disk is the Writer's job.
type Renderer interface {
	// Render emits one declaration per class, one field per (name, type)
	// pair, in schema order.
	Render(schema *steamd.Schema) ([]byte, error)

	// Ext returns the file extension for generated files, dot included.
	Ext() string
}

// ForTarget returns the renderer for a target language name.
func ForTarget(target string) (Renderer, error) {
	switch target {
	case "rust":
		return NewRustRenderer(), nil
	case "go":
		return NewGoRenderer("steammsg"), nil
	default:
		return nil, fmt.Errorf("unknown target language %q", target)
	}
}
