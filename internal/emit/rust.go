package emit

import (
	"bytes"
	"fmt"

	"github.com/steamforge/langgen/internal/steamd"
)

// rustDerive is emitted above every generated struct. Serialization
// derives are left to the consumer crate.
const rustDerive = "#[derive(Debug, Clone, PartialEq)]"

// RustRenderer emits Rust struct declarations. Wire-type strings are used
// verbatim as field types: the normalizer already speaks Rust ("u64",
// "[u8; 10]"), and pass-through tokens are taken to name another
// generated struct.
type RustRenderer struct{}

// NewRustRenderer creates a Rust renderer.
func NewRustRenderer() *RustRenderer {
	return &RustRenderer{}
}

func (r *RustRenderer) Ext() string { return ".rs" }

// Render emits one pub struct per class, fields in declaration order.
func (r *RustRenderer) Render(schema *steamd.Schema) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Generated by langgen. Do not edit.\n")

	for _, cls := range schema.Classes {
		fmt.Fprintf(&buf, "\n%s\npub struct %s {\n", rustDerive, cls.Name)
		for _, f := range cls.Fields {
			fmt.Fprintf(&buf, "    pub %s: %s,\n", f.Name, f.WireType)
		}
		buf.WriteString("}\n")
	}

	return buf.Bytes(), nil
}
