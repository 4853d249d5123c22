package emit

import (
	"bytes"
	"fmt"

	"github.com/steamforge/langgen/internal/steamd"
)

// goWireTypes maps wire-type strings to Go types. Arrays and pass-through
// tokens are handled separately.
var goWireTypes = map[string]string{
	"u64": "uint64",
	"i64": "int64",
	"u32": "uint32",
	"i32": "int32",
	"u16": "uint16",
	"i16": "int16",
	"u8":  "uint8",
}

// GoRenderer emits Go struct declarations for consumers that want native
// bindings instead of the verbatim wire types.
type GoRenderer struct {
	pkg string
}

// NewGoRenderer creates a Go renderer emitting the given package clause.
func NewGoRenderer(pkg string) *GoRenderer {
	return &GoRenderer{pkg: pkg}
}

func (r *GoRenderer) Ext() string { return ".go" }

// Render emits one exported struct per class. Field names are converted
// from the schema's snake_case to Go's exported CamelCase; fixed byte
// arrays become [N]byte; pass-through wire types are used as-is, assumed
// to name another generated struct.
func (r *GoRenderer) Render(schema *steamd.Schema) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by langgen. DO NOT EDIT.\n\npackage %s\n", r.pkg)

	for _, cls := range schema.Classes {
		fmt.Fprintf(&buf, "\ntype %s struct {\n", cls.Name)
		for _, f := range cls.Fields {
			fmt.Fprintf(&buf, "\t%s %s\n", exportName(f.Name), r.goType(f))
		}
		buf.WriteString("}\n")
	}

	return buf.Bytes(), nil
}

func (r *GoRenderer) goType(f steamd.Field) string {
	if f.IsArray {
		return fmt.Sprintf("[%d]byte", f.ArraySize)
	}
	if t, ok := goWireTypes[f.WireType]; ok {
		return t
	}
	return f.WireType
}

// exportName converts a snake_case field name to exported CamelCase.
func exportName(snake string) string {
	var b bytes.Buffer
	upper := true
	for i := 0; i < len(snake); i++ {
		c := snake[i]
		if c == '_' {
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		b.WriteByte(c)
	}
	return b.String()
}
