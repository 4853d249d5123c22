package steamd

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Compiler runs the extraction and normalization pipeline over one
// document. The zero value is usable; Diagnostics is optional.
type Compiler struct {
	// Diagnostics, when non-nil, receives a report for every declaration
	// skipped as malformed. The pipeline never fails on those.
	Diagnostics DiagnosticFunc

	stats Stats
}

// NewCompiler creates a Compiler with an optional diagnostic hook.
func NewCompiler(diag DiagnosticFunc) *Compiler {
	return &Compiler{Diagnostics: diag}
}

// Compile parses a whole steamd document into a Schema. The document is
// consumed in a single pass: each class block is located, its members
// lexed, and each declaration normalized into a (name, wire type) pair.
// The only hard failure is a document that is not valid UTF-8; a document
// with no class blocks compiles to an empty schema.
func (c *Compiler) Compile(doc []byte) (*Schema, error) {
	if !utf8.Valid(doc) {
		return nil, fmt.Errorf("document is not valid UTF-8")
	}

	c.stats = Stats{}
	schema := &Schema{}

	rest := string(doc)
	for {
		block, next, ok := NextClass(rest)
		if !ok {
			break
		}
		rest = next

		cls := Class{Name: block.Name}
		for _, raw := range Members(block.Body) {
			field, err := ParseField(raw)
			if err != nil {
				c.stats.Skipped++
				if c.Diagnostics != nil {
					c.Diagnostics(Diagnostic{Class: block.Name, Raw: raw, Err: err})
				}
				continue
			}
			if field.IsArray {
				c.stats.ArrayFields++
			} else if _, known := wireTypes[rawTypeOf(raw)]; !known {
				c.stats.PassThrough++
			}
			cls.Fields = append(cls.Fields, field)
			c.stats.Fields++
		}

		schema.Classes = append(schema.Classes, cls)
		c.stats.Classes++
	}

	return schema, nil
}

// Stats returns counters from the most recent Compile call.
func (c *Compiler) Stats() Stats {
	return c.stats
}

// rawTypeOf returns the first token of a declaration, or "". It splits
// the same way ParseField does so the stats classify exactly what was
// parsed.
func rawTypeOf(raw string) string {
	if tokens := strings.Fields(raw); len(tokens) > 0 {
		return tokens[0]
	}
	return ""
}
