package steamd

// Field is a single normalized field declaration inside a class.
type Field struct {
	Name      string `json:"name"`       // snake_case field name
	WireType  string `json:"wire_type"`  // fixed-width wire type, "[u8; N]" for arrays, or pass-through token
	IsArray   bool   `json:"is_array"`   // true for fixed-size byte arrays (byte<N>)
	ArraySize int    `json:"array_size"` // element count, 0 unless IsArray
}

// Class is a named group of typed fields, one wire-format record.
type Class struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Schema is the complete normalized output of one compile run,
// classes in document order.
type Schema struct {
	Classes []Class `json:"classes"`
}

// Stats counts what the pipeline saw. Malformed declarations are skipped
// rather than surfaced as errors, so the skip count is the only way a
// caller (or a test) can observe them.
type Stats struct {
	Classes     int // class blocks extracted
	Fields      int // declarations normalized successfully
	Skipped     int // declarations dropped as malformed
	PassThrough int // field types not in the wire-type table, emitted verbatim
	ArrayFields int // fixed-size byte array fields
}

// Diagnostic reports one skipped declaration. Hooked up by tests and by
// verbose CLI runs; nil handlers are allowed everywhere.
type Diagnostic struct {
	Class string // class being parsed when the declaration was dropped
	Raw   string // the raw declaration text
	Err   error  // why it failed to parse
}

// DiagnosticFunc receives skipped-declaration reports.
type DiagnosticFunc func(Diagnostic)
