package steamd

import (
	"strings"
)

// Structural tokens of the steamd grammar. The scanner works by literal
// substring search over these, not by a grammar with nesting: the class
// terminator is the fixed sequence "};", so a body containing that same
// sequence would be truncated early. Known limitation, kept on purpose.
const (
	tokClass     = "class "
	tokClassEnd  = "};"
	tokOpenBrace = "{"
	tokGeneric   = "<"
	tokStmtEnd   = ";"
	tokLineLead  = "\r\n\t" // characters allowed in the run before a member
)

// ClassBlock is one extracted class: its identifier and the raw member
// section between the opening brace and the block terminator.
type ClassBlock struct {
	Name string
	Body string
}

// NextClass scans doc for the next class block. It returns the block, the
// unconsumed remainder of the document, and ok=false when no further
// "class" keyword exists, which is the normal end-of-document signal,
// not an error.
func NextClass(doc string) (block ClassBlock, rest string, ok bool) {
	start := strings.Index(doc, tokClass)
	if start < 0 {
		return ClassBlock{}, "", false
	}
	after := doc[start+len(tokClass):]

	end := strings.Index(after, tokClassEnd)
	if end < 0 {
		return ClassBlock{}, "", false
	}
	code := after[:end]
	rest = after[end:]

	return ClassBlock{Name: className(code), Body: code}, rest, true
}

// className derives the class identifier from the text following the
// keyword: everything before the first '<' in the header (a generic
// parameter marker is stripped). Headers without a generic marker fall
// back to the first whitespace. The search never crosses the opening
// brace, so array markers inside the body cannot bleed into the name.
func className(code string) string {
	header := code
	if i := strings.Index(code, tokOpenBrace); i >= 0 {
		header = code[:i]
	}
	if i := strings.Index(header, tokGeneric); i >= 0 {
		return strings.TrimSpace(header[:i])
	}
	return strings.TrimSpace(header)
}

// Members splits a class body into raw field-declaration statements, in
// source order. Each statement must be preceded by a run of line-lead
// characters (\r, \n, \t) and is captured up to the next ';', which is
// consumed. A declaration abutting the brace with no leading run is never
// extracted; extraction simply stops. Lexing silently ends when no further
// statement matches.
func Members(body string) []string {
	// Skip everything through the opening brace; members start after it.
	if i := strings.Index(body, tokOpenBrace); i >= 0 {
		body = body[i+len(tokOpenBrace):]
	}

	var members []string
	for {
		stmt, rest, ok := nextMember(body)
		if !ok {
			return members
		}
		members = append(members, stmt)
		body = rest
	}
}

// nextMember extracts one ';'-terminated statement after a mandatory run
// of line-lead characters. ok=false signals "no more members".
func nextMember(body string) (stmt, rest string, ok bool) {
	n := leadRun(body)
	if n == 0 {
		return "", "", false
	}
	body = body[n:]

	end := strings.Index(body, tokStmtEnd)
	if end < 0 {
		return "", "", false
	}
	return body[:end], body[end+1:], true
}

// leadRun returns the length of the leading run of line-lead characters.
func leadRun(s string) int {
	return len(s) - len(strings.TrimLeft(s, tokLineLead))
}
