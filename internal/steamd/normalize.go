package steamd

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// wireTypes maps steamd primitive tokens to fixed-width wire types.
// Tokens absent from the table pass through verbatim: they are assumed to
// reference another declared class (or an unknown primitive) and are not
// validated against the rest of the document.
var wireTypes = map[string]string{
	"ulong":  "u64",
	"long":   "i64",
	"uint":   "u32",
	"int":    "i32",
	"ushort": "u16",
	"short":  "i16",
	"byte":   "u8",
}

// ParseField normalizes one raw declaration into a Field. The declaration
// is split on spaces and only the first two tokens are consulted, so an
// assignment suffix ("uint x = 5") is ignored rather than parsed.
// Declarations with fewer than two tokens fail; callers skip and count
// them instead of aborting the pipeline.
func ParseField(raw string) (Field, error) {
	tokens := strings.Fields(raw)
	if len(tokens) < 2 {
		return Field{}, fmt.Errorf("declaration %q: want <type> <name>", raw)
	}
	rawType, rawName := tokens[0], tokens[1]

	f := Field{Name: SnakeCase(rawName)}

	if isArray(rawType) {
		size, err := arraySize(rawType)
		if err != nil {
			return Field{}, fmt.Errorf("declaration %q: %w", raw, err)
		}
		f.IsArray = true
		f.ArraySize = size
		f.WireType = fmt.Sprintf("[u8; %d]", size)
		return f, nil
	}

	if mapped, ok := wireTypes[rawType]; ok {
		f.WireType = mapped
	} else {
		f.WireType = rawType
	}
	return f, nil
}

// MapType resolves a single non-array type token against the wire-type
// table, passing unknown tokens through unchanged.
func MapType(token string) string {
	if mapped, ok := wireTypes[token]; ok {
		return mapped
	}
	return token
}

// isArray reports whether a type token carries the fixed-array marker.
// The only array type in the language is the fixed-size byte array.
func isArray(token string) bool {
	return strings.ContainsAny(token, "<>")
}

// arraySize recovers the element count from a byte<N> token by stripping
// every non-digit character.
func arraySize(token string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, token)
	if digits == "" {
		return 0, fmt.Errorf("array token %q has no size", token)
	}
	return strconv.Atoi(digits)
}

// SnakeCase converts an identifier to snake_case: giftId -> gift_id,
// AccountId -> account_id. The conversion is idempotent: feeding the
// output back in returns it unchanged.
func SnakeCase(ident string) string {
	var b strings.Builder
	b.Grow(len(ident) + 4)

	runes := []rune(ident)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prev := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			next := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prev || next {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
