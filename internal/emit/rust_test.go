package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamforge/langgen/internal/steamd"
)

// Test Plan for the Rust renderer:
// - One pub struct per class, fields in declaration order
// - Wire-type strings are used verbatim, arrays and pass-through included
// - An empty schema renders only the header

func giftSchema() *steamd.Schema {
	return &steamd.Schema{Classes: []steamd.Class{{
		Name: "MsgClientGift",
		Fields: []steamd.Field{
			{Name: "gift_id", WireType: "u64"},
			{Name: "gift_type", WireType: "[u8; 10]", IsArray: true, ArraySize: 10},
			{Name: "account_id", WireType: "u32"},
			{Name: "steam_id", WireType: "steamidmarshal"},
		},
	}}}
}

func TestRustRenderer_VerbatimWireTypes(t *testing.T) {
	t.Parallel()

	out, err := NewRustRenderer().Render(giftSchema())
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "pub struct MsgClientGift {")
	assert.Contains(t, src, "    pub gift_id: u64,\n")
	assert.Contains(t, src, "    pub gift_type: [u8; 10],\n")
	assert.Contains(t, src, "    pub account_id: u32,\n")
	assert.Contains(t, src, "    pub steam_id: steamidmarshal,\n")

	// Field order must match declaration order.
	assert.Less(t, strings.Index(src, "gift_id"), strings.Index(src, "gift_type"))
	assert.Less(t, strings.Index(src, "gift_type"), strings.Index(src, "account_id"))
}

func TestRustRenderer_EmptySchema(t *testing.T) {
	t.Parallel()

	out, err := NewRustRenderer().Render(&steamd.Schema{})
	require.NoError(t, err)
	assert.Equal(t, "// Generated by langgen. Do not edit.\n", string(out))
}
