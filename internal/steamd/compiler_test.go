package steamd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the compiler:
// - A well-formed document compiles classes and fields in source order
// - The documented end-to-end body yields the documented pairs
// - A document with zero class keywords compiles to an empty schema
// - Malformed declarations are skipped, counted, and reported through
//   the diagnostic hook, never fatal
// - Non-UTF-8 input is the single hard-stop failure
// - Stats distinguishes pass-through and array fields

func TestCompile_EndToEnd(t *testing.T) {
	t.Parallel()

	doc := "class MsgClientGift<EMsg::ClientGift>\r\n{\r\n" +
		"\tulong giftId;\r\n\tbyte giftType;\r\n\tuint accountId;\r\n};\r\n"

	c := NewCompiler(nil)
	schema, err := c.Compile([]byte(doc))
	require.NoError(t, err)
	require.Len(t, schema.Classes, 1)

	cls := schema.Classes[0]
	assert.Equal(t, "MsgClientGift", cls.Name)
	require.Len(t, cls.Fields, 3)
	assert.Equal(t, Field{Name: "gift_id", WireType: "u64"}, cls.Fields[0])
	assert.Equal(t, Field{Name: "gift_type", WireType: "u8"}, cls.Fields[1])
	assert.Equal(t, Field{Name: "account_id", WireType: "u32"}, cls.Fields[2])
}

func TestCompile_MultipleClassesInDocumentOrder(t *testing.T) {
	t.Parallel()

	doc := "class MsgA<EMsg::A>\r\n{\r\n\tulong first;\r\n};\r\n" +
		"class MsgB<EMsg::B>\r\n{\r\n\tuint second;\r\n};\r\n" +
		"class MsgC<EMsg::C>\r\n{\r\n\tshort third;\r\n};\r\n"

	c := NewCompiler(nil)
	schema, err := c.Compile([]byte(doc))
	require.NoError(t, err)
	require.Len(t, schema.Classes, 3)
	assert.Equal(t, "MsgA", schema.Classes[0].Name)
	assert.Equal(t, "MsgB", schema.Classes[1].Name)
	assert.Equal(t, "MsgC", schema.Classes[2].Name)
	assert.Equal(t, 3, c.Stats().Classes)
	assert.Equal(t, 3, c.Stats().Fields)
}

func TestCompile_NoClasses(t *testing.T) {
	t.Parallel()

	c := NewCompiler(nil)
	schema, err := c.Compile([]byte("#import \"emsg\"\r\n// nothing else\r\n"))
	require.NoError(t, err)
	assert.Empty(t, schema.Classes)
	assert.Equal(t, Stats{}, c.Stats())
}

func TestCompile_MalformedDeclarationSkipped(t *testing.T) {
	t.Parallel()

	doc := "class MsgBroken<EMsg::Broken>\r\n{\r\n" +
		"\tulong giftId;\r\n\tdangling;\r\n\tuint accountId;\r\n};\r\n"

	var reports []Diagnostic
	c := NewCompiler(func(d Diagnostic) { reports = append(reports, d) })

	schema, err := c.Compile([]byte(doc))
	require.NoError(t, err)
	require.Len(t, schema.Classes, 1)
	assert.Len(t, schema.Classes[0].Fields, 2, "malformed declaration must be dropped, not fatal")

	assert.Equal(t, 1, c.Stats().Skipped)
	require.Len(t, reports, 1)
	assert.Equal(t, "MsgBroken", reports[0].Class)
	assert.Equal(t, "dangling", reports[0].Raw)
	assert.Error(t, reports[0].Err)
}

func TestCompile_InvalidUTF8IsFatal(t *testing.T) {
	t.Parallel()

	c := NewCompiler(nil)
	_, err := c.Compile([]byte{'c', 'l', 0xff, 0xfe, 'a'})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestCompile_TestdataCorpus(t *testing.T) {
	t.Parallel()

	doc, err := os.ReadFile(filepath.Join("..", "..", "testdata", "steammsg.steamd"))
	require.NoError(t, err)

	c := NewCompiler(nil)
	schema, err := c.Compile(doc)
	require.NoError(t, err)
	require.Len(t, schema.Classes, 5)

	assert.Equal(t, "MsgChannelEncryptRequest", schema.Classes[0].Name)
	require.Len(t, schema.Classes[0].Fields, 2)
	assert.Equal(t, Field{Name: "protocol_version", WireType: "u32"}, schema.Classes[0].Fields[0])

	login := schema.Classes[3]
	assert.Equal(t, "MsgClientNewLoginKey", login.Name)
	require.Len(t, login.Fields, 2)
	assert.Equal(t, Field{Name: "login_key", WireType: "[u8; 20]", IsArray: true, ArraySize: 20}, login.Fields[1])

	// Only the first two tokens of a declaration are consulted, so a
	// modifier prefix swallows the real name.
	guest := schema.Classes[4]
	assert.Equal(t, Field{Name: "ulong", WireType: "steamidmarshal"}, guest.Fields[0])

	assert.Equal(t, 0, c.Stats().Skipped)
}

func TestCompile_StatsClassifiesFields(t *testing.T) {
	t.Parallel()

	doc := "class MsgMixed<EMsg::Mixed>\r\n{\r\n" +
		"\tulong plain;\r\n\tbyte<16> blob;\r\n\tsteamidmarshal ref;\r\n};\r\n"

	c := NewCompiler(nil)
	_, err := c.Compile([]byte(doc))
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, 3, stats.Fields)
	assert.Equal(t, 1, stats.ArrayFields)
	assert.Equal(t, 1, stats.PassThrough)
	assert.Equal(t, 0, stats.Skipped)
}

func TestCompile_StatsHandleTabSeparatedDeclarations(t *testing.T) {
	t.Parallel()

	// A tab between type and name parses fine, and the stats must
	// classify it off the same tokenization.
	doc := "class MsgTabbed<EMsg::Tabbed>\r\n{\r\n\tulong\tgiftId;\r\n};\r\n"

	c := NewCompiler(nil)
	schema, err := c.Compile([]byte(doc))
	require.NoError(t, err)
	require.Len(t, schema.Classes, 1)
	assert.Equal(t, Field{Name: "gift_id", WireType: "u64"}, schema.Classes[0].Fields[0])

	assert.Equal(t, 0, c.Stats().PassThrough, "known type must not count as pass-through")
	assert.Equal(t, 1, c.Stats().Fields)
}
