package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIdentity_QuotingVariants(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`<p data-line="4">text</p>`, `<p data-line="4">text</p>`},
		{`<p data-line='4'>text</p>`, `<p data-line="4">text</p>`},
		{`<p data-line=4>text</p>`, `<p data-line="4">text</p>`},
		{`<p data-line=\"4\">text</p>`, `<p data-line="4">text</p>`},
		{`<p DATA-LINE="4">text</p>`, `<p data-line="4">text</p>`},
		{`<p data-line = "4">text</p>`, `<p data-line="4">text</p>`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeIdentity(tc.in), "input: %s", tc.in)
	}
}

func TestNormalizeIdentity_Idempotent(t *testing.T) {
	line := `<p data-line=\"12\">text</p>`
	once := NormalizeIdentity(line)
	assert.Equal(t, once, NormalizeIdentity(once))
}

func TestExtractIdentity(t *testing.T) {
	assert.Equal(t, 42, ExtractIdentity(`<p data-line="42">text</p>`))
	assert.Equal(t, 7, ExtractIdentity(`<p data-line=7>text</p>`))
	assert.Equal(t, NoIdentity, ExtractIdentity(`<p>text</p>`))
	assert.Equal(t, NoIdentity, ExtractIdentity("plain text"))
}

func TestExtractText(t *testing.T) {
	assert.Equal(t, "こんにちは", ExtractText(`<p data-line="3">こんにちは</p>`))
	assert.Equal(t, "", ExtractText("no tags here"))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "hello", StripTags(`<p data-line="1"> hello </p>`))
	assert.Equal(t, "", StripTags(`<p data-line="1"></p>`))
}

func TestFindTaggedLines_NormalizesAndOrders(t *testing.T) {
	text := "prose before\n" +
		`<p data-line=\"1\">你好</p>` + "\n" +
		"interleaved prose\n" +
		`<p data-line='2'>世界</p>` + "\n"

	lines := FindTaggedLines(text)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Identity)
	assert.Equal(t, `<p data-line="1">你好</p>`, lines[0].Markup)
	assert.Equal(t, 2, lines[1].Identity)
	assert.Equal(t, `<p data-line="2">世界</p>`, lines[1].Markup)
}

func TestNeedsTranslation(t *testing.T) {
	assert.True(t, NeedsTranslation(JaToZhHant, `<p data-line="1">こんにちは</p>`))
	assert.True(t, NeedsTranslation(JaToZhHant, `<p data-line="1">the world</p>`))
	assert.False(t, NeedsTranslation(JaToZhHant, `<p data-line="1">你好</p>`))
	assert.False(t, NeedsTranslation(JaToZhHant, `<p data-line="1"></p>`))
	assert.True(t, NeedsTranslation(EnToZhHant, `<p data-line="1">Hello there</p>`))
	assert.False(t, NeedsTranslation(EnToZhHant, `<p data-line="1">你好</p>`))
}
