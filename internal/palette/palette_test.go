package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagestudio/internal/catalog"
	"imagestudio/internal/domain"
)

func TestExtractEmptyPromptIsNonEmpty(t *testing.T) {
	got := NewExtractor(catalog.Default()).Extract("", "")
	require.NotEmpty(t, got)
	assert.Len(t, got, 3)
}

func TestExtractKeepsTableOrder(t *testing.T) {
	ex := NewExtractor(catalog.Default())
	got := ex.Extract("a BLUE sky over a Red barn", "realistic")
	require.Len(t, got, 2)
	assert.Equal(t, domain.RGB{R: 200, G: 50, B: 50}, got[0], "red precedes blue regardless of input order")
	assert.Equal(t, domain.RGB{R: 50, G: 100, B: 200}, got[1])
}

func TestExtractBilingualTokensShareColour(t *testing.T) {
	ex := NewExtractor(catalog.Default())
	assert.Equal(t, ex.Extract("红色的花", ""), ex.Extract("a red flower", ""))
}

func TestExtractDeduplicatesPerColour(t *testing.T) {
	got := NewExtractor(catalog.Default()).Extract("grey and gray and 灰", "")
	require.Len(t, got, 1)
	assert.Equal(t, "grey", Family(got[0]))
}

func TestExtractFallsBackToStylePalette(t *testing.T) {
	reg := catalog.Default()
	got := NewExtractor(reg).Extract("a quiet street", "cyberpunk")
	assert.Equal(t, reg.StylePalette("cyberpunk"), got)
}

func TestFamily(t *testing.T) {
	assert.Equal(t, "red", Family(domain.RGB{R: 200, G: 50, B: 50}))
	assert.Equal(t, "", Family(domain.RGB{R: 1, G: 2, B: 3}))
}

func TestMatchLatinTokensNeedWordBoundaries(t *testing.T) {
	ex := NewExtractor(catalog.Default())
	for _, prompt := range []string{"a sacred place", "a hundred birds", "steal the show", "bluebird-free skyline"} {
		assert.Empty(t, ex.Match(prompt), prompt)
	}

	got := ex.Match("red, teal; (blue)")
	require.Len(t, got, 3)
	assert.Equal(t, "red", Family(got[0]))
	assert.Equal(t, "blue", Family(got[1]))
	assert.Equal(t, "teal", Family(got[2]))

	assert.Len(t, ex.Match("红red"), 1, "adjacent Han text is a boundary")
	assert.Len(t, ex.Match("鲜红色"), 1, "Han tokens still match inside words")
}
