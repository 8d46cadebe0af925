package words

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordlistShape(t *testing.T) {
	all := All()
	require.Len(t, all, 256)
	seen := map[string]bool{}
	for _, w := range all {
		require.GreaterOrEqual(t, len(w), 3, "word %q too short", w)
		require.Equal(t, strings.ToLower(w), w, "word %q not lowercase", w)
		require.False(t, seen[w], "duplicate word %q", w)
		seen[w] = true
	}
}

func TestGeneratePhrase(t *testing.T) {
	phrase, err := GeneratePhrase()
	require.NoError(t, err)
	tokens := strings.Fields(phrase)
	require.Len(t, tokens, PhraseLength)
	known := map[string]bool{}
	for _, w := range All() {
		known[w] = true
	}
	for _, tok := range tokens {
		require.True(t, known[tok], "token %q not in wordlist", tok)
	}
}

func TestGeneratePhraseVaries(t *testing.T) {
	a, err := GeneratePhrase()
	require.NoError(t, err)
	b, err := GeneratePhrase()
	require.NoError(t, err)
	// 12 draws from 256 words; a collision here means the RNG is broken.
	require.NotEqual(t, a, b)
}

func TestSuggest(t *testing.T) {
	got := Suggest("mapel", 3)
	require.NotEmpty(t, got)
	require.Equal(t, "maple", got[0])

	// exact match: nothing to suggest
	require.Nil(t, Suggest("maple", 3))

	// garbage should not match anything
	require.Empty(t, Suggest("qqqqqqqqqq", 3))

	require.Nil(t, Suggest("", 3))
	require.Nil(t, Suggest("maple", 0))
}

func TestSuggestOrdering(t *testing.T) {
	got := Suggest("cedat", 5)
	require.NotEmpty(t, got)
	require.Equal(t, "cedar", got[0], "closest word should come first")
}

func TestSuggestBreaksTiesByPrefix(t *testing.T) {
	// "mapel" is distance 2 from both "maple" and "hazel"; the shared
	// "map" prefix must put maple first.
	got := Suggest("mapel", 3)
	require.NotEmpty(t, got)
	require.Equal(t, "maple", got[0])
	for _, w := range got[1:] {
		require.NotEqual(t, "maple", w)
	}
}
