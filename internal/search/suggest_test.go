package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for query suggestions:
// - Empty input returns the starter set, bounded
// - Word filtering keeps only matching suggestions
// - No-match input falls back to the starter set

func TestSuggestions_Default(t *testing.T) {
	t.Parallel()

	got := Suggestions("")
	require.Len(t, got, maxSuggestions)
	assert.Equal(t, defaultSuggestions[0], got[0])

	assert.Equal(t, got, Suggestions("   "))
}

func TestSuggestions_Filtered(t *testing.T) {
	t.Parallel()

	got := Suggestions("tests")
	require.NotEmpty(t, got)
	for _, s := range got {
		assert.Contains(t, strings.ToLower(s), "tests")
	}
	assert.LessOrEqual(t, len(got), maxSuggestions)
}

func TestSuggestions_NoMatchFallsBack(t *testing.T) {
	t.Parallel()

	got := Suggestions("zzzz")
	assert.Len(t, got, maxSuggestions)
}
