package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for tokenization:
// - Identifiers split on camel-case and underscore boundaries
// - The whole identifier is emitted alongside its sub-tokens
// - Acronym runs stay intact
// - Stopwords and single-character tokens are excluded
// - Case folding

func TestTokenize_CamelCase(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("getUserName")
	assert.Equal(t, []string{"getusername", "get", "user", "name"}, tokens)
}

func TestTokenize_Underscores(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("parse_config_file")
	assert.Equal(t, []string{"parse_config_file", "parse", "config", "file"}, tokens)
}

func TestTokenize_AcronymRuns(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("HTTPServer")
	assert.Equal(t, []string{"httpserver", "http", "server"}, tokens)
}

func TestTokenize_StopwordsExcluded(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("what is the login function for")
	assert.Equal(t, []string{"login", "function"}, tokens)
}

func TestTokenize_ShortTokensExcluded(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("x = f(y)")
	assert.Empty(t, tokens)
}

func TestTokenize_NoBoundaryEmitsOnce(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("database")
	assert.Equal(t, []string{"database"}, tokens)
}

func TestTokenize_MixedCodeLine(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("def authenticate_user(password):")
	assert.Contains(t, tokens, "authenticate")
	assert.Contains(t, tokens, "user")
	assert.Contains(t, tokens, "password")
	assert.NotContains(t, tokens, "def")
}
