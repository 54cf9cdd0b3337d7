// Package search builds a term-weighted sparse vector index over
// document chunks and ranks them against natural-language queries. The
// scheme is deterministic TF-IDF with cosine similarity: reproducible
// with no model downloads and no network access.
package search

import (
	"regexp"
	"strings"
	"unicode"
)

var wordPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// stopwords is a fixed exclusion list of terms too common in either
// English prose or source code to carry ranking signal.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "do": true, "does": true,
	"for": true, "from": true, "hi": true, "how": true, "i": true,
	"in": true, "is": true, "it": true, "of": true, "on": true,
	"or": true, "that": true, "the": true, "this": true, "to": true,
	"was": true, "what": true, "when": true, "where": true,
	"which": true, "why": true, "with": true,
	// code noise
	"var": true, "val": true, "let": true, "const": true, "func": true,
	"def": true, "fn": true, "return": true, "if": true, "else": true,
	"nil": true, "null": true, "true": true, "false": true,
	"self": true, "new": true, "int": true, "str": true, "string": true,
}

// Tokenize produces case-folded word tokens, excluding stopwords, and
// additionally splits identifiers on case and underscore boundaries so
// getUserName contributes get, user, name, and the whole token. This
// sub-token expansion is what makes code searchable by prose queries.
func Tokenize(text string) []string {
	var tokens []string
	for _, word := range wordPattern.FindAllString(text, -1) {
		whole := strings.ToLower(word)
		if keep(whole) {
			tokens = append(tokens, whole)
		}
		for _, sub := range splitIdentifier(word) {
			sub = strings.ToLower(sub)
			if sub != whole && keep(sub) {
				tokens = append(tokens, sub)
			}
		}
	}
	return tokens
}

func keep(token string) bool {
	return len(token) > 1 && !stopwords[token]
}

// splitIdentifier cuts an identifier at underscores and camel-case
// boundaries. Acronym runs stay together: HTTPServer yields HTTP and
// Server.
func splitIdentifier(word string) []string {
	var parts []string
	for _, piece := range strings.Split(word, "_") {
		parts = append(parts, splitCamel(piece)...)
	}
	if len(parts) == 1 {
		return nil // no boundary found, whole token already emitted
	}
	return parts
}

func splitCamel(piece string) []string {
	if piece == "" {
		return nil
	}
	runes := []rune(piece)
	var parts []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := false
		if unicode.IsUpper(cur) && unicode.IsLower(prev) {
			boundary = true
		} else if i+1 < len(runes) && unicode.IsUpper(prev) && unicode.IsUpper(cur) && unicode.IsLower(runes[i+1]) {
			boundary = true
		}
		if boundary {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	parts = append(parts, string(runes[start:]))
	return parts
}
