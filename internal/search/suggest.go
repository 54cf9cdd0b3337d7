package search

import "strings"

// defaultSuggestions are starter questions shown when the caller has no
// query yet.
var defaultSuggestions = []string{
	"What is the main purpose of this project?",
	"How do I set up and install this project?",
	"What are the key functions in this codebase?",
	"What programming languages are used?",
	"What external dependencies does this project use?",
	"How is the project structured?",
	"Are there any tests in this project?",
	"What design patterns are used?",
	"How do I run this application?",
	"What are the main classes and their purposes?",
}

// maxSuggestions bounds the returned list.
const maxSuggestions = 5

// Suggestions returns starter questions, filtered by words of an
// optional partial query.
func Suggestions(partial string) []string {
	if strings.TrimSpace(partial) == "" {
		return defaultSuggestions[:maxSuggestions]
	}

	words := strings.Fields(strings.ToLower(partial))
	var filtered []string
	for _, s := range defaultSuggestions {
		low := strings.ToLower(s)
		for _, w := range words {
			if strings.Contains(low, w) {
				filtered = append(filtered, s)
				break
			}
		}
	}
	if len(filtered) == 0 {
		filtered = defaultSuggestions
	}
	if len(filtered) > maxSuggestions {
		filtered = filtered[:maxSuggestions]
	}
	return filtered
}
