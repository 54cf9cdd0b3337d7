// Package lang provides a registry of language profiles: the lexical
// rules (comment markers, entity declaration patterns, import syntax)
// used for pattern-driven extraction without a full parser front-end.
package lang

import "regexp"

// BlockStyle describes how a language delimits nested blocks.
type BlockStyle int

const (
	// BlockBraces means blocks are delimited by { and }.
	BlockBraces BlockStyle = iota
	// BlockIndent means blocks are delimited by indentation (Python style).
	BlockIndent
)

// EntityKind classifies an extracted structural unit.
type EntityKind string

const (
	EntityFunction  EntityKind = "function"
	EntityClass     EntityKind = "class"
	EntityModule    EntityKind = "module"
	EntityInterface EntityKind = "interface"
	EntityVariable  EntityKind = "variable"
)

// EntityPattern matches one kind of declaration. The entity name is the
// first non-empty capture group of the regexp.
type EntityPattern struct {
	Kind EntityKind
	Re   *regexp.Regexp
}

// Profile holds the lexical rules for one language. Profiles are
// immutable after registration and safe for concurrent use.
type Profile struct {
	Name       string
	Extensions []string

	LineComment       []string
	BlockCommentOpen  string
	BlockCommentClose string

	Blocks   BlockStyle
	Entities []EntityPattern

	// Import matches one import statement per line; the imported
	// module/path is the first non-empty capture group.
	Import *regexp.Regexp

	// DecisionPoints matches the tokens that increment cyclomatic
	// complexity (branches, loops, short-circuit operators, handlers).
	DecisionPoints *regexp.Regexp

	// EntryPoint matches a declaration line that follows the language's
	// main/bootstrap convention.
	EntryPoint *regexp.Regexp
}

// Name extracts the entity name from a declaration match: the first
// non-empty capture group, mirroring how alternative declaration forms
// share one pattern.
func (p EntityPattern) Name(match []string) string {
	for _, g := range match[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
