package lang

import "regexp"

// cProfile builds the shared C/C++ profile.
func cProfile(name string, extensions []string, entities []EntityPattern) *Profile {
	return &Profile{
		Name:              name,
		Extensions:        extensions,
		LineComment:       []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		Blocks:            BlockBraces,
		Entities:          entities,
		Import:            regexp.MustCompile(`^\s*#\s*include\s*[<"]([^>"]+)[>"]`),
		DecisionPoints:    regexp.MustCompile(`\b(?:if|for|while|switch|case|catch)\b|&&|\|\|`),
		EntryPoint:        regexp.MustCompile(`\bint\s+main\s*\(`),
	}
}

func init() {
	Register(cProfile("c", []string{".c", ".h"}, []EntityPattern{
		{Kind: EntityFunction, Re: regexp.MustCompile(`^[\w*\s]+?\b(\w+)\s*\([^;]*\)\s*\{`)},
		{Kind: EntityClass, Re: regexp.MustCompile(`^\s*(?:typedef\s+)?struct\s+(\w+)`)},
	}))
	Register(cProfile("cpp", []string{".cpp", ".cc", ".cxx", ".hpp"}, []EntityPattern{
		{Kind: EntityFunction, Re: regexp.MustCompile(`^[\w*&:<>,\s]+?\b([\w~]+)\s*\([^;]*\)\s*(?:const\s*)?\{`)},
		{Kind: EntityClass, Re: regexp.MustCompile(`^\s*class\s+(\w+)`)},
	}))
}
