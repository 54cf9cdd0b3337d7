package lang

import "regexp"

func init() {
	Register(&Profile{
		Name:              "java",
		Extensions:        []string{".java"},
		LineComment:       []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		Blocks:            BlockBraces,
		Entities: []EntityPattern{
			{Kind: EntityFunction, Re: regexp.MustCompile(`^\s*(?:public|private|protected)\s+(?:static\s+)?(?:final\s+)?[\w<>\[\],\s]+?\s(\w+)\s*\([^)]*\)\s*(?:throws\s+[\w,\s]+)?\{`)},
			{Kind: EntityClass, Re: regexp.MustCompile(`^\s*(?:public|private|protected)?\s*(?:abstract\s+|final\s+)?class\s+(\w+)`)},
			{Kind: EntityInterface, Re: regexp.MustCompile(`^\s*(?:public\s+)?interface\s+(\w+)`)},
		},
		Import:         regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+(?:\.\*)?)\s*;`),
		DecisionPoints: regexp.MustCompile(`\b(?:if|for|while|switch|case|catch)\b|&&|\|\|`),
		EntryPoint:     regexp.MustCompile(`public\s+static\s+void\s+main\s*\(`),
	})

	Register(&Profile{
		Name:              "kotlin",
		Extensions:        []string{".kt", ".kts"},
		LineComment:       []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		Blocks:            BlockBraces,
		Entities: []EntityPattern{
			{Kind: EntityFunction, Re: regexp.MustCompile(`^\s*(?:public|private|protected|internal)?\s*fun\s+(\w+)\s*\(`)},
			{Kind: EntityClass, Re: regexp.MustCompile(`^\s*(?:open\s+|final\s+|abstract\s+|data\s+)?class\s+(\w+)`)},
			{Kind: EntityInterface, Re: regexp.MustCompile(`^\s*interface\s+(\w+)`)},
		},
		Import:         regexp.MustCompile(`^\s*import\s+([\w.]+(?:\.\*)?)`),
		DecisionPoints: regexp.MustCompile(`\b(?:if|for|while|when|catch)\b|&&|\|\|`),
		EntryPoint:     regexp.MustCompile(`^fun\s+main\s*\(`),
	})
}
