package lang

import "regexp"

func init() {
	Register(&Profile{
		Name:              "rust",
		Extensions:        []string{".rs"},
		LineComment:       []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		Blocks:            BlockBraces,
		Entities: []EntityPattern{
			{Kind: EntityFunction, Re: regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?fn\s+(\w+)\s*[(<]`)},
			{Kind: EntityClass, Re: regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?struct\s+(\w+)`)},
			{Kind: EntityInterface, Re: regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?trait\s+(\w+)`)},
			{Kind: EntityModule, Re: regexp.MustCompile(`^\s*(?:pub\s+)?mod\s+(\w+)`)},
		},
		Import:         regexp.MustCompile(`^\s*use\s+([\w:]+)`),
		DecisionPoints: regexp.MustCompile(`\b(?:if|for|while|match|loop)\b|&&|\|\|`),
		EntryPoint:     regexp.MustCompile(`^fn\s+main\s*\(`),
	})
}
