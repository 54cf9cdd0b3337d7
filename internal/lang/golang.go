package lang

import "regexp"

func init() {
	Register(&Profile{
		Name:              "go",
		Extensions:        []string{".go"},
		LineComment:       []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		Blocks:            BlockBraces,
		Entities: []EntityPattern{
			{Kind: EntityFunction, Re: regexp.MustCompile(`^func\s+(?:\([^)]*\)\s+)?(\w+)\s*\(`)},
			{Kind: EntityClass, Re: regexp.MustCompile(`^type\s+(\w+)\s+struct\b`)},
			{Kind: EntityInterface, Re: regexp.MustCompile(`^type\s+(\w+)\s+interface\b`)},
			{Kind: EntityVariable, Re: regexp.MustCompile(`^(?:var|const)\s+(\w+)\b`)},
		},
		Import:         regexp.MustCompile(`^\s*(?:import\s+)?(?:[\w.]+\s+)?"([^"]+)"\s*$`),
		DecisionPoints: regexp.MustCompile(`\b(?:if|for|switch|case|select)\b|&&|\|\|`),
		EntryPoint:     regexp.MustCompile(`^func\s+main\s*\(`),
	})
}
