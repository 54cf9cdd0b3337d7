package lang

import "regexp"

func init() {
	Register(&Profile{
		Name:        "python",
		Extensions:  []string{".py"},
		LineComment: []string{"#"},
		Blocks:      BlockIndent,
		Entities: []EntityPattern{
			{Kind: EntityFunction, Re: regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)\s*\(`)},
			{Kind: EntityClass, Re: regexp.MustCompile(`^\s*class\s+(\w+)\s*[:(]`)},
		},
		Import:         regexp.MustCompile(`^\s*(?:from\s+([\w.]+)\s+import\b|import\s+([\w.]+))`),
		DecisionPoints: regexp.MustCompile(`\b(?:if|elif|for|while|except|case)\b|\band\b|\bor\b`),
		EntryPoint:     regexp.MustCompile(`if\s+__name__\s*==`),
	})
}
