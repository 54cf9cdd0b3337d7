package lang

import "regexp"

func init() {
	// Ruby delimits blocks with def/end rather than braces; indentation
	// tracking is the closest best-effort fit for block bounds.
	Register(&Profile{
		Name:        "ruby",
		Extensions:  []string{".rb", ".rake"},
		LineComment: []string{"#"},
		Blocks:      BlockIndent,
		Entities: []EntityPattern{
			{Kind: EntityFunction, Re: regexp.MustCompile(`^\s*def\s+([\w?!]+)`)},
			{Kind: EntityClass, Re: regexp.MustCompile(`^\s*class\s+(\w+)`)},
			{Kind: EntityModule, Re: regexp.MustCompile(`^\s*module\s+(\w+)`)},
		},
		Import:         regexp.MustCompile(`^\s*require(?:_relative)?\s+['"]([^'"]+)['"]`),
		DecisionPoints: regexp.MustCompile(`\b(?:if|elsif|unless|while|until|case|when|rescue)\b|&&|\|\|`),
	})
}
