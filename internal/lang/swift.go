package lang

import "regexp"

func init() {
	Register(&Profile{
		Name:              "swift",
		Extensions:        []string{".swift"},
		LineComment:       []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		Blocks:            BlockBraces,
		Entities: []EntityPattern{
			{Kind: EntityFunction, Re: regexp.MustCompile(`^\s*(?:public|private|internal|open)?\s*(?:static\s+)?func\s+(\w+)\s*\(`)},
			{Kind: EntityClass, Re: regexp.MustCompile(`^\s*(?:public|private|internal|open)?\s*(?:final\s+)?class\s+(\w+)`)},
			{Kind: EntityInterface, Re: regexp.MustCompile(`^\s*(?:public\s+)?protocol\s+(\w+)`)},
		},
		Import:         regexp.MustCompile(`^\s*import\s+(\w+)`),
		DecisionPoints: regexp.MustCompile(`\b(?:if|for|while|switch|case|guard|catch)\b|&&|\|\|`),
	})
}
