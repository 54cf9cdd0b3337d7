package lang

import "regexp"

func init() {
	Register(&Profile{
		Name:              "php",
		Extensions:        []string{".php"},
		LineComment:       []string{"//", "#"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		Blocks:            BlockBraces,
		Entities: []EntityPattern{
			{Kind: EntityFunction, Re: regexp.MustCompile(`^\s*(?:public|private|protected)?\s*(?:static\s+)?function\s+(\w+)\s*\(`)},
			{Kind: EntityClass, Re: regexp.MustCompile(`^\s*(?:abstract\s+|final\s+)?class\s+(\w+)`)},
			{Kind: EntityInterface, Re: regexp.MustCompile(`^\s*interface\s+(\w+)`)},
		},
		Import:         regexp.MustCompile(`(?:require|include)(?:_once)?\s*\(?\s*['"]([^'"]+)['"]|^\s*use\s+([\w\\]+)`),
		DecisionPoints: regexp.MustCompile(`\b(?:if|elseif|for|foreach|while|switch|case|catch)\b|&&|\|\|`),
	})
}
