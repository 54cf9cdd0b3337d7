package lang

import "regexp"

// jsProfile builds the shared JavaScript/TypeScript profile. The two
// languages differ only in name and extensions for extraction purposes.
func jsProfile(name string, extensions []string) *Profile {
	return &Profile{
		Name:              name,
		Extensions:        extensions,
		LineComment:       []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		Blocks:            BlockBraces,
		Entities: []EntityPattern{
			{Kind: EntityFunction, Re: regexp.MustCompile(`(?:^|\s)function\s+(\w+)\s*\(|^\s*(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>)`)},
			{Kind: EntityClass, Re: regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?class\s+(\w+)`)},
			{Kind: EntityInterface, Re: regexp.MustCompile(`^\s*(?:export\s+)?interface\s+(\w+)`)},
		},
		Import:         regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]|import\s+['"]([^'"]+)['"]|require\(\s*['"]([^'"]+)['"]`),
		DecisionPoints: regexp.MustCompile(`\b(?:if|for|while|switch|case|catch)\b|&&|\|\|`),
	}
}

func init() {
	Register(jsProfile("javascript", []string{".js", ".jsx", ".mjs"}))
	Register(jsProfile("typescript", []string{".ts", ".tsx"}))
}
