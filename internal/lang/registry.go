package lang

import "strings"

// Languages maps language name to its profile. Populated by the
// per-language init functions in this package; read-only afterwards.
var Languages = map[string]*Profile{}

// byExtension maps a lowercase file extension (including the dot) to
// its profile.
var byExtension = map[string]*Profile{}

// Register adds a profile to the registry. Called from init only.
func Register(p *Profile) {
	Languages[p.Name] = p
	for _, ext := range p.Extensions {
		byExtension[strings.ToLower(ext)] = p
	}
}

// ByName returns the profile for a language tag.
func ByName(name string) (*Profile, bool) {
	p, ok := Languages[strings.ToLower(name)]
	return p, ok
}

// ByExtension returns the profile for a file extension like ".py".
func ByExtension(ext string) (*Profile, bool) {
	p, ok := byExtension[strings.ToLower(ext)]
	return p, ok
}

// Detect returns the language name for a file path, or "" when the
// extension is not registered. Unregistered files are still indexed as
// opaque text; they just contribute no entities.
func Detect(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return ""
	}
	if p, ok := ByExtension(path[idx:]); ok {
		return p.Name
	}
	return ""
}
