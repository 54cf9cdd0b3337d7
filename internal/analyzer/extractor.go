package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/askrepo/askrepo/internal/lang"
)

// maxSignatureLookahead bounds how many continuation lines a multi-line
// declaration signature may span before we give up looking for the
// block-open token.
const maxSignatureLookahead = 3

// callPattern matches call-like identifiers used to collect best-effort
// entity references from body lines.
var callPattern = regexp.MustCompile(`([A-Za-z_]\w*)\s*\(`)

// refKeywords are call-shaped tokens that are never entity references.
var refKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "case": true,
	"catch": true, "return": true, "func": true, "fn": true, "def": true,
	"function": true, "new": true, "match": true, "select": true,
	"when": true, "until": true, "unless": true, "guard": true,
}

// maxReferences caps collected references per entity.
const maxReferences = 10

// openEntity tracks an entity whose block has not closed yet.
type openEntity struct {
	idx        int  // arena index
	preDepth   int  // brace depth before the declaration's block opened
	declIndent int  // leading-whitespace width of the declaration line
	declLine   int  // 1-based line of the declaration
	sawOpen    bool // block-open token seen (brace languages)
}

// extractState carries scan state across lines of one file.
type extractState struct {
	file    SourceFile
	profile *lang.Profile

	entities []CodeEntity
	imports  []ImportEdge
	diags    []Diagnostic

	open       []openEntity
	braceDepth int
	inBlock    bool // inside a block comment
}

// Extract runs pattern-driven extraction over one file. It never fails
// the run: malformed input degrades to diagnostics and the entities
// recovered so far. Output order is deterministic (first appearance).
func Extract(file SourceFile, profile *lang.Profile) (entities []CodeEntity, imports []ImportEdge, diags []Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			entities = nil
			imports = nil
			diags = []Diagnostic{{
				File:    file.Path,
				Message: fmt.Sprintf("extraction failed: %v", r),
			}}
		}
	}()

	st := &extractState{file: file, profile: profile}
	lines := strings.Split(file.Content, "\n")

	offset := 0
	for i, raw := range lines {
		lineNo := i + 1
		lineEnd := offset + len(raw)

		code := st.stripComments(raw)
		trimmed := strings.TrimSpace(code)

		// Close indent-delimited blocks before matching new declarations.
		if profile.Blocks == lang.BlockIndent && trimmed != "" {
			st.closeByIndent(indentWidth(raw), lineNo, offset)
		}

		if trimmed != "" {
			st.matchImport(code)
			st.matchDeclaration(lines, i, code, offset, lineNo)
			st.collectReferences(code)
		}

		if profile.Blocks == lang.BlockBraces {
			st.countBraces(code, lineNo, lineEnd)
		}

		offset = lineEnd + 1 // past the newline
	}

	st.closeAll(len(lines), len(file.Content))
	if profile.Blocks == lang.BlockBraces && st.braceDepth != 0 {
		st.diags = append(st.diags, Diagnostic{
			File:    file.Path,
			Message: fmt.Sprintf("unbalanced blocks: %d unclosed at end of file", st.braceDepth),
		})
	}

	return st.entities, st.imports, st.diags
}

// stripComments removes comment text from a line so that entity and
// brace scanning only sees code. Best-effort: string literals containing
// comment markers are not distinguished.
func (st *extractState) stripComments(line string) string {
	p := st.profile

	if st.inBlock {
		if p.BlockCommentClose == "" {
			return ""
		}
		end := strings.Index(line, p.BlockCommentClose)
		if end < 0 {
			return ""
		}
		st.inBlock = false
		line = line[end+len(p.BlockCommentClose):]
	}

	if p.BlockCommentOpen != "" {
		if start := strings.Index(line, p.BlockCommentOpen); start >= 0 {
			rest := line[start+len(p.BlockCommentOpen):]
			if end := strings.Index(rest, p.BlockCommentClose); end >= 0 {
				line = line[:start] + rest[end+len(p.BlockCommentClose):]
			} else {
				st.inBlock = true
				line = line[:start]
			}
		}
	}

	for _, marker := range p.LineComment {
		if idx := strings.Index(line, marker); idx >= 0 {
			line = line[:idx]
		}
	}
	return line
}

func (st *extractState) matchImport(code string) {
	m := st.profile.Import.FindStringSubmatch(code)
	if m == nil {
		return
	}
	target := firstGroup(m)
	if target == "" {
		return
	}
	st.imports = append(st.imports, ImportEdge{File: st.file.Path, Import: target})
}

func (st *extractState) matchDeclaration(lines []string, lineIdx int, code string, lineStart, lineNo int) {
	for _, ep := range st.profile.Entities {
		m := ep.Re.FindStringSubmatch(code)
		if m == nil {
			continue
		}
		name := ep.Name(m)
		if name == "" {
			continue
		}

		parent := -1
		if n := len(st.open); n > 0 {
			parent = st.open[n-1].idx
		}

		ent := CodeEntity{
			Kind:        ep.Kind,
			Name:        name,
			File:        st.file.Path,
			StartOffset: lineStart,
			StartLine:   lineNo,
			Signature:   st.signature(lines, lineIdx),
			Depth:       len(st.open),
			Parent:      parent,
		}
		idx := len(st.entities)
		st.entities = append(st.entities, ent)

		// Variables carry no block of their own.
		if ep.Kind != lang.EntityVariable {
			st.open = append(st.open, openEntity{
				idx:        idx,
				preDepth:   st.braceDepth,
				declIndent: indentWidth(lines[lineIdx]),
				declLine:   lineNo,
			})
		} else {
			st.entities[idx].EndOffset = lineStart + len(lines[lineIdx])
			st.entities[idx].EndLine = lineNo
		}
		return
	}
}

// signature returns the declaration line(s) up to the block-open token.
func (st *extractState) signature(lines []string, lineIdx int) string {
	line := strings.TrimSpace(lines[lineIdx])

	if st.profile.Blocks == lang.BlockIndent {
		return strings.TrimSuffix(line, ":")
	}

	if brace := strings.Index(line, "{"); brace >= 0 {
		return strings.TrimSpace(line[:brace])
	}
	parts := []string{line}
	for j := lineIdx + 1; j < len(lines) && j <= lineIdx+maxSignatureLookahead; j++ {
		next := strings.TrimSpace(lines[j])
		if brace := strings.Index(next, "{"); brace >= 0 {
			if head := strings.TrimSpace(next[:brace]); head != "" {
				parts = append(parts, head)
			}
			break
		}
		parts = append(parts, next)
	}
	return strings.Join(parts, " ")
}

func (st *extractState) collectReferences(code string) {
	n := len(st.open)
	if n == 0 {
		return
	}
	top := &st.open[n-1]
	ent := &st.entities[top.idx]
	if len(ent.References) >= maxReferences {
		return
	}
	for _, m := range callPattern.FindAllStringSubmatch(code, -1) {
		name := m[1]
		if refKeywords[name] || name == ent.Name {
			continue
		}
		if containsString(ent.References, name) {
			continue
		}
		ent.References = append(ent.References, name)
		if len(ent.References) >= maxReferences {
			return
		}
	}
}

func (st *extractState) countBraces(code string, lineNo, lineEnd int) {
	maxDepth := st.braceDepth
	for _, ch := range code {
		switch ch {
		case '{':
			st.braceDepth++
			if st.braceDepth > maxDepth {
				maxDepth = st.braceDepth
			}
		case '}':
			st.braceDepth--
			if st.braceDepth < 0 {
				st.diags = append(st.diags, Diagnostic{
					File:    st.file.Path,
					Line:    lineNo,
					Message: "unbalanced blocks: close without open",
				})
				st.braceDepth = 0
			}
		}
	}

	// An entity's block has opened once the depth exceeded its
	// pre-declaration depth, even if it closed again on the same line.
	for i := range st.open {
		if maxDepth > st.open[i].preDepth {
			st.open[i].sawOpen = true
		}
	}

	for n := len(st.open); n > 0; n = len(st.open) {
		top := st.open[n-1]
		if !top.sawOpen || st.braceDepth > top.preDepth {
			break
		}
		st.close(top.idx, lineNo, lineEnd)
		st.open = st.open[:n-1]
	}
}

// closeByIndent closes indent-delimited entities whose block ended
// before the current non-blank line.
func (st *extractState) closeByIndent(indent, lineNo, lineStart int) {
	for n := len(st.open); n > 0; n = len(st.open) {
		top := st.open[n-1]
		if lineNo == top.declLine || indent > top.declIndent {
			break
		}
		end := lineStart
		if end > 0 {
			end-- // exclude the newline before this line
		}
		st.close(top.idx, lineNo-1, end)
		st.open = st.open[:n-1]
	}
}

func (st *extractState) close(idx, endLine, endOffset int) {
	ent := &st.entities[idx]
	ent.EndLine = endLine
	ent.EndOffset = endOffset
	if ent.EndOffset < ent.StartOffset {
		ent.EndOffset = ent.StartOffset
	}
	if ent.EndLine < ent.StartLine {
		ent.EndLine = ent.StartLine
	}
}

func (st *extractState) closeAll(lastLine, contentLen int) {
	for n := len(st.open); n > 0; n = len(st.open) {
		st.close(st.open[n-1].idx, lastLine, contentLen)
		st.open = st.open[:n-1]
	}
}

func indentWidth(line string) int {
	w := 0
	for _, ch := range line {
		switch ch {
		case ' ':
			w++
		case '\t':
			w += 4
		default:
			return w
		}
	}
	return w
}

func firstGroup(match []string) string {
	for _, g := range match[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
