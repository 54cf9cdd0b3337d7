package chunk

import (
	"strings"

	"github.com/askrepo/askrepo/internal/analyzer"
	"github.com/askrepo/askrepo/internal/lang"
)

// Chunker cuts analyzed files into DocumentChunks.
type Chunker struct {
	maxTokens    int // approximate token bound per chunk
	overlapLines int // lines repeated between adjacent splits
}

// NewChunker creates a chunker. maxTokens bounds chunk size (rough
// estimate, 1 token per 4 characters); overlapLines preserves local
// context when an oversized entity is split at statement boundaries.
func NewChunker(maxTokens, overlapLines int) *Chunker {
	return &Chunker{maxTokens: maxTokens, overlapLines: overlapLines}
}

// ChunkFile produces one chunk per entity body, one per contiguous
// comment block, and opaque text chunks for files without a registered
// profile. Output order is deterministic.
func (c *Chunker) ChunkFile(file analyzer.SourceFile, profile *lang.Profile, entities []analyzer.CodeEntity) []DocumentChunk {
	if profile == nil {
		return c.chunkOpaque(file)
	}

	var chunks []DocumentChunk
	for _, ent := range entities {
		body := ent.Body(file.Content)
		if strings.TrimSpace(body) == "" {
			continue
		}
		prov := Provenance{
			File:       file.Path,
			Entity:     ent.Name,
			EntityKind: ent.Kind,
			StartLine:  ent.StartLine,
			EndLine:    ent.EndLine,
		}
		chunks = append(chunks, c.splitBounded(KindCode, body, prov)...)
	}

	chunks = append(chunks, c.commentChunks(file, profile)...)
	return chunks
}

// ChunkDocs splits externally supplied generated documentation into one
// chunk per paragraph-like unit.
func (c *Chunker) ChunkDocs(docs []ExtraDoc) []DocumentChunk {
	var chunks []DocumentChunk
	for _, doc := range docs {
		for i, para := range paragraphs(doc.Text) {
			prov := Provenance{
				File:   doc.File,
				Entity: doc.Entity,
				Part:   i,
			}
			if doc.Entity != "" {
				prov.EntityKind = lang.EntityModule
			}
			chunks = append(chunks, newChunk(KindDoc, para, prov))
		}
	}
	return chunks
}

// splitBounded returns the text as a single chunk when it fits, or
// splits it at line (statement) boundaries with overlap when it
// exceeds the token bound.
func (c *Chunker) splitBounded(kind Kind, text string, prov Provenance) []DocumentChunk {
	if estimateTokens(text) <= c.maxTokens {
		return []DocumentChunk{newChunk(kind, text, prov)}
	}

	lines := strings.Split(text, "\n")
	var chunks []DocumentChunk
	part := 0
	start := 0
	for start < len(lines) {
		size := 0
		end := start
		for end < len(lines) && (end == start || size+estimateTokens(lines[end]) <= c.maxTokens) {
			size += estimateTokens(lines[end])
			end++
		}

		p := prov
		p.Part = part
		p.StartLine = prov.StartLine + start
		p.EndLine = prov.StartLine + end - 1
		chunks = append(chunks, newChunk(kind, strings.Join(lines[start:end], "\n"), p))
		part++

		if end >= len(lines) {
			break
		}
		next := end - c.overlapLines
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// chunkOpaque indexes an unsupported-language file as plain text so it
// still participates in retrieval without entities or metrics.
func (c *Chunker) chunkOpaque(file analyzer.SourceFile) []DocumentChunk {
	var chunks []DocumentChunk
	line := 1
	for i, para := range paragraphs(file.Content) {
		height := strings.Count(para, "\n") + 1
		prov := Provenance{
			File:      file.Path,
			StartLine: line,
			EndLine:   line + height - 1,
			Part:      i,
		}
		chunks = append(chunks, c.splitBounded(KindCode, para, prov)...)
		line += height + 1
	}
	return chunks
}

// commentChunks collects contiguous comment blocks using the profile's
// comment delimiters.
func (c *Chunker) commentChunks(file analyzer.SourceFile, profile *lang.Profile) []DocumentChunk {
	var chunks []DocumentChunk
	var block []string
	blockStart := 0
	inBlock := false

	flush := func(endLine int) {
		text := strings.TrimSpace(strings.Join(block, "\n"))
		block = nil
		if len(text) <= 3 {
			return
		}
		prov := Provenance{File: file.Path, StartLine: blockStart, EndLine: endLine}
		chunks = append(chunks, c.splitBounded(KindComment, text, prov)...)
	}

	lines := strings.Split(file.Content, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)
		text, isComment, stillOpen := commentText(trimmed, profile, inBlock)

		if isComment {
			if len(block) == 0 {
				blockStart = lineNo
			}
			block = append(block, text)
		} else if len(block) > 0 {
			flush(lineNo - 1)
		}
		inBlock = stillOpen
	}
	if len(block) > 0 {
		flush(len(lines))
	}
	return chunks
}

// commentText reports whether a trimmed line is entirely a comment and
// returns its text content with the markers stripped.
func commentText(trimmed string, profile *lang.Profile, inBlock bool) (text string, isComment, stillOpen bool) {
	if inBlock {
		if profile.BlockCommentClose != "" {
			if idx := strings.Index(trimmed, profile.BlockCommentClose); idx >= 0 {
				return strings.TrimSpace(trimmed[:idx]), true, false
			}
		}
		return trimmed, true, true
	}

	for _, marker := range profile.LineComment {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, marker)), true, false
		}
	}

	if profile.BlockCommentOpen != "" && strings.HasPrefix(trimmed, profile.BlockCommentOpen) {
		rest := strings.TrimPrefix(trimmed, profile.BlockCommentOpen)
		if idx := strings.Index(rest, profile.BlockCommentClose); idx >= 0 {
			return strings.TrimSpace(rest[:idx]), true, false
		}
		return strings.TrimSpace(rest), true, true
	}

	return "", false, false
}

// paragraphs splits text on blank lines, dropping empty units.
func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}

// estimateTokens approximates token count (1 token per 4 characters).
func estimateTokens(text string) int {
	return len(text) / 4
}
