package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askrepo/askrepo/internal/analyzer"
	"github.com/askrepo/askrepo/internal/lang"
)

// Test Plan for chunking:
// - One code chunk per entity body, carrying provenance
// - Contiguous comment blocks become comment chunks; trivial ones dropped
// - Files without a profile fall back to opaque paragraph chunks
// - Oversized bodies split at line boundaries with overlap
// - Chunk IDs are deterministic across runs and unique within a file
// - External docs chunk per paragraph

func pyProfile(t *testing.T) *lang.Profile {
	t.Helper()
	p, ok := lang.ByName("python")
	require.True(t, ok)
	return p
}

func TestChunkFile_EntityBodies(t *testing.T) {
	t.Parallel()

	content := `# Login helpers for the auth service.

def login(user):
    return user

def logout(user):
    return None
`
	file := analyzer.SourceFile{Path: "auth/login.py", Language: "python", Content: content}
	profile := pyProfile(t)
	entities, _, _ := analyzer.Extract(file, profile)
	require.Len(t, entities, 2)

	chunks := NewChunker(500, 2).ChunkFile(file, profile, entities)
	require.Len(t, chunks, 3) // two bodies + one comment block

	assert.Equal(t, KindCode, chunks[0].Kind)
	assert.Equal(t, "login", chunks[0].Provenance.Entity)
	assert.Equal(t, lang.EntityFunction, chunks[0].Provenance.EntityKind)
	assert.Contains(t, chunks[0].Text, "def login")
	assert.Equal(t, "auth/login.py::function login", chunks[0].Provenance.String())

	assert.Equal(t, KindComment, chunks[2].Kind)
	assert.Contains(t, chunks[2].Text, "Login helpers")
	assert.NotContains(t, chunks[2].Text, "#")
}

func TestChunkFile_TrivialCommentsDropped(t *testing.T) {
	t.Parallel()

	content := "# ok\ndef f():\n    pass\n"
	file := analyzer.SourceFile{Path: "f.py", Language: "python", Content: content}
	profile := pyProfile(t)
	entities, _, _ := analyzer.Extract(file, profile)

	chunks := NewChunker(500, 2).ChunkFile(file, profile, entities)
	for _, c := range chunks {
		assert.NotEqual(t, KindComment, c.Kind)
	}
}

func TestChunkFile_OpaqueFallback(t *testing.T) {
	t.Parallel()

	content := "first paragraph\nstill first\n\nsecond paragraph\n"
	file := analyzer.SourceFile{Path: "notes.xyz", Content: content}

	chunks := NewChunker(500, 2).ChunkFile(file, nil, nil)
	require.Len(t, chunks, 2)
	assert.Equal(t, "first paragraph\nstill first", chunks[0].Text)
	assert.Equal(t, 1, chunks[0].Provenance.StartLine)
	assert.Equal(t, 2, chunks[0].Provenance.EndLine)
	assert.Equal(t, "second paragraph", chunks[1].Text)
	assert.Equal(t, 4, chunks[1].Provenance.StartLine)
}

func TestChunkFile_OversizeSplitWithOverlap(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("def big():\n")
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "    value_%02d = compute(%d)\n", i, i)
	}
	file := analyzer.SourceFile{Path: "big.py", Language: "python", Content: b.String()}
	profile := pyProfile(t)
	entities, _, _ := analyzer.Extract(file, profile)
	require.Len(t, entities, 1)

	chunks := NewChunker(60, 2).ChunkFile(file, profile, entities)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.Equal(t, i, c.Provenance.Part)
		assert.LessOrEqual(t, c.Provenance.StartLine, c.Provenance.EndLine)
	}

	// Adjacent parts share overlap lines.
	tail := strings.Split(chunks[0].Text, "\n")
	last := tail[len(tail)-2]
	assert.Contains(t, chunks[1].Text, last)

	// Concatenation still covers every statement.
	joined := strings.Join(collectText(chunks), "\n")
	assert.Contains(t, joined, "value_00")
	assert.Contains(t, joined, "value_39")
}

func TestChunkIDs_DeterministicAndUnique(t *testing.T) {
	t.Parallel()

	content := "def a():\n    return 1\n\ndef b():\n    return 2\n"
	file := analyzer.SourceFile{Path: "m.py", Language: "python", Content: content}
	profile := pyProfile(t)
	entities, _, _ := analyzer.Extract(file, profile)

	first := NewChunker(500, 2).ChunkFile(file, profile, entities)
	again := NewChunker(500, 2).ChunkFile(file, profile, entities)
	require.Equal(t, first, again)

	seen := map[string]bool{}
	for _, c := range first {
		assert.False(t, seen[c.ID], "duplicate chunk ID %s", c.ID)
		seen[c.ID] = true
	}
}

func TestChunkDocs(t *testing.T) {
	t.Parallel()

	docs := []ExtraDoc{
		{File: "auth/login.py", Entity: "login", Text: "Validates credentials.\n\nReturns a session token."},
		{File: "README.md", Text: "Project overview."},
	}
	chunks := NewChunker(500, 2).ChunkDocs(docs)

	require.Len(t, chunks, 3)
	assert.Equal(t, KindDoc, chunks[0].Kind)
	assert.Equal(t, "Validates credentials.", chunks[0].Text)
	assert.Equal(t, "login", chunks[0].Provenance.Entity)
	assert.Equal(t, 0, chunks[0].Provenance.Part)
	assert.Equal(t, 1, chunks[1].Provenance.Part)
	assert.Equal(t, "Project overview.", chunks[2].Text)
	assert.Equal(t, "", chunks[2].Provenance.Entity)
}

func TestProvenance_String(t *testing.T) {
	t.Parallel()

	withEntity := Provenance{File: "a.go", Entity: "Run", EntityKind: lang.EntityFunction}
	assert.Equal(t, "a.go::function Run", withEntity.String())

	fileLevel := Provenance{File: "a.go", StartLine: 3, EndLine: 9}
	assert.Equal(t, "a.go:3-9", fileLevel.String())
}

func collectText(chunks []DocumentChunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}
