// Package chunk splits source files, comment blocks, and externally
// supplied documentation into retrievable text chunks with provenance.
package chunk

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/askrepo/askrepo/internal/lang"
)

// Kind classifies what a chunk was cut from.
type Kind string

const (
	KindCode    Kind = "code"
	KindComment Kind = "comment"
	KindDoc     Kind = "doc"
)

// chunkNamespace seeds deterministic chunk identifiers: the same
// provenance always yields the same ID, which is what lets an external
// cache key results by content fingerprint.
var chunkNamespace = uuid.MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8")

// Provenance locates a chunk in the analyzed tree. It is what the
// retrieval engine surfaces as a citation.
type Provenance struct {
	File       string
	Entity     string // entity name, "" for file-level chunks
	EntityKind lang.EntityKind
	StartLine  int
	EndLine    int
	Part       int // split ordinal when one source unit spans chunks
}

// String renders a citation like "auth/login.py::function login".
func (p Provenance) String() string {
	if p.Entity != "" {
		return fmt.Sprintf("%s::%s %s", p.File, p.EntityKind, p.Entity)
	}
	return fmt.Sprintf("%s:%d-%d", p.File, p.StartLine, p.EndLine)
}

// DocumentChunk is the atom of the search index. Immutable once
// created; re-indexing regenerates all chunks from scratch.
type DocumentChunk struct {
	ID         string
	Kind       Kind
	Text       string
	Provenance Provenance
}

// newChunk builds a chunk with its deterministic identifier.
func newChunk(kind Kind, text string, prov Provenance) DocumentChunk {
	key := fmt.Sprintf("%s|%s|%d|%d|%d", kind, prov.String(), prov.StartLine, prov.EndLine, prov.Part)
	return DocumentChunk{
		ID:         uuid.NewSHA1(chunkNamespace, []byte(key)).String(),
		Kind:       kind,
		Text:       text,
		Provenance: prov,
	}
}

// ExtraDoc is an externally supplied generated-documentation block
// attributed to a file and optionally an entity.
type ExtraDoc struct {
	File   string
	Entity string
	Text   string
}
