// Package analyzer extracts structural entities and computes complexity
// metrics from raw source text, driven by language profiles rather than
// a full parser front-end.
package analyzer

import (
	"time"

	"github.com/askrepo/askrepo/internal/lang"
)

// SourceFile is an immutable snapshot of one file in the analysis run.
// The core never reads the filesystem itself; files are supplied by the
// caller (see internal/discover for the CLI-side provider).
type SourceFile struct {
	Path     string
	Language string // registry name, "" when unsupported
	Content  string
	Size     int
	ModTime  time.Time
}

// CodeEntity is a named structural unit extracted from a file.
// Entities are stored in a flat arena ordered by first appearance;
// Parent is an index into that arena (-1 for top-level entities).
type CodeEntity struct {
	Kind        lang.EntityKind
	Name        string
	File        string
	StartOffset int // byte offset of the declaration line
	EndOffset   int // byte offset just past the entity body
	StartLine   int // 1-based
	EndLine     int
	Signature   string
	Depth       int // nesting depth at declaration
	Parent      int // arena index of the innermost enclosing entity, -1 if none
	References  []string
}

// Body slices the entity's text out of its file content.
func (e CodeEntity) Body(content string) string {
	start, end := e.StartOffset, e.EndOffset
	if start < 0 || end > len(content) || start > end {
		return ""
	}
	return content[start:end]
}

// ImportEdge records one import statement. Target is the path of a
// local file the import resolved to, or "" for external dependencies.
// Edges may form cycles; no acyclicity is assumed.
type ImportEdge struct {
	File   string
	Import string
	Target string
}

// Diagnostic is a recoverable, per-file extraction problem. A file
// with diagnostics still participates in the run (possibly with zero
// entities); diagnostics never abort a batch.
type Diagnostic struct {
	File    string
	Line    int
	Message string
}

// ComplexityMetric is attached 1:1 to a CodeEntity.
type ComplexityMetric struct {
	Cyclomatic      int     // >= 1
	NestingDepth    int     // >= 0
	LineCount       int     // >= 0
	Maintainability float64 // 0..100, higher is better
}

// FileAnalysis bundles everything extracted from one file. Metrics is
// parallel to Entities (same indexes).
type FileAnalysis struct {
	File        SourceFile
	Entities    []CodeEntity
	Imports     []ImportEdge
	Metrics     []ComplexityMetric
	Diagnostics []Diagnostic
}
