// Package indexer orchestrates the analysis pipeline: parallel
// per-file extraction, metrics, and chunking, followed by the merged
// phases (architecture detection, index build) that need the complete
// result set.
package indexer

import (
	"errors"

	"github.com/askrepo/askrepo/internal/analyzer"
	"github.com/askrepo/askrepo/internal/arch"
	"github.com/askrepo/askrepo/internal/chunk"
)

// ErrNoFiles reports an analysis run with an empty file set. A run with
// nothing in it is surfaced to the caller instead of producing an empty
// model that silently answers every question.
var ErrNoFiles = errors.New("no files to analyze")

// Options configures one pipeline instance.
type Options struct {
	Workers        int // parallel extraction workers; <=0 means GOMAXPROCS
	ChunkMaxTokens int
	ChunkOverlap   int
	Metrics        analyzer.MetricsConfig
	Arch           arch.Config
}

// Summary aggregates per-file analysis into project-level counts.
type Summary struct {
	TotalFiles     int
	TotalFunctions int
	TotalClasses   int
	TotalImports   int
	Languages      map[string]int // files per language, "" key for unsupported
	Complexity     map[string]int // files per maintainability band
}

// ProjectModel is the structured output of one analysis run. Files is
// sorted by path, so every downstream phase observes a deterministic
// order regardless of worker scheduling.
type ProjectModel struct {
	Files           []analyzer.FileAnalysis
	Imports         []analyzer.ImportEdge
	Chunks          []chunk.DocumentChunk
	Patterns        []arch.Pattern
	EntryPoints     []string
	Coverage        arch.TestCoverage
	Summary         Summary
	Recommendations []string
	Diagnostics     []analyzer.Diagnostic
}

// ProgressReporter receives pipeline progress callbacks.
type ProgressReporter interface {
	OnAnalysisStart(totalFiles int)
	OnFileAnalyzed(processed, total int, path string)
	OnAnalysisComplete(entities, chunks int)
}

// NoOpProgressReporter ignores all progress events.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnAnalysisStart(int)             {}
func (NoOpProgressReporter) OnFileAnalyzed(int, int, string) {}
func (NoOpProgressReporter) OnAnalysisComplete(int, int)     {}
