package indexer

import (
	"context"
	"fmt"
	"log"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/askrepo/askrepo/internal/analyzer"
	"github.com/askrepo/askrepo/internal/arch"
	"github.com/askrepo/askrepo/internal/chunk"
	"github.com/askrepo/askrepo/internal/lang"
	"github.com/askrepo/askrepo/internal/search"
)

// Pipeline runs analysis over a supplied file set. It owns no I/O:
// files arrive already read (see internal/discover for the CLI-side
// provider) and the pipeline only transforms them.
type Pipeline struct {
	opts     Options
	chunker  *chunk.Chunker
	progress ProgressReporter
}

// New creates a pipeline. A nil progress reporter is replaced with a
// no-op.
func New(opts Options, progress ProgressReporter) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.ChunkMaxTokens <= 0 {
		opts.ChunkMaxTokens = 500
	}
	if progress == nil {
		progress = NoOpProgressReporter{}
	}
	return &Pipeline{
		opts:     opts,
		chunker:  chunk.NewChunker(opts.ChunkMaxTokens, opts.ChunkOverlap),
		progress: progress,
	}
}

// fileResult is what one worker returns for one file.
type fileResult struct {
	analysis analyzer.FileAnalysis
	chunks   []chunk.DocumentChunk
}

// Analyze runs per-file extraction, metrics, and chunking in parallel,
// then merges deterministically (sorted by path) and runs the phases
// that need the complete set: import resolution, architecture
// detection, and summary aggregation. A single malformed file degrades
// to diagnostics; only an empty file set fails the run.
func (p *Pipeline) Analyze(ctx context.Context, files []analyzer.SourceFile, extraDocs []chunk.ExtraDoc) (*ProjectModel, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	p.progress.OnAnalysisStart(len(files))

	tasks := make(chan analyzer.SourceFile)
	results := make(chan fileResult)

	var wg sync.WaitGroup
	for w := 0; w < p.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range tasks {
				results <- p.analyzeFile(file)
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, file := range files {
			select {
			case tasks <- file:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Join barrier: every downstream phase needs the complete merged
	// set, so drain all workers before continuing.
	byPath := make(map[string]fileResult, len(files))
	processed := 0
	for res := range results {
		byPath[res.analysis.File.Path] = res
		processed++
		p.progress.OnFileAnalyzed(processed, len(files), res.analysis.File.Path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(byPath))
	for pth := range byPath {
		paths = append(paths, pth)
	}
	sort.Strings(paths)

	model := &ProjectModel{}
	var entityCount int
	for _, pth := range paths {
		res := byPath[pth]
		model.Files = append(model.Files, res.analysis)
		model.Imports = append(model.Imports, res.analysis.Imports...)
		model.Chunks = append(model.Chunks, res.chunks...)
		model.Diagnostics = append(model.Diagnostics, res.analysis.Diagnostics...)
		entityCount += len(res.analysis.Entities)
	}
	model.Chunks = append(model.Chunks, p.chunker.ChunkDocs(extraDocs)...)

	resolveImports(model)

	var allEntities []analyzer.CodeEntity
	for _, fa := range model.Files {
		allEntities = append(allEntities, fa.Entities...)
	}
	model.Patterns = arch.Detect(allEntities, model.Imports, paths, p.opts.Arch)
	model.EntryPoints = arch.EntryPoints(model.Files)
	model.Coverage = arch.EstimateTestCoverage(paths)
	model.Summary = p.summarize(model)
	model.Recommendations = recommend(model)

	for _, d := range model.Diagnostics {
		log.Printf("askrepo: diagnostic: %s: %s", d.File, d.Message)
	}
	p.progress.OnAnalysisComplete(entityCount, len(model.Chunks))
	return model, nil
}

// BuildIndex builds the vector index over the model's complete chunk
// set. This cannot run before Analyze returns: document frequencies
// are global statistics over the full merged corpus.
func (p *Pipeline) BuildIndex(model *ProjectModel) (*search.Index, error) {
	ix, err := search.Build(model.Chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}
	return ix, nil
}

// analyzeFile runs extraction, metrics, and chunking for one file.
// Unsupported languages degrade to opaque chunks with no entities.
func (p *Pipeline) analyzeFile(file analyzer.SourceFile) fileResult {
	profile, ok := lang.ByName(file.Language)
	if !ok {
		profile = nil
	}

	fa := analyzer.FileAnalysis{File: file}
	if profile != nil {
		fa.Entities, fa.Imports, fa.Diagnostics = analyzer.Extract(file, profile)
		fa.Metrics = make([]analyzer.ComplexityMetric, len(fa.Entities))
		for i, ent := range fa.Entities {
			fa.Metrics[i] = analyzer.ComputeMetrics(ent, ent.Body(file.Content), profile, p.opts.Metrics)
		}
	} else {
		fa.Diagnostics = append(fa.Diagnostics, analyzer.Diagnostic{
			File:    file.Path,
			Message: fmt.Sprintf("no profile for language %q, indexing as opaque text", file.Language),
		})
	}

	return fileResult{
		analysis: fa,
		chunks:   p.chunker.ChunkFile(file, profile, fa.Entities),
	}
}

// resolveImports matches import strings against local file stems,
// best-effort: the last path segment of the import against the base
// name of each analyzed file. Unresolved imports stay external.
func resolveImports(model *ProjectModel) {
	stems := map[string]string{}
	for _, fa := range model.Files {
		base := path.Base(fa.File.Path)
		stem := strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
		if _, exists := stems[stem]; !exists { // first path in sorted order wins
			stems[stem] = fa.File.Path
		}
	}

	for i, edge := range model.Imports {
		seg := lastSegment(edge.Import)
		if seg == "" {
			continue
		}
		if target, ok := stems[seg]; ok && target != edge.File {
			model.Imports[i].Target = target
		}
	}

	// Per-file views share the resolution.
	resolved := map[string]string{}
	for _, edge := range model.Imports {
		if edge.Target != "" {
			resolved[edge.File+"\x00"+edge.Import] = edge.Target
		}
	}
	for i := range model.Files {
		for j, edge := range model.Files[i].Imports {
			if target, ok := resolved[edge.File+"\x00"+edge.Import]; ok {
				model.Files[i].Imports[j].Target = target
			}
		}
	}
}

// lastSegment extracts the final module component of an import string,
// whatever the language's separator.
func lastSegment(imp string) string {
	imp = strings.ToLower(strings.TrimSpace(imp))
	imp = strings.Trim(imp, `"'<>;`)
	for _, sep := range []string{"/", "\\", "::", "."} {
		if idx := strings.LastIndex(imp, sep); idx >= 0 {
			imp = imp[idx+len(sep):]
		}
	}
	return imp
}

func (p *Pipeline) summarize(model *ProjectModel) Summary {
	s := Summary{
		TotalFiles: len(model.Files),
		Languages:  map[string]int{},
		Complexity: map[string]int{},
	}
	for _, fa := range model.Files {
		s.Languages[fa.File.Language]++
		s.TotalImports += len(fa.Imports)

		worst := 100.0
		for i, ent := range fa.Entities {
			switch ent.Kind {
			case lang.EntityFunction:
				s.TotalFunctions++
			case lang.EntityClass:
				s.TotalClasses++
			}
			if fa.Metrics[i].Maintainability < worst {
				worst = fa.Metrics[i].Maintainability
			}
		}
		if len(fa.Entities) > 0 {
			s.Complexity[p.opts.Metrics.Band(worst)]++
		}
	}
	return s
}

// recommend derives advisory notes from the summary and architecture
// signals.
func recommend(model *ProjectModel) []string {
	var recs []string
	s := model.Summary

	if s.TotalFunctions == 0 {
		recs = append(recs, "Consider breaking down large code blocks into functions for better modularity")
	}
	if s.Complexity["Low"] > s.Complexity["High"]+s.Complexity["Medium"] {
		recs = append(recs, "Many files have low maintainability - consider refactoring complex functions")
	}
	if model.Coverage.Level == "Low" {
		recs = append(recs, "Add more test coverage to improve code reliability")
	}
	if len(model.EntryPoints) == 0 {
		recs = append(recs, "Consider adding a clear entry point (main function) to your application")
	}
	if len(s.Languages) > 5 {
		recs = append(recs, "Multiple languages detected - ensure consistency in coding standards")
	}
	return recs
}
