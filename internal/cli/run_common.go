package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/askrepo/askrepo/internal/analyzer"
	"github.com/askrepo/askrepo/internal/chunk"
	"github.com/askrepo/askrepo/internal/config"
	"github.com/askrepo/askrepo/internal/discover"
	"github.com/askrepo/askrepo/internal/indexer"
	"github.com/askrepo/askrepo/internal/search"
	"github.com/askrepo/askrepo/internal/storage"
)

// loadConfigAndFiles loads configuration for the root and discovers
// its files.
func loadConfigAndFiles(root string) (*config.Config, []analyzer.SourceFile, error) {
	cfg, err := config.NewLoader(root).Load()
	if err != nil {
		return nil, nil, err
	}

	opts := discover.DefaultOptions()
	opts.MaxFileSize = int64(cfg.Discovery.MaxFileSizeKB) * 1024
	opts.MaxFiles = cfg.Discovery.MaxFiles
	if len(cfg.Discovery.Ignore) > 0 {
		opts.Ignore = append(opts.Ignore, cfg.Discovery.Ignore...)
	}

	files, err := discover.Files(root, opts)
	if err != nil {
		return nil, nil, err
	}
	return cfg, files, nil
}

// newPipeline builds the pipeline from configuration.
func newPipeline(cfg *config.Config, quiet bool) *indexer.Pipeline {
	return indexer.New(indexer.Options{
		Workers:        cfg.Analysis.Workers,
		ChunkMaxTokens: cfg.Chunking.MaxTokens,
		ChunkOverlap:   cfg.Chunking.OverlapLines,
		Metrics:        cfg.Metrics(),
		Arch:           cfg.Arch(),
	}, newCLIProgressReporter(quiet))
}

// cachePath resolves the cache database location under the root.
func cachePath(cfg *config.Config, root string) string {
	if cfg.Cache.Path != "" {
		return cfg.Cache.Path
	}
	return filepath.Join(root, ".askrepo", "cache.db")
}

// openCache opens the cache store, creating its directory. A cache
// failure is never fatal; callers fall back to a fresh analysis.
func openCache(cfg *config.Config, root string) *storage.Store {
	if !cfg.Cache.Enabled {
		return nil
	}
	path := cachePath(cfg, root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("askrepo: cache unavailable: %v", err)
		return nil
	}
	store, err := storage.Open(path)
	if err != nil {
		log.Printf("askrepo: cache unavailable: %v", err)
		return nil
	}
	return store
}

// buildIndex returns a search index for the file set, from cache when
// the content fingerprint matches, otherwise from a fresh analysis run
// whose chunks are written back to the cache.
func buildIndex(ctx context.Context, cfg *config.Config, root string, files []analyzer.SourceFile, quiet bool) (*search.Index, error) {
	fingerprint := storage.Fingerprint(files)

	store := openCache(cfg, root)
	if store != nil {
		defer store.Close()
		if cached, ok, err := store.LoadChunks(fingerprint); err != nil {
			log.Printf("askrepo: cache read failed: %v", err)
		} else if ok {
			return search.Build(cached)
		}
	}

	model, err := newPipeline(cfg, quiet).Analyze(ctx, files, nil)
	if err != nil {
		return nil, err
	}
	saveModel(store, fingerprint, model)

	ix, err := search.Build(model.Chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}
	return ix, nil
}

// saveModel writes analysis output to the cache, best-effort.
func saveModel(store *storage.Store, fingerprint string, model *indexer.ProjectModel) {
	if store == nil {
		return
	}
	if err := store.SaveChunks(fingerprint, model.Chunks); err != nil {
		log.Printf("askrepo: cache write failed: %v", err)
		return
	}
	var entities []analyzer.CodeEntity
	var metrics []analyzer.ComplexityMetric
	for _, fa := range model.Files {
		entities = append(entities, fa.Entities...)
		metrics = append(metrics, fa.Metrics...)
	}
	if err := store.SaveEntities(entities, metrics); err != nil {
		log.Printf("askrepo: cache write failed: %v", err)
	}
}

// readExtraDocs loads optional generated-documentation files supplied
// with --docs, one paragraph-chunked ExtraDoc per file.
func readExtraDocs(paths []string) ([]chunk.ExtraDoc, error) {
	var docs []chunk.ExtraDoc
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read docs file %s: %w", p, err)
		}
		docs = append(docs, chunk.ExtraDoc{File: filepath.ToSlash(p), Text: string(data)})
	}
	return docs, nil
}
