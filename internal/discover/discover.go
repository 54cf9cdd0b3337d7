// Package discover is the CLI-side repository/file provider: it walks
// a local tree and produces SourceFile snapshots for the analysis
// core, which never performs its own filesystem traversal.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/askrepo/askrepo/internal/analyzer"
	"github.com/askrepo/askrepo/internal/lang"
)

// Options bounds a discovery walk.
type Options struct {
	MaxFileSize int64    // files larger than this are skipped
	MaxFiles    int      // hard cap on files returned
	Ignore      []string // glob patterns, matched against slash paths
}

// DefaultOptions mirrors the ignore set every indexer ends up with.
func DefaultOptions() Options {
	return Options{
		MaxFileSize: 512 * 1024,
		MaxFiles:    2000,
		Ignore: []string{
			".git/**",
			"node_modules/**",
			"vendor/**",
			"dist/**",
			"build/**",
			"target/**",
			"__pycache__/**",
			"*.min.js",
		},
	}
}

// Files walks root and returns text files as SourceFile snapshots with
// root-relative slash paths, sorted for determinism. Binary files and
// ignored paths are skipped silently; unreadable files are skipped with
// the walk continuing.
func Files(root string, opts Options) ([]analyzer.SourceFile, error) {
	matchers := make([]glob.Glob, 0, len(opts.Ignore))
	for _, pattern := range opts.Ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("failed to compile ignore pattern %q: %w", pattern, err)
		}
		matchers = append(matchers, g)
	}

	var files []analyzer.SourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			for _, m := range matchers {
				if m.Match(rel) || m.Match(rel+"/") {
					return filepath.SkipDir
				}
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		for _, m := range matchers {
			if m.Match(rel) {
				return nil
			}
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if !isText(data) {
			return nil
		}

		files = append(files, analyzer.SourceFile{
			Path:     rel,
			Language: lang.Detect(rel),
			Content:  string(data),
			Size:     len(data),
			ModTime:  info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	if opts.MaxFiles > 0 && len(files) > opts.MaxFiles {
		files = files[:opts.MaxFiles]
	}
	return files, nil
}

// isText reports whether content looks like text (no NUL byte in the
// first 512 bytes).
func isText(data []byte) bool {
	n := len(data)
	if n > 512 {
		n = 512
	}
	for _, b := range data[:n] {
		if b == 0 {
			return false
		}
	}
	return true
}
