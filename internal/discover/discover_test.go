package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askrepo/askrepo/internal/analyzer"
)

// Test Plan for discovery:
// - Walk returns root-relative slash paths, sorted
// - Ignore patterns and dot-directories are skipped
// - Binary and oversized files are skipped
// - Language detection tags each file
// - MaxFiles caps the result
// - Invalid ignore patterns fail fast

func writeTree(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for rel, data := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, data, 0o644))
	}
}

func paths(files []analyzer.SourceFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestFiles_WalkSortedRelative(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"src/b.py":  []byte("print(2)\n"),
		"src/a.py":  []byte("print(1)\n"),
		"README.md": []byte("overview\n"),
	})

	files, err := Files(root, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "src/a.py", "src/b.py"}, paths(files))

	assert.Equal(t, "python", files[1].Language)
	assert.Equal(t, "print(1)\n", files[1].Content)
	assert.Equal(t, 9, files[1].Size)
}

func TestFiles_IgnorePatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"main.py":                 []byte("run()\n"),
		"node_modules/pkg/x.js":   []byte("module.exports = 1\n"),
		"vendor/lib/y.go":         []byte("package lib\n"),
		"__pycache__/main.pyc":    []byte("cached\n"),
		"bundle.min.js":           []byte("var x=1\n"),
		".git/config":             []byte("[core]\n"),
		".hidden/notes.txt":       []byte("secret\n"),
		"src/app.py":              []byte("app()\n"),
	})

	files, err := Files(root, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"main.py", "src/app.py"}, paths(files))
}

func TestFiles_SkipsBinary(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"tool.bin": {0x7f, 'E', 'L', 'F', 0x00, 0x01},
		"ok.txt":   []byte("text\n"),
	})

	files, err := Files(root, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.txt"}, paths(files))
}

func TestFiles_SkipsOversized(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"big.txt":   make([]byte, 2048),
		"small.txt": []byte("fits\n"),
	})

	opts := DefaultOptions()
	opts.MaxFileSize = 1024

	files, err := Files(root, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"small.txt"}, paths(files))
}

func TestFiles_MaxFilesCap(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"a.txt": []byte("a\n"),
		"b.txt": []byte("b\n"),
		"c.txt": []byte("c\n"),
	})

	opts := DefaultOptions()
	opts.MaxFiles = 2

	files, err := Files(root, opts)
	require.NoError(t, err)
	// Cap applies after sorting, keeping the result stable.
	assert.Equal(t, []string{"a.txt", "b.txt"}, paths(files))
}

func TestFiles_BadIgnorePattern(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Ignore = []string{"[unclosed"}

	_, err := Files(t.TempDir(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ignore pattern")
}

func TestFiles_UnknownLanguageStillReturned(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"data.csv": []byte("a,b\n1,2\n")})

	files, err := Files(root, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "", files[0].Language)
}
