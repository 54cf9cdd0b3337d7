package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/askrepo/askrepo/internal/analyzer"
)

// Fingerprint hashes a file set's paths and contents into a stable
// cache key. Identical input always produces the same key, which is
// the entire caching contract: the engine guarantees identical output
// for identical input, so any keying scheme built on content is safe.
func Fingerprint(files []analyzer.SourceFile) string {
	sorted := make([]analyzer.SourceFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	h := sha256.New()
	for _, f := range sorted {
		fmt.Fprintf(h, "%s\x00%d\x00", f.Path, f.Size)
		h.Write([]byte(f.Content))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
