package search

import (
	"errors"
	"math"
	"sync"

	"github.com/askrepo/askrepo/internal/chunk"
)

// ErrNothingToIndex reports an empty chunk set. Surfacing it as a typed
// condition keeps an empty index from silently answering every query
// with zero confidence.
var ErrNothingToIndex = errors.New("nothing to index: empty chunk set")

// Index is an immutable TF-IDF vector space over one chunk set. The
// vocabulary and document-frequency table derive solely from that set;
// rebuilding is all-or-nothing (see Holder for the swap contract).
type Index struct {
	chunks  []chunk.DocumentChunk
	byID    map[string]int
	vectors []map[string]float64 // per-chunk term weights, parallel to chunks
	norms   []float64            // per-chunk vector magnitudes
	df      map[string]int       // documents containing each term
	total   int                  // chunk count
}

// Build constructs the index in one pass: tokenize every chunk, derive
// global document frequencies, then weight each chunk vector as
// term-frequency (count over chunk length) times smoothed inverse
// document frequency.
func Build(chunks []chunk.DocumentChunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, ErrNothingToIndex
	}

	ix := &Index{
		chunks:  chunks,
		byID:    make(map[string]int, len(chunks)),
		vectors: make([]map[string]float64, len(chunks)),
		norms:   make([]float64, len(chunks)),
		df:      map[string]int{},
		total:   len(chunks),
	}

	counts := make([]map[string]int, len(chunks))
	lengths := make([]int, len(chunks))
	for i, c := range chunks {
		ix.byID[c.ID] = i
		tokens := Tokenize(c.Text)
		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		counts[i] = tf
		lengths[i] = len(tokens)
		for term := range tf {
			ix.df[term]++
		}
	}

	for i := range chunks {
		vec := make(map[string]float64, len(counts[i]))
		var norm float64
		for term, n := range counts[i] {
			w := float64(n) / float64(max(lengths[i], 1)) * ix.idf(term)
			vec[term] = w
			norm += w * w
		}
		ix.vectors[i] = vec
		ix.norms[i] = math.Sqrt(norm)
	}

	return ix, nil
}

// idf is log-smoothed so a universal term or a single-chunk corpus
// never divides by zero or weights to exactly zero.
func (ix *Index) idf(term string) float64 {
	df := ix.df[term]
	if df == 0 {
		return 0
	}
	return math.Log(1 + float64(ix.total)/float64(df))
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return ix.total
}

// Chunks returns the indexed chunk set in build order.
func (ix *Index) Chunks() []chunk.DocumentChunk {
	return ix.chunks
}

// Chunk looks up a chunk by identifier.
func (ix *Index) Chunk(id string) (chunk.DocumentChunk, bool) {
	i, ok := ix.byID[id]
	if !ok {
		return chunk.DocumentChunk{}, false
	}
	return ix.chunks[i], true
}

// Vectorize builds a query vector against the existing vocabulary with
// the same IDF table used at build time. Terms absent from the
// vocabulary are dropped silently; an empty result means the query
// shares no terms with the corpus.
func (ix *Index) Vectorize(query string) map[string]float64 {
	tokens := Tokenize(query)
	tf := map[string]int{}
	known := 0
	for _, t := range tokens {
		if ix.df[t] > 0 {
			tf[t]++
			known++
		}
	}
	vec := make(map[string]float64, len(tf))
	for term, n := range tf {
		vec[term] = float64(n) / float64(known) * ix.idf(term)
	}
	return vec
}

// Similarity computes cosine similarity between a query vector and one
// chunk's vector. Range [0, 1] for these non-negative weights; a chunk
// against its own vector scores 1 within floating-point tolerance.
func (ix *Index) Similarity(queryVec map[string]float64, chunkID string) float64 {
	i, ok := ix.byID[chunkID]
	if !ok {
		return 0
	}
	return cosine(queryVec, ix.vectors[i], ix.norms[i])
}

func cosine(q, c map[string]float64, cNorm float64) float64 {
	var dot, qNorm float64
	for term, w := range q {
		qNorm += w * w
		if cw, ok := c[term]; ok {
			dot += w * cw
		}
	}
	if dot == 0 || qNorm == 0 || cNorm == 0 {
		return 0
	}
	return dot / (math.Sqrt(qNorm) * cNorm)
}

// Holder provides rebuild-then-atomic-swap access to an index so a
// concurrent query never observes a partially built index.
type Holder struct {
	mu sync.RWMutex
	ix *Index
}

// Swap replaces the current index. The previous index stays valid for
// readers that already hold it.
func (h *Holder) Swap(ix *Index) {
	h.mu.Lock()
	h.ix = ix
	h.mu.Unlock()
}

// Get returns the current index, or nil when none has been built.
func (h *Holder) Get() *Index {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ix
}
