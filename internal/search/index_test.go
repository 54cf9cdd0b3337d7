package search

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askrepo/askrepo/internal/chunk"
)

// Test Plan for the vector index:
// - Empty chunk set yields ErrNothingToIndex
// - A chunk scores 1.0 against its own text
// - Rare terms outweigh common ones
// - Out-of-vocabulary query terms are dropped silently
// - Chunk lookup by identifier
// - Holder swap is safe under concurrent readers

func docChunk(id, text string) chunk.DocumentChunk {
	return chunk.DocumentChunk{ID: id, Kind: chunk.KindCode, Text: text}
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	ix, err := Build(nil)
	require.ErrorIs(t, err, ErrNothingToIndex)
	assert.Nil(t, ix)
}

func TestIndex_SelfSimilarity(t *testing.T) {
	t.Parallel()

	chunks := []chunk.DocumentChunk{
		docChunk("c1", "authenticate user password"),
		docChunk("c2", "render template output"),
	}
	ix, err := Build(chunks)
	require.NoError(t, err)

	vec := ix.Vectorize("authenticate user password")
	assert.InDelta(t, 1.0, ix.Similarity(vec, "c1"), 1e-9)
	assert.Equal(t, 0.0, ix.Similarity(vec, "c2"))
}

func TestIndex_RareTermsWeighMore(t *testing.T) {
	t.Parallel()

	// "database" appears everywhere; "encryption" in one chunk.
	chunks := []chunk.DocumentChunk{
		docChunk("c1", "database encryption keys"),
		docChunk("c2", "database connection pool"),
		docChunk("c3", "database schema migration"),
	}
	ix, err := Build(chunks)
	require.NoError(t, err)

	common := ix.Vectorize("database")
	rare := ix.Vectorize("encryption")

	assert.Greater(t, ix.Similarity(rare, "c1"), ix.Similarity(common, "c1"))
}

func TestIndex_VectorizeDropsUnknownTerms(t *testing.T) {
	t.Parallel()

	ix, err := Build([]chunk.DocumentChunk{docChunk("c1", "parse tokens")})
	require.NoError(t, err)

	vec := ix.Vectorize("parse quantum entanglement")
	assert.Len(t, vec, 1)
	_, ok := vec["parse"]
	assert.True(t, ok)

	assert.Empty(t, ix.Vectorize("quantum entanglement"))
}

func TestIndex_ChunkLookup(t *testing.T) {
	t.Parallel()

	ix, err := Build([]chunk.DocumentChunk{docChunk("c1", "lookup target")})
	require.NoError(t, err)

	got, ok := ix.Chunk("c1")
	assert.True(t, ok)
	assert.Equal(t, "lookup target", got.Text)

	_, ok = ix.Chunk("missing")
	assert.False(t, ok)

	assert.Equal(t, 1, ix.Len())
}

func TestIndex_DeterministicWeights(t *testing.T) {
	t.Parallel()

	chunks := []chunk.DocumentChunk{
		docChunk("c1", "worker pool dispatch"),
		docChunk("c2", "worker queue drain"),
	}
	first, err := Build(chunks)
	require.NoError(t, err)
	second, err := Build(chunks)
	require.NoError(t, err)

	vec := first.Vectorize("worker dispatch")
	for _, id := range []string{"c1", "c2"} {
		assert.Equal(t, first.Similarity(vec, id), second.Similarity(second.Vectorize("worker dispatch"), id))
	}
}

func TestIndex_SimilarityBounds(t *testing.T) {
	t.Parallel()

	chunks := []chunk.DocumentChunk{
		docChunk("c1", "cache eviction policy lru"),
		docChunk("c2", "cache warmup"),
	}
	ix, err := Build(chunks)
	require.NoError(t, err)

	vec := ix.Vectorize("cache eviction")
	for _, id := range []string{"c1", "c2"} {
		s := ix.Similarity(vec, id)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0+1e-9)
		assert.False(t, math.IsNaN(s))
	}
}

func TestHolder_SwapUnderReaders(t *testing.T) {
	t.Parallel()

	var h Holder
	assert.Nil(t, h.Get())

	base, err := Build([]chunk.DocumentChunk{docChunk("c1", "initial corpus")})
	require.NoError(t, err)
	h.Swap(base)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				ix := h.Get()
				if assert.NotNil(t, ix) {
					assert.Positive(t, ix.Len())
				}
			}
		}()
	}
	for i := 0; i < 20; i++ {
		next, err := Build([]chunk.DocumentChunk{docChunk(fmt.Sprintf("r%d", i), "rebuilt corpus")})
		require.NoError(t, err)
		h.Swap(next)
	}
	wg.Wait()
}
