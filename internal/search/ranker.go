package search

import (
	"errors"
	"sort"

	"github.com/askrepo/askrepo/internal/chunk"
	"github.com/askrepo/askrepo/internal/lang"
)

// ErrNoMatch reports that a query shares no vocabulary with the index,
// or matched nothing above zero similarity. Callers get this explicit
// condition instead of a spurious top-K of irrelevant chunks.
var ErrNoMatch = errors.New("no matching terms in index")

// Confidence is a discrete classification derived from a similarity
// score via fixed thresholds.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

var confidenceOrder = map[Confidence]int{
	ConfidenceNone:   0,
	ConfidenceLow:    1,
	ConfidenceMedium: 2,
	ConfidenceHigh:   3,
}

// Thresholds are the confidence-band score cutoffs. The exact values
// are a policy choice, exposed as configuration rather than inferred.
type Thresholds struct {
	High   float64
	Medium float64
	Low    float64
}

// DefaultThresholds mirrors the bands the retrieval pipeline was tuned
// with: >= 0.5 high, >= 0.3 medium, >= 0.1 low, else none.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.5, Medium: 0.3, Low: 0.1}
}

// Classify maps a similarity score to its band.
func (t Thresholds) Classify(score float64) Confidence {
	switch {
	case score >= t.High:
		return ConfidenceHigh
	case score >= t.Medium:
		return ConfidenceMedium
	case score >= t.Low:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Query is raw question text plus optional filters.
type Query struct {
	Text     string
	Language string          // restrict to chunks from files of this language
	Kind     lang.EntityKind // restrict to chunks from entities of this kind
}

// RankedResult is one scored chunk. Ephemeral: created per question,
// never persisted.
type RankedResult struct {
	ChunkID    string
	Chunk      chunk.DocumentChunk
	Score      float64
	Confidence Confidence
	// Fallback marks the single best result returned when everything
	// scored below the requested confidence floor.
	Fallback bool
}

// Rank vectorizes the query, scores every chunk, and returns the top K
// results at or above minConfidence. When the floor would empty the
// result set but something matched, the single best result is returned
// flagged as a low-confidence fallback rather than an empty response.
func Rank(q Query, ix *Index, topK int, minConfidence Confidence, th Thresholds) ([]RankedResult, error) {
	queryVec := ix.Vectorize(q.Text)
	if len(queryVec) == 0 {
		return nil, ErrNoMatch
	}

	var scored []RankedResult
	for _, c := range ix.Chunks() {
		if !matchesFilters(q, c) {
			continue
		}
		score := ix.Similarity(queryVec, c.ID)
		if score <= 0 {
			continue
		}
		scored = append(scored, RankedResult{
			ChunkID:    c.ID,
			Chunk:      c,
			Score:      score,
			Confidence: th.Classify(score),
		})
	}
	if len(scored) == 0 {
		return nil, ErrNoMatch
	}

	// Deterministic order: score descending, ties by shorter provenance
	// path, then by chunk identifier.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		pi, pj := scored[i].Chunk.Provenance.String(), scored[j].Chunk.Provenance.String()
		if len(pi) != len(pj) {
			return len(pi) < len(pj)
		}
		return scored[i].ChunkID < scored[j].ChunkID
	})

	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}

	floor := confidenceOrder[minConfidence]
	kept := scored[:0:0]
	for _, r := range scored {
		if confidenceOrder[r.Confidence] >= floor {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		best := scored[0]
		best.Fallback = true
		return []RankedResult{best}, nil
	}
	return kept, nil
}

func matchesFilters(q Query, c chunk.DocumentChunk) bool {
	if q.Language != "" && lang.Detect(c.Provenance.File) != q.Language {
		return false
	}
	if q.Kind != "" && c.Provenance.EntityKind != q.Kind {
		return false
	}
	return true
}

// ContextPassage is the handoff shape consumed by an external text
// generation service: ordered passages with citation and score. The
// ranked list remains valid and usable when no such service is present.
type ContextPassage struct {
	Text       string  `json:"text"`
	Provenance string  `json:"provenance"`
	Score      float64 `json:"score"`
}

// Handoff converts ranked results into the external handoff shape.
func Handoff(results []RankedResult) []ContextPassage {
	passages := make([]ContextPassage, len(results))
	for i, r := range results {
		passages[i] = ContextPassage{
			Text:       r.Chunk.Text,
			Provenance: r.Chunk.Provenance.String(),
			Score:      r.Score,
		}
	}
	return passages
}
