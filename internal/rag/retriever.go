package rag

import (
	"context"
	"errors"
	"fmt"

	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/index"
	"relnotes-faq/internal/storage"
	"relnotes-faq/internal/vectorstore"
)

// Retrieval defaults. Tuned for release-notes sized corpora: a wide candidate
// pool diversified down to a handful of chunks the prompt can carry.
const (
	DefaultK                   = 8
	DefaultFetchK              = 40
	DefaultLambda              = 0.5
	DefaultSimilarityThreshold = 0.35
)

// Searcher is the read side of the vector index.
type Searcher interface {
	Search(ctx context.Context, query []float32, fetchK int) ([]vectorstore.SearchResult, error)
}

// RetrieverParams controls candidate pool size, diversification, and the
// relevance floor.
type RetrieverParams struct {
	K                   int     // chunks returned after diversification
	FetchK              int     // candidate pool size, >= K
	Lambda              float64 // relevance vs diversity weight in [0, 1]
	SimilarityThreshold float64 // relevance floor applied after selection
}

// MMRRetriever embeds the question, pulls a candidate pool from the vector
// index, diversifies it with maximal marginal relevance, and drops candidates
// below the relevance floor. Chunk text lives in the relational store, keyed
// by point ID.
type MMRRetriever struct {
	embedder Embedder
	searcher Searcher
	chunks   storage.ChunkStore
	params   RetrieverParams
}

// Embedder is the single-query slice of the embeddings client the retriever
// needs.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// NewMMRRetriever creates a retriever over the given index and chunk store.
func NewMMRRetriever(embedder Embedder, searcher Searcher, chunks storage.ChunkStore, params RetrieverParams) *MMRRetriever {
	return &MMRRetriever{
		embedder: embedder,
		searcher: searcher,
		chunks:   chunks,
		params:   params,
	}
}

// Retrieve returns the chunks that survive diversified retrieval for the
// question, in selection order. An unavailable index or an empty pool yields
// an empty result, not an error.
func (r *MMRRetriever) Retrieve(ctx context.Context, question string) ([]RetrievedChunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	queryVec, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	candidates, err := r.searcher.Search(ctx, queryVec, r.params.FetchK)
	if err != nil {
		if errors.Is(err, index.ErrIndexUnavailable) {
			logger.WarnContext(ctx, "retrieval skipped: index unavailable")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to search index: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	selected := mmrSelect(candidates, r.params.K, r.params.Lambda)

	var out []RetrievedChunk
	for _, cand := range selected {
		if float64(cand.Score) < r.params.SimilarityThreshold {
			continue
		}

		chunk, err := r.chunks.GetByID(ctx, cand.PointID)
		if err != nil {
			// A point without a text row means the relational store and the
			// index diverged; skip the chunk rather than fail the question.
			logger.WarnContext(ctx, "chunk text missing for indexed point", "point_id", cand.PointID, "error", err)
			continue
		}

		out = append(out, RetrievedChunk{
			ID:      cand.PointID,
			Text:    chunk.Text,
			Title:   metaString(cand.Meta, "title"),
			Heading: metaString(cand.Meta, "heading"),
			URL:     metaString(cand.Meta, "url"),
			Score:   float64(cand.Score),
		})
	}
	return out, nil
}

// mmrSelect greedily picks up to k candidates maximizing
// lambda*relevance - (1-lambda)*maxSimilarityToSelected. Candidates arrive
// ordered by descending relevance; ties in marginal score keep the more
// relevant (earlier) candidate. Duplicate point IDs are collapsed before
// selection.
func mmrSelect(candidates []vectorstore.SearchResult, k int, lambda float64) []vectorstore.SearchResult {
	seen := make(map[string]bool, len(candidates))
	pool := make([]vectorstore.SearchResult, 0, len(candidates))
	for _, cand := range candidates {
		if seen[cand.PointID] {
			continue
		}
		seen[cand.PointID] = true
		pool = append(pool, cand)
	}

	if k <= 0 || len(pool) == 0 {
		return nil
	}
	if k > len(pool) {
		k = len(pool)
	}

	selected := make([]vectorstore.SearchResult, 0, k)
	remaining := make([]bool, len(pool)) // true once selected

	for len(selected) < k {
		best := -1
		bestScore := 0.0
		for i, cand := range pool {
			if remaining[i] {
				continue
			}

			maxSim := 0.0
			for _, sel := range selected {
				if sim := dot(cand.Vec, sel.Vec); sim > maxSim {
					maxSim = sim
				}
			}

			score := lambda*float64(cand.Score) - (1-lambda)*maxSim
			// Strict > keeps the earlier, more relevant candidate on ties.
			if best == -1 || score > bestScore {
				best = i
				bestScore = score
			}
		}
		if best == -1 {
			break
		}
		remaining[best] = true
		selected = append(selected, pool[best])
	}
	return selected
}

// dot returns the dot product of two vectors. Embeddings are unit-normalized
// at creation, so this is their cosine similarity. Mismatched or missing
// vectors score zero.
func dot(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if s, ok := meta[key].(string); ok {
		return s
	}
	return ""
}
