package llm_test

import (
	"context"
	"testing"
	"time"

	"relnotes-faq/internal/llm"
)

// countingEmbedder counts calls to the backing embedder.
type countingEmbedder struct {
	queryCalls int
	batchCalls int
}

func (e *countingEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	e.queryCalls++
	return []float32{1, 0}, nil
}

func (e *countingEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	e.batchCalls++
	vecs := make([][]float32, len(texts))
	for i := range vecs {
		vecs[i] = []float32{1, 0}
	}
	return vecs, nil
}

func TestCachedEmbedder_EmbedQuery(t *testing.T) {
	inner := &countingEmbedder{}
	cached := llm.NewCachedEmbedder(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		vec, err := cached.EmbedQuery(ctx, "repeated question")
		if err != nil {
			t.Fatalf("EmbedQuery() error = %v", err)
		}
		if len(vec) != 2 {
			t.Fatalf("EmbedQuery() = %v", vec)
		}
	}
	if inner.queryCalls != 1 {
		t.Errorf("inner EmbedQuery calls = %d, want 1", inner.queryCalls)
	}

	// A different question misses the cache.
	if _, err := cached.EmbedQuery(ctx, "another question"); err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}
	if inner.queryCalls != 2 {
		t.Errorf("inner EmbedQuery calls = %d, want 2", inner.queryCalls)
	}
}

func TestCachedEmbedder_EmbedTextsPassthrough(t *testing.T) {
	inner := &countingEmbedder{}
	cached := llm.NewCachedEmbedder(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cached.EmbedTexts(ctx, []string{"a", "b"}); err != nil {
			t.Fatalf("EmbedTexts() error = %v", err)
		}
	}
	if inner.batchCalls != 2 {
		t.Errorf("inner EmbedTexts calls = %d, want 2 (no caching)", inner.batchCalls)
	}
}
