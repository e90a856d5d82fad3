package llm_test

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"relnotes-faq/internal/llm"
)

func embeddingsServer(t *testing.T, vectors [][]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("path = %q, want /v1/embeddings", r.URL.Path)
		}

		data := make([]map[string]any, len(vectors))
		for i, vec := range vectors {
			data[i] = map[string]any{"embedding": vec}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
}

func TestEmbeddingsClient_EmbedTexts(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{3, 4}, {0, 5}})
	defer server.Close()

	client := llm.NewEmbeddingsClient(server.URL, "key", "model", 2)

	vecs, err := client.EmbedTexts(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("EmbedTexts() = %d vectors, want 2", len(vecs))
	}

	// Vectors come back unit-normalized so cosine similarity is a dot product.
	for i, vec := range vecs {
		var sum float64
		for _, v := range vec {
			sum += float64(v) * float64(v)
		}
		if math.Abs(sum-1.0) > 1e-5 {
			t.Errorf("vector %d norm^2 = %v, want 1", i, sum)
		}
	}
	if math.Abs(float64(vecs[0][0])-0.6) > 1e-5 || math.Abs(float64(vecs[0][1])-0.8) > 1e-5 {
		t.Errorf("vecs[0] = %v, want [0.6 0.8]", vecs[0])
	}
}

func TestEmbeddingsClient_EmbedQuery(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{1, 0}})
	defer server.Close()

	client := llm.NewEmbeddingsClient(server.URL, "key", "model", 2)

	vec, err := client.EmbedQuery(context.Background(), "a question")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}
	if len(vec) != 2 || vec[0] != 1 || vec[1] != 0 {
		t.Errorf("EmbedQuery() = %v", vec)
	}
}

func TestEmbeddingsClient_SizeMismatch(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{1, 0, 0}})
	defer server.Close()

	client := llm.NewEmbeddingsClient(server.URL, "key", "model", 2)

	if _, err := client.EmbedTexts(context.Background(), []string{"a"}); err == nil {
		t.Fatal("EmbedTexts() error = nil, want size mismatch")
	}
}

func TestEmbeddingsClient_CountMismatch(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{1, 0}})
	defer server.Close()

	client := llm.NewEmbeddingsClient(server.URL, "key", "model", 2)

	if _, err := client.EmbedTexts(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("EmbedTexts() error = nil, want count mismatch")
	}
}

func TestEmbeddingsClient_EmptyInput(t *testing.T) {
	client := llm.NewEmbeddingsClient("http://unused", "key", "model", 2)

	if _, err := client.EmbedTexts(context.Background(), nil); err == nil {
		t.Fatal("EmbedTexts(nil) error = nil, want failure")
	}
}

func TestEmbeddingsClient_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := llm.NewEmbeddingsClient(server.URL, "key", "model", 2)

	if _, err := client.EmbedTexts(context.Background(), []string{"a"}); err == nil {
		t.Fatal("EmbedTexts() error = nil, want bad status failure")
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	vec := []float32{0, 0, 0}
	llm.Normalize(vec)
	for i, v := range vec {
		if v != 0 {
			t.Errorf("vec[%d] = %v, want 0", i, v)
		}
	}
}
