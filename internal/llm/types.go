package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm.go -package=mocks relnotes-faq/internal/llm Generator,Embedder

import "context"

// Generator is the generative-model capability consumed by the answer
// pipeline. Implementations are expected to be deterministic at temperature 0.
type Generator interface {
	// Generate produces text for the given prompt.
	Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// Embedder produces L2-normalized embedding vectors.
type Embedder interface {
	// EmbedQuery embeds a single text.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	// EmbedTexts embeds a batch of texts, one vector per input.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
