package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks relnotes-faq/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search. The stored
// vector is returned alongside the score so the retriever can compute
// candidate-to-candidate similarity during re-ranking.
type SearchResult struct {
	PointID string
	Score   float32
	Vec     []float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
// Collections are created and dropped as whole units so the index manager
// can build a replacement collection before discarding the active one.
type VectorStore interface {
	// CreateCollection creates a new cosine-distance collection.
	CreateCollection(ctx context.Context, collection string, vectorSize int) error

	// DropCollection removes a collection and all of its points.
	DropCollection(ctx context.Context, collection string) error

	// CollectionExists checks if a collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to fetchK results ordered by descending similarity.
	Search(ctx context.Context, collection string, query []float32, fetchK int) ([]SearchResult, error)
}
