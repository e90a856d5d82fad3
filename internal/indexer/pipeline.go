package indexer

import (
	"context"
	"fmt"

	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/corpus"
	"relnotes-faq/internal/index"
	"relnotes-faq/internal/llm"
	"relnotes-faq/internal/storage"
	"relnotes-faq/internal/vectorstore"
)

// embedBatchSize bounds the number of texts sent to the embeddings backend in
// one request.
const embedBatchSize = 64

// Pipeline turns corpus documents into an indexed, searchable state: documents
// and chunk texts land in SQLite, chunk vectors and metadata in the vector
// index. A run replaces the prior corpus and index wholesale.
type Pipeline struct {
	docRepo   storage.DocumentStore
	chunkRepo storage.ChunkStore
	embedder  llm.Embedder
	manager   *index.Manager
	chunker   *Chunker
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	docRepo storage.DocumentStore,
	chunkRepo storage.ChunkStore,
	embedder llm.Embedder,
	manager *index.Manager,
	chunker *Chunker,
) *Pipeline {
	return &Pipeline{
		docRepo:   docRepo,
		chunkRepo: chunkRepo,
		embedder:  embedder,
		manager:   manager,
		chunker:   chunker,
	}
}

// Rebuild reindexes the given documents from scratch. The relational rows are
// replaced first, then the vector index is rebuilt; queries keep hitting the
// prior index until the new collection is swapped in. Documents yielding zero
// chunks are persisted but not indexed.
func (p *Pipeline) Rebuild(ctx context.Context, docs []corpus.Document) error {
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "starting corpus rebuild", "documents", len(docs))

	chunks := make([]Chunk, 0, len(docs))
	for _, doc := range docs {
		chunks = append(chunks, p.chunker.SplitDocument(doc)...)
	}

	embeddings, err := p.embedChunks(ctx, chunks)
	if err != nil {
		return err
	}

	// Replace the relational corpus. The vector swap below is what flips
	// queries over; until then retrieval may serve stale rows, which match
	// the still-active old collection.
	if err := p.chunkRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}
	if err := p.docRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	for i := range docs {
		record := &storage.DocumentRecord{
			ID:      docs[i].ID,
			Title:   docs[i].Title,
			Heading: docs[i].Heading,
			URL:     docs[i].URL,
			Source:  corpus.SourceTag,
			Text:    docs[i].Text,
		}
		if err := p.docRepo.Insert(ctx, record); err != nil {
			return fmt.Errorf("failed to insert document %s: %w", docs[i].ID, err)
		}
	}

	points := make([]vectorstore.Point, len(chunks))
	for i, chunk := range chunks {
		if err := p.chunkRepo.Insert(ctx, &storage.ChunkRecord{
			ID:         chunk.ID,
			DocumentID: chunk.DocumentID,
			ChunkIndex: chunk.Index,
			Text:       chunk.Text,
		}); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", chunk.ID, err)
		}

		points[i] = vectorstore.Point{
			ID:  chunk.ID,
			Vec: embeddings[i],
			Meta: map[string]any{
				"title":       chunk.Meta.Title,
				"heading":     chunk.Meta.Heading,
				"url":         chunk.Meta.URL,
				"source":      chunk.Meta.Source,
				"document_id": chunk.DocumentID,
				"chunk_index": chunk.Index,
			},
		}
	}

	if err := p.manager.Rebuild(ctx, points); err != nil {
		return fmt.Errorf("failed to rebuild vector index: %w", err)
	}

	logger.InfoContext(ctx, "corpus rebuild completed", "documents", len(docs), "chunks", len(chunks))
	return nil
}

// embedChunks embeds chunk texts in bounded batches, one vector per chunk.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []Chunk) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(chunks))

	for start := 0; start < len(chunks); start += embedBatchSize {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, end-start)
		for i := start; i < end; i++ {
			texts[i-start] = chunks[i].Text
		}

		batch, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk batch at %d: %w", start, err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(batch))
		}
		embeddings = append(embeddings, batch...)
	}

	return embeddings, nil
}
