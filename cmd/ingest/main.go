// Command ingest loads the release-notes corpus and rebuilds the vector index
// from scratch. Run it before first starting the API server, and again
// whenever the corpus changes.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"relnotes-faq/internal/config"
	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/corpus"
	"relnotes-faq/internal/index"
	"relnotes-faq/internal/indexer"
	"relnotes-faq/internal/llm"
	"relnotes-faq/internal/storage"
	"relnotes-faq/internal/vectorstore"
)

func main() {
	markdownDir := flag.String("markdown-dir", "", "ingest .md files from this directory instead of the crawler JSON corpus")
	baseURL := flag.String("base-url", "", "base URL recorded for markdown documents")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := contextutil.WithLogger(context.Background(), logger)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.VectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.VectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.VectorSize, len(testEmbeddings[0]))
	}

	var docs []corpus.Document
	if *markdownDir != "" {
		docs, err = corpus.NewMarkdownLoader().LoadDir(*markdownDir, *baseURL)
		if err != nil {
			log.Fatalf("Failed to load markdown corpus: %v", err)
		}
		slog.Info("Loaded markdown corpus", "dir", *markdownDir, "documents", len(docs))
	} else {
		docs, err = corpus.LoadJSON(cfg.CorpusPath)
		if err != nil {
			log.Fatalf("Failed to load corpus: %v", err)
		}
		slog.Info("Loaded corpus", "path", cfg.CorpusPath, "documents", len(docs))
	}

	manager := index.NewManager(vectorStore, storage.NewIndexMetaRepo(db), cfg.CollectionPrefix, cfg.VectorSize)
	chunker := indexer.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	pipeline := indexer.NewPipeline(storage.NewDocumentRepo(db), storage.NewChunkRepo(db), embedder, manager, chunker)

	if err := pipeline.Rebuild(ctx, docs); err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}
	slog.Info("Ingestion completed", "documents", len(docs))
}
