package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"relnotes-faq/internal/config"
	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/corpus"
	"relnotes-faq/internal/escalate"
	"relnotes-faq/internal/http"
	"relnotes-faq/internal/index"
	"relnotes-faq/internal/indexer"
	"relnotes-faq/internal/llm"
	"relnotes-faq/internal/rag"
	"relnotes-faq/internal/sheets"
	"relnotes-faq/internal/storage"
	"relnotes-faq/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if cfg.WatsonxAPIKey == "" || cfg.WatsonxProjectID == "" {
		log.Fatal("WATSONX_API_KEY and WATSONX_PROJECT_ID are required")
	}

	ctx := contextutil.WithLogger(context.Background(), logger)

	// Initialize database
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
	slog.Info("Database initialized", "path", cfg.DBPath)

	docRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)
	metaRepo := storage.NewIndexMetaRepo(db)

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.VectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.VectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.VectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.VectorSize)

	cacheTTL, err := time.ParseDuration(cfg.EmbedCacheTTL)
	if err != nil {
		log.Fatalf("Invalid EMBED_CACHE_TTL: %v", err)
	}
	cachedEmbedder := llm.NewCachedEmbedder(embedder, cacheTTL)

	// Attach to the persisted index. Without one the service cannot answer;
	// REINDEX_ON_START builds it in the background instead of failing.
	manager := index.NewManager(vectorStore, metaRepo, cfg.CollectionPrefix, cfg.VectorSize)
	chunker := indexer.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	pipeline := indexer.NewPipeline(docRepo, chunkRepo, cachedEmbedder, manager, chunker)

	if err := manager.Load(ctx); err != nil {
		if !cfg.ReindexOnStart {
			log.Fatalf("Failed to load vector index: %v", err)
		}
		slog.Warn("Vector index not loaded, rebuilding on start", "error", err)
	}
	if cfg.ReindexOnStart {
		go func() {
			rebuildCtx := contextutil.WithLogger(context.Background(), logger)
			docs, err := corpus.LoadJSON(cfg.CorpusPath)
			if err != nil {
				slog.Error("Startup reindex: failed to load corpus", "error", err)
				return
			}
			if err := pipeline.Rebuild(rebuildCtx, docs); err != nil {
				slog.Error("Startup reindex failed", "error", err)
				return
			}
			slog.Info("Startup reindex completed", "documents", len(docs))
		}()
	}

	tokens := llm.NewIAMTokenSource(cfg.IAMTokenURL, cfg.WatsonxAPIKey)
	generator := llm.NewWatsonxClient(cfg.WatsonxBaseURL, cfg.WatsonxModel, cfg.WatsonxProjectID, tokens)

	retriever := rag.NewMMRRetriever(cachedEmbedder, manager, chunkRepo, rag.RetrieverParams{
		K:                   cfg.RetrievalK,
		FetchK:              cfg.RetrievalFetchK,
		Lambda:              cfg.RetrievalLambda,
		SimilarityThreshold: cfg.SimilarityThreshold,
	})
	engine := rag.NewEngine(retriever, generator, rag.EngineOptions{CitationDedup: cfg.CitationDedup})
	slog.Info("Answer engine initialized", "k", cfg.RetrievalK, "fetch_k", cfg.RetrievalFetchK)

	var sink escalate.ContactSink
	switch cfg.ContactSink {
	case "sheets":
		sheetsSink, err := sheets.NewSink(ctx, cfg.SheetsCredsPath, cfg.SheetID, cfg.ContactWorksheet)
		if err != nil {
			log.Fatalf("Failed to initialize Google Sheets sink: %v", err)
		}
		sink = sheetsSink
		slog.Info("Contact sink initialized", "sink", "sheets", "worksheet", cfg.ContactWorksheet)
	default:
		sink = storage.NewContactRepo(db)
		slog.Info("Contact sink initialized", "sink", "sqlite")
	}
	escalation := escalate.NewService(sink)

	deps := &http.Deps{
		Engine:     engine,
		Escalation: escalation,
		Pipeline:   pipeline,
		CorpusPath: cfg.CorpusPath,
		DB:         db,
		Index:      manager,
		SinkOK:     true,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
