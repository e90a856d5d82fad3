package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort    string
	DBPath     string
	CorpusPath string

	QdrantURL        string
	CollectionPrefix string
	VectorSize       int

	EmbeddingBaseURL string
	EmbeddingModel   string
	EmbeddingAPIKey  string
	EmbedCacheTTL    string

	WatsonxBaseURL   string
	WatsonxModel     string
	WatsonxAPIKey    string
	WatsonxProjectID string
	IAMTokenURL      string

	ChunkSize           int
	ChunkOverlap        int
	RetrievalK          int
	RetrievalFetchK     int
	RetrievalLambda     float64
	SimilarityThreshold float64
	CitationDedup       bool

	ContactSink      string
	SheetsCredsPath  string
	SheetID          string
	ContactWorksheet string

	ReindexOnStart bool

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory, it will be loaded automatically;
// environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIPort:    getEnv("API_PORT", "9000"),
		DBPath:     getEnv("DB_PATH", "./data/relnotes-faq.db"),
		CorpusPath: getEnv("CORPUS_PATH", "./data/relativity_releases.json"),

		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		CollectionPrefix: getEnv("QDRANT_COLLECTION_PREFIX", "relnotes"),

		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "paraphrase-multilingual-minilm-l12-v2"),
		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", "dummy-key"),
		EmbedCacheTTL:    getEnv("EMBED_CACHE_TTL", "5m"),

		WatsonxBaseURL:   getEnv("WATSONX_BASE_URL", "https://us-south.ml.cloud.ibm.com"),
		WatsonxModel:     getEnv("WATSONX_MODEL", "meta-llama/llama-2-13b-chat"),
		WatsonxAPIKey:    os.Getenv("WATSONX_API_KEY"),
		WatsonxProjectID: os.Getenv("WATSONX_PROJECT_ID"),
		IAMTokenURL:      getEnv("IAM_TOKEN_URL", "https://iam.cloud.ibm.com/identity/token"),

		ContactSink:      getEnv("CONTACT_SINK", "sqlite"),
		SheetsCredsPath:  os.Getenv("SHEETS_CREDENTIALS_PATH"),
		SheetID:          os.Getenv("SHEET_ID"),
		ContactWorksheet: getEnv("CONTACT_WORKSHEET", "Contact Submissions"),

		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.VectorSize, err = getEnvInt("VECTOR_SIZE", 0); err != nil {
		return nil, err
	}
	if cfg.VectorSize <= 0 {
		return nil, fmt.Errorf("VECTOR_SIZE is required and must be greater than 0")
	}

	if cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 150); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be smaller than CHUNK_SIZE")
	}
	if cfg.RetrievalK, err = getEnvInt("RETRIEVAL_K", 8); err != nil {
		return nil, err
	}
	if cfg.RetrievalFetchK, err = getEnvInt("RETRIEVAL_FETCH_K", 40); err != nil {
		return nil, err
	}
	if cfg.RetrievalFetchK < cfg.RetrievalK {
		return nil, fmt.Errorf("RETRIEVAL_FETCH_K must be >= RETRIEVAL_K")
	}
	if cfg.RetrievalLambda, err = getEnvFloat("RETRIEVAL_LAMBDA", 0.5); err != nil {
		return nil, err
	}
	if cfg.RetrievalLambda < 0 || cfg.RetrievalLambda > 1 {
		return nil, fmt.Errorf("RETRIEVAL_LAMBDA must be in [0,1]")
	}
	if cfg.SimilarityThreshold, err = getEnvFloat("SIMILARITY_THRESHOLD", 0.35); err != nil {
		return nil, err
	}
	cfg.CitationDedup = getEnvBool("CITATION_DEDUP", false)
	cfg.ReindexOnStart = getEnvBool("REINDEX_ON_START", false)

	switch cfg.ContactSink {
	case "sqlite":
	case "sheets":
		if cfg.SheetsCredsPath == "" || cfg.SheetID == "" {
			return nil, fmt.Errorf("SHEETS_CREDENTIALS_PATH and SHEET_ID are required when CONTACT_SINK=sheets")
		}
	default:
		return nil, fmt.Errorf("CONTACT_SINK must be one of: sqlite, sheets")
	}

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	// Create the data directory if it doesn't exist (for the DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	raw := strings.ToLower(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	return raw == "true" || raw == "1" || raw == "yes"
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL: %s", raw)
	}
}
