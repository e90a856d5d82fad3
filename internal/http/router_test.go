package http

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"relnotes-faq/internal/escalate"
	escmocks "relnotes-faq/internal/escalate/mocks"
	"relnotes-faq/internal/index"
	"relnotes-faq/internal/indexer"
	llmmocks "relnotes-faq/internal/llm/mocks"
	ragmocks "relnotes-faq/internal/rag/mocks"
	"relnotes-faq/internal/storage"
	vsmocks "relnotes-faq/internal/vectorstore/mocks"

	"go.uber.org/mock/gomock"
)

func testDeps(t *testing.T, ctrl *gomock.Controller) *Deps {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	store := vsmocks.NewMockVectorStore(ctrl)
	manager := index.NewManager(store, storage.NewIndexMetaRepo(db), "relnotes", 2)
	pipeline := indexer.NewPipeline(
		storage.NewDocumentRepo(db), storage.NewChunkRepo(db),
		llmmocks.NewMockEmbedder(ctrl), manager, indexer.NewChunker(1000, 150))

	return &Deps{
		Engine:     ragmocks.NewMockEngine(ctrl),
		Escalation: escalate.NewService(escmocks.NewMockContactSink(ctrl)),
		Pipeline:   pipeline,
		CorpusPath: filepath.Join(t.TempDir(), "corpus.json"),
		DB:         db,
		Index:      manager,
		SinkOK:     true,
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := NewRouter(testDeps(t, ctrl))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "POST /api/v1/query exists",
			method:     http.MethodPost,
			path:       "/api/v1/query",
			wantStatus: http.StatusBadRequest, // empty body, but the route exists
		},
		{
			name:       "GET /api/v1/query method not allowed",
			method:     http.MethodGet,
			path:       "/api/v1/query",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "POST /api/v1/contact exists",
			method:     http.MethodPost,
			path:       "/api/v1/contact",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "POST /api/v1/contact/validate exists",
			method:     http.MethodPost,
			path:       "/api/v1/contact/validate",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "POST /api/v1/contact/status exists",
			method:     http.MethodPost,
			path:       "/api/v1/contact/status",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "GET /health exists",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusServiceUnavailable, // no index loaded yet
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := NewRouter(testDeps(t, ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}
