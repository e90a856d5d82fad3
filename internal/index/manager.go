package index

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/storage"
	"relnotes-faq/internal/vectorstore"
)

var (
	// ErrIndexUnavailable is returned when no persisted index exists.
	// Callers must treat this as a hard precondition failure, not a
	// retryable error.
	ErrIndexUnavailable = errors.New("vector index unavailable: run ingestion first")

	// ErrRebuildInProgress is returned when a rebuild is requested while
	// another rebuild is still running.
	ErrRebuildInProgress = errors.New("index rebuild already in progress")
)

const upsertBatchSize = 100

// Manager owns the active vector collection. Any number of searches may run
// concurrently; a rebuild constructs a fresh collection off to the side and
// swaps it in, so readers keep hitting the prior index until the swap.
type Manager struct {
	store      vectorstore.VectorStore
	meta       storage.IndexMetaStore
	prefix     string
	vectorSize int

	mu     sync.RWMutex // guards active
	active string

	rebuildMu sync.Mutex // serializes rebuilds
}

// NewManager creates an index manager. Load or Rebuild must be called before
// the first Search.
func NewManager(store vectorstore.VectorStore, meta storage.IndexMetaStore, prefix string, vectorSize int) *Manager {
	return &Manager{
		store:      store,
		meta:       meta,
		prefix:     prefix,
		vectorSize: vectorSize,
	}
}

// Load attaches to the persisted index recorded in the meta store.
// Returns ErrIndexUnavailable when no index has been built or the recorded
// collection no longer exists.
func (m *Manager) Load(ctx context.Context) error {
	meta, err := m.meta.Get(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrIndexUnavailable
	}
	if err != nil {
		return fmt.Errorf("failed to read index meta: %w", err)
	}

	exists, err := m.store.CollectionExists(ctx, meta.Collection)
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", meta.Collection, err)
	}
	if !exists {
		return ErrIndexUnavailable
	}

	if meta.VectorSize != m.vectorSize {
		return fmt.Errorf("index vector size mismatch: index has %d, configured %d", meta.VectorSize, m.vectorSize)
	}

	m.mu.Lock()
	m.active = meta.Collection
	m.mu.Unlock()

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "index loaded",
		"collection", meta.Collection, "chunks", meta.ChunkCount, "built_at", meta.BuiltAt)
	return nil
}

// Rebuild replaces the index with the given points. The replacement is built
// in a fresh collection first; the active collection keeps serving queries
// until the meta row and in-memory handle are updated, and only then is the
// old collection dropped. A failed rebuild leaves the prior index intact.
func (m *Manager) Rebuild(ctx context.Context, points []vectorstore.Point) error {
	if !m.rebuildMu.TryLock() {
		return ErrRebuildInProgress
	}
	defer m.rebuildMu.Unlock()

	logger := contextutil.LoggerFromContext(ctx)

	fresh := fmt.Sprintf("%s_%s", m.prefix, strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
	if err := m.store.CreateCollection(ctx, fresh, m.vectorSize); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", fresh, err)
	}

	for start := 0; start < len(points); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(points) {
			end = len(points)
		}
		if err := m.store.Upsert(ctx, fresh, points[start:end]); err != nil {
			// Abandon the half-built collection; the active one is untouched.
			if dropErr := m.store.DropCollection(ctx, fresh); dropErr != nil {
				logger.WarnContext(ctx, "failed to clean up partial collection", "collection", fresh, "error", dropErr)
			}
			return fmt.Errorf("failed to index points: %w", err)
		}
	}

	if err := m.meta.Set(ctx, &storage.IndexMeta{
		Collection: fresh,
		VectorSize: m.vectorSize,
		ChunkCount: len(points),
		BuiltAt:    time.Now().UTC(),
	}); err != nil {
		if dropErr := m.store.DropCollection(ctx, fresh); dropErr != nil {
			logger.WarnContext(ctx, "failed to clean up collection after meta failure", "collection", fresh, "error", dropErr)
		}
		return fmt.Errorf("failed to record index meta: %w", err)
	}

	m.mu.Lock()
	old := m.active
	m.active = fresh
	m.mu.Unlock()

	if old != "" && old != fresh {
		if err := m.store.DropCollection(ctx, old); err != nil {
			// The swap already happened; a leaked collection is not fatal.
			logger.WarnContext(ctx, "failed to drop previous collection", "collection", old, "error", err)
		}
	}

	logger.InfoContext(ctx, "index rebuilt", "collection", fresh, "chunks", len(points))
	return nil
}

// Search runs a similarity search against the active collection, returning
// up to fetchK candidates by descending similarity.
func (m *Manager) Search(ctx context.Context, query []float32, fetchK int) ([]vectorstore.SearchResult, error) {
	m.mu.RLock()
	active := m.active
	m.mu.RUnlock()

	if active == "" {
		return nil, ErrIndexUnavailable
	}

	return m.store.Search(ctx, active, query, fetchK)
}

// Ready reports whether an index is loaded and searchable.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active != ""
}
