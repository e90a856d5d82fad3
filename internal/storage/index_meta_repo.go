package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// IndexMetaStore tracks the active vector collection. The rebuild swap
// writes the new collection name here before the old collection is dropped.
type IndexMetaStore interface {
	// Get returns the active index metadata. Returns ErrNotFound when no
	// index has ever been built.
	Get(ctx context.Context) (*IndexMeta, error)
	// Set replaces the active index metadata.
	Set(ctx context.Context, meta *IndexMeta) error
}

// IndexMetaRepo implements IndexMetaStore on SQLite.
type IndexMetaRepo struct {
	db *sql.DB
}

// NewIndexMetaRepo creates a new IndexMetaRepo.
func NewIndexMetaRepo(db *sql.DB) *IndexMetaRepo {
	return &IndexMetaRepo{db: db}
}

// Get returns the active index metadata, or ErrNotFound when absent.
func (r *IndexMetaRepo) Get(ctx context.Context) (*IndexMeta, error) {
	var meta IndexMeta
	err := r.db.QueryRowContext(ctx,
		"SELECT collection, vector_size, chunk_count, built_at FROM index_meta WHERE id = 1",
	).Scan(&meta.Collection, &meta.VectorSize, &meta.ChunkCount, &meta.BuiltAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query index meta: %w", err)
	}

	return &meta, nil
}

// Set replaces the active index metadata in a single upsert.
func (r *IndexMetaRepo) Set(ctx context.Context, meta *IndexMeta) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO index_meta (id, collection, vector_size, chunk_count, built_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			collection = excluded.collection,
			vector_size = excluded.vector_size,
			chunk_count = excluded.chunk_count,
			built_at = excluded.built_at`,
		meta.Collection, meta.VectorSize, meta.ChunkCount, meta.BuiltAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set index meta: %w", err)
	}
	return nil
}
