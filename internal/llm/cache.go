package llm

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedEmbedder wraps an Embedder with a TTL cache keyed by text hash.
// Users tend to repeat questions; caching the query embedding saves one
// network round trip per repeat without affecting index-build batches.
type CachedEmbedder struct {
	inner Embedder
	cache *gocache.Cache
}

// NewCachedEmbedder creates a caching wrapper around an embedder.
func NewCachedEmbedder(inner Embedder, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// EmbedQuery returns the cached vector for text if present, otherwise embeds
// and caches it.
func (c *CachedEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)
	if val, found := c.cache.Get(key); found {
		return val.([]float32), nil
	}

	vec, err := c.inner.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, vec, gocache.DefaultExpiration)
	return vec, nil
}

// EmbedTexts passes batches straight through; index builds embed each chunk
// once, so caching them would only grow the cache.
func (c *CachedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return c.inner.EmbedTexts(ctx, texts)
}

func cacheKey(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}
