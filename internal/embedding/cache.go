package embedding

import (
	"container/list"
	"context"
	"sync"
)

// queryCache is a small thread-safe LRU of query embeddings.
type queryCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
}

type cacheEntry struct {
	key string
	vec []float32
}

func newQueryCache(capacity int) *queryCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &queryCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

func (c *queryCache) get(key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).vec, true
}

func (c *queryCache) put(key string, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		el.Value.(*cacheEntry).vec = vec
		return
	}
	c.items[key] = c.order.PushFront(&cacheEntry{key: key, vec: vec})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
	}
}

// CachedEmbedder wraps an Embedder with an LRU cache over query embeddings.
// Document embedding is never cached: documents are embedded once per index
// build, queries repeat.
type CachedEmbedder struct {
	Embedder
	cache *queryCache
}

// NewCachedEmbedder wraps e with a query cache holding up to capacity entries.
func NewCachedEmbedder(e Embedder, capacity int) *CachedEmbedder {
	return &CachedEmbedder{Embedder: e, cache: newQueryCache(capacity)}
}

// EmbedQuery returns the cached vector when available, otherwise delegates
// and stores the result.
func (c *CachedEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.get(text); ok {
		return vec, nil
	}
	vec, err := c.Embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.put(text, vec)
	return vec, nil
}
