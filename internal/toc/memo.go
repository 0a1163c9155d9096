package toc

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadResult is the immutable triple MemoCache publishes for a FilePath:
// the resolved node plus the two dependency side-tables.
type LoadResult struct {
	Node            *TocNode
	ReferencedFiles []*Document
	ReferencedTocs  []*Document
}

// MemoCache memoizes loaded TOCs keyed by file path, with single-flight
// semantics: factory runs at most once per key even under concurrent
// contention. A sync.Map-style mutex-guarded map publishes
// the finished result; golang.org/x/sync/singleflight collapses concurrent
// callers onto the one in-flight computation.
type MemoCache struct {
	group   singleflight.Group
	mu      sync.RWMutex
	results map[string]*LoadResult
}

// NewMemoCache builds an empty cache.
func NewMemoCache() *MemoCache {
	return &MemoCache{results: make(map[string]*LoadResult)}
}

// GetOrCompute returns the cached result for key, computing it via factory
// at most once. The returned pointer is shared by reference among all
// callers; treat it as immutable.
func (c *MemoCache) GetOrCompute(key string, factory func() (*LoadResult, error)) (*LoadResult, error) {
	if r, ok := c.lookup(key); ok {
		return r, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if r, ok := c.lookup(key); ok {
			return r, nil
		}
		r, err := factory()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.results[key] = r
		c.mu.Unlock()
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*LoadResult), nil
}

func (c *MemoCache) lookup(key string) (*LoadResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.results[key]
	return r, ok
}

// Evict drops a cached entry so the next Load for key recomputes it. Used by
// internal/scheduler's periodic eviction job; never called by the loader
// itself.
func (c *MemoCache) Evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, key)
}

// Keys returns a snapshot of the currently cached keys.
func (c *MemoCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.results))
	for k := range c.results {
		keys = append(keys, k)
	}
	return keys
}
