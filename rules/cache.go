package rules

import "sync"

// ProgramCache stores compiled programs keyed by expression string. Engines
// namespace their keys so one cache can be shared.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// MemoryCache is an unbounded, concurrency-safe ProgramCache.
type MemoryCache struct {
	entries sync.Map
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(key string) (any, bool) {
	return c.entries.Load(key)
}

func (c *MemoryCache) Set(key string, value any) {
	c.entries.Store(key, value)
}

func cacheKey(engine, expression string) string {
	return engine + ":" + expression
}
