package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// QueryCache maps a statement shape fingerprint to its rendered SQL.
// Bound values are never stored: statements that differ only in their
// values share an entry, and callers collect the values per compile.
// Implementations must be safe for concurrent use.
type QueryCache interface {
	Get(fingerprint uint64) (string, bool)
	Set(fingerprint uint64, sql string)
	Len() int
	Purge()
}

type lruQueryCache struct {
	cache *lru.Cache[uint64, string]
}

func NewQueryCache(size int) (QueryCache, error) {
	c, err := lru.New[uint64, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}
	return &lruQueryCache{cache: c}, nil
}

func (c *lruQueryCache) Get(f uint64) (string, bool) {
	return c.cache.Get(f)
}

func (c *lruQueryCache) Set(f uint64, sql string) {
	c.cache.Add(f, sql)
}

func (c *lruQueryCache) Len() int { return c.cache.Len() }

func (c *lruQueryCache) Purge() { c.cache.Purge() }
