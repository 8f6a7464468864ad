package cache

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrStatementNotCached = errors.New("statement not cached")

// Preparer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type StatementCache struct {
	cache *lru.Cache[string, *sql.Stmt]
	mu    sync.RWMutex
}

func NewStatementCache(size int) (*StatementCache, error) {
	cache, err := lru.NewWithEvict(size, func(_ string, stmt *sql.Stmt) {
		_ = stmt.Close() // Clean up evicted statements
	})
	if err != nil {
		return nil, err
	}

	return &StatementCache{
		cache: cache,
	}, nil
}

func (s *StatementCache) Get(query string) (*sql.Stmt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if stmt, ok := s.cache.Get(query); ok {
		return stmt, nil
	}
	return nil, ErrStatementNotCached
}

func (s *StatementCache) GetOrPrepare(ctx context.Context, db Preparer, query string) (*sql.Stmt, error) {
	// Fast path: try to get from cache with read lock
	s.mu.RLock()
	if stmt, ok := s.cache.Get(query); ok {
		s.mu.RUnlock()
		return stmt, nil
	}
	s.mu.RUnlock()

	// Slow path: prepare and cache with write lock
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if stmt, ok := s.cache.Get(query); ok {
		return stmt, nil
	}

	stmt, err := db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}

	s.cache.Add(query, stmt)
	return stmt, nil
}

func (s *StatementCache) Len() int {
	return s.cache.Len()
}

func (s *StatementCache) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Purge() // This will trigger the evict callback for all items
	return nil
}
