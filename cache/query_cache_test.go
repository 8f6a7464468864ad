package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCacheRoundTrip(t *testing.T) {
	c, err := NewQueryCache(8)
	require.NoError(t, err)

	c.Set(42, "INSERT INTO t1 (a, b) VALUES (?, ?)")

	got, ok := c.Get(42)
	require.True(t, ok)
	assert.Equal(t, "INSERT INTO t1 (a, b) VALUES (?, ?)", got)

	_, ok = c.Get(7)
	assert.False(t, ok)
}

func TestQueryCacheEvicts(t *testing.T) {
	c, err := NewQueryCache(2)
	require.NoError(t, err)

	c.Set(1, "a")
	c.Set(2, "b")
	c.Set(3, "c")

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestNewQueryCacheRejectsBadSize(t *testing.T) {
	_, err := NewQueryCache(0)
	assert.Error(t, err)
}
