package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCache(t *testing.T) {
	c, err := NewResultCache[string](2)
	require.NoError(t, err)

	c.Put("a", "1")
	c.Put("b", "2")
	c.Put("c", "3")

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")

	v, ok := c.Get("c")
	require.True(t, ok)
	assert.Equal(t, "3", v)
	assert.Equal(t, 2, c.Len())
}

func TestNewResultCache_InvalidSize(t *testing.T) {
	_, err := NewResultCache[int](0)
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.Len(t, Key(), 64)
}
