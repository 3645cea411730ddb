package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxbow-labs/btindex/cache"
)

func TestLRU(t *testing.T) {
	lru := cache.NewLRU(10)
	v, err := lru.GetOrLoad("foo", func(interface{}) (interface{}, error) {
		return "bar", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "bar", v)

	v, ok := lru.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, "bar", v)

	changed, hit, miss := lru.Stats.Stats()
	assert.True(t, changed)
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
}
