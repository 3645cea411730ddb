// Package cache provides small in-process caching primitives shared by the
// index registry: a bounded LRU keyed by index name, and a hit/miss counter
// recording how often lookups through that LRU are served from it.
package cache

import (
	lru "github.com/hashicorp/golang-lru"
)

// LRU wraps golang-lru.Cache and tracks its own hit/miss rate via Stats.
type LRU struct {
	*lru.Cache
	Stats Stats
}

// NewLRU creates an LRU cache of the given size. Sizes below 16 are bumped
// up to 16 so a registry with a handful of indexes never thrashes.
func NewLRU(maxSize int) *LRU {
	if maxSize < 16 {
		maxSize = 16
	}
	c, _ := lru.New(maxSize)
	return &LRU{Cache: c}
}

// Get returns the cached value for key, recording a hit or a miss in Stats.
func (l *LRU) Get(key interface{}) (interface{}, bool) {
	v, ok := l.Cache.Get(key)
	if ok {
		l.Stats.Hit()
	} else {
		l.Stats.Miss()
	}
	return v, ok
}

// Loader loads the value for a key on a cache miss.
type Loader func(key interface{}) (interface{}, error)

// GetOrLoad returns the cached value for key, loading and caching it on miss.
func (l *LRU) GetOrLoad(key interface{}, loader Loader) (interface{}, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}

	v, err := loader(key)
	if err != nil {
		return nil, err
	}

	l.Add(key, v)
	return v, nil
}
