// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry is the transaction and locking layer around package bt:
// a process-wide (well, Registry-wide — there is no package singleton)
// mapping from index name to burst trie, per-index reader/writer locks with
// bounded-wait deadlock detection, and per-goroutine transactions with
// rollback via an operation log.
package registry

import (
	"sync"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/oxbow-labs/btindex/bt"
	"github.com/oxbow-labs/btindex/cache"
)

var logger = ethlog.New("pkg", "btindex/registry")

// index is one named burst trie plus the lock guarding it.
type index struct {
	kind bt.Kind
	trie *bt.BurstTrie
	lock rwlock
}

// Options configures a Registry. The zero value is usable.
type Options struct {
	// CacheSize bounds the name->index lookaside. Below 16 it is bumped
	// up to 16 (see cache.NewLRU).
	CacheSize int
}

// Registry owns a set of named indexes. It is an explicit value, not a
// package-level singleton: tests and independent callers each construct
// their own.
type Registry struct {
	mu      sync.Mutex
	indexes map[string]*index
	lookup  *cache.LRU
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		indexes: make(map[string]*index),
		lookup:  cache.NewLRU(opts.CacheSize),
	}
}

// Create registers a new, empty index under name with the given key kind.
func (r *Registry) Create(kind bt.Kind, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.indexes[name]; ok {
		return ErrIndexExists
	}
	r.indexes[name] = &index{kind: kind, trie: bt.New(kind)}
	logger.Debug("index created", "name", name, "kind", kind.String())
	return nil
}

// Open allocates a fresh handle bound to the named index's trie and lock.
// Opening the same name repeatedly is cheap: the name->index lookup is
// cached across calls, bypassing the registry mutex on the hot path.
func (r *Registry) Open(name string) (*Handle, error) {
	v, err := r.lookup.GetOrLoad(name, func(key interface{}) (interface{}, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		idx, ok := r.indexes[key.(string)]
		if !ok {
			return nil, ErrIndexNotExists
		}
		return idx, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "open index")
	}

	idx := v.(*index)
	return &Handle{
		reg:    r,
		name:   name,
		index:  idx,
		cursor: bt.NewCursor(idx.trie),
		flags:  flagNoGet,
	}, nil
}
