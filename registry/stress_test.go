// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/oxbow-labs/btindex/bt"
	"github.com/oxbow-labs/btindex/registry"
)

// Many goroutines hammer disjoint key ranges on one handle concurrently,
// each under its own non-transactional calls, so the only thing under test
// is rwlock's read/write serialization, not burst-trie semantics.
func TestConcurrentInsertAcrossGoroutines(t *testing.T) {
	h := newOpenIndex(t, bt.Int64, "idx")

	const goroutines = 16
	const perGoroutine = 50

	var g errgroup.Group
	for w := 0; w < goroutines; w++ {
		w := w
		g.Go(func() error {
			base := int64(w * perGoroutine)
			for i := int64(0); i < perGoroutine; i++ {
				key := bt.NewInt64Key(base + i)
				payload := []byte(fmt.Sprintf("w%d-%d", w, i))
				if err := h.Insert(nil, key, payload); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for w := 0; w < goroutines; w++ {
		base := int64(w * perGoroutine)
		for i := int64(0); i < perGoroutine; i++ {
			v, err := h.Get(nil, bt.NewInt64Key(base+i))
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("w%d-%d", w, i), string(v))
		}
	}
}

// One writer holds a transaction open across two reader goroutines; both
// readers must eventually observe a deadlock rather than hang.
func TestConcurrentReadersTimeOutUnderHeldWriteTxn(t *testing.T) {
	r := registry.NewRegistry(registry.Options{})
	require.NoError(t, r.Create(bt.Int64, "idx"))

	writer, err := r.Open("idx")
	require.NoError(t, err)
	wtx := registry.Begin()
	require.NoError(t, writer.Insert(wtx, bt.NewInt64Key(1), []byte("v")))

	var g errgroup.Group
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			h, err := r.Open("idx")
			if err != nil {
				return err
			}
			tx := registry.Begin()
			_, err = h.Get(tx, bt.NewInt64Key(1))
			if !registry.IsDeadlock(err) {
				return fmt.Errorf("expected deadlock, got %v", err)
			}
			return tx.Abort()
		})
	}
	require.NoError(t, g.Wait())
	require.NoError(t, wtx.Commit())
}
