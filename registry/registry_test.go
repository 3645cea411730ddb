// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxbow-labs/btindex/bt"
	"github.com/oxbow-labs/btindex/registry"
)

func newOpenIndex(t *testing.T, kind bt.Kind, name string) *registry.Handle {
	t.Helper()
	r := registry.NewRegistry(registry.Options{})
	require.NoError(t, r.Create(kind, name))
	h, err := r.Open(name)
	require.NoError(t, err)
	return h
}

func TestCreateDuplicateRejected(t *testing.T) {
	r := registry.NewRegistry(registry.Options{})
	require.NoError(t, r.Create(bt.Int64, "x"))
	err := r.Create(bt.Int64, "x")
	assert.ErrorIs(t, err, registry.ErrIndexExists)
}

func TestOpenUnknownIndex(t *testing.T) {
	r := registry.NewRegistry(registry.Options{})
	_, err := r.Open("nope")
	assert.Error(t, err)
}

// S3 — abort replay.
func TestAbortReplay(t *testing.T) {
	h := newOpenIndex(t, bt.Int64, "idx")

	tx := registry.Begin()
	require.NoError(t, h.Insert(tx, bt.NewInt64Key(7), []byte("a")))
	require.NoError(t, h.Delete(tx, bt.NewInt64Key(7), nil))
	require.NoError(t, h.Insert(tx, bt.NewInt64Key(7), []byte("b")))
	require.NoError(t, tx.Abort())

	_, err := h.Get(nil, bt.NewInt64Key(7))
	assert.True(t, bt.IsNotFound(err))
}

// S5 — cursor across in-txn mutations.
func TestCursorRepairAcrossMutations(t *testing.T) {
	h := newOpenIndex(t, bt.Int64, "idx")
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, h.Insert(nil, bt.NewInt64Key(i), []byte("p")))
	}

	tx := registry.Begin()
	v, err := h.Get(tx, bt.NewInt64Key(2))
	require.NoError(t, err)
	assert.Equal(t, "p", string(v))

	require.NoError(t, h.Delete(tx, bt.NewInt64Key(4), []byte("p")))

	k, _, err := h.GetNext(tx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), k.Int)

	k, _, err = h.GetNext(tx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), k.Int)

	_, _, err = h.GetNext(tx)
	assert.True(t, bt.IsEnd(err))

	require.NoError(t, tx.Commit())
}

// S6 — deadlock surface.
func TestDeadlockSurface(t *testing.T) {
	r := registry.NewRegistry(registry.Options{})
	require.NoError(t, r.Create(bt.Int64, "idx"))

	h1, err := r.Open("idx")
	require.NoError(t, err)
	h2, err := r.Open("idx")
	require.NoError(t, err)

	tx1 := registry.Begin()
	require.NoError(t, h1.Insert(tx1, bt.NewInt64Key(1), []byte("p")))

	tx2 := registry.Begin()
	start := time.Now()
	_, err = h2.Get(tx2, bt.NewInt64Key(1))
	elapsed := time.Since(start)

	assert.True(t, registry.IsDeadlock(err))
	assert.GreaterOrEqual(t, elapsed, 70*time.Millisecond)

	require.NoError(t, tx2.Abort())
	require.NoError(t, tx1.Commit())
}

func TestNonTransactionalRoundTrip(t *testing.T) {
	h := newOpenIndex(t, bt.Short32, "idx")

	require.NoError(t, h.Insert(nil, bt.NewShort32Key(1), []byte("a")))
	v, err := h.Get(nil, bt.NewShort32Key(1))
	require.NoError(t, err)
	assert.Equal(t, "a", string(v))

	require.NoError(t, h.Delete(nil, bt.NewShort32Key(1), nil))
	_, err = h.Get(nil, bt.NewShort32Key(1))
	assert.True(t, bt.IsNotFound(err))
}
