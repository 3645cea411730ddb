// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bt_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxbow-labs/btindex/bt"
)

func drain(t *bt.BurstTrie) []bt.Key {
	c := bt.NewCursor(t)
	var keys []bt.Key
	for {
		k, _, err := c.GetNext()
		if bt.IsEnd(err) {
			break
		}
		keys = append(keys, k)
	}
	return keys
}

// S1 — ordering over negatives.
func TestOrderingOverNegatives(t *testing.T) {
	tr := bt.New(bt.Int64)
	keys := []int64{-5, 100, 0, math.MinInt64, math.MaxInt64}
	for _, k := range keys {
		require.NoError(t, tr.Insert(bt.NewInt64Key(k), []byte("p")))
	}

	got := drain(tr)
	want := []int64{math.MinInt64, -5, 0, 100, math.MaxInt64}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w, got[i].Int, "position %d", i)
	}
}

// S2 — duplicate-payload rejection.
func TestDuplicatePayloadRejection(t *testing.T) {
	tr := bt.New(bt.Int64)
	key := bt.NewInt64Key(42)

	require.NoError(t, tr.Insert(key, []byte("abc")))
	err := tr.Insert(key, []byte("abc"))
	assert.True(t, bt.IsEntryExists(err))

	require.NoError(t, tr.Insert(key, []byte("abd")))

	first, err := tr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(first))

	c := bt.NewCursor(tr)
	_, err = c.Get(key)
	require.NoError(t, err)
	_, p, err := c.GetNext()
	require.NoError(t, err)
	assert.Equal(t, "abd", string(p))
}

// S4 — VarBytes burst.
func TestVarBytesBurst(t *testing.T) {
	tr := bt.New(bt.VarBytes)
	var keys [][]byte
	for i := 0; i < 13; i++ {
		k := []byte(fmt.Sprintf("A%c", 'a'+i))
		keys = append(keys, k)
		require.NoError(t, tr.Insert(bt.NewVarBytesKey(k), []byte("p")))
	}

	got := drain(tr)
	require.Len(t, got, 13)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Compare(got[i]) < 0)
	}
}

// boundary 12 — getNext on an empty index.
func TestGetNextOnEmptyIndex(t *testing.T) {
	tr := bt.New(bt.Short32)
	c := bt.NewCursor(tr)
	_, _, err := c.GetNext()
	assert.True(t, bt.IsEnd(err))
}

// boundary 11 — VarBytes empty key.
func TestVarBytesEmptyKey(t *testing.T) {
	tr := bt.New(bt.VarBytes)
	empty := bt.NewVarBytesKey(nil)
	require.NoError(t, tr.Insert(empty, []byte("p")))

	v, err := tr.Get(empty)
	require.NoError(t, err)
	assert.Equal(t, "p", string(v))
}

func TestDeleteAndRoundTrip(t *testing.T) {
	tr := bt.New(bt.Short32)
	key := bt.NewShort32Key(7)
	require.NoError(t, tr.Insert(key, []byte("a")))

	before := drain(tr)

	_, err := tr.Delete(key, []byte("a"))
	require.NoError(t, err)

	_, err = tr.Get(key)
	assert.True(t, bt.IsNotFound(err))

	require.NoError(t, tr.Insert(key, []byte("a")))
	after := drain(tr)
	assert.Equal(t, before, after)
}

func TestDeleteUnknownKey(t *testing.T) {
	tr := bt.New(bt.Short32)
	_, err := tr.Delete(bt.NewShort32Key(1), nil)
	assert.True(t, bt.IsNotFound(err))
}

func TestBurstAcceptsOverflowInsert(t *testing.T) {
	tr := bt.New(bt.VarBytes)
	for i := 0; i < 12; i++ {
		k := []byte(fmt.Sprintf("A%c", 'a'+i))
		require.NoError(t, tr.Insert(bt.NewVarBytesKey(k), []byte("p")))
	}
	// 13th insert, sharing the same 'A' prefix, forces a burst and must
	// still succeed.
	require.NoError(t, tr.Insert(bt.NewVarBytesKey([]byte("Am")), []byte("p")))
	assert.Len(t, drain(tr), 13)
}

func TestCursorAcrossManyKeys(t *testing.T) {
	tr := bt.New(bt.Int64)
	const n = 500
	for i := 0; i < n; i++ {
		require.NoError(t, tr.Insert(bt.NewInt64Key(int64(i)), []byte("p")))
	}
	got := drain(tr)
	require.Len(t, got, n)
	for i, k := range got {
		assert.Equal(t, int64(i), k.Int)
	}
}
