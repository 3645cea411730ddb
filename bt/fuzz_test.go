// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bt_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxbow-labs/btindex/bt"
)

// Randomized int64 keys with random payloads must all round-trip through
// Insert/Get regardless of how they happen to distribute across the trie.
func TestFuzzInt64RoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 6)

	idx := bt.New(bt.Int64)
	seen := make(map[int64][]byte)

	for i := 0; i < 500; i++ {
		var key int64
		f.Fuzz(&key)
		if _, dup := seen[key]; dup {
			continue
		}
		var payload []byte
		f.Fuzz(&payload)

		require.NoError(t, idx.Insert(bt.NewInt64Key(key), payload))
		seen[key] = payload
	}

	for key, payload := range seen {
		got, err := idx.Get(bt.NewInt64Key(key))
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	}
}

// toPrintableRange folds each fuzzed byte into [64, 126], the range the
// VarBytes dispatch table actually maps to a child slot (see Key.childIndex).
func toPrintableRange(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = 64 + c%63
	}
	return out
}

// Randomized VarBytes keys of varying length must preserve ascending order
// when drained through a fresh cursor.
func TestFuzzVarBytesOrdering(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 32)

	idx := bt.New(bt.VarBytes)
	var keys [][]byte
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		var fuzzed []byte
		f.Fuzz(&fuzzed)
		if len(fuzzed) == 0 {
			continue
		}
		raw := toPrintableRange(fuzzed)
		if len(raw) > bt.MaxVarBytes {
			raw = raw[:bt.MaxVarBytes]
		}
		if seen[string(raw)] {
			continue
		}
		seen[string(raw)] = true
		keys = append(keys, raw)
		require.NoError(t, idx.Insert(bt.NewVarBytesKey(raw), []byte("v")))
	}

	drained := drain(idx)
	require.Len(t, drained, len(keys))
	for i := 1; i < len(drained); i++ {
		assert.LessOrEqual(t, drained[i-1].Compare(drained[i]), 0)
	}
}
