// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bt

import "bytes"

// Kind identifies the fixed key type an index admits. A single index holds
// exactly one kind for its lifetime.
type Kind uint8

const (
	Short32 Kind = iota
	Int64
	VarBytes
)

func (k Kind) String() string {
	switch k {
	case Short32:
		return "short32"
	case Int64:
		return "int64"
	case VarBytes:
		return "varbytes"
	default:
		return "unknown"
	}
}

// tuning holds the per-kind constants from the data model table: maximum
// descent depth, trie fan-out width, container capacity, and counter bucket
// count.
type tuning struct {
	maxDepth int
	width    int
	contCap  int
	buckets  int
}

// MaxVarBytes bounds the length (excluding the terminating zero byte) of a
// VarBytes key.
const MaxVarBytes = 255

var tunings = map[Kind]tuning{
	Short32:  {maxDepth: 4, width: 256, contCap: 256, buckets: 16},
	Int64:    {maxDepth: 8, width: 256, contCap: 256, buckets: 16},
	VarBytes: {maxDepth: MaxVarBytes, width: 64, contCap: 12, buckets: 8},
}

// Key is a tagged key value. Exactly one of the fields is meaningful,
// selected by Kind.
type Key struct {
	Kind  Kind
	Int   int64
	Bytes []byte
}

// NewShort32Key builds a Short32 key.
func NewShort32Key(v int32) Key { return Key{Kind: Short32, Int: int64(v)} }

// NewInt64Key builds an Int64 key.
func NewInt64Key(v int64) Key { return Key{Kind: Int64, Int: v} }

// NewVarBytesKey builds a VarBytes key. b must not itself contain a zero
// byte; the terminator is implicit and never part of the stored bytes.
func NewVarBytesKey(b []byte) Key { return Key{Kind: VarBytes, Bytes: b} }

// byteAt returns the byte the engine dispatches on at the given depth, and
// whether depth is within the key's effective length (false past the
// VarBytes terminator).
func (k Key) byteAt(depth int) (b byte, ok bool) {
	switch k.Kind {
	case Short32:
		units := [4]byte{}
		v := uint32(int32(k.Int))
		units[0] = byte(v >> 24)
		units[1] = byte(v >> 16)
		units[2] = byte(v >> 8)
		units[3] = byte(v)
		b = units[depth]
		if depth == 0 {
			b += 0x80
		}
		return b, true
	case Int64:
		units := [8]byte{}
		v := uint64(k.Int)
		for i := 0; i < 8; i++ {
			units[i] = byte(v >> uint((7-i)*8))
		}
		b = units[depth]
		if depth == 0 {
			b += 0x80
		}
		return b, true
	case VarBytes:
		if depth >= len(k.Bytes) {
			return 0, false
		}
		return k.Bytes[depth], true
	default:
		return 0, false
	}
}

// childIndex maps the byte chosen at depth to a Trie child-index in
// [0, width). For VarBytes a zero byte (the terminator, reported by byteAt
// as !ok) maps to index 0, the Nil slot; any in-range byte b maps to
// b-64+1, so that index 0 stays reserved for the Nil slot. Only bytes in
// [64, 64+width-2] are in range; any other byte is reported via the second
// return.
func (k Key) childIndex(depth int, width int) (idx int, ok bool) {
	if k.Kind == VarBytes {
		b, present := k.byteAt(depth)
		if !present {
			return 0, true
		}
		if b < 64 || int(b) >= 64+width-1 {
			return 0, false
		}
		return int(b) - 64 + 1, true
	}
	b, _ := k.byteAt(depth)
	return int(b), true
}

// Compare returns <0, 0, >0 as k sorts before, equal to, or after other.
// Both keys must share the same Kind.
func (k Key) Compare(other Key) int {
	switch k.Kind {
	case Short32, Int64:
		switch {
		case k.Int < other.Int:
			return -1
		case k.Int > other.Int:
			return 1
		default:
			return 0
		}
	case VarBytes:
		return bytes.Compare(k.Bytes, other.Bytes)
	default:
		return 0
	}
}

// Equal reports whether k and other compare equal.
func (k Key) Equal(other Key) bool { return k.Compare(other) == 0 }
