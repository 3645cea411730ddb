// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bt

// Cursor is a position inside a BurstTrie that survives across Get/GetNext
// calls and advances in key order. A Cursor obtained from NewCursor starts
// before the first key; the zero value is not bound to a trie and is not
// usable.
type Cursor struct {
	bt *BurstTrie

	// pending is set when the last Get missed: leafNode is nil and
	// pendingNode/pendingIdx locate the trie node and child-index the
	// missing key would have occupied, for GetNext to resolve forward
	// from there.
	pending     bool
	pendingNode *node
	pendingIdx  int
	pendingPath []pathStep

	leafNode *node
	leafPos  int
	rec      *payloadNode

	started bool
	ended   bool
}

// NewCursor returns a cursor positioned before the first key of bt.
func NewCursor(bt *BurstTrie) *Cursor {
	return &Cursor{bt: bt}
}

// Get positions the cursor at key and returns its first payload. On
// ErrKeyNotFound the cursor is left positioned so that GetNext resumes in
// ascending order from where key would have been.
func (c *Cursor) Get(key Key) ([]byte, error) {
	c.reset()
	c.started = true

	res, err := c.bt.locate(key)
	if err != nil {
		return nil, err
	}

	if res.found {
		c.leafNode = res.leafNode
		c.leafPos = res.leafIdx
		lf := leafAt(res.leafNode, res.leafIdx)
		if lf.payload == nil {
			return nil, ErrInternal
		}
		c.rec = lf.payload.next
		return lf.payload.payload, nil
	}

	if res.missInLeaf {
		// position just before where key would sort, so the ordinary
		// leaf-advance logic finds the correct successor.
		c.leafNode = res.leafNode
		c.leafPos = res.leafIdx - 1
		c.rec = nil
		return nil, ErrKeyNotFound
	}

	c.pending = true
	c.pendingNode = res.pendingNode
	c.pendingIdx = res.pendingIdx
	c.pendingPath = res.path
	return nil, ErrKeyNotFound
}

// GetNext returns the cursor's next (key, first-payload) pair in ascending
// order and advances past it. If the cursor sits mid payload-list for the
// current key (e.g. right after Get), it instead returns the next payload
// under that same key before moving on to the next key.
func (c *Cursor) GetNext() (Key, []byte, error) {
	if c.ended {
		return Key{}, nil, ErrEnd
	}

	if !c.started {
		c.started = true
		n := leftmostLeaf(c.bt.root)
		if n == nil {
			c.ended = true
			return Key{}, nil, ErrEnd
		}
		c.leafNode = n
		c.leafPos = -1
		c.rec = nil
	}

	if c.pending {
		leaf, idx, ok := c.resolvePending()
		if !ok {
			c.ended = true
			return Key{}, nil, ErrEnd
		}
		c.pending = false
		c.leafNode = leaf
		c.leafPos = idx
		lf := leafAt(leaf, idx)
		c.rec = lf.payload.next
		return lf.key, lf.payload.payload, nil
	}

	if c.leafNode == nil {
		c.ended = true
		return Key{}, nil, ErrEnd
	}

	if c.rec != nil {
		lf := leafAt(c.leafNode, c.leafPos)
		p := c.rec.payload
		c.rec = c.rec.next
		return lf.key, p, nil
	}

	leaf, idx, ok := c.advanceLeaf()
	if !ok {
		c.ended = true
		return Key{}, nil, ErrEnd
	}
	c.leafNode = leaf
	c.leafPos = idx
	lf := leafAt(leaf, idx)
	c.rec = lf.payload.next
	return lf.key, lf.payload.payload, nil
}

func (c *Cursor) reset() {
	c.pending = false
	c.pendingNode = nil
	c.pendingPath = nil
	c.leafNode = nil
	c.rec = nil
	c.ended = false
}

// leafAt returns the logical leaf (key + payload list) at position idx
// inside a container or nil-leaf node.
func leafAt(n *node, idx int) *leaf {
	if n.kind == nodeNil {
		return n.nilLeaf
	}
	return &n.leaves[idx]
}

// advanceLeaf moves from the cursor's current leaf position to the next
// one in ascending order: within the same leaf node if possible, else by
// following Right to the next leaf node in the doubly-linked list.
func (c *Cursor) advanceLeaf() (*node, int, bool) {
	n := c.leafNode
	if n.kind == nodeContainer && c.leafPos+1 < len(n.leaves) {
		return n, c.leafPos + 1, true
	}
	next := n.right
	if next == nil {
		return nil, 0, false
	}
	return next, 0, true
}

// resolvePending locates the nearest leaf at or after a missed Get: first
// skipping forward within the pending trie node's buckets, then walking up
// ancestors via their rear bound, then descending left-most into whatever
// subtree is found.
func (c *Cursor) resolvePending() (*node, int, bool) {
	t := c.bt.t

	n := c.pendingNode
	startIdx := c.pendingIdx + 1

	if n != nil {
		if idx, ok := nextNonNilChild(n, startIdx, t); ok {
			if l := leftmostLeaf(n.children[idx]); l != nil {
				return l, 0, true
			}
		}
	}

	for i := len(c.pendingPath) - 1; i >= 0; i-- {
		p := c.pendingPath[i]
		if idx, ok := nextNonNilChild(p.node, p.idx+1, t); ok {
			if l := leftmostLeaf(p.node.children[idx]); l != nil {
				return l, 0, true
			}
		}
	}

	return nil, 0, false
}

// nextNonNilChild finds the smallest non-nil child index >= from, using the
// counter buckets to skip whole empty buckets at a time.
func nextNonNilChild(n *node, from int, t tuning) (int, bool) {
	if from < 0 {
		from = 0
	}
	if n.rear == -1 || from > n.rear {
		return 0, false
	}
	unit := t.width / t.buckets
	i := from
	for i <= n.rear {
		bucket := i / unit
		if n.counter[bucket] == 0 {
			i = (bucket + 1) * unit
			continue
		}
		if n.children[i] != nil {
			return i, true
		}
		i++
	}
	return 0, false
}
