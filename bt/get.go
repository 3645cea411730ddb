// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bt

// locateResult describes where a descent for key landed.
type locateResult struct {
	found bool

	// found, or miss that landed inside an existing leaf (container or
	// nil): leafNode/leafIdx give the leaf and, on a container miss, the
	// sorted insertion point key would occupy.
	leafNode *node
	leafIdx  int
	missInLeaf bool

	// miss that landed on a nil trie-child: no subtree exists yet for
	// key at this byte. pendingNode/pendingIdx/path locate where GetNext
	// should resume its forward search from.
	pendingNode *node
	pendingIdx  int
	path        []pathStep
}

// locate descends the trie for key without mutating anything.
func (bt *BurstTrie) locate(key Key) (locateResult, error) {
	n := bt.root
	depth := 0
	var path []pathStep

	for {
		switch n.kind {
		case nodeContainer:
			idx, found := searchContainer(n, key)
			return locateResult{
				found:      found,
				leafNode:   n,
				leafIdx:    idx,
				missInLeaf: !found,
			}, nil

		case nodeNil:
			found := n.nilLeaf != nil && n.nilLeaf.key.Equal(key)
			return locateResult{
				found:      found,
				leafNode:   n,
				leafIdx:    0,
				missInLeaf: !found,
			}, nil

		case nodeTrie:
			idx, ok := key.childIndex(depth, bt.t.width)
			if !ok {
				return locateResult{}, ErrInternal
			}
			if n.children[idx] == nil {
				return locateResult{
					pendingNode: n,
					pendingIdx:  idx,
					path:        path,
				}, nil
			}
			path = append(append([]pathStep{}, path...), pathStep{node: n, idx: idx})
			n = n.children[idx]
			depth++

		default:
			return locateResult{}, ErrInternal
		}
	}
}

// Get looks up key in bt directly, without a reusable cursor. Returns the
// first payload stored under key.
func (bt *BurstTrie) Get(key Key) ([]byte, error) {
	c := NewCursor(bt)
	return c.Get(key)
}
