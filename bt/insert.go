// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bt

import "sort"

// Insert adds payload under key. A byte-equal payload already present under
// key returns ErrEntryExists; the key itself is then left untouched.
func (bt *BurstTrie) Insert(key Key, payload []byte) error {
	get, set := rootSlot(bt)
	return bt.insertInto(get, set, nil, 0, key, payload)
}

func (bt *BurstTrie) insertInto(get func() *node, set func(*node), path []pathStep, depth int, key Key, payload []byte) error {
	n := get()

	switch n.kind {
	case nodeNil:
		if n.nilLeaf == nil {
			n.nilLeaf = &leaf{key: key}
		}
		return n.nilLeaf.appendPayload(payload)

	case nodeContainer:
		idx, found := searchContainer(n, key)
		if found {
			return n.leaves[idx].appendPayload(payload)
		}
		if len(n.leaves) < bt.t.contCap {
			n.leaves = append(n.leaves, leaf{})
			copy(n.leaves[idx+1:], n.leaves[idx:len(n.leaves)-1])
			n.leaves[idx] = leaf{key: key}
			n.leaves[idx].appendPayload(payload)
			return nil
		}

		newTrieNode, err := bt.burst(n, depth)
		if err != nil {
			return err
		}
		set(newTrieNode)
		return bt.insertInto(get, set, path, depth, key, payload)

	case nodeTrie:
		idx, ok := key.childIndex(depth, bt.t.width)
		if !ok {
			return ErrInternal
		}
		if depth >= bt.t.maxDepth {
			return ErrInternal
		}

		if n.children[idx] == nil {
			child, err := bt.newLeafFor(key, depth)
			if err != nil {
				return err
			}
			if err := child.appendEntry(key, payload); err != nil {
				return err
			}

			childPath := append(append([]pathStep{}, path...), pathStep{node: n, idx: idx})
			pred := findPredecessor(childPath)
			succ := findSuccessor(childPath)
			spliceLeaf(child, pred, succ)
			n.setChild(idx, child, bt.t)
			return nil
		}

		childPath := append(append([]pathStep{}, path...), pathStep{node: n, idx: idx})
		cget, cset := childSlot(n, idx)
		return bt.insertInto(cget, cset, childPath, depth+1, key, payload)

	default:
		return ErrInternal
	}
}

// newLeafFor allocates the node that should occupy a nil trie-child slot for
// key at the given depth: a Nil terminator under VarBytes when the key ends
// here, a Container otherwise.
func (bt *BurstTrie) newLeafFor(key Key, depth int) (*node, error) {
	if bt.kind == VarBytes {
		if _, ok := key.byteAt(depth); !ok {
			return newNilLeaf(), nil
		}
	}
	return newContainer(depth+1, bt.t), nil
}

// appendEntry installs key/payload as the sole entry of a freshly created
// leaf node (container or nil).
func (n *node) appendEntry(key Key, payload []byte) error {
	switch n.kind {
	case nodeNil:
		n.nilLeaf = &leaf{key: key}
		return n.nilLeaf.appendPayload(payload)
	case nodeContainer:
		n.leaves = append(n.leaves, leaf{key: key})
		return n.leaves[0].appendPayload(payload)
	default:
		return ErrInternal
	}
}

// searchContainer binary-searches a sorted container for key, returning the
// index it occupies (found=true) or the index it would be inserted at
// (found=false).
func searchContainer(n *node, key Key) (idx int, found bool) {
	i := sort.Search(len(n.leaves), func(i int) bool {
		return n.leaves[i].key.Compare(key) >= 0
	})
	if i < len(n.leaves) && n.leaves[i].key.Equal(key) {
		return i, true
	}
	return i, false
}

// burst builds a new trie node to replace a full container at the given
// depth: every existing leaf is redistributed one depth deeper, and the
// freshly created children are spliced into the doubly-linked list where
// the container used to sit. The container itself is not converted in
// place; the caller installs the returned trie node in the container's
// parent slot. A redistributed leaf whose destination child is itself full
// is carried deeper by reinsertLeaf.
func (bt *BurstTrie) burst(old *node, depth int) (*node, error) {
	if depth+1 > bt.t.maxDepth {
		return nil, ErrInternal
	}

	newTrieNode := newTrie(bt.t)

	oldLeft, oldRight := old.left, old.right

	var firstChild, lastChild *node

	for _, lf := range old.leaves {
		idx, ok := lf.key.childIndex(depth, bt.t.width)
		if !ok {
			return nil, ErrInternal
		}

		if newTrieNode.children[idx] == nil {
			child, err := bt.newLeafFor(lf.key, depth)
			if err != nil {
				return nil, err
			}
			newTrieNode.setChild(idx, child, bt.t)
		}

		cget, cset := childSlot(newTrieNode, idx)
		if err := bt.reinsertLeaf(cget, cset, depth+1, &lf); err != nil {
			return nil, err
		}
	}

	for i := 0; i < bt.t.width; i++ {
		if c := newTrieNode.children[i]; c != nil {
			if l := leftmostLeaf(c); l != nil {
				firstChild = l
				break
			}
		}
	}
	for i := bt.t.width - 1; i >= 0; i-- {
		if c := newTrieNode.children[i]; c != nil {
			if l := rightmostLeaf(c); l != nil {
				lastChild = l
				break
			}
		}
	}

	// thread the new children's leaves to one another in index order.
	var prev *node
	for i := 0; i < bt.t.width; i++ {
		c := newTrieNode.children[i]
		if c == nil {
			continue
		}
		l := leftmostLeaf(c)
		r := rightmostLeaf(c)
		if l == nil {
			continue
		}
		if prev != nil {
			prev.right = l
			l.left = prev
		}
		prev = r
	}

	if firstChild != nil {
		firstChild.left = oldLeft
	}
	if oldLeft != nil {
		oldLeft.right = firstChild
	}
	if lastChild != nil {
		lastChild.right = oldRight
	}
	if oldRight != nil {
		oldRight.left = lastChild
	}

	return newTrieNode, nil
}

// reinsertLeaf carries one already-extracted leaf (key plus its whole
// payload list) from a bursting container into a freshly created child
// subtree, recursing through further bursts if that subtree itself fills.
func (bt *BurstTrie) reinsertLeaf(get func() *node, set func(*node), depth int, lf *leaf) error {
	n := get()

	switch n.kind {
	case nodeNil:
		if n.nilLeaf == nil {
			n.nilLeaf = &leaf{key: lf.key}
		}
		n.nilLeaf.payload = lf.payload
		return nil

	case nodeContainer:
		if len(n.leaves) == 0 {
			n.leaves = append(n.leaves, *lf)
			return nil
		}
		if len(n.leaves) < bt.t.contCap {
			idx, _ := searchContainer(n, lf.key)
			n.leaves = append(n.leaves, leaf{})
			copy(n.leaves[idx+1:], n.leaves[idx:len(n.leaves)-1])
			n.leaves[idx] = *lf
			return nil
		}
		newTrieNode, err := bt.burst(n, depth)
		if err != nil {
			return err
		}
		set(newTrieNode)
		return bt.reinsertLeaf(get, set, depth, lf)

	case nodeTrie:
		idx, ok := lf.key.childIndex(depth, bt.t.width)
		if !ok {
			return ErrInternal
		}
		if depth >= bt.t.maxDepth {
			return ErrInternal
		}
		if n.children[idx] == nil {
			child, err := bt.newLeafFor(lf.key, depth)
			if err != nil {
				return err
			}
			n.setChild(idx, child, bt.t)
		}
		cget, cset := childSlot(n, idx)
		return bt.reinsertLeaf(cget, cset, depth+1, lf)

	default:
		return ErrInternal
	}
}
