// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bt

// Delete removes payload(s) under key and returns the detached payload
// list (as a caller-opaque handle suitable for Reinsert, used by
// transaction rollback). A nil payload deletes every payload under key.
// ErrKeyNotFound if key is absent.
func (bt *BurstTrie) Delete(key Key, payload []byte) (*DetachedPayloads, error) {
	n := bt.root
	depth := 0
	var path []pathStep

	for {
		switch n.kind {
		case nodeContainer:
			idx, found := searchContainer(n, key)
			if !found {
				return nil, ErrKeyNotFound
			}
			lf := &n.leaves[idx]
			if payload != nil && !lf.hasPayload(payload) {
				return nil, ErrEntryNotExist
			}
			detached := lf.detachPayload(payload)
			if detached == nil {
				return nil, ErrEntryNotExist
			}

			empty := lf.payload == nil
			if empty {
				n.leaves = append(n.leaves[:idx], n.leaves[idx+1:]...)
				bt.collapse(path, n)
			}
			return &DetachedPayloads{key: key, head: detached}, nil

		case nodeNil:
			if n.nilLeaf == nil || !n.nilLeaf.key.Equal(key) {
				return nil, ErrKeyNotFound
			}
			if payload != nil && !n.nilLeaf.hasPayload(payload) {
				return nil, ErrEntryNotExist
			}
			detached := n.nilLeaf.detachPayload(payload)
			if detached == nil {
				return nil, ErrEntryNotExist
			}
			empty := n.nilLeaf.payload == nil
			if empty {
				n.nilLeaf = nil
				bt.collapse(path, n)
			}
			return &DetachedPayloads{key: key, head: detached}, nil

		case nodeTrie:
			idx, ok := key.childIndex(depth, bt.t.width)
			if !ok {
				return nil, ErrInternal
			}
			if n.children[idx] == nil {
				return nil, ErrKeyNotFound
			}
			path = append(path, pathStep{node: n, idx: idx})
			n = n.children[idx]
			depth++

		default:
			return nil, ErrInternal
		}
	}
}

// collapse walks the parent stack upward from a now-possibly-empty leaf
// node, unlinking and discarding any ancestor whose size has dropped to
// zero, down to (but never past) the root.
func (bt *BurstTrie) collapse(path []pathStep, emptied *node) {
	leafEmpty := (emptied.kind == nodeContainer && len(emptied.leaves) == 0) ||
		(emptied.kind == nodeNil && emptied.nilLeaf == nil)
	if !leafEmpty {
		return
	}
	unspliceLeaf(emptied)

	if len(path) == 0 {
		// emptied is the root: reset to a fresh empty container rather
		// than discard it.
		bt.root = newContainer(0, bt.t)
		return
	}

	for i := len(path) - 1; i >= 0; i-- {
		p := path[i]
		p.node.clearChild(p.idx, bt.t)
		if p.node.size != 0 {
			return
		}
		if i == 0 {
			bt.root = newContainer(0, bt.t)
			return
		}
	}
}

// DetachedPayloads is the payload list Delete removed, opaque to callers
// except for Reinsert (used to undo a delete on transaction rollback).
type DetachedPayloads struct {
	key  Key
	head *payloadNode
}

// Reinsert restores every payload in d back under its original key,
// creating the key if it no longer exists. Used to undo a Delete on
// transaction abort.
func (bt *BurstTrie) Reinsert(d *DetachedPayloads) error {
	for n := d.head; n != nil; n = n.next {
		if err := bt.Insert(d.key, n.payload); err != nil {
			return err
		}
	}
	return nil
}
