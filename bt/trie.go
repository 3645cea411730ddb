// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bt implements the burst trie: an ordered, duplicate-permitting
// associative container keyed by a fixed-width integer or a bounded
// variable-length byte string, that adapts between small sorted "container"
// leaves and fan-out "trie" interior nodes as data accumulates.
//
// A BurstTrie has no internal synchronization; callers needing concurrent
// access must serialize it themselves (see package registry).
package bt

// BurstTrie is the root of one burst trie and the per-kind tuning it was
// built with.
type BurstTrie struct {
	kind Kind
	t    tuning
	root *node
}

// New creates an empty burst trie for the given key kind.
func New(kind Kind) *BurstTrie {
	t, ok := tunings[kind]
	if !ok {
		panic("bt: unknown key kind")
	}
	return &BurstTrie{
		kind: kind,
		t:    t,
		root: newContainer(0, t),
	}
}

// Kind reports the key kind this trie admits.
func (bt *BurstTrie) Kind() Kind { return bt.kind }

// pathStep records one trie node and the child-index taken while
// descending through it, used to locate the nearest existing leaf when
// splicing a freshly created leaf into the doubly-linked list.
type pathStep struct {
	node *node
	idx  int
}

func rootSlot(bt *BurstTrie) (get func() *node, set func(*node)) {
	return func() *node { return bt.root }, func(n *node) { bt.root = n }
}

func childSlot(parent *node, idx int) (get func() *node, set func(*node)) {
	return func() *node { return parent.children[idx] },
		func(n *node) { parent.children[idx] = n }
}

func leftmostLeaf(n *node) *node {
	for n != nil && n.kind == nodeTrie {
		if n.head == -1 {
			return nil
		}
		n = n.children[n.head]
	}
	return n
}

func rightmostLeaf(n *node) *node {
	for n != nil && n.kind == nodeTrie {
		if n.rear == -1 {
			return nil
		}
		n = n.children[n.rear]
	}
	return n
}

func findPredecessor(path []pathStep) *node {
	for i := len(path) - 1; i >= 0; i-- {
		p := path[i]
		for j := p.idx - 1; j >= 0; j-- {
			if p.node.children[j] != nil {
				if l := rightmostLeaf(p.node.children[j]); l != nil {
					return l
				}
			}
		}
	}
	return nil
}

func findSuccessor(path []pathStep) *node {
	for i := len(path) - 1; i >= 0; i-- {
		p := path[i]
		for j := p.idx + 1; j < len(p.node.children); j++ {
			if p.node.children[j] != nil {
				if l := leftmostLeaf(p.node.children[j]); l != nil {
					return l
				}
			}
		}
	}
	return nil
}

func spliceLeaf(leafNode, pred, succ *node) {
	leafNode.left = pred
	leafNode.right = succ
	if pred != nil {
		pred.right = leafNode
	}
	if succ != nil {
		succ.left = leafNode
	}
}

func unspliceLeaf(leafNode *node) {
	if leafNode.left != nil {
		leafNode.left.right = leafNode.right
	}
	if leafNode.right != nil {
		leafNode.right.left = leafNode.left
	}
	leafNode.left, leafNode.right = nil, nil
}
