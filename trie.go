// Package pathtrie implements a path-compressed radix trie over byte
// string keys mapping to small unsigned integers, and (in the compact
// subpackage) the immutable binary index serialized from it.
package pathtrie

import (
	"sort"

	"github.com/bbqsrc/pathtrie-go/value"
)

// Trie is a mutable, path-compressed radix trie. The zero value is an
// empty trie ready for use; New returns a pointer to one.
type Trie[V value.Integer] struct {
	root node[V]
}

// New returns an empty Trie.
func New[V value.Integer]() *Trie[V] {
	return &Trie[V]{}
}

// Insert associates value with key, overwriting any value previously
// associated with the same key.
func (t *Trie[V]) Insert(key []byte, value V) {
	insertInto(&t.root, key, value)
}

// Get returns the value associated with key, if any.
func (t *Trie[V]) Get(key []byte) (V, bool) {
	return getAt(&t.root, key)
}

// Len returns the number of keys stored in the trie. It costs one full
// traversal; callers on a hot path should track counts themselves.
func (t *Trie[V]) Len() int {
	n := 0
	for range t.Entries() {
		n++
	}
	return n
}

// String renders the trie as an indented tree for debugging.
func (t *Trie[V]) String() string { return t.root.String() }

// insertInto implements the five-way classifier dispatch. n is the
// node whose children are being searched; key is the portion of the
// inserted key that remains to be placed under n.
func insertInto[V value.Integer](n *node[V], key []byte, val V) {
	if len(key) == 0 {
		n.value = val
		n.hasValue = true
		return
	}

	idx := -1
	var p Prefix
	for i, c := range n.children {
		p = classify(c.frag, key)
		if p.Kind != NoMatch {
			idx = i
			break
		}
	}

	if idx == -1 {
		n.pushChild(newLeaf(key, val))
		return
	}

	child := n.children[idx]
	switch p.Kind {
	case Exact:
		child.value = val
		child.hasValue = true

	case Incomplete:
		// child.frag is a proper prefix of key; descend with the
		// remainder. p.N < len(key) always holds (classify's law), so
		// key[p.N:] is non-empty.
		insertInto(child, key[p.N:], val)

	case PerfectSubset:
		// key is a proper prefix of child.frag: split child at p.N.
		// The shared prefix becomes child's new fragment; child's old
		// body (children and/or value) moves down under the old tail;
		// the inserted value attaches directly to the now-shorter
		// child -- no recursion needed since the whole of key is
		// consumed by the split.
		tail := append([]byte(nil), child.frag[p.N:]...)
		sub := &node[V]{frag: tail, children: child.children, value: child.value, hasValue: child.hasValue}
		child.frag = append([]byte(nil), child.frag[:p.N]...)
		child.children = nil
		child.pushChild(sub)
		child.value = val
		child.hasValue = true

	case Divergent:
		// child.frag and key share a non-empty proper prefix of
		// length p.N, then diverge: lift a new intermediate parent
		// carrying the shared prefix, with the old child re-rooted at
		// its tail and a fresh leaf for the inserted key's tail.
		shared := append([]byte(nil), child.frag[:p.N]...)
		oldTail := &node[V]{frag: append([]byte(nil), child.frag[p.N:]...), children: child.children, value: child.value, hasValue: child.hasValue}
		newLeafNode := newLeaf(key[p.N:], val)
		child.frag = shared
		child.children = nil
		child.hasValue = false
		child.pushChild(oldTail)
		child.pushChild(newLeafNode)
	}

	// A split or divergence shortens child's fragment, which can move it
	// within n's canonical child order.
	if p.Kind == PerfectSubset || p.Kind == Divergent {
		sort.Slice(n.children, func(i, j int) bool {
			return childLess(n.children[i].frag, n.children[j].frag)
		})
	}
}

// getAt implements the classifier-driven descent of the Get
// algorithm.
func getAt[V value.Integer](n *node[V], key []byte) (V, bool) {
	if len(key) == 0 {
		if n.hasValue {
			return n.value, true
		}
		var zero V
		return zero, false
	}

	for _, c := range n.children {
		p := classify(c.frag, key)
		switch p.Kind {
		case Exact:
			if c.hasValue {
				return c.value, true
			}
			var zero V
			return zero, false
		case Incomplete:
			return getAt(c, key[p.N:])
		}
	}

	var zero V
	return zero, false
}
