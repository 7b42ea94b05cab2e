package pathtrie

import (
	"iter"

	"github.com/bbqsrc/pathtrie-go/value"
)

// EntryKind distinguishes a record representing a real child node
// (Child) from the synthetic trailing record the writer must emit for a
// node that branches and also carries a value (Value), corresponding to
// the empty-fragment interior-value marker.
type EntryKind int

const (
	ChildEntry EntryKind = iota
	ValueEntry
)

// RawEntry is one record in the depth-first, sibling-run-contiguous
// traversal consumed by the compact writer.
type RawEntry[V value.Integer] struct {
	// Frag is the key fragment of this record. Empty for a synthetic
	// ValueEntry.
	Frag []byte
	// Value and HasValue describe the terminal value this record
	// carries, if any.
	Value    V
	HasValue bool
	// IsBranch reports whether this record has its own children (and
	// so needs a child-run offset rather than the terminal sentinel).
	IsBranch bool
	// ParentPath is the full concatenated key fragment of the node
	// whose sibling run this record belongs to.
	ParentPath []byte
	Depth      int
	Kind       EntryKind
}

// RawEntries yields every node of the trie, depth-first, with each
// node's immediate children (and, where applicable, the synthetic
// value-marker record) forming one contiguous run before any of their
// own descendants are visited -- the order the compact writer's
// sibling-run algorithm depends on.
func (t *Trie[V]) RawEntries() iter.Seq[RawEntry[V]] {
	return func(yield func(RawEntry[V]) bool) {
		rawEntries(&t.root, nil, 0, true, yield)
	}
}

// rawEntries writes one sibling run per call: n's real children, followed
// by a synthetic ValueEntry standing in for n's own value if n carries
// one. For every node but the root, that marker only appears when n also
// branches (hasInteriorValue) -- a value-only node is already fully
// represented by the terminal ChildEntry its parent wrote for it, so it
// gets no run of its own. The root never has a record written for it by
// its parent (it has none), so when it holds a value without branching
// that value would otherwise have nowhere to live; isRoot keeps the
// marker in that case too.
func rawEntries[V value.Integer](n *node[V], parentPath []byte, depth int, isRoot bool, yield func(RawEntry[V]) bool) bool {
	path := append(append([]byte(nil), parentPath...), n.frag...)

	for _, c := range n.children {
		entry := RawEntry[V]{
			Frag:       c.frag,
			IsBranch:   !c.isLeaf(),
			ParentPath: path,
			Depth:      depth,
			Kind:       ChildEntry,
		}
		// A branch node's own value is not carried on its ChildEntry; it
		// is deferred to the synthetic ValueEntry emitted at the end of
		// the node's own run below.
		if c.isLeaf() {
			entry.Value = c.value
			entry.HasValue = true
		}
		if !yield(entry) {
			return false
		}
	}

	if n.hasInteriorValue() || (isRoot && n.hasValue && len(n.children) == 0) {
		entry := RawEntry[V]{
			Value:      n.value,
			HasValue:   true,
			ParentPath: path,
			Depth:      depth,
			Kind:       ValueEntry,
		}
		if !yield(entry) {
			return false
		}
	}

	for _, c := range n.children {
		if !rawEntries(c, path, depth+1, false, yield) {
			return false
		}
	}
	return true
}

// Entries yields every (key, value) pair stored in the trie, in
// canonical traversal order: a node's own value (if it has one and also
// branches) is ordered after all of its children's entries, matching
// where the empty-fragment interior-value marker sorts under the
// canonical child ordering.
func (t *Trie[V]) Entries() iter.Seq2[[]byte, V] {
	return func(yield func([]byte, V) bool) {
		walkEntries(&t.root, nil, yield)
	}
}

func walkEntries[V value.Integer](n *node[V], prefix []byte, yield func([]byte, V) bool) bool {
	path := append(append([]byte(nil), prefix...), n.frag...)
	for _, c := range n.children {
		if !walkEntries(c, path, yield) {
			return false
		}
	}
	if n.hasValue {
		if !yield(path, n.value) {
			return false
		}
	}
	return true
}

// Keys yields every key stored in the trie, in the same order as Entries.
func (t *Trie[V]) Keys() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for k := range t.Entries() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values yields every stored value, in the same order as Entries.
func (t *Trie[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.Entries() {
			if !yield(v) {
				return
			}
		}
	}
}
