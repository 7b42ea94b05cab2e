package pathtrie

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/bbqsrc/pathtrie-go/value"
)

// node is one node of the radix trie. Its body is a variant of either
// "Children" (len(children) != 0, possibly with an attached interior
// value) or "leaf value" (no children, hasValue true).
//
// A node's own value sits directly on it, alongside its children,
// rather than as a synthetic trailing child with an empty key fragment.
// This avoids ever needing to convert a value-only body into a
// children-carrying one or back; RawEntries (entries.go) re-synthesizes
// the trailing empty-fragment record for an interior value, and the
// compact writer serializes it.
type node[V value.Integer] struct {
	frag     []byte
	children []*node[V]
	value    V
	hasValue bool
}

func newLeaf[V value.Integer](frag []byte, v V) *node[V] {
	return &node[V]{frag: append([]byte(nil), frag...), value: v, hasValue: true}
}

// childLess implements the canonical child ordering:
// longer key fragment first; within equal lengths, ascending
// lexicographic order.
func childLess(a, b []byte) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return bytes.Compare(a, b) < 0
}

// pushChild appends c and restores canonical order among n's children.
func (n *node[V]) pushChild(c *node[V]) {
	n.children = append(n.children, c)
	sort.Slice(n.children, func(i, j int) bool {
		return childLess(n.children[i].frag, n.children[j].frag)
	})
}

// String renders the node and its descendants as an indented tree.
func (n *node[V]) String() string {
	var b strings.Builder
	n.writeTo(&b, 0)
	return b.String()
}

func (n *node[V]) writeTo(b *strings.Builder, indent int) {
	fmt.Fprintf(b, "%s%q", strings.Repeat("  ", indent), n.frag)
	if n.hasValue {
		fmt.Fprintf(b, " = %s", n.value.String())
	}
	if len(n.children) == 0 {
		b.WriteByte('\n')
		return
	}
	b.WriteString(" [\n")
	for _, c := range n.children {
		c.writeTo(b, indent+1)
	}
	fmt.Fprintf(b, "%s]\n", strings.Repeat("  ", indent))
}

// isLeaf reports whether n carries no children (a pure leaf value node).
func (n *node[V]) isLeaf() bool { return len(n.children) == 0 }

// hasInteriorValue reports whether n both branches and carries a value
// (the "value at an interior node" case).
func (n *node[V]) hasInteriorValue() bool { return len(n.children) != 0 && n.hasValue }
