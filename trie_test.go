package pathtrie

import (
	"testing"

	"github.com/bbqsrc/pathtrie-go/value"
)

func mustGet[V value.Integer](t *testing.T, tr *Trie[V], key string, want V) {
	t.Helper()
	got, ok := tr.Get([]byte(key))
	if !ok {
		t.Fatalf("Get(%q): not found, want %v", key, want)
	}
	if got != want {
		t.Fatalf("Get(%q) = %v, want %v", key, got, want)
	}
}

func mustMiss[V value.Integer](t *testing.T, tr *Trie[V], key string) {
	t.Helper()
	if _, ok := tr.Get([]byte(key)); ok {
		t.Fatalf("Get(%q): found, want miss", key)
	}
}

func TestInsertGetBasic(t *testing.T) {
	tr := New[value.Uint32]()
	tr.Insert([]byte("hello"), 1)
	tr.Insert([]byte("help"), 2)
	tr.Insert([]byte("hel"), 3)

	mustGet(t, tr, "hello", value.Uint32(1))
	mustGet(t, tr, "help", value.Uint32(2))
	mustGet(t, tr, "hel", value.Uint32(3))
	mustMiss(t, tr, "he")
	mustMiss(t, tr, "helloo")
}

// TestInsertSubsetThenSuperset covers inserting a
// prefix of an existing key (PerfectSubset) and a key that extends an
// existing one (Incomplete).
func TestInsertSubsetThenSuperset(t *testing.T) {
	tr := New[value.Uint8]()
	tr.Insert([]byte("water"), 1)
	tr.Insert([]byte("waterfall"), 2)
	tr.Insert([]byte("wat"), 3)

	mustGet(t, tr, "water", value.Uint8(1))
	mustGet(t, tr, "waterfall", value.Uint8(2))
	mustGet(t, tr, "wat", value.Uint8(3))
	mustMiss(t, tr, "waterf")
	mustMiss(t, tr, "wa")
}

func TestInsertDivergentSplit(t *testing.T) {
	tr := New[value.Uint16]()
	tr.Insert([]byte("test"), 10)
	tr.Insert([]byte("team"), 20)

	mustGet(t, tr, "test", value.Uint16(10))
	mustGet(t, tr, "team", value.Uint16(20))
	mustMiss(t, tr, "te")
	mustMiss(t, tr, "tea")
}

func TestInsertOverwrite(t *testing.T) {
	tr := New[value.Uint64]()
	tr.Insert([]byte("key"), 1)
	tr.Insert([]byte("key"), 2)
	mustGet(t, tr, "key", value.Uint64(2))
	if got := tr.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
}

func TestInsertEmptyKey(t *testing.T) {
	tr := New[value.Uint8]()
	tr.Insert(nil, 42)
	tr.Insert([]byte("abc"), 1)

	mustGet(t, tr, "", value.Uint8(42))
	mustGet(t, tr, "abc", value.Uint8(1))
}

// TestInsertInteriorValue covers the case where a key is both a stored
// value and a branching point for longer keys.
func TestInsertInteriorValue(t *testing.T) {
	tr := New[value.Uint32]()
	tr.Insert([]byte("car"), 1)
	tr.Insert([]byte("cart"), 2)
	tr.Insert([]byte("carpet"), 3)

	mustGet(t, tr, "car", value.Uint32(1))
	mustGet(t, tr, "cart", value.Uint32(2))
	mustGet(t, tr, "carpet", value.Uint32(3))
	mustMiss(t, tr, "ca")
}

// TestDenseGrid inserts every combination of a 3x3x3 key grid and checks
// every key round-trips and nothing else matches.
func TestDenseGrid(t *testing.T) {
	tr := New[value.Uint32]()
	parts := []string{"a", "ab", "abc"}
	var keys []string
	n := 0
	for _, p1 := range parts {
		for _, p2 := range parts {
			for _, p3 := range parts {
				k := p1 + p2 + p3
				keys = append(keys, k)
				tr.Insert([]byte(k), value.Uint32(n))
				n++
			}
		}
	}

	for i, k := range keys {
		mustGet(t, tr, k, value.Uint32(i))
	}

	if got := tr.Len(); got != len(keys) {
		t.Fatalf("Len() = %d, want %d", got, len(keys))
	}
}

func TestEntriesYieldsEveryPair(t *testing.T) {
	tr := New[value.Uint8]()
	words := []string{"a", "ab", "abc", "abd", "b", "ba"}
	for i, w := range words {
		tr.Insert([]byte(w), value.Uint8(i))
	}

	seen := map[string]value.Uint8{}
	for k, v := range tr.Entries() {
		seen[string(k)] = v
	}
	if len(seen) != len(words) {
		t.Fatalf("Entries() yielded %d pairs, want %d", len(seen), len(words))
	}
	for i, w := range words {
		v, ok := seen[w]
		if !ok || v != value.Uint8(i) {
			t.Errorf("Entries() missing or wrong value for %q: got %v, ok=%v", w, v, ok)
		}
	}
}

func TestEntriesEarlyStop(t *testing.T) {
	tr := New[value.Uint8]()
	tr.Insert([]byte("a"), 1)
	tr.Insert([]byte("b"), 2)
	tr.Insert([]byte("c"), 3)

	count := 0
	for range tr.Entries() {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("Entries() early-stop: iterated %d times, want 1", count)
	}
}

// checkNodeInvariants walks the subtree under n verifying the canonical
// child order (longer fragment first, lexicographic within a length) and
// that no two siblings share a non-empty prefix of their fragments.
func checkNodeInvariants[V value.Integer](t *testing.T, n *node[V]) {
	t.Helper()
	for i, c := range n.children {
		if i > 0 {
			prev := n.children[i-1]
			if childLess(c.frag, prev.frag) {
				t.Errorf("children out of order: %q before %q", prev.frag, c.frag)
			}
		}
		for _, other := range n.children[i+1:] {
			if len(c.frag) > 0 && len(other.frag) > 0 && c.frag[0] == other.frag[0] {
				t.Errorf("siblings %q and %q share a prefix", c.frag, other.frag)
			}
		}
		checkNodeInvariants(t, c)
	}
}

func TestChildInvariantsAfterEveryInsert(t *testing.T) {
	tr := New[value.Uint32]()
	words := []string{
		"water", "waterfall", "wat", "team", "test", "tempo",
		"a/1/a", "a/1/b", "a/2/a", "abcdab", "ab", "abcd", "",
	}
	for i, w := range words {
		tr.Insert([]byte(w), value.Uint32(i))
		checkNodeInvariants(t, &tr.root)
	}
	for i, w := range words {
		mustGet(t, tr, w, value.Uint32(i))
	}
}

func TestStringNonEmpty(t *testing.T) {
	tr := New[value.Uint8]()
	tr.Insert([]byte("hi"), 7)
	s := tr.String()
	if s == "" {
		t.Fatal("String() returned empty output")
	}
}
