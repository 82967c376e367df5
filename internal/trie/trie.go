// Package trie implements the fixed-arity suffix trie used to index a genome.
//
// Every node remembers, for each inserted suffix that reaches it, the position
// in the source string of the last symbol consumed on the way there.
package trie

import (
	"errors"
	"fmt"

	"github.com/buildkite/orffinder/internal/alphabet"
)

var ErrEmptySuffix = errors.New("cannot insert an empty suffix")

// Node is a single trie node. Child 0 is the terminator edge; the remaining
// children are indexed by alphabet slot.
type Node struct {
	depth       int
	children    []*Node
	occurrences []int
}

func newNode(depth, arity int) *Node {
	return &Node{
		depth:    depth,
		children: make([]*Node, arity),
	}
}

// Depth returns the distance of the node from the root.
func (n *Node) Depth() int {
	return n.depth
}

// Child returns the child in slot i, or nil.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Terminal reports whether a suffix ends at this node.
func (n *Node) Terminal() bool {
	return n.children[alphabet.TerminatorIndex] != nil
}

// Occurrences returns the end positions recorded at the node, in insertion
// order. The slice is shared with the trie and must not be modified.
func (n *Node) Occurrences() []int {
	return n.occurrences
}

// Trie is a suffix trie over a fixed alphabet.
type Trie struct {
	alphabet *alphabet.Alphabet
	root     *Node
	size     int
}

// New returns an empty Trie over the alphabet a.
func New(a *alphabet.Alphabet) *Trie {
	return &Trie{
		alphabet: a,
		root:     newNode(0, a.Arity()),
		size:     1,
	}
}

// Build returns a Trie holding every suffix of source, each inserted at its own
// starting index, in increasing order of index. It takes O(n²) time and space
// where n is the length of source.
func Build(a *alphabet.Alphabet, source string) (*Trie, error) {
	t := New(a)
	for i := range len(source) {
		if err := t.Insert(source[i:], i); err != nil {
			return nil, fmt.Errorf("inserting suffix at %d: %w", i, err)
		}
	}
	return t, nil
}

// Size returns the number of nodes in the trie, root included.
func (t *Trie) Size() int {
	return t.size
}

// Root returns the root node.
func (t *Trie) Root() *Node {
	return t.root
}

// Insert inserts suffix, whose first symbol sits at anchor in its source
// string, starting from the root. It takes O(r) time where r is the length of
// suffix.
func (t *Trie) Insert(suffix string, anchor int) error {
	return t.insert(t.root, suffix, anchor)
}

// insert consumes suffix one symbol at a time from x. Each node reached at
// depth d records anchor+d-1, the source position of the last consumed symbol.
// The terminator node reached after the final symbol records the same formula.
func (t *Trie) insert(x *Node, suffix string, anchor int) error {
	if len(suffix) == 0 {
		return ErrEmptySuffix
	}
	if err := t.alphabet.Validate(suffix); err != nil {
		return err
	}

	for i := 0; i < len(suffix); i++ {
		slot, _ := t.alphabet.Index(suffix[i])
		x = t.descend(x, slot)
		x.occurrences = append(x.occurrences, anchor+x.depth-1)
	}

	x = t.descend(x, alphabet.TerminatorIndex)
	x.occurrences = append(x.occurrences, anchor+x.depth-1)
	return nil
}

func (t *Trie) descend(x *Node, slot int) *Node {
	if x.children[slot] == nil {
		x.children[slot] = newNode(x.depth+1, t.alphabet.Arity())
		t.size++
	}
	return x.children[slot]
}

// Walk follows key from the root. It returns false if some symbol of key has
// no edge, including symbols outside the alphabet. It takes O(r) time where r
// is the length of key.
func (t *Trie) Walk(key string) (*Node, bool) {
	x := t.root
	for i := 0; i < len(key); i++ {
		slot, ok := t.alphabet.Index(key[i])
		if !ok || x.children[slot] == nil {
			return nil, false
		}
		x = x.children[slot]
	}
	return x, true
}

// HasSuffix tests if s was inserted as a whole suffix, that is, if a
// terminator-ending path spells s.
func (t *Trie) HasSuffix(s string) bool {
	x, ok := t.Walk(s)
	return ok && x.Terminal()
}

// PrefixExists tests if any inserted suffix has the prefix s.
func (t *Trie) PrefixExists(s string) bool {
	_, ok := t.Walk(s)
	return ok
}

// Suffixes returns every string spelled by a terminator-ending path, in
// alphabet order. The worst case time complexity is O(m) where m is the number
// of nodes.
func (t *Trie) Suffixes() []string {
	type frame struct {
		x      *Node
		prefix []byte
	}

	var acc []string
	stack := []frame{{x: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.x.Terminal() {
			acc = append(acc, string(f.prefix))
		}

		// Push in reverse so the smallest slot is popped first.
		for slot := len(f.x.children) - 1; slot > alphabet.TerminatorIndex; slot-- {
			y := f.x.children[slot]
			if y == nil {
				continue
			}
			prefix := make([]byte, len(f.prefix)+1)
			copy(prefix, f.prefix)
			prefix[len(f.prefix)] = t.alphabet.Symbol(slot)
			stack = append(stack, frame{x: y, prefix: prefix})
		}
	}
	return acc
}
