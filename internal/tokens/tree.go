// Package tokens models design-token trees: nested string-keyed maps whose
// leaves are strings or numbers.
//
// A Node is one of three variants. Leaf holds a scalar token value, Tree holds
// nested tokens, and Replacement is a Tree that replaces whatever it is merged
// onto instead of being merged key by key.
package tokens

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Node is a position in a token tree.
type Node interface {
	isNode()
}

// Leaf is a scalar token value. Numbers keep their numeric identity for
// serialisation but always render through String.
type Leaf struct {
	value  string
	number bool
}

// String returns a string leaf.
func String(value string) Leaf {
	return Leaf{value: value}
}

// Number returns a numeric leaf rendered in its shortest decimal form.
func Number(value float64) Leaf {
	return Leaf{value: strconv.FormatFloat(value, 'f', -1, 64), number: true}
}

func (Leaf) isNode() {}

// String returns the CSS-ready text of the leaf.
func (l Leaf) String() string {
	return l.value
}

// IsNumber reports whether the leaf was declared as a number.
func (l Leaf) IsNumber() bool {
	return l.number
}

// MarshalJSON writes numbers bare and strings quoted.
func (l Leaf) MarshalJSON() ([]byte, error) {
	if l.number {
		return []byte(l.value), nil
	}
	return json.Marshal(l.value)
}

// MarshalYAML mirrors MarshalJSON for YAML documents.
func (l Leaf) MarshalYAML() (any, error) {
	if l.number {
		return strconv.ParseFloat(l.value, 64)
	}
	return l.value, nil
}

// Tree maps token keys to nodes.
type Tree map[string]Node

func (Tree) isNode() {}

// Replacement is a subtree that overwrites the existing value wholesale when merged.
type Replacement Tree

func (Replacement) isNode() {}

// Replace marks t as a wholesale replacement.
func Replace(t Tree) Replacement {
	return Replacement(t)
}

// Clone returns a deep copy of t, preserving Replacement markers.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for key, node := range t {
		out[key] = cloneNode(node, false)
	}
	return out
}

// Plain returns a deep copy of t with every Replacement converted to a Tree.
func (t Tree) Plain() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for key, node := range t {
		out[key] = cloneNode(node, true)
	}
	return out
}

func cloneNode(node Node, plain bool) Node {
	switch n := node.(type) {
	case Tree:
		if plain {
			return n.Plain()
		}
		return n.Clone()
	case Replacement:
		if plain {
			return Tree(n).Plain()
		}
		return Replacement(Tree(n).Clone())
	default:
		return node
	}
}

// Keys returns the keys of t in sorted order.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get resolves a path of keys to a node.
func (t Tree) Get(path ...string) (Node, bool) {
	var current Node = t
	for _, key := range path {
		children, ok := asTree(current)
		if !ok {
			return nil, false
		}
		next, exists := children[key]
		if !exists {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Lookup resolves a dotted path ("root.primary.background") to a leaf.
func (t Tree) Lookup(dotted string) (Leaf, bool) {
	node, ok := t.Get(strings.Split(dotted, ".")...)
	if !ok {
		return Leaf{}, false
	}
	leaf, ok := node.(Leaf)
	return leaf, ok
}

// Set stores node at path, creating intermediate trees as needed. Existing
// leaves on the way are replaced by trees.
func (t Tree) Set(path []string, node Node) {
	if len(path) == 0 {
		return
	}
	current := t
	for _, key := range path[:len(path)-1] {
		next, ok := asTree(current[key])
		if !ok {
			next = Tree{}
			current[key] = next
		}
		current = next
	}
	current[path[len(path)-1]] = node
}

// Walk visits every leaf in sorted key order. The path slice is reused between
// calls; copy it if it must outlive fn.
func (t Tree) Walk(fn func(path []string, leaf Leaf) error) error {
	return walk(t, nil, fn)
}

func walk(t Tree, prefix []string, fn func([]string, Leaf) error) error {
	for _, key := range t.Keys() {
		path := append(prefix, key)
		switch n := t[key].(type) {
		case Leaf:
			if err := fn(path, n); err != nil {
				return err
			}
		case Tree:
			if err := walk(n, path, fn); err != nil {
				return err
			}
		case Replacement:
			if err := walk(Tree(n), path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Leaves counts the leaves reachable from t.
func (t Tree) Leaves() int {
	count := 0
	_ = t.Walk(func([]string, Leaf) error {
		count++
		return nil
	})
	return count
}

// Equal reports whether two trees hold the same keys and leaves. Replacement
// markers compare equal to trees with the same content.
func Equal(a, b Tree) bool {
	if len(a) != len(b) {
		return false
	}
	for key, left := range a {
		right, ok := b[key]
		if !ok || !equalNode(left, right) {
			return false
		}
	}
	return true
}

func equalNode(a, b Node) bool {
	if leftLeaf, ok := a.(Leaf); ok {
		rightLeaf, ok := b.(Leaf)
		return ok && leftLeaf == rightLeaf
	}
	left, ok := asTree(a)
	if !ok {
		return false
	}
	right, ok := asTree(b)
	if !ok {
		return false
	}
	return Equal(left, right)
}

func asTree(node Node) (Tree, bool) {
	switch n := node.(type) {
	case Tree:
		return n, true
	case Replacement:
		return Tree(n), true
	default:
		return nil, false
	}
}
