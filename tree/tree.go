// Package tree implements a binary tree whose layout is driven by a
// caller-supplied ordering predicate.
//
// The tree does not rotate or otherwise self-balance. A tree populated with
// Build from a sequence that is sorted according to the predicate is a
// balanced search tree; a tree populated with Insert is only as balanced as
// the insertion order allows. Rebuild can be used to restore balance after a
// series of insertions and removals.
//
// Tree values are not safe for concurrent mutation. Concurrent read-only
// access (Find, Contains, traversals) is safe as long as no goroutine
// mutates the tree.
package tree

import "golang.org/x/exp/constraints"

// Less reports whether a should be placed before b. It must encode a strict
// weak ordering and must not change behavior for the lifetime of a tree.
type Less[T any] func(a, b T) bool

// Ordered returns a Less predicate for types supporting the < operator.
func Ordered[T constraints.Ordered]() Less[T] {
	return func(a, b T) bool { return a < b }
}

// Tree is a binary tree of values of type T. The zero value is not usable;
// use New to create a tree.
type Tree[T any] struct {
	root  *Node[T]
	less  Less[T]
	equal func(a, b T) bool
}

// New creates an empty tree that orders its values with less. Two values are
// considered equal if neither sorts before the other.
func New[T any](less Less[T]) *Tree[T] {
	return NewWithEqual(less, func(a, b T) bool {
		return !less(a, b) && !less(b, a)
	})
}

// NewWithEqual creates an empty tree that orders its values with less and
// matches values during Find, Contains and Remove with equal.
func NewWithEqual[T any](less Less[T], equal func(a, b T) bool) *Tree[T] {
	return &Tree[T]{less: less, equal: equal}
}

// Root returns the root node or nil if the tree is empty.
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// Empty returns true if the tree holds no values.
func (t *Tree[T]) Empty() bool {
	return t.root == nil
}

// Size returns the number of values stored in the tree.
func (t *Tree[T]) Size() int {
	return t.root.size()
}

// Height returns the number of nodes on the longest root-to-leaf path. An
// empty tree has height 0.
func (t *Tree[T]) Height() int {
	return t.root.height()
}

// Clear discards all nodes.
func (t *Tree[T]) Clear() {
	t.root = nil
}

// Build replaces the tree contents with a balanced hierarchy generated from
// sorted. The caller asserts that sorted is ordered according to the tree
// predicate; this is not verified. Building from an empty slice yields an
// empty tree.
func (t *Tree[T]) Build(sorted []T) {
	t.root = buildBalanced(sorted)
}

// Rebuild re-balances the tree by linearizing it with an in-order traversal
// and feeding the result to Build.
func (t *Tree[T]) Rebuild() {
	t.Build(t.Values())
}

// SetRoot replaces the tree contents with a caller-assembled hierarchy.
// Trees with custom partitioning strategies use this to install the nodes
// they generate.
func (t *Tree[T]) SetRoot(root *Node[T]) {
	t.root = root
}

// Values returns all values in in-order traversal order.
func (t *Tree[T]) Values() []T {
	values := make([]T, 0, t.Size())
	t.TraverseInOrder(func(v T) {
		values = append(values, v)
	})
	return values
}

// Insert adds value as a new leaf. The insertion point is located by
// descending left while value sorts before the visited node and right
// otherwise. No rebalancing takes place.
func (t *Tree[T]) Insert(value T) {
	leaf := &Node[T]{value: value}

	slot := &t.root
	for *slot != nil {
		if t.less(value, (*slot).value) {
			slot = &(*slot).left
		} else {
			slot = &(*slot).right
		}
	}
	*slot = leaf
}

// Contains returns true if the tree holds a value equal to value.
func (t *Tree[T]) Contains(value T) bool {
	return t.Find(value) != nil
}

// Find returns a node holding a value equal to value or nil if no such
// node exists.
func (t *Tree[T]) Find(value T) *Node[T] {
	slot := t.findSlot(value)
	return *slot
}

// FindMin returns the left-most node or nil if the tree is empty.
func (t *Tree[T]) FindMin() *Node[T] {
	if t.root == nil {
		return nil
	}
	return t.root.min()
}

// FindMax returns the right-most node or nil if the tree is empty.
func (t *Tree[T]) FindMax() *Node[T] {
	if t.root == nil {
		return nil
	}
	return t.root.max()
}

// Remove deletes a value equal to value from the tree. A node with two
// children takes over the smallest value of its right sub-tree. Returns
// false if no matching value was found.
func (t *Tree[T]) Remove(value T) bool {
	return t.remove(value, false)
}

// RemovePreferLeft works like Remove but a node with two children takes over
// the largest value of its left sub-tree instead.
func (t *Tree[T]) RemovePreferLeft(value T) bool {
	return t.remove(value, true)
}

func (t *Tree[T]) remove(value T, preferLeft bool) bool {
	slot := t.findSlot(value)
	if *slot == nil {
		return false
	}
	t.unlink(slot, preferLeft)
	return true
}

// Detach the node stored in slot, splicing its children back into the
// hierarchy.
func (t *Tree[T]) unlink(slot **Node[T], preferLeft bool) {
	node := *slot
	switch {
	case node.left == nil:
		*slot = node.right
	case node.right == nil:
		*slot = node.left
	case preferLeft:
		pred := &node.left
		for (*pred).right != nil {
			pred = &(*pred).right
		}
		node.value = (*pred).value
		t.unlink(pred, preferLeft)
	default:
		succ := &node.right
		for (*succ).left != nil {
			succ = &(*succ).left
		}
		node.value = (*succ).value
		t.unlink(succ, preferLeft)
	}
}

// Locate the slot (root pointer or child pointer) holding a value equal to
// value. If no such value exists the returned slot points to nil.
func (t *Tree[T]) findSlot(value T) **Node[T] {
	slot := &t.root
	for *slot != nil {
		cur := (*slot).value
		if t.equal(value, cur) {
			return slot
		}

		if t.less(value, cur) {
			slot = &(*slot).left
		} else {
			slot = &(*slot).right
		}
	}
	return slot
}

// Recursively pick the middle element of sorted as the sub-root.
func buildBalanced[T any](sorted []T) *Node[T] {
	if len(sorted) == 0 {
		return nil
	}

	mid := len(sorted) / 2
	return &Node[T]{
		value: sorted[mid],
		left:  buildBalanced(sorted[:mid]),
		right: buildBalanced(sorted[mid+1:]),
	}
}
