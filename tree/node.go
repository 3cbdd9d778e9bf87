package tree

// Node is a single tree node. A node exclusively owns its children; nodes do
// not keep a reference to their parent.
type Node[T any] struct {
	value       T
	left, right *Node[T]
}

// NewNode creates a detached node holding value with the given children.
// Either child may be nil.
func NewNode[T any](value T, left, right *Node[T]) *Node[T] {
	return &Node[T]{value: value, left: left, right: right}
}

// Value returns the value stored in the node.
func (n *Node[T]) Value() T {
	return n.value
}

// Left returns the left child or nil.
func (n *Node[T]) Left() *Node[T] {
	return n.left
}

// Right returns the right child or nil.
func (n *Node[T]) Right() *Node[T] {
	return n.right
}

// IsLeaf returns true if the node has no children.
func (n *Node[T]) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

func (n *Node[T]) min() *Node[T] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func (n *Node[T]) max() *Node[T] {
	for n.right != nil {
		n = n.right
	}
	return n
}

func (n *Node[T]) height() int {
	if n == nil {
		return 0
	}

	lh, rh := n.left.height(), n.right.height()
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

func (n *Node[T]) size() int {
	if n == nil {
		return 0
	}
	return 1 + n.left.size() + n.right.size()
}
