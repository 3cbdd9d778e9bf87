package tree

// Visitor is invoked once per visited value. It must not mutate the tree
// being traversed.
type Visitor[T any] func(T)

// TraverseInOrder visits the left sub-tree, the node and then the right
// sub-tree. A nil visitor is a no-op.
func (t *Tree[T]) TraverseInOrder(visit Visitor[T]) {
	if visit == nil {
		return
	}
	inOrder(t.root, visit)
}

// TraversePreOrder visits the node and then the left and right sub-trees. A
// nil visitor is a no-op.
func (t *Tree[T]) TraversePreOrder(visit Visitor[T]) {
	if visit == nil {
		return
	}
	preOrder(t.root, visit)
}

// TraversePostOrder visits the left and right sub-trees and then the node. A
// nil visitor is a no-op.
func (t *Tree[T]) TraversePostOrder(visit Visitor[T]) {
	if visit == nil {
		return
	}
	postOrder(t.root, visit)
}

func inOrder[T any](n *Node[T], visit Visitor[T]) {
	if n == nil {
		return
	}
	inOrder(n.left, visit)
	visit(n.value)
	inOrder(n.right, visit)
}

func preOrder[T any](n *Node[T], visit Visitor[T]) {
	if n == nil {
		return
	}
	visit(n.value)
	preOrder(n.left, visit)
	preOrder(n.right, visit)
}

func postOrder[T any](n *Node[T], visit Visitor[T]) {
	if n == nil {
		return
	}
	postOrder(n.left, visit)
	postOrder(n.right, visit)
	visit(n.value)
}
