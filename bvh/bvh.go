// Package bvh implements a bounding volume hierarchy on top of the generic
// tree package. The hierarchy is rebuilt wholesale from a set of shapes and
// answers "which shapes could this ray hit" queries by pruning sub-trees
// whose bbox the ray misses.
package bvh

import (
	"sort"
	"time"

	"github.com/BardoBard/Bardrix-sub000/geometry"
	"github.com/BardoBard/Bardrix-sub000/log"
	"github.com/BardoBard/Bardrix-sub000/tree"
)

// Tree is a BVH over caller-owned shapes. Shapes cannot be inserted or
// removed individually; use ConstructLongestAxis to rebuild the hierarchy.
//
// A constructed tree is safe for concurrent Intersections calls as long as
// no goroutine rebuilds or clears it.
type Tree struct {
	logger log.Logger
	nodes  *tree.Tree[Payload]

	// The axis used for ordering payloads during the last construction.
	axis geometry.Axis

	stats Stats

	// Accumulated SAH split scores for the last construction.
	splitScoreSum float32
	scoredSplits  int
}

// Create an empty BVH tree.
func New() *Tree {
	t := &Tree{
		logger: log.New("bvh"),
	}

	// Payloads are ordered by their bbox center along the construction axis.
	t.nodes = tree.New(func(a, b Payload) bool {
		return a.BBox.Center()[t.axis] < b.BBox.Center()[t.axis]
	})
	return t
}

// Root returns the root node or nil if the tree is empty.
func (t *Tree) Root() *tree.Node[Payload] {
	return t.nodes.Root()
}

// Empty returns true if the tree indexes no shapes.
func (t *Tree) Empty() bool {
	return t.nodes.Empty()
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	return t.nodes.Height()
}

// Bounds returns the bbox enclosing all indexed shapes. The result is an
// empty (inverted) bbox if the tree is empty.
func (t *Tree) Bounds() geometry.BBox {
	if root := t.nodes.Root(); root != nil {
		return root.Value().BBox
	}
	return geometry.EmptyBBox()
}

// Axis returns the axis used for sorting shapes during the last construction.
func (t *Tree) Axis() geometry.Axis {
	return t.axis
}

// Contains returns true if the tree holds a leaf for shape. Only sub-trees
// whose bbox encloses the shape bbox are searched.
func (t *Tree) Contains(shape geometry.Shape) bool {
	if shape == nil {
		return false
	}
	return contains(t.nodes.Root(), shape, shape.BBox())
}

func contains(node *tree.Node[Payload], shape geometry.Shape, bbox geometry.BBox) bool {
	if node == nil {
		return false
	}

	payload := node.Value()
	if !payload.BBox.Contains(bbox) {
		return false
	}
	if payload.IsLeaf() {
		return payload.Shape == shape
	}
	return contains(node.Left(), shape, bbox) || contains(node.Right(), shape, bbox)
}

// Clear discards the hierarchy. Indexed shapes are not affected.
func (t *Tree) Clear() {
	t.nodes.Clear()
	t.stats = Stats{}
	t.splitScoreSum, t.scoredSplits = 0, 0
}

// TraversePreOrder visits all payloads, parents before children.
func (t *Tree) TraversePreOrder(visit tree.Visitor[Payload]) {
	t.nodes.TraversePreOrder(visit)
}

// TraverseInOrder visits all payloads in left-to-right order.
func (t *Tree) TraverseInOrder(visit tree.Visitor[Payload]) {
	t.nodes.TraverseInOrder(visit)
}

// ConstructLongestAxis replaces the hierarchy with one built from shapes.
//
// The shapes are sorted once by the center of their bbox along the longest
// axis of the bbox enclosing the whole set. The sorted list is then split
// recursively at its midpoint; ranges with a single shape become leaves and
// larger ranges become internal nodes carrying the union of their bboxes.
// The sort axis is not re-evaluated for sub-trees.
//
// The order of the shapes slice is not modified. Passing an empty slice
// leaves the tree empty.
func (t *Tree) ConstructLongestAxis(shapes []geometry.Shape) {
	t.Clear()
	if len(shapes) == 0 {
		return
	}

	start := time.Now()

	bounds := geometry.EmptyBBox()
	for _, shape := range shapes {
		bounds = bounds.Merge(shape.BBox())
	}
	t.axis = bounds.LongestAxis()

	sorted := make([]geometry.Shape, len(shapes))
	copy(sorted, shapes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox().Center()[t.axis] < sorted[j].BBox().Center()[t.axis]
	})

	t.stats.Shapes = len(shapes)
	t.stats.Axis = t.axis
	t.nodes.SetRoot(t.partition(sorted, 1))
	if t.scoredSplits > 0 {
		t.stats.SplitScore = t.splitScoreSum / float32(t.scoredSplits)
	}
	t.stats.BuildTime = time.Since(start)

	t.logger.Debugf(
		"BVH tree build time: %d ms, shapes: %d, axis: %s, maxDepth: %d, nodes: %d, leafs: %d, split score: %.3f",
		t.stats.BuildTime.Nanoseconds()/1e6,
		t.stats.Shapes, t.stats.Axis, t.stats.MaxDepth, t.stats.Nodes, t.stats.Leafs, t.stats.SplitScore,
	)
}

// Partition a non-empty, axis-sorted shape list and return the sub-tree root.
func (t *Tree) partition(shapes []geometry.Shape, depth int) *tree.Node[Payload] {
	if depth > t.stats.MaxDepth {
		t.stats.MaxDepth = depth
	}

	if len(shapes) == 1 {
		t.stats.Leafs++
		return tree.NewNode[Payload](leafPayload(shapes[0]), nil, nil)
	}

	bbox := geometry.EmptyBBox()
	for _, shape := range shapes {
		bbox = bbox.Merge(shape.BBox())
	}
	t.stats.Nodes++

	mid := len(shapes) / 2
	left := t.partition(shapes[:mid], depth+1)
	right := t.partition(shapes[mid:], depth+1)

	// Score the split using the surface area heuristic. The score is the
	// ratio of the summed child costs (count * area) to the parent cost;
	// lower values indicate tighter child volumes.
	if parentCost := float32(len(shapes)) * bbox.SurfaceArea(); parentCost > 0 {
		childCost := float32(mid)*left.Value().BBox.SurfaceArea() +
			float32(len(shapes)-mid)*right.Value().BBox.SurfaceArea()
		t.splitScoreSum += childCost / parentCost
		t.scoredSplits++
	}

	return tree.NewNode(internalPayload(bbox), left, right)
}

// Intersections appends to out every shape whose bbox is intersected by ray
// and returns the extended slice. Sub-trees whose bbox the ray misses are
// skipped. Shapes are appended in depth-first, left-to-right order; the
// result is neither sorted by distance nor de-duplicated, and callers must
// run exact intersection tests against the returned candidates.
func (t *Tree) Intersections(ray geometry.Ray, out []geometry.Shape) []geometry.Shape {
	return intersections(t.nodes.Root(), ray, out)
}

func intersections(node *tree.Node[Payload], ray geometry.Ray, out []geometry.Shape) []geometry.Shape {
	if node == nil {
		return out
	}

	payload := node.Value()
	if !payload.BBox.Intersects(ray) {
		return out
	}

	if payload.IsLeaf() {
		out = append(out, payload.Shape)
	}

	out = intersections(node.Left(), ray, out)
	return intersections(node.Right(), ray, out)
}
