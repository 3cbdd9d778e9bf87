package bvh

import (
	"fmt"

	"github.com/BardoBard/Bardrix-sub000/geometry"
)

// Payload is the value stored in each BVH node. Leaf payloads reference a
// single shape and carry that shape's bbox. Internal payloads have a nil
// Shape and carry the union of all bboxes in their sub-tree.
//
// The shape reference does not transfer ownership; the shape storage must
// outlive the tree.
type Payload struct {
	Shape geometry.Shape
	BBox  geometry.BBox
}

// Create a leaf payload for shape.
func leafPayload(shape geometry.Shape) Payload {
	return Payload{
		Shape: shape,
		BBox:  shape.BBox(),
	}
}

// Create an internal payload enclosing bbox.
func internalPayload(bbox geometry.BBox) Payload {
	return Payload{BBox: bbox}
}

// IsLeaf returns true if the payload references a shape.
func (p Payload) IsLeaf() bool {
	return p.Shape != nil
}

func (p Payload) String() string {
	if p.IsLeaf() {
		return fmt.Sprintf("leaf(%s %v)", p.Shape.Type(), p.BBox)
	}
	return fmt.Sprintf("node(%v)", p.BBox)
}
