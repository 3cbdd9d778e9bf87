package geometry

import (
	"fmt"
	"math"

	"github.com/BardoBard/Bardrix-sub000/types"
)

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

func (a Axis) String() string {
	switch a {
	case XAxis:
		return "x"
	case YAxis:
		return "y"
	case ZAxis:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", uint8(a))
}

// An axis-aligned bounding box.
type BBox struct {
	Min types.Vec3
	Max types.Vec3
}

// Create a bbox from two corners. The corners do not need to be ordered.
func NewBBox(p0, p1 types.Vec3) BBox {
	return BBox{
		Min: types.MinVec3(p0, p1),
		Max: types.MaxVec3(p0, p1),
	}
}

// Create an inverted bbox that acts as the identity element for Merge.
func EmptyBBox() BBox {
	return BBox{
		Min: types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Return the smallest bbox enclosing both b and other.
func (b BBox) Merge(other BBox) BBox {
	return BBox{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// Return the smallest bbox enclosing b and point p.
func (b BBox) Extend(p types.Vec3) BBox {
	return BBox{
		Min: types.MinVec3(b.Min, p),
		Max: types.MaxVec3(b.Max, p),
	}
}

// Get the bbox extent along each axis.
func (b BBox) Size() types.Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the bbox center.
func (b BBox) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get the axis with the largest extent. Ties are resolved in x, y, z order.
func (b BBox) LongestAxis() Axis {
	side := b.Size()
	axis := XAxis
	if side[YAxis] > side[axis] {
		axis = YAxis
	}
	if side[ZAxis] > side[axis] {
		axis = ZAxis
	}
	return axis
}

// Get the bbox surface area.
func (b BBox) SurfaceArea() float32 {
	side := b.Size()
	return 2 * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}

// Check whether the bbox fully contains other.
func (b BBox) Contains(other BBox) bool {
	for axis := XAxis; axis <= ZAxis; axis++ {
		if other.Min[axis] < b.Min[axis] || other.Max[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// Check whether two bboxes have identical corners.
func (b BBox) Equal(other BBox) bool {
	return b.Min == other.Min && b.Max == other.Max
}

// Check whether the ray intersects the bbox within the ray's [TMin, TMax]
// interval using the slab method. Boxes with zero extent along an axis are
// handled like any other box.
func (b BBox) Intersects(ray Ray) bool {
	_, _, hit := b.slabs(ray)
	return hit
}

// Clip the ray interval against the bbox slabs and return the entry and
// exit distances.
func (b BBox) slabs(ray Ray) (tNear, tFar float32, hit bool) {
	tNear, tFar = ray.TMin, ray.TMax
	for axis := XAxis; axis <= ZAxis; axis++ {
		if ray.parallel[axis] {
			// The ray never crosses this slab; it must start inside it
			if ray.Origin[axis] < b.Min[axis] || ray.Origin[axis] > b.Max[axis] {
				return 0, 0, false
			}
			continue
		}

		t1 := (b.Min[axis] - ray.Origin[axis]) * ray.InvDir[axis]
		t2 := (b.Max[axis] - ray.Origin[axis]) * ray.InvDir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > tNear {
			tNear = t1
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return 0, 0, false
		}
	}

	return tNear, tFar, true
}

func (b BBox) String() string {
	return fmt.Sprintf("[%v - %v]", b.Min, b.Max)
}
