package geometry

import (
	"math"

	"github.com/BardoBard/Bardrix-sub000/types"
)

// Triangles with a determinant below this value are considered parallel to
// the ray.
const triangleEpsilon float32 = 1e-7

type ShapeType uint32

const (
	SphereShape ShapeType = iota
	BoxShape
	TriangleShape
)

func (st ShapeType) String() string {
	switch st {
	case SphereShape:
		return "sphere"
	case BoxShape:
		return "box"
	case TriangleShape:
		return "triangle"
	}
	return "unknown"
}

// The result of an exact ray/shape intersection test.
type Hit struct {
	// Distance along the ray.
	T float32

	// World space hit point and surface normal (facing the ray origin).
	Point  types.Vec3
	Normal types.Vec3
}

// The Shape interface is implemented by all scene shapes. Shapes are
// referenced (never copied or owned) by acceleration structures; identity
// is the identity of the concrete pointer.
type Shape interface {
	// Get the shape type.
	Type() ShapeType

	// Get the shape AABB.
	BBox() BBox

	// Run an exact intersection test against the shape. Only hits with a
	// distance inside the ray interval are reported.
	Intersect(ray Ray) (Hit, bool)
}

// A sphere shape.
type Sphere struct {
	Center types.Vec3
	Radius float32
}

// Create new sphere shape.
func NewSphere(center types.Vec3, radius float32) *Sphere {
	return &Sphere{
		Center: center,
		Radius: float32(math.Abs(float64(radius))),
	}
}

func (s *Sphere) Type() ShapeType {
	return SphereShape
}

func (s *Sphere) BBox() BBox {
	r := types.Vec3{s.Radius, s.Radius, s.Radius}
	return BBox{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

func (s *Sphere) Intersect(ray Ray) (Hit, bool) {
	oc := ray.Origin.Sub(s.Center)
	b := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return Hit{}, false
	}

	sqrtDisc := float32(math.Sqrt(float64(disc)))
	t := -b - sqrtDisc
	if t < ray.TMin || t > ray.TMax {
		// Try the far root; the origin may be inside the sphere
		t = -b + sqrtDisc
		if t < ray.TMin || t > ray.TMax {
			return Hit{}, false
		}
	}

	point := ray.At(t)
	return Hit{
		T:      t,
		Point:  point,
		Normal: faceForward(point.Sub(s.Center).Normalize(), ray.Dir),
	}, true
}

// An axis-aligned box shape.
type Box struct {
	Min types.Vec3
	Max types.Vec3
}

// Create new box shape from two opposing corners.
func NewBox(p0, p1 types.Vec3) *Box {
	return &Box{
		Min: types.MinVec3(p0, p1),
		Max: types.MaxVec3(p0, p1),
	}
}

func (bx *Box) Type() ShapeType {
	return BoxShape
}

func (bx *Box) BBox() BBox {
	return BBox{Min: bx.Min, Max: bx.Max}
}

func (bx *Box) Intersect(ray Ray) (Hit, bool) {
	tNear, tFar, hit := bx.BBox().slabs(ray)
	if !hit {
		return Hit{}, false
	}

	// If the ray starts inside the box report the exit point
	t := tNear
	if t <= ray.TMin {
		t = tFar
	}
	if t < ray.TMin || t > ray.TMax {
		return Hit{}, false
	}

	point := ray.At(t)

	// The normal follows the axis whose slab face is closest to the hit point
	var normal types.Vec3
	bestDist := float32(math.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if d := float32(math.Abs(float64(point[axis] - bx.Min[axis]))); d < bestDist {
			bestDist = d
			normal = types.Vec3{}
			normal[axis] = -1
		}
		if d := float32(math.Abs(float64(point[axis] - bx.Max[axis]))); d < bestDist {
			bestDist = d
			normal = types.Vec3{}
			normal[axis] = 1
		}
	}

	return Hit{
		T:      t,
		Point:  point,
		Normal: faceForward(normal, ray.Dir),
	}, true
}

// A triangle shape.
type Triangle struct {
	Vertices [3]types.Vec3

	normal types.Vec3
}

// Create new triangle shape. Vertices should be specified in counter-clockwise order.
func NewTriangle(vertices [3]types.Vec3) *Triangle {
	e01 := vertices[1].Sub(vertices[0])
	e02 := vertices[2].Sub(vertices[0])
	return &Triangle{
		Vertices: vertices,
		normal:   e01.Cross(e02).Normalize(),
	}
}

func (tri *Triangle) Type() ShapeType {
	return TriangleShape
}

func (tri *Triangle) BBox() BBox {
	return BBox{
		Min: types.MinVec3(tri.Vertices[0], types.MinVec3(tri.Vertices[1], tri.Vertices[2])),
		Max: types.MaxVec3(tri.Vertices[0], types.MaxVec3(tri.Vertices[1], tri.Vertices[2])),
	}
}

// Get the triangle centroid.
func (tri *Triangle) Centroid() types.Vec3 {
	return tri.Vertices[0].Add(tri.Vertices[1]).Add(tri.Vertices[2]).Mul(1.0 / 3.0)
}

// Intersect using the Moller-Trumbore algorithm.
func (tri *Triangle) Intersect(ray Ray) (Hit, bool) {
	e1 := tri.Vertices[1].Sub(tri.Vertices[0])
	e2 := tri.Vertices[2].Sub(tri.Vertices[0])

	pvec := ray.Dir.Cross(e2)
	det := e1.Dot(pvec)
	if float32(math.Abs(float64(det))) < triangleEpsilon {
		return Hit{}, false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Sub(tri.Vertices[0])
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	qvec := tvec.Cross(e1)
	v := ray.Dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := e2.Dot(qvec) * invDet
	if t < ray.TMin || t > ray.TMax {
		return Hit{}, false
	}

	return Hit{
		T:      t,
		Point:  ray.At(t),
		Normal: faceForward(tri.normal, ray.Dir),
	}, true
}

// Flip normal so it points against dir.
func faceForward(normal, dir types.Vec3) types.Vec3 {
	if normal.Dot(dir) > 0 {
		return normal.Neg()
	}
	return normal
}
