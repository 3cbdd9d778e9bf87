package geometry

import (
	"math"

	"github.com/BardoBard/Bardrix-sub000/types"
)

// Direction components smaller than this are treated as parallel to the
// corresponding slab.
const parallelEpsilon float32 = 1e-8

// Default distance for rays starting on a surface to avoid self-intersections.
const DefaultTMin float32 = 1e-4

// A ray with a cached inverse direction. Rays should be created with NewRay.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
	InvDir types.Vec3

	// The valid intersection interval.
	TMin float32
	TMax float32

	parallel [3]bool
}

// Create a new ray. The direction is normalized.
func NewRay(origin, dir types.Vec3) Ray {
	ray := Ray{
		Origin: origin,
		Dir:    dir.Normalize(),
		TMin:   DefaultTMin,
		TMax:   math.MaxFloat32,
	}

	for axis := 0; axis < 3; axis++ {
		if float32(math.Abs(float64(ray.Dir[axis]))) < parallelEpsilon {
			ray.parallel[axis] = true
			continue
		}
		ray.InvDir[axis] = 1.0 / ray.Dir[axis]
	}

	return ray
}

// Get the point at distance t along the ray.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Return a copy of the ray with a different intersection interval.
func (r Ray) WithInterval(tMin, tMax float32) Ray {
	r.TMin = tMin
	r.TMax = tMax
	return r
}
