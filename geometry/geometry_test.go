package geometry

import (
	"math"
	"testing"

	"github.com/BardoBard/Bardrix-sub000/types"
)

func TestBBoxMerge(t *testing.T) {
	b1 := NewBBox(types.Vec3{0, 0, 0}, types.Vec3{1, 1, 1})
	b2 := NewBBox(types.Vec3{2, -1, 0.5}, types.Vec3{3, 0, 4})

	exp := BBox{Min: types.Vec3{0, -1, 0}, Max: types.Vec3{3, 1, 4}}
	if got := b1.Merge(b2); !got.Equal(exp) {
		t.Fatalf("expected merged bbox %v; got %v", exp, got)
	}

	if got := EmptyBBox().Merge(b1); !got.Equal(b1) {
		t.Fatalf("expected empty bbox to be the merge identity; got %v", got)
	}

	if !exp.Contains(b1) || !exp.Contains(b2) || b1.Contains(exp) {
		t.Fatal("expected merged bbox to contain both inputs")
	}
}

func TestBBoxLongestAxis(t *testing.T) {
	type spec struct {
		max     types.Vec3
		expAxis Axis
	}
	specs := []spec{
		{types.Vec3{5, 1, 1}, XAxis},
		{types.Vec3{1, 5, 1}, YAxis},
		{types.Vec3{1, 1, 5}, ZAxis},
		{types.Vec3{2, 2, 2}, XAxis},
		{types.Vec3{0, 0, 0}, XAxis},
	}

	for index, s := range specs {
		b := NewBBox(types.Vec3{}, s.max)
		if got := b.LongestAxis(); got != s.expAxis {
			t.Fatalf("[spec %d] expected longest axis %s; got %s", index, s.expAxis, got)
		}
	}
}

func TestBBoxCenterAndArea(t *testing.T) {
	b := NewBBox(types.Vec3{2, 4, 6}, types.Vec3{0, 0, 0})
	if got := b.Center(); got != (types.Vec3{1, 2, 3}) {
		t.Fatalf("expected center (1, 2, 3); got %v", got)
	}
	if got := b.SurfaceArea(); got != 88 {
		t.Fatalf("expected surface area 88; got %f", got)
	}
}

func TestBBoxIntersects(t *testing.T) {
	b := NewBBox(types.Vec3{-1, -1, -1}, types.Vec3{1, 1, 1})
	flat := NewBBox(types.Vec3{-1, -1, 5}, types.Vec3{1, 1, 5})

	type spec struct {
		box    BBox
		ray    Ray
		expHit bool
	}
	specs := []spec{
		{b, NewRay(types.Vec3{0, 0, -10}, types.Vec3{0, 0, 1}), true},
		{b, NewRay(types.Vec3{0, 0, -10}, types.Vec3{0, 0, -1}), false},
		{b, NewRay(types.Vec3{5, 0, -10}, types.Vec3{0, 0, 1}), false},
		// parallel to the x and y slabs, starting outside the y slab
		{b, NewRay(types.Vec3{0, 2, -10}, types.Vec3{0, 0, 1}), false},
		// origin inside the box
		{b, NewRay(types.Vec3{0, 0, 0}, types.Vec3{1, 1, 0}), true},
		// diagonal ray
		{b, NewRay(types.Vec3{-5, -5, -5}, types.Vec3{1, 1, 1}), true},
		// zero volume box
		{flat, NewRay(types.Vec3{0, 0, 0}, types.Vec3{0, 0, 1}), true},
		{flat, NewRay(types.Vec3{0, 0, 0}, types.Vec3{1, 0, 0}), false},
		// box beyond the ray interval
		{b, NewRay(types.Vec3{0, 0, -10}, types.Vec3{0, 0, 1}).WithInterval(0, 5), false},
	}

	for index, s := range specs {
		if got := s.box.Intersects(s.ray); got != s.expHit {
			t.Fatalf("[spec %d] expected intersection result %t; got %t", index, s.expHit, got)
		}
	}
}

func TestSphereIntersect(t *testing.T) {
	s := NewSphere(types.Vec3{0, 0, -5}, 1)

	hit, ok := s.Intersect(NewRay(types.Vec3{}, types.Vec3{0, 0, -1}))
	if !ok {
		t.Fatal("expected ray to hit sphere")
	}
	if math.Abs(float64(hit.T-4)) > 1e-4 {
		t.Fatalf("expected hit distance 4; got %f", hit.T)
	}
	if !hit.Normal.ApproxEqual(types.Vec3{0, 0, 1}) {
		t.Fatalf("expected normal (0, 0, 1); got %v", hit.Normal)
	}

	if _, ok = s.Intersect(NewRay(types.Vec3{}, types.Vec3{0, 1, 0})); ok {
		t.Fatal("expected ray to miss sphere")
	}

	// Ray starting inside the sphere reports the exit point
	hit, ok = s.Intersect(NewRay(types.Vec3{0, 0, -5}, types.Vec3{1, 0, 0}))
	if !ok || math.Abs(float64(hit.T-1)) > 1e-4 {
		t.Fatalf("expected exit hit at distance 1; got %v (hit: %t)", hit.T, ok)
	}

	expBBox := NewBBox(types.Vec3{-1, -1, -6}, types.Vec3{1, 1, -4})
	if !s.BBox().Equal(expBBox) {
		t.Fatalf("expected sphere bbox %v; got %v", expBBox, s.BBox())
	}
}

func TestBoxIntersect(t *testing.T) {
	bx := NewBox(types.Vec3{1, 1, 1}, types.Vec3{-1, -1, -1})

	hit, ok := bx.Intersect(NewRay(types.Vec3{-10, 0, 0}, types.Vec3{1, 0, 0}))
	if !ok {
		t.Fatal("expected ray to hit box")
	}
	if math.Abs(float64(hit.T-9)) > 1e-4 {
		t.Fatalf("expected hit distance 9; got %f", hit.T)
	}
	if !hit.Normal.ApproxEqual(types.Vec3{-1, 0, 0}) {
		t.Fatalf("expected normal (-1, 0, 0); got %v", hit.Normal)
	}

	if _, ok = bx.Intersect(NewRay(types.Vec3{-10, 3, 0}, types.Vec3{1, 0, 0})); ok {
		t.Fatal("expected ray to miss box")
	}
}

func TestTriangleIntersect(t *testing.T) {
	tri := NewTriangle([3]types.Vec3{
		{-1, -1, -3},
		{1, -1, -3},
		{0, 1, -3},
	})

	hit, ok := tri.Intersect(NewRay(types.Vec3{}, types.Vec3{0, 0, -1}))
	if !ok {
		t.Fatal("expected ray to hit triangle")
	}
	if math.Abs(float64(hit.T-3)) > 1e-4 {
		t.Fatalf("expected hit distance 3; got %f", hit.T)
	}
	if !hit.Normal.ApproxEqual(types.Vec3{0, 0, 1}) {
		t.Fatalf("expected normal (0, 0, 1); got %v", hit.Normal)
	}

	if _, ok = tri.Intersect(NewRay(types.Vec3{2, 2, 0}, types.Vec3{0, 0, -1})); ok {
		t.Fatal("expected ray to miss triangle")
	}

	// Ray parallel to the triangle plane
	if _, ok = tri.Intersect(NewRay(types.Vec3{0, 0, -3}, types.Vec3{1, 0, 0})); ok {
		t.Fatal("expected parallel ray to miss triangle")
	}

	expBBox := NewBBox(types.Vec3{-1, -1, -3}, types.Vec3{1, 1, -3})
	if !tri.BBox().Equal(expBBox) {
		t.Fatalf("expected triangle bbox %v; got %v", expBBox, tri.BBox())
	}
}
