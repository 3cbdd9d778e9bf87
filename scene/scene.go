package scene

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BardoBard/Bardrix-sub000/bvh"
	"github.com/BardoBard/Bardrix-sub000/geometry"
	"github.com/olekukonko/tablewriter"
)

var (
	ErrNilShape       = errors.New("scene: nil shape")
	ErrDuplicateShape = errors.New("scene: shape already added")
	ErrNoCamera       = errors.New("scene: no camera defined")
)

// A Scene owns a list of shapes and a BVH indexing them. The BVH only
// references the shapes stored in the scene, so shapes must not be removed
// while the scene is in use.
type Scene struct {
	Camera *Camera

	shapes []geometry.Shape
	bvh    *bvh.Tree

	// Set when shapes were added after the last BVH build.
	dirty bool
}

// Create an empty scene with a default camera.
func NewScene() *Scene {
	return &Scene{
		Camera: NewCamera(45),
		shapes: make([]geometry.Shape, 0),
		bvh:    bvh.New(),
	}
}

// Create a scene for shapes viewed through camera and build its BVH. A nil
// camera is replaced by a default one.
func New(shapes []geometry.Shape, camera *Camera) (*Scene, error) {
	s := NewScene()
	if camera != nil {
		s.Camera = camera
	}
	for _, shape := range shapes {
		if err := s.AddShape(shape); err != nil {
			return nil, err
		}
	}
	s.BuildBVH()
	return s, nil
}

// Add a shape to the scene. The BVH is rebuilt lazily before the next query
// or an explicit call to BuildBVH.
func (s *Scene) AddShape(shape geometry.Shape) error {
	if shape == nil {
		return ErrNilShape
	}
	for _, existing := range s.shapes {
		if existing == shape {
			return ErrDuplicateShape
		}
	}

	s.shapes = append(s.shapes, shape)
	s.dirty = true
	return nil
}

// Shapes returns the scene shapes in insertion order.
func (s *Scene) Shapes() []geometry.Shape {
	return s.shapes
}

// BVH returns the scene BVH, rebuilding it if shapes were added since the
// last build.
func (s *Scene) BVH() *bvh.Tree {
	s.BuildBVH()
	return s.bvh
}

// Rebuild the BVH if the shape list changed. Callers that share the scene
// between goroutines must invoke this before issuing concurrent queries.
func (s *Scene) BuildBVH() {
	if !s.dirty {
		return
	}
	s.bvh.ConstructLongestAxis(s.shapes)
	s.dirty = false
}

// Candidates appends the shapes whose bbox is intersected by ray to out.
func (s *Scene) Candidates(ray geometry.Ray, out []geometry.Shape) []geometry.Shape {
	return s.BVH().Intersections(ray, out)
}

// ClosestHit runs exact intersection tests against the BVH candidates for
// ray and returns the nearest hit along with the shape that produced it.
func (s *Scene) ClosestHit(ray geometry.Ray) (geometry.Hit, geometry.Shape, bool) {
	var scratch []geometry.Shape
	return closestHit(s.BVH(), ray, &scratch)
}

// Find the nearest hit among the candidates of tree, reusing scratch as the
// candidate buffer.
func closestHit(tree *bvh.Tree, ray geometry.Ray, scratch *[]geometry.Shape) (geometry.Hit, geometry.Shape, bool) {
	var (
		closest geometry.Hit
		shape   geometry.Shape
	)

	*scratch = tree.Intersections(ray, (*scratch)[:0])
	for _, candidate := range *scratch {
		hit, ok := candidate.Intersect(ray)
		if !ok {
			continue
		}

		// Shrink the interval so farther shapes are rejected early
		closest, shape = hit, candidate
		ray.TMax = hit.T
	}

	return closest, shape, shape != nil
}

// A Tracer queries the scene BVH with a reusable candidate buffer. Tracers
// never rebuild the BVH, so several tracers created for the same scene may
// be used concurrently, one per goroutine, as long as no goroutine calls
// BuildBVH meanwhile. Shapes added after the tracer was created become
// visible once the scene BVH is rebuilt.
type Tracer struct {
	bvh     *bvh.Tree
	scratch []geometry.Shape
}

// Create a tracer for the scene. The scene BVH is built if needed; callers
// sharing the scene between goroutines must create their tracers before
// spawning them.
func (s *Scene) NewTracer() *Tracer {
	s.BuildBVH()
	return &Tracer{
		bvh:     s.bvh,
		scratch: make([]geometry.Shape, 0, 64),
	}
}

// ClosestHit works like Scene.ClosestHit without allocating a new candidate
// list for each ray.
func (tr *Tracer) ClosestHit(ray geometry.Ray) (geometry.Hit, geometry.Shape, bool) {
	return closestHit(tr.bvh, ray, &tr.scratch)
}

// Build a tabular representation of scene statistics.
func (s *Scene) Stats() string {
	counts := make(map[geometry.ShapeType]int)
	for _, shape := range s.shapes {
		counts[shape.Type()]++
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Shape type", "Count"})
	for _, st := range []geometry.ShapeType{geometry.SphereShape, geometry.BoxShape, geometry.TriangleShape} {
		table.Append([]string{st.String(), fmt.Sprint(counts[st])})
	}
	table.SetFooter([]string{"Total", fmt.Sprint(len(s.shapes))})
	table.Render()

	return buf.String() + s.BVH().StatsTable()
}
