package bvh

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/BardoBard/Bardrix-sub000/geometry"
	"github.com/BardoBard/Bardrix-sub000/tree"
	"github.com/BardoBard/Bardrix-sub000/types"
)

// A shape whose exact test is its bbox test.
type mockShape struct {
	bbox geometry.BBox
}

func (m *mockShape) Type() geometry.ShapeType {
	return geometry.BoxShape
}

func (m *mockShape) BBox() geometry.BBox {
	return m.bbox
}

func (m *mockShape) Intersect(ray geometry.Ray) (geometry.Hit, bool) {
	return geometry.Hit{}, m.bbox.Intersects(ray)
}

func randomSpheres(count int, seed int64) []geometry.Shape {
	rng := rand.New(rand.NewSource(seed))
	shapes := make([]geometry.Shape, count)
	for i := range shapes {
		center := types.Vec3{
			rng.Float32()*40 - 20,
			rng.Float32()*10 - 5,
			rng.Float32()*20 - 10,
		}
		shapes[i] = geometry.NewSphere(center, 0.1+rng.Float32())
	}
	return shapes
}

// Verify bbox invariants and return the leaf shapes in left-to-right order.
func checkInvariants(t *testing.T, node *tree.Node[Payload]) []geometry.Shape {
	t.Helper()

	payload := node.Value()
	if payload.IsLeaf() {
		if node.Left() != nil || node.Right() != nil {
			t.Fatalf("expected leaf payload %v to have no children", payload)
		}
		if !payload.BBox.Equal(payload.Shape.BBox()) {
			t.Fatalf("expected leaf bbox %v to equal shape bbox %v", payload.BBox, payload.Shape.BBox())
		}
		return []geometry.Shape{payload.Shape}
	}

	if node.Left() == nil || node.Right() == nil {
		t.Fatalf("expected internal payload %v to have two children", payload)
	}

	expBBox := node.Left().Value().BBox.Merge(node.Right().Value().BBox)
	if !payload.BBox.Equal(expBBox) {
		t.Fatalf("expected internal bbox %v to equal merged child bboxes %v", payload.BBox, expBBox)
	}

	return append(checkInvariants(t, node.Left()), checkInvariants(t, node.Right())...)
}

func TestConstructEmpty(t *testing.T) {
	bt := New()
	bt.ConstructLongestAxis(nil)

	if !bt.Empty() || bt.Root() != nil {
		t.Fatal("expected empty shape list to produce an empty tree")
	}

	out := bt.Intersections(geometry.NewRay(types.Vec3{}, types.Vec3{0, 0, -1}), nil)
	if len(out) != 0 {
		t.Fatalf("expected no candidates from an empty tree; got %d", len(out))
	}

	if bt.Contains(geometry.NewSphere(types.Vec3{}, 1)) {
		t.Fatal("expected empty tree not to contain any shape")
	}
}

func TestConstructSingleShape(t *testing.T) {
	sphere := geometry.NewSphere(types.Vec3{1, 2, 3}, 1)

	bt := New()
	bt.ConstructLongestAxis([]geometry.Shape{sphere})

	root := bt.Root()
	if root == nil || !root.IsLeaf() {
		t.Fatal("expected a single leaf root")
	}
	if root.Value().Shape != sphere {
		t.Fatal("expected root leaf to reference the sphere")
	}
	if bt.Height() != 1 {
		t.Fatalf("expected tree height 1; got %d", bt.Height())
	}
	if stats := bt.Stats(); stats.Nodes != 0 || stats.Leafs != 1 {
		t.Fatalf("expected 0 internal nodes and 1 leaf; got %d and %d", stats.Nodes, stats.Leafs)
	}
}

func TestConstructInvariants(t *testing.T) {
	for _, count := range []int{2, 3, 7, 8, 33, 250} {
		shapes := randomSpheres(count, int64(count))
		original := make([]geometry.Shape, len(shapes))
		copy(original, shapes)

		bt := New()
		bt.ConstructLongestAxis(shapes)

		leaves := checkInvariants(t, bt.Root())
		if len(leaves) != count {
			t.Fatalf("[count %d] expected %d leaves; got %d", count, count, len(leaves))
		}

		// Leaves are ordered by bbox center along the construction axis
		axis := bt.Axis()
		for i := 1; i < len(leaves); i++ {
			if leaves[i-1].BBox().Center()[axis] > leaves[i].BBox().Center()[axis] {
				t.Fatalf("[count %d] expected leaves to be sorted along the %s axis", count, axis)
			}
		}

		for _, shape := range shapes {
			if !bt.Contains(shape) {
				t.Fatalf("[count %d] expected tree to contain shape %v", count, shape.BBox())
			}
		}

		if !reflect.DeepEqual(shapes, original) {
			t.Fatalf("[count %d] expected input shape order to be preserved", count)
		}

		stats := bt.Stats()
		if stats.Leafs != count || stats.Nodes != count-1 {
			t.Fatalf("[count %d] expected %d leafs and %d nodes; got %d and %d", count, count, count-1, stats.Leafs, stats.Nodes)
		}
		if stats.MaxDepth != bt.Height() {
			t.Fatalf("[count %d] expected max depth %d to match tree height %d", count, stats.MaxDepth, bt.Height())
		}
	}
}

func TestConstructUsesGlobalAxis(t *testing.T) {
	// The set is widest along x but the right half is widest along y and
	// its y ordering is the reverse of its x ordering.
	shapes := []geometry.Shape{
		&mockShape{geometry.NewBBox(types.Vec3{0, 0, 0}, types.Vec3{1, 1, 1})},
		&mockShape{geometry.NewBBox(types.Vec3{10, 0, 0}, types.Vec3{11, 1, 1})},
		&mockShape{geometry.NewBBox(types.Vec3{20, -5, 0}, types.Vec3{21, -4, 1})},
		&mockShape{geometry.NewBBox(types.Vec3{19, 5, 0}, types.Vec3{20, 6, 1})},
	}

	bt := New()
	bt.ConstructLongestAxis(shapes)

	if bt.Axis() != geometry.XAxis {
		t.Fatalf("expected x to be the longest axis; got %s", bt.Axis())
	}

	exp := []geometry.Shape{shapes[0], shapes[1], shapes[3], shapes[2]}
	got := make([]geometry.Shape, 0)
	bt.TraverseInOrder(func(p Payload) {
		if p.IsLeaf() {
			got = append(got, p.Shape)
		}
	})
	if !reflect.DeepEqual(got, exp) {
		t.Fatal("expected leaves to follow the x ordering at every level")
	}
}

func TestConstructHeight(t *testing.T) {
	type spec struct {
		count     int
		expHeight int
	}
	specs := []spec{
		{1, 1},
		{2, 2},
		{4, 3},
		{5, 4},
		{8, 4},
		{9, 5},
	}

	for index, s := range specs {
		bt := New()
		bt.ConstructLongestAxis(randomSpheres(s.count, 7))
		if got := bt.Height(); got != s.expHeight {
			t.Fatalf("[spec %d] expected height %d for %d shapes; got %d", index, s.expHeight, s.count, got)
		}
	}
}

func TestConstructReplacesHierarchy(t *testing.T) {
	bt := New()
	bt.ConstructLongestAxis(randomSpheres(20, 1))

	replacement := randomSpheres(3, 2)
	bt.ConstructLongestAxis(replacement)

	leaves := checkInvariants(t, bt.Root())
	if len(leaves) != 3 {
		t.Fatalf("expected rebuilt tree to only index 3 shapes; got %d", len(leaves))
	}

	bt.ConstructLongestAxis([]geometry.Shape{})
	if !bt.Empty() {
		t.Fatal("expected construction from an empty list to clear the tree")
	}
}

func TestDegenerateShapes(t *testing.T) {
	// Flat triangles and a point-sized box have zero-volume bboxes
	shapes := []geometry.Shape{
		geometry.NewTriangle([3]types.Vec3{{-1, -1, -5}, {1, -1, -5}, {0, 1, -5}}),
		geometry.NewTriangle([3]types.Vec3{{4, -1, -5}, {6, -1, -5}, {5, 1, -5}}),
		geometry.NewBox(types.Vec3{10, 0, -5}, types.Vec3{10, 0, -5}),
	}

	bt := New()
	bt.ConstructLongestAxis(shapes)
	checkInvariants(t, bt.Root())

	out := bt.Intersections(geometry.NewRay(types.Vec3{}, types.Vec3{0, 0, -1}), nil)
	if len(out) != 1 || out[0] != shapes[0] {
		t.Fatalf("expected only the first triangle as a candidate; got %d candidates", len(out))
	}
}

func TestIntersectionsTwoSpheres(t *testing.T) {
	left := geometry.NewSphere(types.Vec3{-50, 0, 0}, 1)
	right := geometry.NewSphere(types.Vec3{50, 0, 0}, 1)

	bt := New()
	bt.ConstructLongestAxis([]geometry.Shape{left, right})

	ray := geometry.NewRay(types.Vec3{-50, 0, 10}, types.Vec3{0, 0, -1})
	out := bt.Intersections(ray, nil)
	if len(out) != 1 {
		t.Fatalf("expected exactly 1 candidate; got %d", len(out))
	}
	if out[0] != left {
		t.Fatal("expected the candidate to be the sphere on the ray path")
	}

	// Candidates are appended to the supplied slice
	out = bt.Intersections(geometry.NewRay(types.Vec3{50, 0, 10}, types.Vec3{0, 0, -1}), out)
	if len(out) != 2 || out[1] != right {
		t.Fatal("expected the second query to append the right sphere")
	}

	// A ray along the x axis passes through both
	out = bt.Intersections(geometry.NewRay(types.Vec3{-100, 0, 0}, types.Vec3{1, 0, 0}), nil)
	if len(out) != 2 || out[0] != left || out[1] != right {
		t.Fatal("expected both spheres in left-to-right order")
	}

	// A ray missing the scene bounds
	out = bt.Intersections(geometry.NewRay(types.Vec3{0, 10, 0}, types.Vec3{0, 1, 0}), nil)
	if len(out) != 0 {
		t.Fatalf("expected no candidates; got %d", len(out))
	}
}

func TestIntersectionsSoundness(t *testing.T) {
	shapes := randomSpheres(300, 99)
	bt := New()
	bt.ConstructLongestAxis(shapes)

	rng := rand.New(rand.NewSource(1234))
	for i := 0; i < 500; i++ {
		origin := types.Vec3{rng.Float32()*60 - 30, rng.Float32()*20 - 10, 30}
		target := types.Vec3{rng.Float32()*40 - 20, rng.Float32()*10 - 5, rng.Float32()*20 - 10}
		ray := geometry.NewRay(origin, target.Sub(origin))

		candidates := bt.Intersections(ray, nil)
		inCandidates := make(map[geometry.Shape]bool, len(candidates))
		for _, c := range candidates {
			if inCandidates[c] {
				t.Fatalf("[ray %d] expected each shape to be reported once", i)
			}
			inCandidates[c] = true
		}

		for _, shape := range shapes {
			if _, hit := shape.Intersect(ray); hit && !inCandidates[shape] {
				t.Fatalf("[ray %d] expected shape hit by ray to be reported as a candidate", i)
			}
		}
	}
}

func TestSplitScore(t *testing.T) {
	type spec struct {
		shapes   []geometry.Shape
		minScore float32
		maxScore float32
	}
	specs := []spec{
		// Far apart spheres produce tight children
		{
			[]geometry.Shape{
				geometry.NewSphere(types.Vec3{-50, 0, 0}, 1),
				geometry.NewSphere(types.Vec3{50, 0, 0}, 1),
			},
			0.02, 0.04,
		},
		// Coincident spheres gain nothing from splitting
		{
			[]geometry.Shape{
				geometry.NewSphere(types.Vec3{}, 1),
				geometry.NewSphere(types.Vec3{}, 1),
			},
			0.999, 1.001,
		},
		// A single leaf has no splits to score
		{
			[]geometry.Shape{geometry.NewSphere(types.Vec3{}, 1)},
			0, 0,
		},
	}

	for index, s := range specs {
		bt := New()
		bt.ConstructLongestAxis(s.shapes)
		if score := bt.Stats().SplitScore; score < s.minScore || score > s.maxScore {
			t.Fatalf("[spec %d] expected split score in [%f, %f]; got %f", index, s.minScore, s.maxScore, score)
		}
	}
}

func TestStatsTable(t *testing.T) {
	bt := New()
	bt.ConstructLongestAxis(randomSpheres(10, 3))

	table := bt.StatsTable()
	for _, exp := range []string{"Shapes", "10", "Leafs", "Split axis", "SAH split score", "Build time"} {
		if !strings.Contains(table, exp) {
			t.Fatalf("expected stats table to contain %q; got:\n%s", exp, table)
		}
	}

	bt.Clear()
	if bt.Stats().Shapes != 0 {
		t.Fatal("expected Clear to reset stats")
	}
}
