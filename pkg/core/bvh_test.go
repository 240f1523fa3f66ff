package core

import (
	"math"
	"math/rand"
	"testing"
)

// mockShape is a box-shaped test double with a configurable hit function
type mockShape struct {
	box   AABB
	hitFn func(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

func (m mockShape) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if m.hitFn == nil {
		return nil, false
	}
	return m.hitFn(ray, tMin, tMax)
}

func (m mockShape) BoundingBox() AABB {
	return m.box
}

// slabShape hits exactly where its bounding box does, at the box entry
// distance along +X rays. Good enough to exercise closest-hit logic.
func slabShape(xMin, xMax float64) mockShape {
	box := NewAABB(NewVec3(xMin, -1, -1), NewVec3(xMax, 1, 1))
	return mockShape{
		box: box,
		hitFn: func(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
			if ray.Direction.X <= 0 {
				return nil, false
			}
			t := (xMin - ray.Origin.X) / ray.Direction.X
			if t <= tMin || t >= tMax {
				return nil, false
			}
			return &HitRecord{T: t, Point: ray.At(t)}, true
		},
	}
}

func TestBVH_EmptyAndSingleShape(t *testing.T) {
	bvh := NewBVH(nil, 0)
	if bvh.Root != nil {
		t.Error("expected nil root for empty BVH")
	}

	ray := NewRay(NewVec3(-10, 0, 0), NewVec3(1, 0, 0))
	if _, isHit := bvh.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("expected no hit for empty BVH")
	}

	bvh = NewBVH([]Shape{slabShape(1, 2)}, 0)
	hit, isHit := bvh.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("expected hit for single-shape BVH")
	}
	if math.Abs(hit.T-11) > 1e-9 {
		t.Errorf("hit.T = %v, want 11", hit.T)
	}
}

func TestBVH_LeafBucketBoundary(t *testing.T) {
	const leafSize = 4

	makeShapes := func(n int) []Shape {
		shapes := make([]Shape, n)
		for i := range shapes {
			shapes[i] = slabShape(float64(2*i), float64(2*i+1))
		}
		return shapes
	}

	// Exactly leafSize shapes: one leaf holding the whole bucket
	stats := NewBVH(makeShapes(leafSize), leafSize).Stats()
	if stats.TotalNodes != 1 || stats.LeafNodes != 1 {
		t.Errorf("want single leaf for %d shapes, got %+v", leafSize, stats)
	}
	if stats.TotalShapes != leafSize {
		t.Errorf("leaf holds %d shapes, want %d", stats.TotalShapes, leafSize)
	}

	// One more shape forces a split
	stats = NewBVH(makeShapes(leafSize+1), leafSize).Stats()
	if stats.TotalNodes < 3 || stats.LeafNodes < 2 {
		t.Errorf("want split for %d shapes, got %+v", leafSize+1, stats)
	}
	if stats.TotalShapes != leafSize+1 {
		t.Errorf("shapes after split = %d, want %d", stats.TotalShapes, leafSize+1)
	}
}

func TestBVH_DefaultLeafSize(t *testing.T) {
	bvh := NewBVH([]Shape{slabShape(0, 1)}, 0)
	if bvh.LeafSize != DefaultLeafSize {
		t.Errorf("LeafSize = %d, want %d", bvh.LeafSize, DefaultLeafSize)
	}
	if bvh.LeafSize != 7 {
		t.Errorf("default bucket size = %d, want 7", bvh.LeafSize)
	}
}

func TestBVH_ClosestHitAcrossSubtrees(t *testing.T) {
	// Many shapes along +X, forcing several levels of splits; the
	// closest shape must win no matter where it lands in the tree
	var shapes []Shape
	for i := 0; i < 20; i++ {
		shapes = append(shapes, slabShape(float64(3*i+5), float64(3*i+6)))
	}

	bvh := NewBVH(shapes, 2)
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0))

	hit, isHit := bvh.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("hit.T = %v, want 5 (closest shape)", hit.T)
	}

	// Restricting tMax below the closest entry yields a miss
	if _, isHit := bvh.Hit(ray, 0.001, 4.9); isHit {
		t.Error("expected miss with tMax before the first shape")
	}

	// Restricting tMin past the first shapes finds a farther one
	hit, isHit = bvh.Hit(ray, 10, math.Inf(1))
	if !isHit {
		t.Fatal("expected hit past tMin=10")
	}
	if math.Abs(hit.T-11) > 1e-9 {
		t.Errorf("hit.T = %v, want 11", hit.T)
	}
}

func TestBVH_PrunesMissingSubtrees(t *testing.T) {
	// Count how often leaf shapes are actually queried for a ray that
	// misses most of the scene
	queried := 0
	var shapes []Shape
	for i := 0; i < 64; i++ {
		x := float64(i * 10)
		box := NewAABB(NewVec3(x, -1, -1), NewVec3(x+1, 1, 1))
		shapes = append(shapes, mockShape{
			box: box,
			hitFn: func(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
				queried++
				return nil, false
			},
		})
	}

	bvh := NewBVH(shapes, 2)

	// Ray far off in Y misses the root box: no shape may be queried
	ray := NewRay(NewVec3(0, 100, 0), NewVec3(1, 0, 0))
	if _, isHit := bvh.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("expected miss")
	}
	if queried != 0 {
		t.Errorf("%d shapes queried despite root box miss", queried)
	}
}

func TestBVH_BuildDoesNotReorderInput(t *testing.T) {
	shapes := []Shape{slabShape(8, 9), slabShape(0, 1), slabShape(4, 5)}
	orig := make([]Shape, len(shapes))
	copy(orig, shapes)

	NewBVH(shapes, 1)

	for i := range shapes {
		if shapes[i].BoundingBox() != orig[i].BoundingBox() {
			t.Fatal("NewBVH reordered the caller's slice")
		}
	}
}

func TestBVH_BalancedDepth(t *testing.T) {
	// Median split guarantees O(log n) depth for n shapes
	var shapes []Shape
	for i := 0; i < 256; i++ {
		shapes = append(shapes, slabShape(float64(i), float64(i)+0.5))
	}

	stats := NewBVH(shapes, 1).Stats()
	// 256 single-shape leaves: depth exactly log2(256) = 8
	if stats.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d, want 8", stats.MaxDepth)
	}
	if stats.LeafNodes != 256 {
		t.Errorf("LeafNodes = %d, want 256", stats.LeafNodes)
	}
}

func TestShapeList_ClosestHit(t *testing.T) {
	list := ShapeList{slabShape(20, 21), slabShape(5, 6), slabShape(12, 13)}
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0))

	hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("hit.T = %v, want 5", hit.T)
	}

	box := list.BoundingBox()
	if box.Min.X != 5 || box.Max.X != 21 {
		t.Errorf("list box = %v", box)
	}
}

func TestBVH_RandomRaysMatchLinearScan(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	var shapes []Shape
	for i := 0; i < 50; i++ {
		xMin := random.Float64() * 100
		shapes = append(shapes, slabShape(xMin, xMin+random.Float64()*3))
	}

	bvh := NewBVH(shapes, 3)
	list := ShapeList(shapes)

	for i := 0; i < 200; i++ {
		ray := NewRay(
			NewVec3(-random.Float64()*10, random.Float64()*2-1, random.Float64()*2-1),
			NewVec3(1, 0, 0),
		)

		bvhHit, bvhOk := bvh.Hit(ray, 0.001, math.Inf(1))
		listHit, listOk := list.Hit(ray, 0.001, math.Inf(1))

		if bvhOk != listOk {
			t.Fatalf("ray %d: bvh hit=%v, linear hit=%v", i, bvhOk, listOk)
		}
		if bvhOk && math.Abs(bvhHit.T-listHit.T) > 1e-9 {
			t.Fatalf("ray %d: bvh T=%v, linear T=%v", i, bvhHit.T, listHit.T)
		}
	}
}
