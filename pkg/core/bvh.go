package core

import "sort"

// DefaultLeafSize is the default maximum number of shapes stored in a
// BVH leaf bucket.
const DefaultLeafSize = 7

// BVHNode is a node in the bounding volume hierarchy. Leaf nodes hold a
// small bucket of shapes (Shapes != nil); internal nodes hold two
// children and the union of their bounding boxes.
type BVHNode struct {
	Box   AABB
	Left  *BVHNode
	Right *BVHNode
	// Shapes is the leaf bucket; nil for internal nodes
	Shapes []Shape
}

// BVH is a bounding volume hierarchy for fast nearest-intersection
// queries. It is built once before rendering and is read-only afterward,
// so it can be shared across workers without locking.
type BVH struct {
	Root     *BVHNode
	LeafSize int
}

// NewBVH constructs a BVH over the given shapes. leafSize <= 0 selects
// DefaultLeafSize. The input slice is copied; the caller's order is
// preserved.
func NewBVH(shapes []Shape, leafSize int) *BVH {
	if leafSize <= 0 {
		leafSize = DefaultLeafSize
	}
	bvh := &BVH{LeafSize: leafSize}
	if len(shapes) == 0 {
		return bvh
	}

	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)
	bvh.Root = buildNode(shapesCopy, leafSize)
	return bvh
}

// buildNode recursively partitions shapes with a median split along the
// longest axis of their union box. Median splitting guarantees balanced
// depth but is not a surface-area-heuristic optimizer; query cost is
// good enough for sphere scenes and build cost stays O(n log² n).
func buildNode(shapes []Shape, leafSize int) *BVHNode {
	box := EmptyAABB()
	for _, shape := range shapes {
		box = box.Union(shape.BoundingBox())
	}

	if len(shapes) <= leafSize {
		return &BVHNode{Box: box, Shapes: shapes}
	}

	axis := box.LongestAxis()
	sortShapesByMin(shapes, axis)

	mid := len(shapes) / 2
	return &BVHNode{
		Box:   box,
		Left:  buildNode(shapes[:mid], leafSize),
		Right: buildNode(shapes[mid:], leafSize),
	}
}

// sortShapesByMin sorts shapes by their bounding-box minimum coordinate
// along the given axis
func sortShapesByMin(shapes []Shape, axis int) {
	sort.Slice(shapes, func(i, j int) bool {
		return shapes[i].BoundingBox().Min.Component(axis) <
			shapes[j].BoundingBox().Min.Component(axis)
	})
}

// Hit returns the closest intersection within (tMin, tMax) across the
// whole tree, or false if nothing is hit.
func (bvh *BVH) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return hitNode(bvh.Root, ray, tMin, tMax)
}

func hitNode(node *BVHNode, ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if !node.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	// Leaf: linear scan, shrinking the upper bound to the nearest hit so
	// later candidates can only replace it with something strictly closer
	if node.Shapes != nil {
		var closestHit *HitRecord
		hitAnything := false
		closestSoFar := tMax

		for _, shape := range node.Shapes {
			if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
				hitAnything = true
				closestSoFar = hit.T
				closestHit = hit
			}
		}

		return closestHit, hitAnything
	}

	// Internal: traverse left first, then restrict the right subtree to
	// [tMin, leftHit.T]. Traversal order is an optimization only; the
	// tightened bound keeps the result the globally closest hit.
	leftHit, leftOk := hitNode(node.Left, ray, tMin, tMax)
	if leftOk {
		tMax = leftHit.T
	}

	if rightHit, rightOk := hitNode(node.Right, ray, tMin, tMax); rightOk {
		return rightHit, true
	}
	return leftHit, leftOk
}

// BVHStats summarizes the structure of a built tree
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	TotalShapes int
	MaxDepth    int
	AvgDepth    float64
}

// Stats walks the tree and returns structural statistics
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh.Root == nil {
		return stats
	}

	collectStats(bvh.Root, 0, &stats)
	if stats.LeafNodes > 0 {
		stats.AvgDepth /= float64(stats.LeafNodes)
	}
	return stats
}

func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.Shapes != nil {
		stats.LeafNodes++
		stats.TotalShapes += len(node.Shapes)
		stats.AvgDepth += float64(depth)
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
