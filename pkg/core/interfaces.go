package core

import "math/rand"

// HitRecord contains information about a ray-object intersection.
// It is transient: valid only for the intersection query that produced it.
type HitRecord struct {
	T        float64  // Parameter t along the ray
	Point    Vec3     // Point of intersection
	Normal   Vec3     // Unit surface normal at the intersection
	Material Material // Material of the hit object
}

// Hittable is anything that can report the nearest ray intersection
// within the open interval (tMin, tMax).
type Hittable interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Shape is a hittable with a finite axis-aligned bounding box,
// which makes it eligible for BVH construction.
type Shape interface {
	Hittable
	BoundingBox() AABB
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered outgoing ray
	Attenuation Vec3 // Color attenuation for this bounce
}

// Material scatters an incoming ray at a hit point. The second return
// value is false when the ray is absorbed.
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// ShapeList is a flat list of shapes searched linearly. It is the
// no-acceleration baseline the BVH is checked against.
type ShapeList []Shape

// Hit tests all shapes in the list and returns the closest intersection
func (l ShapeList) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closestHit *HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range l {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the union of all shape bounding boxes
func (l ShapeList) BoundingBox() AABB {
	box := EmptyAABB()
	for _, shape := range l {
		box = box.Union(shape.BoundingBox())
	}
	return box
}
