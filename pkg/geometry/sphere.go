package geometry

import (
	"math"

	"github.com/tracelight/spheretrace/pkg/core"
)

// Sphere is the only primitive the renderer traces
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit solves the ray/sphere quadratic in the half-b form:
// a·t² + 2b·t + c = 0 with a = D·D, b = oc·D, c = oc·oc - r², so the
// discriminant is b² - a·c and the roots are (-b ∓ √disc)/a. The nearer
// root is tried first; a root is accepted only strictly inside
// (tMin, tMax).
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	for _, root := range [2]float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if root > tMin && root < tMax {
			point := ray.At(root)
			return &core.HitRecord{
				T:     root,
				Point: point,
				// Unit length by construction, not renormalized
				Normal:   point.Subtract(s.Center).Multiply(1.0 / s.Radius),
				Material: s.Material,
			}, true
		}
	}

	return nil, false
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
