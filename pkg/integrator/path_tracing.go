package integrator

import (
	"math"
	"math/rand"

	"github.com/tracelight/spheretrace/pkg/core"
)

// DefaultMaxDepth is the default recursion cutoff for ray bounces
const DefaultMaxDepth = 50

// PathTracer evaluates radiance for camera rays by recursively
// following material scattering until the ray escapes to the
// background, is absorbed, or the depth cutoff is reached.
type PathTracer struct {
	MaxDepth    int       // Maximum ray bounce depth
	TopColor    core.Vec3 // Background gradient at the zenith
	BottomColor core.Vec3 // Background gradient at the horizon
}

// NewPathTracer creates a path tracer with the standard sky gradient
func NewPathTracer(maxDepth int) *PathTracer {
	return &PathTracer{
		MaxDepth:    maxDepth,
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// RayColor returns the radiance carried back along the ray. The lower
// hit bound of 0.001 keeps the next bounce from re-intersecting the
// surface it just left (shadow acne). Rays that reach the depth cutoff
// return black: truncating the path loses energy, which is the accepted
// bias of bounded Monte-Carlo transport, not an error.
func (pt *PathTracer) RayColor(ray core.Ray, world core.Hittable, depth int, random *rand.Rand) core.Vec3 {
	if hit, isHit := world.Hit(ray, 0.001, math.MaxFloat64); isHit {
		if depth < pt.MaxDepth {
			if scatter, didScatter := hit.Material.Scatter(ray, *hit, random); didScatter {
				incoming := pt.RayColor(scatter.Scattered, world, depth+1, random)
				return scatter.Attenuation.MultiplyVec(incoming)
			}
		}
		// Absorbed, or out of bounces
		return core.Vec3{}
	}

	return pt.Background(ray)
}

// Background returns the vertical sky gradient for a ray that escapes
// the scene, interpolated on the normalized direction's Y component
// mapped from [-1,1] to [0,1].
func (pt *PathTracer) Background(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return pt.BottomColor.Multiply(1.0 - t).Add(pt.TopColor.Multiply(t))
}
