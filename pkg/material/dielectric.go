package material

import (
	"math"
	"math/rand"

	"github.com/tracelight/spheretrace/pkg/core"
)

// Dielectric represents a clear refractive material like glass
type Dielectric struct {
	RefractiveIndex float64 // e.g. 1.5 for glass
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter refracts or reflects the ray. Whether the ray is entering or
// exiting the medium is read off the sign of direction·normal, which
// flips the working normal and inverts the index ratio. Total internal
// reflection always reflects; otherwise reflection is chosen
// stochastically with Schlick's approximation as the probability.
// Clear glass absorbs nothing, so attenuation is always white.
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	var outwardNormal core.Vec3
	var niOverNt, cosine float64

	dirDotN := rayIn.Direction.Dot(hit.Normal)
	if dirDotN > 0 {
		// Exiting the medium
		outwardNormal = hit.Normal.Negate()
		niOverNt = d.RefractiveIndex
		cosine = d.RefractiveIndex * dirDotN / rayIn.Direction.Length()
	} else {
		// Entering the medium
		outwardNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
		cosine = -dirDotN / rayIn.Direction.Length()
	}

	if refracted, ok := refract(rayIn.Direction, outwardNormal, niOverNt); ok {
		if random.Float64() >= schlick(cosine, d.RefractiveIndex) {
			return core.ScatterResult{
				Scattered:   core.NewRay(hit.Point, refracted),
				Attenuation: attenuation,
			}, true
		}
	}

	reflected := reflect(rayIn.Direction, hit.Normal)
	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: attenuation,
	}, true
}

// refract applies Snell's law: refracted = η(uv - n·dt) - n·√disc.
// Returns false on total internal reflection (non-positive discriminant).
func refract(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1.0-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}

	refracted := uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).
		Subtract(n.Multiply(math.Sqrt(discriminant)))
	return refracted, true
}

// schlick approximates the Fresnel reflectance coefficient:
// R(θ) = R0 + (1-R0)(1-cosθ)^5 with R0 = ((1-n)/(1+n))²
func schlick(cosine, refIdx float64) float64 {
	r0 := (1 - refIdx) / (1 + refIdx)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
