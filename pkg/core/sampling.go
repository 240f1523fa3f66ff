package core

import (
	"math/rand"
	"time"
)

// RandomInUnitSphere generates a uniform random point strictly inside
// the unit ball by rejection sampling of the enclosing [-1,1]³ cube.
// The loop is unbounded on purpose: acceptance probability is π/6 per
// draw (≈1.91 draws expected) and capping it would bias the samples.
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := Vec3{
			X: 2*random.Float64() - 1,
			Y: 2*random.Float64() - 1,
			Z: 2*random.Float64() - 1,
		}
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomInUnitDisk generates a uniform random point strictly inside the
// unit disk on the z=0 plane, used for lens aperture sampling
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := Vec3{
			X: 2*random.Float64() - 1,
			Y: 2*random.Float64() - 1,
		}
		if p.Dot(p) < 1.0 {
			return p
		}
	}
}

// NewRandom returns a new random source. A nil seed selects system
// entropy; a non-nil seed gives a deterministic stream, so renders are
// reproducible run to run.
func NewRandom(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
