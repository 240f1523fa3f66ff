package scene

import (
	"github.com/tracelight/spheretrace/pkg/core"
	"github.com/tracelight/spheretrace/pkg/geometry"
	"github.com/tracelight/spheretrace/pkg/material"
	"github.com/tracelight/spheretrace/pkg/renderer"
)

// Config controls procedural scene generation. Material weights are
// discrete proportions: a material is picked for each small sphere with
// probability weight/totalWeight.
type Config struct {
	DiffuseWeight    int
	MetalWeight      int
	DielectricWeight int
	Seed             *int64 // nil selects system entropy
}

// DefaultConfig mirrors the 10:3:2 diffuse:metal:dielectric mix the
// renderer ships with
func DefaultConfig() Config {
	return Config{
		DiffuseWeight:    10,
		MetalWeight:      3,
		DielectricWeight: 2,
	}
}

// Scene is a list of shapes plus the camera that frames them. It is
// built once, then read-only for the rest of the process.
type Scene struct {
	Shapes       []core.Shape
	CameraConfig renderer.CameraConfig
}

// NewRandomScene builds the classic random sphere field: a huge gray
// ground sphere, a 22×22 grid of small spheres with jittered centers
// and randomized materials, and three large feature spheres. Spheres
// that would overlap the feature row are skipped.
func NewRandomScene(aspect float64, config Config) *Scene {
	random := core.NewRandom(config.Seed)

	shapes := []core.Shape{
		// Ground
		geometry.NewSphere(
			core.NewVec3(0, -1000, 0), 1000,
			material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
		),
	}

	// Discrete material pick list, one entry per weight unit
	const (
		pickDiffuse = iota
		pickMetal
		pickDielectric
	)
	var picks []int
	for i := 0; i < config.DiffuseWeight; i++ {
		picks = append(picks, pickDiffuse)
	}
	for i := 0; i < config.MetalWeight; i++ {
		picks = append(picks, pickMetal)
	}
	for i := 0; i < config.DielectricWeight; i++ {
		picks = append(picks, pickDielectric)
	}
	if len(picks) == 0 {
		picks = []int{pickDiffuse}
	}

	clearPoint := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)

			if center.Subtract(clearPoint).Length() <= 0.9 {
				continue
			}

			var mat core.Material
			switch picks[random.Intn(len(picks))] {
			case pickDiffuse:
				mat = material.NewLambertian(core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				))
			case pickMetal:
				mat = material.NewMetal(core.NewVec3(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				), 0.5*random.Float64())
			default:
				mat = material.NewDielectric(1.5)
			}

			shapes = append(shapes, geometry.NewSphere(center, 0.2, mat))
		}
	}

	// Feature spheres
	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return &Scene{
		Shapes: shapes,
		CameraConfig: renderer.CameraConfig{
			LookFrom:      core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20.0,
			Aspect:        aspect,
			Aperture:      0.1,
			FocusDistance: 10.0,
		},
	}
}
