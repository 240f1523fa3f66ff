package scene

import (
	"testing"

	"github.com/tracelight/spheretrace/pkg/core"
	"github.com/tracelight/spheretrace/pkg/geometry"
	"github.com/tracelight/spheretrace/pkg/material"
)

func seeded(seed int64) *int64 {
	return &seed
}

func TestNewRandomScene_Structure(t *testing.T) {
	config := DefaultConfig()
	config.Seed = seeded(171)
	sc := NewRandomScene(1.5, config)

	// Ground plus three feature spheres plus up to 22*22 small spheres
	if len(sc.Shapes) < 4 {
		t.Fatalf("scene has %d shapes, want at least ground + features", len(sc.Shapes))
	}
	if len(sc.Shapes) > 4+22*22 {
		t.Fatalf("scene has %d shapes, more than the grid can produce", len(sc.Shapes))
	}

	ground, ok := sc.Shapes[0].(*geometry.Sphere)
	if !ok || ground.Radius != 1000 {
		t.Errorf("first shape should be the r=1000 ground sphere")
	}

	// Feature spheres are appended last: glass, diffuse, metal
	n := len(sc.Shapes)
	features := sc.Shapes[n-3:]
	if _, ok := features[0].(*geometry.Sphere).Material.(*material.Dielectric); !ok {
		t.Error("first feature sphere should be glass")
	}
	if _, ok := features[1].(*geometry.Sphere).Material.(*material.Lambertian); !ok {
		t.Error("second feature sphere should be diffuse")
	}
	if _, ok := features[2].(*geometry.Sphere).Material.(*material.Metal); !ok {
		t.Error("third feature sphere should be metal")
	}
}

func TestNewRandomScene_SeedIsDeterministic(t *testing.T) {
	config := DefaultConfig()
	config.Seed = seeded(42)

	a := NewRandomScene(1.5, config)
	b := NewRandomScene(1.5, config)

	if len(a.Shapes) != len(b.Shapes) {
		t.Fatalf("shape counts differ: %d vs %d", len(a.Shapes), len(b.Shapes))
	}
	for i := range a.Shapes {
		sa := a.Shapes[i].(*geometry.Sphere)
		sb := b.Shapes[i].(*geometry.Sphere)
		if sa.Center != sb.Center || sa.Radius != sb.Radius {
			t.Fatalf("shape %d differs: %v vs %v", i, sa.Center, sb.Center)
		}
	}
}

func TestNewRandomScene_MaterialWeights(t *testing.T) {
	// An all-dielectric weighting must produce only glass small spheres
	config := Config{DielectricWeight: 1, Seed: seeded(7)}
	sc := NewRandomScene(1.5, config)

	n := len(sc.Shapes)
	for _, shape := range sc.Shapes[1 : n-3] {
		sphere := shape.(*geometry.Sphere)
		if _, ok := sphere.Material.(*material.Dielectric); !ok {
			t.Fatalf("small sphere has material %T, want dielectric only", sphere.Material)
		}
	}
}

func TestNewRandomScene_ClearsFeatureRow(t *testing.T) {
	config := DefaultConfig()
	config.Seed = seeded(12345)
	sc := NewRandomScene(1.5, config)

	// Small spheres keep their distance from the cleared region around
	// (4, 0.2, 0) where a feature sphere sits
	clearPoint := core.NewVec3(4, 0.2, 0)
	n := len(sc.Shapes)
	for _, shape := range sc.Shapes[1 : n-3] {
		sphere := shape.(*geometry.Sphere)
		d := sphere.Center.Subtract(clearPoint).Length()
		if d <= 0.9 {
			t.Fatalf("small sphere at %v is inside the cleared region (d=%v)", sphere.Center, d)
		}
	}
}

func TestNewRandomScene_CameraDefaults(t *testing.T) {
	sc := NewRandomScene(1.5, Config{DiffuseWeight: 1, Seed: seeded(1)})

	cc := sc.CameraConfig
	if cc.VFov != 20.0 || cc.Aperture != 0.1 || cc.FocusDistance != 10.0 {
		t.Errorf("camera config = %+v", cc)
	}
	if cc.Aspect != 1.5 {
		t.Errorf("aspect = %v, want the value passed in", cc.Aspect)
	}
}
