package renderer

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/tracelight/spheretrace/pkg/core"
)

// rowSeedStride decorrelates per-row random streams derived from one
// base seed (64-bit golden ratio; the multiply is meant to wrap)
const rowSeedStride uint64 = 0x9E3779B97F4A7C15

// Config contains the rendering parameters
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Workers         int    // <= 0 selects runtime.NumCPU()
	Seed            *int64 // nil selects system entropy
}

// DefaultConfig returns the parameters the original renders with
func DefaultConfig() Config {
	return Config{
		Width:           1200,
		Height:          800,
		SamplesPerPixel: 10,
		MaxDepth:        50,
	}
}

// Integrator evaluates radiance for a camera ray
type Integrator interface {
	RayColor(ray core.Ray, world core.Hittable, depth int, random *rand.Rand) core.Vec3
}

// ProgressFunc is called after each completed row with the number of
// rows finished so far. It runs on worker goroutines and must not
// block on anything slow.
type ProgressFunc func(completedRows, totalRows int)

// Renderer drives the per-pixel sampling loop over a worker pool. The
// scene (world and camera) is read-only during rendering, so workers
// share it without locks.
type Renderer struct {
	world      core.Hittable
	camera     *Camera
	integrator Integrator
	config     Config
	progress   ProgressFunc
}

// NewRenderer creates a renderer for the given world and camera
func NewRenderer(world core.Hittable, camera *Camera, integrator Integrator, config Config) *Renderer {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Renderer{
		world:      world,
		camera:     camera,
		integrator: integrator,
		config:     config,
	}
}

// SetProgressFunc installs a per-row progress callback
func (r *Renderer) SetProgressFunc(fn ProgressFunc) {
	r.progress = fn
}

// Render traces the full frame and returns the framebuffer with
// per-pixel averaged linear colors, plus render statistics. Rows are
// independent and dispatched to the worker pool; the call blocks until
// every row has completed.
func (r *Renderer) Render() (*Framebuffer, RenderStats) {
	cfg := r.config
	fb := NewFramebuffer(cfg.Width, cfg.Height)

	// One base seed for the whole frame; each row derives its own
	// stream from it, so a fixed seed reproduces the image exactly
	// regardless of worker count or scheduling order.
	baseSeed := time.Now().UnixNano()
	if cfg.Seed != nil {
		baseSeed = *cfg.Seed
	}

	start := time.Now()

	pool := newWorkerPool(cfg.Workers, cfg.Height)
	pool.start(
		func(task rowTask) { r.renderRow(fb, task) },
		func(completed int64) {
			if r.progress != nil {
				r.progress(int(completed), cfg.Height)
			}
		},
	)

	for row := 0; row < cfg.Height; row++ {
		pool.submit(rowTask{
			row:    row,
			random: rand.New(rand.NewSource(int64(uint64(baseSeed) + uint64(row)*rowSeedStride))),
		})
	}
	pool.wait()

	stats := RenderStats{
		Width:        cfg.Width,
		Height:       cfg.Height,
		TotalPixels:  cfg.Width * cfg.Height,
		TotalSamples: cfg.Width * cfg.Height * cfg.SamplesPerPixel,
		Rows:         cfg.Height,
		Workers:      cfg.Workers,
		RenderTime:   time.Since(start),
	}

	return fb, stats
}

// renderRow traces every pixel of one scanline. Each of the NS samples
// jitters the pixel's normalized coordinates by an independent uniform
// [0,1) offset before generating the camera ray.
func (r *Renderer) renderRow(fb *Framebuffer, task rowTask) {
	cfg := r.config
	random := task.random

	for x := 0; x < cfg.Width; x++ {
		accum := core.Vec3{}

		for s := 0; s < cfg.SamplesPerPixel; s++ {
			u := (float64(x) + random.Float64()) / float64(cfg.Width)
			v := (float64(task.row) + random.Float64()) / float64(cfg.Height)

			ray := r.camera.GetRay(u, v, random)
			accum = accum.Add(r.integrator.RayColor(ray, r.world, 0, random))
		}

		fb.Set(x, task.row, accum.Multiply(1.0/float64(cfg.SamplesPerPixel)))
	}
}
