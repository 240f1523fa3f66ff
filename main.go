package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/tracelight/spheretrace/pkg/core"
	"github.com/tracelight/spheretrace/pkg/integrator"
	"github.com/tracelight/spheretrace/pkg/log"
	"github.com/tracelight/spheretrace/pkg/renderer"
	"github.com/tracelight/spheretrace/pkg/scene"
)

var logger = log.New("spheretrace")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// The default version flag claims the "v" shorthand, which collides
	// with the verbose flag below and panics at flag registration
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "spheretrace"
	app.Usage = "render a random sphere scene with monte carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 1200,
			Usage: "image width in pixels",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 800,
			Usage: "image height in pixels",
		},
		cli.IntFlag{
			Name:  "samples",
			Value: 10,
			Usage: "samples per pixel",
		},
		cli.IntFlag{
			Name:  "depth",
			Value: integrator.DefaultMaxDepth,
			Usage: "maximum ray bounce depth",
		},
		cli.IntFlag{
			Name:  "leaf-size",
			Value: core.DefaultLeafSize,
			Usage: "BVH leaf bucket size",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "render workers (0 = one per CPU)",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "fixed RNG seed for reproducible renders (default: system entropy)",
		},
		cli.StringFlag{
			Name:  "out, o",
			Value: "result.ppm",
			Usage: "output file (.ppm or .png)",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Action = render
	return app
}

func render(ctx *cli.Context) error {
	if ctx.Bool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.Bool("vv") {
		log.SetLevel(log.Debug)
	}

	var seed *int64
	if ctx.IsSet("seed") {
		s := ctx.Int64("seed")
		seed = &s
	}

	config := renderer.Config{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("samples"),
		MaxDepth:        ctx.Int("depth"),
		Workers:         ctx.Int("workers"),
		Seed:            seed,
	}
	aspect := float64(config.Width) / float64(config.Height)

	logger.Notice("constructing scene")
	sceneConfig := scene.DefaultConfig()
	sceneConfig.Seed = seed
	sc := scene.NewRandomScene(aspect, sceneConfig)
	logger.Noticef("scene constructed: %d objects", len(sc.Shapes))

	buildStart := time.Now()
	world := core.NewBVH(sc.Shapes, ctx.Int("leaf-size"))
	buildTime := time.Since(buildStart)
	bvhStats := world.Stats()
	logger.Noticef("BVH built in %s: %d nodes, %d leaves, max depth %d",
		buildTime.Round(time.Microsecond), bvhStats.TotalNodes, bvhStats.LeafNodes, bvhStats.MaxDepth)

	r := renderer.NewRenderer(
		world,
		renderer.NewCamera(sc.CameraConfig),
		integrator.NewPathTracer(config.MaxDepth),
		config,
	)
	r.SetProgressFunc(renderer.NewETAProgress(os.Stderr))

	fb, stats := r.Render()
	fmt.Fprintln(os.Stderr) // finish the transient progress line
	logger.Noticef("rendered in %.1fs", stats.RenderTime.Seconds())

	outPath := ctx.String("out")
	writeStart := time.Now()
	if err := writeImage(fb, outPath); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	writeTime := time.Since(writeStart)
	logger.Noticef("file written: %s", outPath)

	displayRenderStats(stats, buildTime, writeTime)
	return nil
}

// writeImage serializes the framebuffer, choosing the encoder from the
// file extension. Output I/O is the only fatal failure in the pipeline.
func writeImage(fb *renderer.Framebuffer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".png") {
		return fb.WritePNG(file)
	}
	return fb.WritePPM(file)
}

func displayRenderStats(stats renderer.RenderStats, buildTime, writeTime time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Resolution", "Samples/px", "Workers", "BVH build", "Render", "Write"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.TotalSamples/stats.TotalPixels),
		fmt.Sprintf("%d", stats.Workers),
		buildTime.Round(time.Millisecond).String(),
		stats.RenderTime.Round(time.Millisecond).String(),
		writeTime.Round(time.Millisecond).String(),
	})
	table.SetFooter([]string{"", "", "", "", "Msamples/s",
		fmt.Sprintf("%.2f", stats.SamplesPerSecond()/1e6)})
	table.Render()

	logger.Noticef("render statistics\n%s", buf.String())
}
