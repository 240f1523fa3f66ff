package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/tracelight/spheretrace/pkg/core"
)

// Framebuffer stores the averaged linear color per pixel. Row 0 is the
// bottom scanline, matching the camera's t coordinate; the writers emit
// the conventional top-to-bottom order.
type Framebuffer struct {
	Width  int
	Height int
	pixels []core.Vec3
}

// NewFramebuffer creates a zeroed framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Set stores the linear color for pixel (x, y), y counted from the
// bottom scanline
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.pixels[y*fb.Width+x] = c
}

// At returns the linear color for pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.pixels[y*fb.Width+x]
}

// quantize clamps to [0,1], applies the gamma-2 approximation
// (per-channel square root) and truncates 255.99 * value to a byte.
// Clamping first keeps a stray negative channel from turning into NaN.
func quantize(c core.Vec3) (r, g, b uint8) {
	c = c.Clamp(0.0, 1.0).Sqrt()
	return uint8(255.99 * c.X), uint8(255.99 * c.Y), uint8(255.99 * c.Z)
}

// WritePPM serializes the image as ASCII PPM (P3): header, then one
// "R G B" triple per pixel, top scanline first
func (fb *Framebuffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return err
	}

	for y := fb.Height - 1; y >= 0; y-- {
		for x := 0; x < fb.Width; x++ {
			r, g, b := quantize(fb.At(x, y))
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// WritePNG encodes the image as PNG with the same quantization as the
// PPM path
func (fb *Framebuffer) WritePNG(w io.Writer) error {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := quantize(fb.At(x, y))
			img.SetRGBA(x, fb.Height-1-y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	return png.Encode(w, img)
}
