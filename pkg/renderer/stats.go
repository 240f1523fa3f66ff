package renderer

import (
	"fmt"
	"io"
	"time"
)

// RenderStats summarizes a completed render pass
type RenderStats struct {
	Width        int
	Height       int
	TotalPixels  int
	TotalSamples int
	Rows         int
	Workers      int
	RenderTime   time.Duration
}

// SamplesPerSecond returns the overall sampling throughput
func (s RenderStats) SamplesPerSecond() float64 {
	secs := s.RenderTime.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / secs
}

// NewETAProgress returns a ProgressFunc that rewrites a transient
// remaining-rows/ETA line on the given diagnostic stream, in-place via
// carriage return. The ETA extrapolates the average row time so far.
func NewETAProgress(out io.Writer) ProgressFunc {
	start := time.Now()
	return func(completedRows, totalRows int) {
		elapsed := time.Since(start)
		avgPerRow := elapsed / time.Duration(completedRows)
		remaining := totalRows - completedRows
		eta := avgPerRow * time.Duration(remaining)
		fmt.Fprintf(out, "\rRemaining: %4d | ETA: %4ds", remaining, int(eta.Seconds()))
	}
}
