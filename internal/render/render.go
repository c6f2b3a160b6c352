// Package render turns simulation grids into display colours. Rendering only
// reads simulation state; it never writes back into it.
package render

import (
	"life-sim/internal/compute"
	"life-sim/internal/core"
)

// Renderer samples a grid once per output pixel in passthrough or threshold
// mode. The mode is fixed at construction.
type Renderer struct {
	threshold bool
}

// New returns a Renderer. With threshold set every channel is binarised at 0.5.
func New(threshold bool) *Renderer {
	return &Renderer{threshold: threshold}
}

// Threshold reports whether the renderer binarises its output.
func (r *Renderer) Threshold() bool { return r.threshold }

// Color returns the display colour for one cell.
func (r *Renderer) Color(c core.Cell) core.Cell {
	if !r.threshold {
		return c
	}
	var out core.Cell
	for ch, v := range c {
		if v >= 0.5 {
			out[ch] = 1
		}
	}
	return out
}

// Shade writes the display colour of every cell of src into dst.
func (r *Renderer) Shade(d *compute.Dispatcher, src, dst *core.Grid) {
	in, out := src.Cells(), dst.Cells()
	d.Run(len(in), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = r.Color(in[i])
		}
	})
}

// Render packs the display colour of src into buf as RGBA bytes, top row
// first. buf must hold 4*W*H bytes.
func (r *Renderer) Render(d *compute.Dispatcher, src *core.Grid, buf []byte) {
	w, h := src.W, src.H
	if len(buf) < 4*w*h {
		core.Logger().Warn("render buffer too small", "have", len(buf), "want", 4*w*h)
		return
	}
	in := src.Cells()
	d.Run(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			// Grid row 0 is the bottom of the image.
			row := in[y*w : (y+1)*w]
			base := (h - 1 - y) * w * 4
			fillRGBA(buf[base:base+4*w], row, r.Color)
		}
	})
}
