// Package splat applies localized additive edits ("splats") to a grid.
package splat

import (
	"math"

	"life-sim/internal/compute"
	"life-sim/internal/core"
)

// Splat describes one perturbation. Center is in grid-fraction coordinates;
// Radius scales the falloff in squared pixel units and must be positive.
type Splat struct {
	Change core.Cell
	Center core.Point
	Radius float64
}

// Weight returns the falloff factor exp(-(dx²+dy²)/radius) for a pixel offset.
func Weight(dx, dy, radius float64) float64 {
	return math.Exp(-(dx*dx + dy*dy) / radius)
}

// Apply writes src + change*Weight into dst for every cell. Results are not
// clamped; repeated splats may accumulate beyond [0, 1]. The caller swaps the
// buffer afterwards.
func Apply(d *compute.Dispatcher, src, dst *core.Grid, s Splat) {
	w, h := src.W, src.H
	fw, fh := float64(w), float64(h)
	in, out := src.Cells(), dst.Cells()
	d.Run(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			dy := (s.Center.Y - (float64(y)+0.5)/fh) * fh
			for x := 0; x < w; x++ {
				dx := (s.Center.X - (float64(x)+0.5)/fw) * fw
				k := float32(Weight(dx, dy, s.Radius))
				c := in[y*w+x]
				for ch := range c {
					c[ch] += s.Change[ch] * k
				}
				out[y*w+x] = c
			}
		}
	})
}
