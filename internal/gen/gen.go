// Package gen synthesizes initial grids from per-channel scalar functions of
// position. Every cell is evaluated independently, so generation is safe to
// run in parallel.
package gen

import (
	"math"

	"life-sim/internal/compute"
	"life-sim/internal/core"
	rng "life-sim/pkg/core"
)

// ChannelFunc maps a normalised position, both axes in [-1, 1], to a channel value.
type ChannelFunc func(x, y float64) float64

// Funcs holds one generator per channel. A nil entry produces zero.
type Funcs [core.Channels]ChannelFunc

// Const returns a ChannelFunc that ignores position.
func Const(v float64) ChannelFunc {
	return func(float64, float64) float64 { return v }
}

// Default returns the standard initial state: channels 0-2 independently
// alive wherever the hash is at least 0.2, channel 3 constant zero. The zero
// Offset hashes with Random directly.
func Default(off Offset) Funcs {
	alive := func(x, y float64) float64 { return Step(0.2, off.Random(x, y)) }
	return Funcs{alive, alive, alive, Const(0)}
}

// hashKey is the fixed direction the position is projected onto before hashing.
var hashKey = [2]float64{23.14069263277926, 2.665144142690225}

// Random is a deterministic position hash with values in [0, 1):
// fract(cos(mod(12345678, 256 * dot((x, y), K)))).
func Random(x, y float64) float64 {
	return Fract(math.Cos(Mod(12345678, 256*(x*hashKey[0]+y*hashKey[1]))))
}

// Step returns 0 when v < edge and 1 otherwise. NaN inputs yield 1.
func Step(edge, v float64) float64 {
	if v < edge {
		return 0
	}
	return 1
}

// Fract returns v - floor(v).
func Fract(v float64) float64 {
	return v - math.Floor(v)
}

// Mod returns a - b*floor(a/b); the result takes the sign of b.
func Mod(a, b float64) float64 {
	return a - b*math.Floor(a/b)
}

// Offset shifts the lattice the position hash is sampled on. It never moves
// the x, y seen by channel functions. The zero Offset reproduces the default
// pattern exactly.
type Offset struct {
	X, Y float64
}

// Random hashes (x, y) on the shifted lattice.
func (o Offset) Random(x, y float64) float64 {
	return Random(x+o.X, y+o.Y)
}

// OffsetFromSeed derives a hash lattice shift from a reset seed. Seed 0 maps to
// the zero Offset.
func OffsetFromSeed(seed int64) Offset {
	if seed == 0 {
		return Offset{}
	}
	r := rng.NewRNG(seed)
	return Offset{X: r.Span(1), Y: r.Span(1)}
}

// Position maps cell (i, j) of a w*h grid to normalised coordinates at the
// cell centre.
func Position(i, j, w, h int) (float64, float64) {
	x := 2*(float64(i)+0.5)/float64(w) - 1
	y := 2*(float64(j)+0.5)/float64(h) - 1
	return x, y
}

// Generate evaluates funcs once per cell of dst at the cell's normalised
// position.
func Generate(d *compute.Dispatcher, dst *core.Grid, funcs Funcs) {
	w, h := dst.W, dst.H
	cells := dst.Cells()
	d.Each(w, h, func(i, j int) {
		x, y := Position(i, j, w, h)
		var c core.Cell
		for ch, f := range funcs {
			if f != nil {
				c[ch] = float32(f(x, y))
			}
		}
		cells[j*w+i] = c
	})
}
