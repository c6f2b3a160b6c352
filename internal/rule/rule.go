// Package rule evaluates one Game of Life generation per channel. Each of the
// four channels runs its own automaton; channels never interact.
package rule

import (
	"fmt"

	"life-sim/internal/compute"
	"life-sim/internal/core"
)

// Neighbour-sum windows. A live cell survives when 1.9 <= sum < 3.1, a dead
// cell is born when 2.9 <= sum < 3.1. On binary grids these are exactly
// "2 or 3" and "exactly 3".
const (
	surviveMin = 1.9
	birthMin   = 2.9
	windowMax  = 3.1
)

// Next returns the strictly binary successor of a channel value given the sum
// of its eight neighbours. A centre value of 0.5 or more counts as alive.
func Next(center, sum float32) float32 {
	if center >= 0.5 {
		if sum >= surviveMin && sum < windowMax {
			return 1
		}
		return 0
	}
	if sum >= birthMin && sum < windowMax {
		return 1
	}
	return 0
}

// Strategy selects how neighbour sums are computed.
type Strategy uint8

const (
	// Stencil reads the eight neighbours of every cell directly.
	Stencil Strategy = iota
	// FFT convolves each channel with the Moore kernel in the frequency domain.
	FFT
)

func (s Strategy) String() string {
	if s == FFT {
		return "fft"
	}
	return "stencil"
}

// ParseStrategy converts a strategy name into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "stencil", "direct", "":
		return Stencil, nil
	case "fft":
		return FFT, nil
	}
	return Stencil, fmt.Errorf("unknown neighbour strategy %q", s)
}

// Evaluator computes generation transitions. It is not safe for concurrent
// Step calls; the parallelism lives inside a single Step.
type Evaluator struct {
	edge     core.EdgePolicy
	strategy Strategy

	fft  *fftSummer
	sums []core.Cell
}

// New returns an Evaluator with the given edge policy and neighbour strategy.
func New(edge core.EdgePolicy, strategy Strategy) *Evaluator {
	return &Evaluator{edge: edge, strategy: strategy}
}

// Edge reports the edge policy.
func (e *Evaluator) Edge() core.EdgePolicy { return e.edge }

// Strategy reports the neighbour-sum strategy.
func (e *Evaluator) Strategy() Strategy { return e.strategy }

// Step reads src and writes the next generation into dst. src and dst must
// be distinct grids of the same shape; the caller swaps them afterwards.
func (e *Evaluator) Step(d *compute.Dispatcher, src, dst *core.Grid) {
	if e.strategy == FFT {
		e.stepFFT(d, src, dst)
		return
	}
	e.stepStencil(d, src, dst)
}

func (e *Evaluator) stepStencil(d *compute.Dispatcher, src, dst *core.Grid) {
	w, h := src.W, src.H
	in, out := src.Cells(), dst.Cells()
	d.Run(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			interiorRow := y > 0 && y < h-1
			for x := 0; x < w; x++ {
				var sum core.Cell
				if interiorRow && x > 0 && x < w-1 {
					up, row, down := (y+1)*w+x, y*w+x, (y-1)*w+x
					addNeighbours(&sum, in[up-1], in[up], in[up+1], in[row-1], in[row+1], in[down-1], in[down], in[down+1])
				} else {
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							if dx == 0 && dy == 0 {
								continue
							}
							n := src.Sample(x+dx, y+dy, e.edge)
							for ch := range sum {
								sum[ch] += n[ch]
							}
						}
					}
				}
				out[y*w+x] = apply(in[y*w+x], sum)
			}
		}
	})
}

func addNeighbours(sum *core.Cell, ns ...core.Cell) {
	for _, n := range ns {
		for ch := range sum {
			sum[ch] += n[ch]
		}
	}
}

func apply(center, sum core.Cell) core.Cell {
	var next core.Cell
	for ch := range next {
		next[ch] = Next(center[ch], sum[ch])
	}
	return next
}

func (e *Evaluator) stepFFT(d *compute.Dispatcher, src, dst *core.Grid) {
	w, h := src.W, src.H
	if e.fft == nil || e.fft.w != w || e.fft.h != h {
		e.fft = newFFTSummer(w, h)
		e.sums = make([]core.Cell, w*h)
		core.Logger().Debug("prepared fft neighbour plan", "w", w, "h", h)
	}
	e.fft.sum(d, src, e.edge, e.sums)
	in, out, sums := src.Cells(), dst.Cells(), e.sums
	d.Run(len(in), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = apply(in[i], sums[i])
		}
	})
}
