// Package compute is the data-parallel backend that evaluates per-cell
// kernels. A kernel invocation reads only immutable inputs and writes disjoint
// output cells, so bands of rows run concurrently without locking.
package compute

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"life-sim/internal/core"
)

// MaxDimension bounds each grid axis, matching the largest texture side most
// GPU backends accept.
const MaxDimension = 16384

// minBandRows keeps tiny grids from being split into goroutine-sized slivers.
const minBandRows = 8

// Dispatcher runs kernels over row bands on a bounded set of goroutines.
type Dispatcher struct {
	workers int
}

// New returns a Dispatcher using the given number of workers. Zero or a
// negative count selects GOMAXPROCS.
func New(workers int) *Dispatcher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Dispatcher{workers: workers}
}

// Workers returns the concurrency limit.
func (d *Dispatcher) Workers() int { return d.workers }

// Allocate creates a GridBuffer within the backend's dimension limit.
func (d *Dispatcher) Allocate(w, h int) (*core.GridBuffer, error) {
	return core.NewGridBuffer(w, h, MaxDimension)
}

// Run splits [0, n) into contiguous ranges and calls fn for each range
// concurrently. It returns once every range has completed.
func (d *Dispatcher) Run(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	bands := min(d.workers, n/minBandRows)
	if bands <= 1 {
		fn(0, n)
		return
	}
	per := (n + bands - 1) / bands

	var g errgroup.Group
	g.SetLimit(d.workers)
	for lo := 0; lo < n; lo += per {
		hi := min(lo+per, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// RunEach is Run without the minimum band size: every index may land in its
// own goroutine. Use it for a handful of coarse jobs such as per-channel FFTs.
func (d *Dispatcher) RunEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if d.workers == 1 || n == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(d.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// Each invokes kernel once per cell of a w*h grid.
func (d *Dispatcher) Each(w, h int, kernel func(x, y int)) {
	d.Run(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				kernel(x, y)
			}
		}
	})
}
