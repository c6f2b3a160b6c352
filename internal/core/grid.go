package core

// Channels is the number of independent planes carried by every cell.
const Channels = 4

// Cell holds the channel values of one grid position. Values are nominally in
// [0, 1] but operators are free to push them outside that range.
type Cell [Channels]float32

// Grid stores a 2D array of cells in row-major order. Row 0 is the bottom row,
// matching grid-fraction coordinates whose y axis grows upward.
type Grid struct {
	W, H int
	data []Cell
}

// NewGrid allocates a zeroed grid. Dimensions are not validated here; use
// NewGridBuffer for checked allocation.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, data: make([]Cell, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []Cell { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// At returns the cell at (x, y). Coordinates must be in range.
func (g *Grid) At(x, y int) Cell { return g.data[y*g.W+x] }

// Set stores c at (x, y). Coordinates must be in range.
func (g *Grid) Set(x, y int, c Cell) { g.data[y*g.W+x] = c }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Clamp moves out-of-range coordinates onto the nearest edge cell.
func (g *Grid) Clamp(x, y int) (int, int) {
	return min(max(x, 0), g.W-1), min(max(y, 0), g.H-1)
}

// Sample reads (x, y) and resolves out-of-range coordinates with the policy.
func (g *Grid) Sample(x, y int, edge EdgePolicy) Cell {
	if x >= 0 && x < g.W && y >= 0 && y < g.H {
		return g.data[y*g.W+x]
	}
	switch edge {
	case EdgeWrap:
		x, y = g.Wrap(x, y)
	case EdgeZero:
		return Cell{}
	default:
		x, y = g.Clamp(x, y)
	}
	return g.data[y*g.W+x]
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	clear(g.data)
}

// CopyFrom overwrites g with the contents of src. Both grids must share dimensions.
func (g *Grid) CopyFrom(src *Grid) {
	copy(g.data, src.data)
}

// Equal reports whether both grids have the same shape and identical values.
func (g *Grid) Equal(o *Grid) bool {
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i := range g.data {
		if g.data[i] != o.data[i] {
			return false
		}
	}
	return true
}
