package core

// GridBuffer owns the two generations of a simulation. One grid is read by
// the current transition, the other receives its output; Swap publishes it.
type GridBuffer struct {
	grids [2]*Grid
	read  int
}

// NewGridBuffer allocates two zeroed grids of identical shape. limit bounds
// each axis; a limit of zero or less disables the bound.
func NewGridBuffer(w, h, limit int) (*GridBuffer, error) {
	if w <= 0 || h <= 0 {
		return nil, &AllocationError{W: w, H: h, Limit: limit, Reason: "dimensions must be positive"}
	}
	if limit > 0 && (w > limit || h > limit) {
		return nil, &AllocationError{W: w, H: h, Limit: limit, Reason: "dimensions exceed backend limit"}
	}
	return &GridBuffer{grids: [2]*Grid{NewGrid(w, h), NewGrid(w, h)}}, nil
}

// Size reports the dimensions shared by both grids.
func (b *GridBuffer) Size() Size {
	return Size{W: b.grids[0].W, H: b.grids[0].H}
}

// Read returns the grid holding the current generation.
func (b *GridBuffer) Read() *Grid { return b.grids[b.read] }

// Write returns the grid that the next transition writes into.
func (b *GridBuffer) Write() *Grid { return b.grids[1-b.read] }

// Swap exchanges the read and write roles. Call exactly once per completed
// transition.
func (b *GridBuffer) Swap() { b.read = 1 - b.read }
