package main

// fallbackSize is used when the monitor size is unknown.
const fallbackSize = 256

// viewportGrid derives the default grid size from the monitor size. The grid
// takes half of each monitor axis, divided by the pixel scale, so the window
// and the HUD panel beside it fit on screen.
func viewportGrid(screenW, screenH, scale int) (int, int) {
	scale = max(scale, 1)
	w, h := screenW/(2*scale), screenH/(2*scale)
	if w <= 0 || h <= 0 {
		return fallbackSize, fallbackSize
	}
	return w, h
}
