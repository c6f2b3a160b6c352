package render

import "life-sim/internal/core"

// toByte maps a channel value onto 0..255, clamping outside [0, 1].
func toByte(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// fillRGBA converts one row of cells into opaque RGBA pixels in buf. Channel
// 3 is carried in the simulation but the display surface is always opaque.
func fillRGBA(buf []byte, cells []core.Cell, color func(core.Cell) core.Cell) {
	for i, c := range cells {
		c = color(c)
		base := i * 4
		buf[base+0] = toByte(c[0])
		buf[base+1] = toByte(c[1])
		buf[base+2] = toByte(c[2])
		buf[base+3] = 255
	}
}
