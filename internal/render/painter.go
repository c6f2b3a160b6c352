//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"life-sim/internal/core"
)

// GridPainter uploads a rendered frame into a single image and draws it.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Present asks src to draw its current state, uploads it and draws the image
// onto dst scaled by scale.
func (gp *GridPainter) Present(dst *ebiten.Image, src core.Drawable, scale int) {
	src.Draw(gp.buf)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
