//go:build ebiten

package ui

import (
	"image/color"
	"math"
	"strconv"

	"life-sim/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws the splat brush footprint under the cursor. Key B toggles it.
type Overlay struct {
	sim    core.Sim
	scale  int
	show   bool
	radius float64
	pixel  *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale, show: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles visibility and picks up the current splat radius.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.show = !o.show
	}
	o.radius = 0
	provider, ok := o.sim.(parameterProvider)
	if !ok {
		return
	}
	if p, ok := provider.Parameters().Lookup("splat_radius"); ok {
		if v, err := strconv.ParseFloat(p.Value, 64); err == nil {
			o.radius = v
		}
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	r := brushRadius(o.radius) * float64(o.scale)
	if r <= 0 {
		return
	}
	size := o.sim.Size()
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= size.W*o.scale || my >= size.H*o.scale {
		return
	}
	col := color.RGBA{R: 200, G: 200, B: 255, A: 160}
	segments := max(16, int(r))
	cx, cy := float64(mx)+0.5, float64(my)+0.5
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)
		o.drawLine(screen, cx+r*math.Cos(a0), cy+r*math.Sin(a0), cx+r*math.Cos(a1), cy+r*math.Sin(a1), 1, col)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
