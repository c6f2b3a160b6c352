//go:build ebiten

package app

import (
	"time"

	"life-sim/internal/core"
	"life-sim/internal/render"
	"life-sim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hudWidth is the width of the parameter panel right of the grid.
const hudWidth = 240

// Game adapts a core simulation to the ebiten.Game interface: Update steps
// the simulation and forwards pointer moves, Draw renders it.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	paused   bool
	tickOnce bool
	seed     int64

	lastX, lastY int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, seed int64, showHUD bool) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, scale),
		scale:   scale,
		seed:    seed,
		lastX:   -1,
		lastY:   -1,
	}
	if showHUD {
		g.hud = ui.NewHUD(sim, hudWidth)
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	if g.hud != nil {
		g.hud.Update(g.gridWidth())
	}
	g.forwardPointer()

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// forwardPointer emits a pointer-move event when the cursor moved over the
// grid since the previous frame. Dragging means any button is held.
func (g *Game) forwardPointer() {
	x, y := ebiten.CursorPosition()
	if x == g.lastX && y == g.lastY {
		return
	}
	g.lastX, g.lastY = x, y
	w, h := g.gridWidth(), g.gridHeight()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	var buttons core.ButtonMask
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		buttons |= core.ButtonPrimary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		buttons |= core.ButtonSecondary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		buttons |= core.ButtonMiddle
	}
	g.sim.Pointer(core.PointerEvent{
		X:        (float64(x) + 0.5) / float64(w),
		Y:        (float64(y) + 0.5) / float64(h),
		Buttons:  buttons,
		Dragging: buttons != 0,
	})
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Present(screen, g.sim, g.scale)
	g.overlay.Draw(screen)
	if g.hud != nil {
		g.hud.Draw(screen, g.gridWidth(), g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.gridWidth()
	if g.hud != nil {
		w += hudWidth
	}
	return w, g.gridHeight()
}

func (g *Game) gridWidth() int  { return g.sim.Size().W * g.scale }
func (g *Game) gridHeight() int { return g.sim.Size().H * g.scale }
