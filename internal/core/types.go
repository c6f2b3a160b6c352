package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Point is a position in grid-fraction coordinates: both axes span [0, 1]
// across the grid and y grows upward.
type Point struct {
	X, Y float64
}

// ButtonMask records which pointer buttons are held.
type ButtonMask uint8

const (
	ButtonPrimary ButtonMask = 1 << iota
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is a pointer-move notification from a frame driver. X and Y
// are normalised to [0, 1] over the display surface with y growing downward,
// the way window systems report cursor positions.
type PointerEvent struct {
	X, Y     float64
	Buttons  ButtonMask
	Dragging bool
}

// Steppable advances a simulation by one generation.
type Steppable interface {
	Step()
}

// Drawable renders the current generation into an RGBA buffer of
// 4*W*H bytes, top row first.
type Drawable interface {
	Draw(dst []byte)
}

// PointerObserver receives pointer-move events and decides whether they
// perturb the simulation.
type PointerObserver interface {
	Pointer(ev PointerEvent)
}

// Sim defines the contract a frame driver needs from a simulation instance.
type Sim interface {
	Steppable
	Drawable
	PointerObserver
	Name() string
	Size() Size
	Reset(seed int64)
}

// Preset is a named set of per-channel generator expressions.
type Preset struct {
	Name        string
	Description string
	Channels    [Channels]string
}

var presets = map[string]Preset{}

// RegisterPreset adds a generator preset under its name.
func RegisterPreset(p Preset) {
	if p.Name == "" {
		return
	}
	presets[p.Name] = p
}

// Presets exposes the registry of available generator presets.
func Presets() map[string]Preset {
	return presets
}
