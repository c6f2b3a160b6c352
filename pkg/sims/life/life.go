// Package life is the simulation engine: a double-buffered 4-channel grid
// stepped by the generalised Game of Life rule, perturbed by pointer splats
// and rendered in passthrough or threshold mode.
package life

import (
	"fmt"
	"strconv"

	"life-sim/internal/compute"
	"life-sim/internal/core"
	"life-sim/internal/gen"
	"life-sim/internal/render"
	"life-sim/internal/rule"
	"life-sim/internal/splat"
)

// Engine owns the grid buffer, configuration and compute backend of one
// simulation instance. Transitions run to completion, swap included, before
// the next begins; Engine is meant to be driven from a single goroutine.
type Engine struct {
	cfg Config

	disp     *compute.Dispatcher
	buf      *core.GridBuffer
	funcs    gen.Funcs
	hashSeed int64
	rule     *rule.Evaluator
	renderer *render.Renderer

	generation int
	splats     int
	seed       int64
}

var _ core.Sim = (*Engine)(nil)

// New validates cfg, compiles the generator, allocates the grids and
// populates the first generation.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	funcs, err := cfg.generator(gen.OffsetFromSeed(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	disp := compute.New(cfg.Workers)
	buf, err := disp.Allocate(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		disp:     disp,
		buf:      buf,
		funcs:    funcs,
		hashSeed: cfg.Seed,
		rule:     rule.New(cfg.Edge, cfg.Neighbors),
		renderer: render.New(cfg.Threshold),
	}
	core.Logger().Info("allocated simulation",
		"w", cfg.Width, "h", cfg.Height,
		"workers", disp.Workers(),
		"edge", cfg.Edge.String(),
		"neighbors", cfg.Neighbors.String(),
		"threshold", cfg.Threshold)
	e.Reset(cfg.Seed)
	return e, nil
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "life" }

// Size returns the grid dimensions.
func (e *Engine) Size() core.Size { return e.buf.Size() }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Read exposes the grid holding the current generation.
func (e *Engine) Read() *core.Grid { return e.buf.Read() }

// Buffer exposes the underlying double buffer.
func (e *Engine) Buffer() *core.GridBuffer { return e.buf }

// Generation counts rule steps since the last reset.
func (e *Engine) Generation() int { return e.generation }

// Reset regenerates the current grid. Seed 0 hashes on the default lattice;
// other seeds shift the hash lattice for a different but reproducible
// pattern. Positions seen by the generator never move.
func (e *Engine) Reset(seed int64) {
	e.seed = seed
	if seed != e.hashSeed {
		funcs, err := e.cfg.generator(gen.OffsetFromSeed(seed))
		if err != nil {
			core.Logger().Error("reseeding generator", "seed", seed, "err", err)
		} else {
			e.funcs, e.hashSeed = funcs, seed
		}
	}
	gen.Generate(e.disp, e.buf.Read(), e.funcs)
	e.generation = 0
	e.splats = 0
	core.Logger().Debug("reset simulation", "seed", seed)
}

// Step advances the simulation by one generation.
func (e *Engine) Step() {
	e.rule.Step(e.disp, e.buf.Read(), e.buf.Write())
	e.buf.Swap()
	e.generation++
}

// Perturb applies one splat and publishes it. A non-positive radius is a
// caller error; it is logged and applied as-is.
func (e *Engine) Perturb(s splat.Splat) {
	if !(s.Radius > 0) {
		core.Logger().Warn("splat radius must be positive", "radius", s.Radius)
	}
	splat.Apply(e.disp, e.buf.Read(), e.buf.Write(), s)
	e.buf.Swap()
	e.splats++
}

// Pointer turns a primary-button drag into a splat at the pointer position.
// Other buttons, and plain moves, are ignored.
func (e *Engine) Pointer(ev core.PointerEvent) {
	if !ev.Dragging || ev.Buttons&core.ButtonPrimary == 0 {
		return
	}
	e.Perturb(splat.Splat{
		Change: e.cfg.SplatChange,
		Center: core.Point{X: ev.X, Y: 1 - ev.Y},
		Radius: e.cfg.SplatRadius,
	})
}

// Draw renders the current generation into dst as RGBA, top row first.
func (e *Engine) Draw(dst []byte) {
	e.renderer.Render(e.disp, e.buf.Read(), dst)
}

// Population counts cells whose channel value is at least 0.5. Channels
// outside 0..3 have no population.
func (e *Engine) Population(ch int) int {
	if ch < 0 || ch >= core.Channels {
		return 0
	}
	n := 0
	for _, c := range e.buf.Read().Cells() {
		if c[ch] >= 0.5 {
			n++
		}
	}
	return n
}

// Parameters reports the engine configuration and live counters.
func (e *Engine) Parameters() core.ParameterSnapshot {
	size := e.Size()
	c := e.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", size.W),
				intParam("h", "Height", size.H),
				{Key: "edge", Label: "Edges", Type: core.ParamTypeString, Value: c.Edge.String()},
				{Key: "neighbors", Label: "Neighbours", Type: core.ParamTypeString, Value: c.Neighbors.String()},
				boolParam("threshold", "Threshold display", c.Threshold),
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				intParam("generation", "Generation", e.generation),
				intParam("splats", "Splats", e.splats),
				{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(e.seed, 10)},
				intParam("pop_r", "Live red", e.Population(0)),
				intParam("pop_g", "Live green", e.Population(1)),
				intParam("pop_b", "Live blue", e.Population(2)),
			},
		},
		{
			Name: "Splat",
			Params: []core.Parameter{
				floatParam("splat_radius", "Splat radius", c.SplatRadius),
				floatParam("splat_r", "Splat red", float64(c.SplatChange[0])),
				floatParam("splat_g", "Splat green", float64(c.SplatChange[1])),
				floatParam("splat_b", "Splat blue", float64(c.SplatChange[2])),
			},
		},
	}}
}

// ParameterControls lists the splat settings adjustable at run time.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "splat_radius", Label: "Splat radius", Step: 1, Min: 1, Max: 400, HasMin: true, HasMax: true},
		{Key: "splat_r", Label: "Splat red", Step: 1, Min: -20, Max: 20, HasMin: true, HasMax: true},
		{Key: "splat_g", Label: "Splat green", Step: 1, Min: -20, Max: 20, HasMin: true, HasMax: true},
		{Key: "splat_b", Label: "Splat blue", Step: 1, Min: -20, Max: 20, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a splat setting. The radius must stay positive.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "splat_radius":
		if !(value > 0) {
			return false
		}
		e.cfg.SplatRadius = value
	case "splat_r":
		e.cfg.SplatChange[0] = float32(value)
	case "splat_g":
		e.cfg.SplatChange[1] = float32(value)
	case "splat_b":
		e.cfg.SplatChange[2] = float32(value)
	case "splat_a":
		e.cfg.SplatChange[3] = float32(value)
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}
