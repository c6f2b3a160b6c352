package gen

import (
	"fmt"
	"sort"

	"life-sim/internal/core"
)

// DefaultPreset names the preset used when no expressions are configured.
const DefaultPreset = "random"

const randomAlive = "step(0.2, random(vec2(x, y)))"

func init() {
	core.RegisterPreset(core.Preset{
		Name:        DefaultPreset,
		Description: "roughly three quarters of cells alive on each colour channel",
		Channels:    [core.Channels]string{randomAlive, randomAlive, randomAlive, "0.0"},
	})
	core.RegisterPreset(core.Preset{
		Name:        "sparse",
		Description: "roughly a quarter of cells alive on the red channel only",
		Channels:    [core.Channels]string{"1.0 - step(0.2, random(vec2(x, y)))", "0.0", "0.0", "0.0"},
	})
	core.RegisterPreset(core.Preset{
		Name:        "disc",
		Description: "random fill inside a centred disc, empty outside",
		Channels: [core.Channels]string{
			"step(length(vec2(x, y)), 0.5) * " + randomAlive,
			"step(length(vec2(x, y)), 0.5) * step(0.5, random(vec2(y, x)))",
			"0.0",
			"0.0",
		},
	})
	core.RegisterPreset(core.Preset{
		Name:        "blank",
		Description: "empty grid, paint with the pointer",
	})
}

// FromPreset compiles the named preset hashing through off. The default
// preset short-circuits to Default so the hot path avoids the expression VM.
func FromPreset(name string, off Offset) (Funcs, error) {
	if name == "" || name == DefaultPreset {
		return Default(off), nil
	}
	p, ok := core.Presets()[name]
	if !ok {
		return Funcs{}, fmt.Errorf("unknown generator preset %q (have %v)", name, PresetNames())
	}
	return CompileAll(p.Channels[:], off)
}

// PresetNames lists registered presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(core.Presets()))
	for name := range core.Presets() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
