package life

import (
	"fmt"
	"strconv"
	"strings"

	"life-sim/internal/core"
	"life-sim/internal/gen"
	"life-sim/internal/rule"
)

// Config holds the construction-time options of an Engine.
type Config struct {
	Width  int
	Height int

	// Generator holds per-channel expressions. When every entry is empty
	// the Preset is used instead.
	Generator [core.Channels]string
	Preset    string

	Threshold bool
	Edge      core.EdgePolicy
	Neighbors rule.Strategy
	Workers   int
	Seed      int64

	SplatChange core.Cell
	SplatRadius float64
}

// DefaultConfig returns the standard configuration. Drivers replace the
// dimensions with their viewport size.
func DefaultConfig() Config {
	return Config{
		Width:       256,
		Height:      256,
		Preset:      gen.DefaultPreset,
		Edge:        core.EdgeClamp,
		Neighbors:   rule.Stencil,
		SplatChange: core.Cell{10, 0, 0, 0},
		SplatRadius: 4,
	}
}

var channelKeys = [core.Channels]string{"r", "g", "b", "a"}

// FromMap populates a Config from a string map (flag-style key/value
// pairs). Unparseable values are ignored and keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width, c.Height = parsed, parsed
		}
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	for ch, key := range channelKeys {
		if v, ok := cfg[key]; ok {
			c.Generator[ch] = v
		}
	}
	if v, ok := cfg["preset"]; ok && v != "" {
		c.Preset = v
	}
	if v, ok := cfg["threshold"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Threshold = parsed
		}
	}
	if v, ok := cfg["edge"]; ok {
		if parsed, err := core.ParseEdgePolicy(v); err == nil {
			c.Edge = parsed
		}
	}
	if v, ok := cfg["neighbors"]; ok {
		if parsed, err := rule.ParseStrategy(v); err == nil {
			c.Neighbors = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["splat_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.SplatRadius = parsed
		}
	}
	for ch, key := range channelKeys {
		if v, ok := cfg["splat_"+key]; ok {
			if parsed, err := strconv.ParseFloat(v, 32); err == nil {
				c.SplatChange[ch] = float32(parsed)
			}
		}
	}
	return c
}

// ParseKV splits "key=value" pairs into a map suitable for FromMap.
func ParseKV(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed setting %q, want key=value", kv)
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out, nil
}

// Validate checks the dimensions before any allocation.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return &core.AllocationError{W: c.Width, H: c.Height, Reason: "dimensions must be positive"}
	}
	return nil
}

func (c Config) hasExpressions() bool {
	for _, src := range c.Generator {
		if strings.TrimSpace(src) != "" {
			return true
		}
	}
	return false
}

// generator resolves the configured expressions or preset into functions
// hashing through off.
func (c Config) generator(off gen.Offset) (gen.Funcs, error) {
	if c.hasExpressions() {
		return gen.CompileAll(c.Generator[:], off)
	}
	return gen.FromPreset(c.Preset, off)
}
