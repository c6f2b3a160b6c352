package app

import (
	"flag"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"life-sim/internal/core"
	"life-sim/pkg/sims/life"
)

// Config represents the command-line parameters for the drivers.
type Config struct {
	Scale   int
	TPS     int
	Seed    int64
	Size    int
	Verbose bool
	HUD     bool

	// Set collects repeatable key=value engine settings.
	Set settings
}

type settings []string

func (s *settings) String() string { return strings.Join(*s, ",") }

func (s *settings) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 1, TPS: 60, HUD: true}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "generations per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial pattern (0 = default pattern)")
	fs.IntVar(&c.Size, "size", c.Size, "square grid size (0 = fit the viewport)")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "enable debug logging")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the parameter panel")
	fs.Var(&c.Set, "set", "engine setting in key=value form (repeatable), e.g. -set threshold=true -set r='step(0.5, random(vec2(x, y)))'")
}

// Settings returns the collected -set pairs.
func (c *Config) Settings() []string { return c.Set }

// EngineConfig builds the engine configuration from the parsed flags. The
// viewport dimensions apply unless -size or a w/h setting overrides them.
func (c *Config) EngineConfig(viewW, viewH int) (life.Config, error) {
	kv, err := life.ParseKV(c.Settings())
	if err != nil {
		return life.Config{}, err
	}
	values := map[string]string{
		"w":    strconv.Itoa(viewW),
		"h":    strconv.Itoa(viewH),
		"seed": strconv.FormatInt(c.Seed, 10),
	}
	if c.Size > 0 {
		values["w"] = strconv.Itoa(c.Size)
		values["h"] = strconv.Itoa(c.Size)
	}
	for k, v := range kv {
		values[k] = v
	}
	if _, ok := kv["size"]; ok {
		delete(values, "w")
		delete(values, "h")
		for _, key := range []string{"w", "h"} {
			if v, ok := kv[key]; ok {
				values[key] = v
			}
		}
	}
	cfg := life.FromMap(values)
	return cfg, cfg.Validate()
}

// InstallLogger routes the engine logger to w, at debug level with -v.
func (c *Config) InstallLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	core.SetLogger(logger)
	return logger
}
