// Command life-bench steps every preset under each edge policy with both
// neighbour-sum strategies, reporting throughput and final population and
// checking that the two strategies agree cell for cell.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"life-sim/internal/core"
	"life-sim/internal/gen"
	"life-sim/internal/rule"
	"life-sim/pkg/sims/life"
)

type scenario struct {
	preset   string
	edge     core.EdgePolicy
	strategy rule.Strategy
}

func (s scenario) String() string {
	return fmt.Sprintf("preset=%s edge=%s neighbors=%s", s.preset, s.edge, s.strategy)
}

type scenarioResult struct {
	scenario   scenario
	population int
	peak       int
	elapsed    time.Duration
	final      *core.Grid
	err        error
}

func main() {
	steps := flag.Int("steps", 200, "generations to simulate per scenario")
	size := flag.Int("size", 256, "square grid size")
	workers := flag.Int("workers", runtime.NumCPU(), "number of scenarios run concurrently")
	engineWorkers := flag.Int("engine-workers", 1, "kernel workers per engine")
	seed := flag.Int64("seed", 0, "seed for the initial pattern")
	flag.Parse()

	var scenarios []scenario
	for _, preset := range gen.PresetNames() {
		for _, edge := range []core.EdgePolicy{core.EdgeClamp, core.EdgeWrap, core.EdgeZero} {
			for _, strategy := range []rule.Strategy{rule.Stencil, rule.FFT} {
				scenarios = append(scenarios, scenario{preset: preset, edge: edge, strategy: strategy})
			}
		}
	}

	base := life.DefaultConfig()
	base.Width, base.Height = *size, *size
	base.Workers = *engineWorkers
	base.Seed = *seed

	fmt.Printf("Running %d scenarios (%d workers, %d steps, %dx%d)\n", len(scenarios), *workers, *steps, *size, *size)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(base, sc, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range scenarios {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	failed := false
	for res := range results {
		if res.err != nil {
			fmt.Printf("%s: %v\n", res.scenario, res.err)
			failed = true
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].scenario, all[j].scenario
		if a.preset != b.preset {
			return a.preset < b.preset
		}
		if a.edge != b.edge {
			return a.edge < b.edge
		}
		return a.strategy < b.strategy
	})

	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for _, res := range all {
		rate := float64(*steps) / res.elapsed.Seconds()
		fmt.Printf("%-48s pop=%-7d peak=%-7d %8.1f gen/s\n", res.scenario, res.population, res.peak, rate)
	}

	for _, m := range mismatches(all) {
		fmt.Printf("strategies disagree: %s\n", m)
		failed = true
	}
	if failed {
		os.Exit(1)
	}
}

func runScenario(base life.Config, sc scenario, steps int) scenarioResult {
	cfg := base
	cfg.Preset = sc.preset
	cfg.Edge = sc.edge
	cfg.Neighbors = sc.strategy

	res := scenarioResult{scenario: sc}
	engine, err := life.New(cfg)
	if err != nil {
		res.err = err
		return res
	}

	start := time.Now()
	for step := 0; step < steps; step++ {
		engine.Step()
		res.peak = max(res.peak, engine.Population(0))
	}
	res.elapsed = time.Since(start)
	res.population = engine.Population(0)
	res.final = core.NewGrid(cfg.Width, cfg.Height)
	res.final.CopyFrom(engine.Read())
	return res
}

// mismatches pairs stencil and FFT runs of the same preset and edge policy
// and describes every pair whose final grids differ.
func mismatches(results []scenarioResult) []string {
	type key struct {
		preset string
		edge   core.EdgePolicy
	}
	stencil := map[key]*core.Grid{}
	for _, res := range results {
		if res.scenario.strategy == rule.Stencil {
			stencil[key{res.scenario.preset, res.scenario.edge}] = res.final
		}
	}
	var out []string
	for _, res := range results {
		if res.scenario.strategy != rule.FFT {
			continue
		}
		ref, ok := stencil[key{res.scenario.preset, res.scenario.edge}]
		if !ok || !ref.Equal(res.final) {
			out = append(out, res.scenario.String())
		}
	}
	return out
}
