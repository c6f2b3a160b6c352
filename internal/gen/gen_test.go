package gen

import (
	"errors"
	"math"
	"testing"

	"life-sim/internal/compute"
	"life-sim/internal/core"
)

func TestRandomIsDeterministicAndInRange(t *testing.T) {
	for j := 0; j < 64; j++ {
		for i := 0; i < 64; i++ {
			x, y := Position(i, j, 64, 64)
			a, b := Random(x, y), Random(x, y)
			if a != b {
				t.Fatalf("Random(%v,%v) not deterministic: %v vs %v", x, y, a, b)
			}
			if a < 0 || a >= 1 {
				t.Fatalf("Random(%v,%v) = %v, want [0,1)", x, y, a)
			}
		}
	}
}

func TestRandomMatchesFormula(t *testing.T) {
	x, y := 0.25, -0.75
	d := 256 * (x*23.14069263277926 + y*2.665144142690225)
	m := 12345678 - d*math.Floor(12345678/d)
	c := math.Cos(m)
	want := c - math.Floor(c)
	if got := Random(x, y); got != want {
		t.Fatalf("Random(%v,%v) = %v, want %v", x, y, got, want)
	}
}

func TestStepThreshold(t *testing.T) {
	cases := []struct {
		edge, v, want float64
	}{
		{0.2, 0.19999, 0},
		{0.2, 0.2, 1},
		{0.2, 0.9, 1},
		{0.2, math.NaN(), 1},
	}
	for _, tc := range cases {
		if got := Step(tc.edge, tc.v); got != tc.want {
			t.Errorf("Step(%v,%v) = %v, want %v", tc.edge, tc.v, got, tc.want)
		}
	}
}

func TestModFollowsDivisorSign(t *testing.T) {
	if got := Mod(7, 3); got != 1 {
		t.Errorf("Mod(7,3) = %v, want 1", got)
	}
	if got := Mod(7, -3); got != -2 {
		t.Errorf("Mod(7,-3) = %v, want -2", got)
	}
	if got := Fract(-0.25); got != 0.75 {
		t.Errorf("Fract(-0.25) = %v, want 0.75", got)
	}
}

func TestDefaultDensity(t *testing.T) {
	const w, h = 256, 256
	g := core.NewGrid(w, h)
	Generate(compute.New(0), g, Default(Offset{}))

	var alive [core.Channels]int
	for _, c := range g.Cells() {
		for ch, v := range c {
			if v != 0 && v != 1 {
				t.Fatalf("channel %d holds non-binary value %v", ch, v)
			}
			if v == 1 {
				alive[ch]++
			}
		}
	}
	for ch := 0; ch < 3; ch++ {
		frac := float64(alive[ch]) / float64(w*h)
		if frac < 0.6 || frac > 0.9 {
			t.Errorf("channel %d alive fraction = %.3f, want mostly alive", ch, frac)
		}
	}
	if alive[3] != 0 {
		t.Errorf("channel 3 alive count = %d, want 0", alive[3])
	}
}

func TestGenerateIndependentOfWorkers(t *testing.T) {
	a := core.NewGrid(97, 61)
	b := core.NewGrid(97, 61)
	Generate(compute.New(1), a, Default(Offset{}))
	Generate(compute.New(8), b, Default(Offset{}))
	if !a.Equal(b) {
		t.Fatal("generation depends on evaluation order")
	}
}

func TestGeneratePositionMapping(t *testing.T) {
	g := core.NewGrid(4, 2)
	funcs := Funcs{
		func(x, y float64) float64 { return x },
		func(x, y float64) float64 { return y },
	}
	Generate(compute.New(1), g, funcs)
	if got := g.At(0, 0); got[0] != -0.75 || got[1] != -0.5 {
		t.Fatalf("cell (0,0) = %v, want x=-0.75 y=-0.5", got)
	}
	if got := g.At(3, 1); got[0] != 0.75 || got[1] != 0.5 {
		t.Fatalf("cell (3,1) = %v, want x=0.75 y=0.5", got)
	}
}

func TestOffsetFromSeed(t *testing.T) {
	if off := OffsetFromSeed(0); off != (Offset{}) {
		t.Fatalf("OffsetFromSeed(0) = %+v, want zero", off)
	}
	if OffsetFromSeed(5) != OffsetFromSeed(5) {
		t.Fatal("OffsetFromSeed not deterministic")
	}
	if OffsetFromSeed(5) == OffsetFromSeed(6) {
		t.Fatal("different seeds gave identical offsets")
	}
}

func TestCompiledDefaultMatchesClosure(t *testing.T) {
	f, err := Compile(0, randomAlive, Offset{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	def := Default(Offset{})[0]
	for j := 0; j < 16; j++ {
		for i := 0; i < 16; i++ {
			x, y := Position(i, j, 16, 16)
			if got, want := f(x, y), def(x, y); got != want {
				t.Fatalf("compiled(%v,%v) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCompileExpressions(t *testing.T) {
	cases := []struct {
		src  string
		x, y float64
		want float64
	}{
		{"0.0", 0.3, 0.4, 0},
		{"1", 0.3, 0.4, 1},
		{"x + y", 0.25, 0.5, 0.75},
		{"mix(0.0, 1.0, 0.25)", 0, 0, 0.25},
		{"clamp(x * 4, 0, 1)", 0.5, 0, 1},
		{"fract(1.75)", 0, 0, 0.75},
		{"mod(5, 3)", 0, 0, 2},
		{"length(vec2(3, 4))", 0, 0, 5},
		{"step(0.5, abs(x))", -0.75, 0, 1},
		{"smoothstep(0, 1, 0.5)", 0, 0, 0.5},
		{"pow(2, 3)", 0, 0, 8},
	}
	for _, tc := range cases {
		f, err := Compile(0, tc.src, Offset{})
		if err != nil {
			t.Errorf("Compile(%q): %v", tc.src, err)
			continue
		}
		if got := f(tc.x, tc.y); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%q at (%v,%v) = %v, want %v", tc.src, tc.x, tc.y, got, tc.want)
		}
	}
}

func TestCompileRejectsMalformed(t *testing.T) {
	for _, src := range []string{
		"step(0.2,",
		"step(0.2)",
		"unknown(x)",
		"z * 2",
		"vec2(x, y)",
		`"text"`,
		"x < 0 ? step(0.2) : 1.0",
		"y > 2 ? mix(x, y) : 0.0",
		"step(vec2(x, y), 0.5)",
		"random(1)",
		"length(x, y, 1)",
	} {
		_, err := Compile(1, src, Offset{})
		if !errors.Is(err, core.ErrCompile) {
			t.Errorf("Compile(%q) err = %v, want ErrCompile", src, err)
			continue
		}
		var ce *core.CompileError
		if !errors.As(err, &ce) || ce.Channel != 1 {
			t.Errorf("Compile(%q) err = %#v, want *CompileError for channel 1", src, err)
		}
	}
}

func TestCompileAllDefaultsMissingChannels(t *testing.T) {
	funcs, err := CompileAll([]string{"1.0", "0.5", "0.25"}, Offset{})
	if err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	want := [core.Channels]float64{1, 0.5, 0.25, 0}
	for ch, f := range funcs {
		if got := f(0, 0); got != want[ch] {
			t.Errorf("channel %d = %v, want %v", ch, got, want[ch])
		}
	}
	if _, err := CompileAll([]string{"1", "1", "1", "1", "1"}, Offset{}); !errors.Is(err, core.ErrCompile) {
		t.Fatalf("CompileAll with five channels err = %v, want ErrCompile", err)
	}
}

func TestPresetsCompile(t *testing.T) {
	for _, name := range PresetNames() {
		if _, err := FromPreset(name, Offset{}); err != nil {
			t.Errorf("FromPreset(%q): %v", name, err)
		}
	}
	if _, err := FromPreset("nope", Offset{}); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestMalformedBranchRejectedBeforeEvaluation(t *testing.T) {
	// The faulty call sits on a branch no cell centre in [-1, 1] ever takes.
	f, err := Compile(0, "x > 2 ? step(0.2) : 1.0", Offset{})
	if !errors.Is(err, core.ErrCompile) {
		t.Fatalf("err = %v, want ErrCompile", err)
	}
	if f != nil {
		t.Fatal("malformed expression returned a ChannelFunc")
	}
}

func TestRandomAcceptsPointOrPair(t *testing.T) {
	a, err := Compile(0, "random(vec2(x, y))", Offset{})
	if err != nil {
		t.Fatalf("Compile vec2 form: %v", err)
	}
	b, err := Compile(0, "random(x, y)", Offset{})
	if err != nil {
		t.Fatalf("Compile pair form: %v", err)
	}
	if a(0.3, -0.7) != b(0.3, -0.7) || a(0.3, -0.7) != Random(0.3, -0.7) {
		t.Fatal("random forms disagree")
	}
}

func TestSeedShiftsHashNotPosition(t *testing.T) {
	off := OffsetFromSeed(5)
	funcs, err := CompileAll([]string{"x", "y", "random(vec2(x, y))"}, off)
	if err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	const w, h = 8, 6
	g := core.NewGrid(w, h)
	Generate(compute.New(1), g, funcs)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			x, y := Position(i, j, w, h)
			c := g.At(i, j)
			if c[0] != float32(x) || c[1] != float32(y) {
				t.Fatalf("cell (%d,%d) saw position (%v,%v), want (%v,%v)", i, j, c[0], c[1], x, y)
			}
			if want := float32(off.Random(x, y)); c[2] != want {
				t.Fatalf("cell (%d,%d) hash = %v, want %v", i, j, c[2], want)
			}
		}
	}
}

func TestDiscStaysCentredUnderSeed(t *testing.T) {
	const w, h = 64, 64
	base := core.NewGrid(w, h)
	funcs, err := FromPreset("disc", Offset{})
	if err != nil {
		t.Fatalf("FromPreset: %v", err)
	}
	Generate(compute.New(0), base, funcs)

	for _, seed := range []int64{5, 12345} {
		funcs, err := FromPreset("disc", OffsetFromSeed(seed))
		if err != nil {
			t.Fatalf("FromPreset seed %d: %v", seed, err)
		}
		g := core.NewGrid(w, h)
		Generate(compute.New(0), g, funcs)
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				x, y := Position(i, j, w, h)
				if math.Hypot(x, y) <= 0.5 {
					continue
				}
				if c := g.At(i, j); c[0] != 0 || c[1] != 0 {
					t.Fatalf("seed %d: live cell (%d,%d) outside the disc: %v", seed, i, j, c)
				}
			}
		}
		if g.Equal(base) {
			t.Fatalf("seed %d produced the unseeded pattern", seed)
		}
	}
}
