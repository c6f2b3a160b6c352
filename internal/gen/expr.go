package gen

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"life-sim/internal/core"
)

// vec2 is the value produced by vec2(a, b) inside an expression.
type vec2 [2]float64

var (
	unaryType   = new(func(float64) float64)
	binaryType  = new(func(float64, float64) float64)
	ternaryType = new(func(float64, float64, float64) float64)
	pointType   = new(func(vec2) float64)
)

// builtins declares the expression function set. Every function carries a
// typed signature so arity and argument types are checked at compile time.
// random hashes through off.
func builtins(off Offset) []expr.Option {
	return []expr.Option{
		expr.Function("step", func(p ...any) (any, error) {
			v, err := floats("step", 2, p)
			if err != nil {
				return nil, err
			}
			return Step(v[0], v[1]), nil
		}, binaryType),
		expr.Function("mod", func(p ...any) (any, error) {
			v, err := floats("mod", 2, p)
			if err != nil {
				return nil, err
			}
			return Mod(v[0], v[1]), nil
		}, binaryType),
		expr.Function("mix", func(p ...any) (any, error) {
			v, err := floats("mix", 3, p)
			if err != nil {
				return nil, err
			}
			return v[0]*(1-v[2]) + v[1]*v[2], nil
		}, ternaryType),
		expr.Function("clamp", func(p ...any) (any, error) {
			v, err := floats("clamp", 3, p)
			if err != nil {
				return nil, err
			}
			return math.Min(math.Max(v[0], v[1]), v[2]), nil
		}, ternaryType),
		expr.Function("smoothstep", func(p ...any) (any, error) {
			v, err := floats("smoothstep", 3, p)
			if err != nil {
				return nil, err
			}
			t := math.Min(math.Max((v[2]-v[0])/(v[1]-v[0]), 0), 1)
			return t * t * (3 - 2*t), nil
		}, ternaryType),
		expr.Function("pow", func(p ...any) (any, error) {
			v, err := floats("pow", 2, p)
			if err != nil {
				return nil, err
			}
			return math.Pow(v[0], v[1]), nil
		}, binaryType),
		unary("fract", Fract),
		unary("sin", math.Sin),
		unary("cos", math.Cos),
		unary("sqrt", math.Sqrt),
		unary("exp", math.Exp),
		expr.Function("vec2", func(p ...any) (any, error) {
			v, err := floats("vec2", 2, p)
			if err != nil {
				return nil, err
			}
			return vec2{v[0], v[1]}, nil
		}, new(func(float64, float64) vec2)),
		expr.Function("random", func(p ...any) (any, error) {
			v, err := point("random", p)
			if err != nil {
				return nil, err
			}
			return off.Random(v[0], v[1]), nil
		}, pointType, binaryType),
		expr.Function("length", func(p ...any) (any, error) {
			v, err := point("length", p)
			if err != nil {
				return nil, err
			}
			return math.Hypot(v[0], v[1]), nil
		}, pointType, binaryType),
	}
}

func unary(name string, f func(float64) float64) expr.Option {
	return expr.Function(name, func(p ...any) (any, error) {
		v, err := floats(name, 1, p)
		if err != nil {
			return nil, err
		}
		return f(v[0]), nil
	}, unaryType)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func floats(name string, n int, p []any) ([]float64, error) {
	if len(p) != n {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", name, n, len(p))
	}
	out := make([]float64, n)
	for i, v := range p {
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%s argument %d: expected number, got %T", name, i+1, v)
		}
		out[i] = f
	}
	return out, nil
}

// point accepts either a single vec2 or two numbers.
func point(name string, p []any) (vec2, error) {
	if len(p) == 1 {
		if v, ok := p[0].(vec2); ok {
			return v, nil
		}
		return vec2{}, fmt.Errorf("%s: expected vec2, got %T", name, p[0])
	}
	v, err := floats(name, 2, p)
	if err != nil {
		return vec2{}, err
	}
	return vec2{v[0], v[1]}, nil
}

// Compile turns a channel expression into a ChannelFunc. Expressions see the
// variables x and y and a GLSL-flavoured function set (step, random, vec2,
// fract, mod, mix, clamp, smoothstep, length, sin, cos, sqrt, exp, pow) along
// with the expr built-ins such as abs, floor, min and max. random hashes the
// lattice shifted by off; x and y are never shifted. An empty source compiles
// to constant zero.
func Compile(channel int, src string, off Offset) (ChannelFunc, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Const(0), nil
	}
	opts := append([]expr.Option{expr.Env(env(0, 0)), expr.AsFloat64()}, builtins(off)...)
	program, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, &core.CompileError{Channel: channel, Source: src, Err: err}
	}
	core.Logger().Debug("compiled generator", "channel", channel, "source", src)
	return func(x, y float64) float64 {
		v, err := run(program, x, y)
		if err != nil {
			return math.NaN()
		}
		return v
	}, nil
}

// CompileAll compiles up to four channel expressions. Missing channels are
// constant zero.
func CompileAll(srcs []string, off Offset) (Funcs, error) {
	var funcs Funcs
	if len(srcs) > core.Channels {
		return funcs, &core.CompileError{Channel: core.Channels, Source: strings.Join(srcs[core.Channels:], ", "),
			Err: fmt.Errorf("at most %d channel expressions are accepted", core.Channels)}
	}
	var errs []error
	for ch := range funcs {
		src := ""
		if ch < len(srcs) {
			src = srcs[ch]
		}
		f, err := Compile(ch, src, off)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		funcs[ch] = f
	}
	return funcs, errors.Join(errs...)
}

func env(x, y float64) map[string]any {
	return map[string]any{"x": x, "y": y}
}

func run(program *vm.Program, x, y float64) (float64, error) {
	out, err := expr.Run(program, env(x, y))
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(out)
	if !ok {
		return 0, fmt.Errorf("expression produced %T, want number", out)
	}
	return f, nil
}
