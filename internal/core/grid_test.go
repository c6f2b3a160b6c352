package core

import (
	"errors"
	"testing"
)

func TestGridSampleEdgePolicies(t *testing.T) {
	g := NewGrid(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			g.Set(x, y, Cell{float32(y*3 + x)})
		}
	}

	cases := []struct {
		edge EdgePolicy
		x, y int
		want float32
	}{
		{EdgeClamp, -1, 0, 0},
		{EdgeClamp, 3, 1, 5},
		{EdgeClamp, -4, 9, 3},
		{EdgeWrap, -1, 0, 2},
		{EdgeWrap, 3, 1, 3},
		{EdgeWrap, 0, -1, 3},
		{EdgeZero, -1, 0, 0},
		{EdgeZero, 2, 2, 0},
		{EdgeZero, 2, 1, 5},
	}
	for _, tc := range cases {
		if got := g.Sample(tc.x, tc.y, tc.edge)[0]; got != tc.want {
			t.Errorf("Sample(%d,%d,%v) = %v, want %v", tc.x, tc.y, tc.edge, got, tc.want)
		}
	}
}

func TestParseEdgePolicy(t *testing.T) {
	for _, name := range []string{"clamp", "wrap", "zero"} {
		p, err := ParseEdgePolicy(name)
		if err != nil {
			t.Fatalf("ParseEdgePolicy(%q) error: %v", name, err)
		}
		if p.String() != name {
			t.Errorf("ParseEdgePolicy(%q).String() = %q", name, p.String())
		}
	}
	if _, err := ParseEdgePolicy("mirror"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestGridBufferSwapInvolution(t *testing.T) {
	b, err := NewGridBuffer(4, 3, 0)
	if err != nil {
		t.Fatalf("NewGridBuffer: %v", err)
	}
	read, write := b.Read(), b.Write()
	if read == write {
		t.Fatal("read and write grids must not alias")
	}
	read.Set(1, 1, Cell{1, 0.5, 0, 0})
	write.Set(2, 2, Cell{0, 0, 1, 0})
	before := NewGrid(4, 3)
	before.CopyFrom(read)

	b.Swap()
	if b.Read() != write || b.Write() != read {
		t.Fatal("Swap did not exchange roles")
	}
	b.Swap()
	if b.Read() != read || b.Write() != write {
		t.Fatal("double Swap did not restore roles")
	}
	if !b.Read().Equal(before) {
		t.Fatal("double Swap changed grid contents")
	}
}

func TestNewGridBufferRejectsInvalidDimensions(t *testing.T) {
	cases := []struct {
		w, h, limit int
	}{
		{0, 10, 0},
		{10, -1, 0},
		{64, 65, 64},
	}
	for _, tc := range cases {
		_, err := NewGridBuffer(tc.w, tc.h, tc.limit)
		if !errors.Is(err, ErrAllocation) {
			t.Errorf("NewGridBuffer(%d,%d,%d) err = %v, want ErrAllocation", tc.w, tc.h, tc.limit, err)
		}
		var allocErr *AllocationError
		if !errors.As(err, &allocErr) || allocErr.W != tc.w || allocErr.H != tc.h {
			t.Errorf("NewGridBuffer(%d,%d,%d) err = %#v, want *AllocationError", tc.w, tc.h, tc.limit, err)
		}
	}
}

func TestCompileErrorUnwrap(t *testing.T) {
	cause := errors.New("unexpected token")
	err := error(&CompileError{Channel: 2, Source: "step(", Err: cause})
	if !errors.Is(err, ErrCompile) || !errors.Is(err, cause) {
		t.Fatalf("CompileError should unwrap to ErrCompile and its cause: %v", err)
	}
}
