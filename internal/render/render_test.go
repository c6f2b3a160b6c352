package render

import (
	"testing"

	"life-sim/internal/compute"
	"life-sim/internal/core"
)

func TestThresholdBinarisesPerChannel(t *testing.T) {
	r := New(true)
	got := r.Color(core.Cell{0.49, 0.5, 7, -1})
	want := core.Cell{0, 1, 1, 0}
	if got != want {
		t.Fatalf("Color = %v, want %v", got, want)
	}
}

func TestPassthroughIsIdentity(t *testing.T) {
	r := New(false)
	c := core.Cell{0.25, 3, -2, 0.5}
	if got := r.Color(c); got != c {
		t.Fatalf("Color = %v, want %v", got, c)
	}
}

func TestThresholdIdempotentOnBinaryGrid(t *testing.T) {
	src := core.NewGrid(9, 7)
	for i := range src.Cells() {
		for ch := range src.Cells()[i] {
			src.Cells()[i][ch] = float32((i + ch) % 2)
		}
	}
	d := compute.New(2)
	pass, thr := core.NewGrid(9, 7), core.NewGrid(9, 7)
	New(false).Shade(d, src, pass)
	New(true).Shade(d, src, thr)
	if !pass.Equal(thr) {
		t.Fatal("threshold output differs from passthrough on a binary grid")
	}
}

func TestShadeLeavesSourceUntouched(t *testing.T) {
	src := core.NewGrid(4, 4)
	src.Set(1, 1, core.Cell{0.7, 0.2, 0, 0})
	before := core.NewGrid(4, 4)
	before.CopyFrom(src)
	New(true).Shade(compute.New(1), src, core.NewGrid(4, 4))
	if !src.Equal(before) {
		t.Fatal("Shade modified the simulation grid")
	}
}

func TestRenderFlipsRowsAndClamps(t *testing.T) {
	src := core.NewGrid(2, 2)
	src.Set(0, 0, core.Cell{1, 0, 0, 0})    // bottom-left
	src.Set(1, 1, core.Cell{0, 0.5, 9, 0})  // top-right
	src.Set(0, 1, core.Cell{-3, 0, 0.2, 0}) // top-left
	buf := make([]byte, 4*2*2)
	New(false).Render(compute.New(1), src, buf)

	pixel := func(x, y int) [4]byte {
		i := (y*2 + x) * 4
		return [4]byte{buf[i], buf[i+1], buf[i+2], buf[i+3]}
	}
	cases := []struct {
		x, y int
		want [4]byte
	}{
		{0, 1, [4]byte{255, 0, 0, 255}},
		{1, 0, [4]byte{0, 128, 255, 255}},
		{0, 0, [4]byte{0, 0, 51, 255}},
		{1, 1, [4]byte{0, 0, 0, 255}},
	}
	for _, tc := range cases {
		if got := pixel(tc.x, tc.y); got != tc.want {
			t.Errorf("pixel(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRenderThresholdMode(t *testing.T) {
	src := core.NewGrid(1, 1)
	src.Set(0, 0, core.Cell{0.6, 0.4, 0.5, 0})
	buf := make([]byte, 4)
	New(true).Render(compute.New(1), src, buf)
	if want := []byte{255, 0, 255, 255}; string(buf) != string(want) {
		t.Fatalf("threshold pixel = %v, want %v", buf, want)
	}
}
