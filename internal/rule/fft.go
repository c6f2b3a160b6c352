package rule

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"life-sim/internal/compute"
	"life-sim/internal/core"
)

// fftSummer computes Moore-neighbourhood sums by 2D convolution. The grid is
// padded by one cell on every side using the edge policy, so the circular
// convolution never wraps into the interior and any policy can be honoured.
type fftSummer struct {
	w, h   int
	pw, ph int
	halfC  int
	norm   float64
	kernel []complex128
	plans  [core.Channels]*fftPlan
}

// fftPlan holds the transforms and scratch space for one channel. gonum
// transforms keep internal work buffers, so channels never share a plan.
type fftPlan struct {
	rows *fourier.FFT
	cols *fourier.CmplxFFT
	freq []complex128
	col  []complex128
	real []float64
}

func newFFTPlan(pw, ph int) *fftPlan {
	halfC := pw/2 + 1
	return &fftPlan{
		rows: fourier.NewFFT(pw),
		cols: fourier.NewCmplxFFT(ph),
		freq: make([]complex128, ph*halfC),
		col:  make([]complex128, ph),
		real: make([]float64, pw*ph),
	}
}

func newFFTSummer(w, h int) *fftSummer {
	s := &fftSummer{w: w, h: h, pw: w + 2, ph: h + 2}
	s.halfC = s.pw/2 + 1
	s.norm = 1 / float64(s.pw*s.ph)
	for ch := range s.plans {
		s.plans[ch] = newFFTPlan(s.pw, s.ph)
	}

	p := s.plans[0]
	clear(p.real)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			fy := (dy + s.ph) % s.ph
			fx := (dx + s.pw) % s.pw
			p.real[fy*s.pw+fx] = 1
		}
	}
	s.forward(p)
	s.kernel = append([]complex128(nil), p.freq...)
	return s
}

// forward transforms p.real into p.freq: real FFT along rows, complex FFT
// along the reduced columns.
func (s *fftSummer) forward(p *fftPlan) {
	for y := 0; y < s.ph; y++ {
		p.rows.Coefficients(p.freq[y*s.halfC:(y+1)*s.halfC], p.real[y*s.pw:(y+1)*s.pw])
	}
	for x := 0; x < s.halfC; x++ {
		for y := 0; y < s.ph; y++ {
			p.col[y] = p.freq[y*s.halfC+x]
		}
		p.cols.Coefficients(p.col, p.col)
		for y := 0; y < s.ph; y++ {
			p.freq[y*s.halfC+x] = p.col[y]
		}
	}
}

// inverse transforms p.freq back into p.real without normalising.
func (s *fftSummer) inverse(p *fftPlan) {
	for x := 0; x < s.halfC; x++ {
		for y := 0; y < s.ph; y++ {
			p.col[y] = p.freq[y*s.halfC+x]
		}
		p.cols.Sequence(p.col, p.col)
		for y := 0; y < s.ph; y++ {
			p.freq[y*s.halfC+x] = p.col[y]
		}
	}
	for y := 0; y < s.ph; y++ {
		p.rows.Sequence(p.real[y*s.pw:(y+1)*s.pw], p.freq[y*s.halfC:(y+1)*s.halfC])
	}
}

// sum writes the neighbour sum of every cell and channel of src into dst.
func (s *fftSummer) sum(d *compute.Dispatcher, src *core.Grid, edge core.EdgePolicy, dst []core.Cell) {
	d.RunEach(core.Channels, func(ch int) {
		p := s.plans[ch]
		for py := 0; py < s.ph; py++ {
			for px := 0; px < s.pw; px++ {
				p.real[py*s.pw+px] = float64(src.Sample(px-1, py-1, edge)[ch])
			}
		}
		s.forward(p)
		for i := range p.freq {
			p.freq[i] *= s.kernel[i]
		}
		s.inverse(p)
		for y := 0; y < s.h; y++ {
			row := p.real[(y+1)*s.pw+1:]
			for x := 0; x < s.w; x++ {
				dst[y*s.w+x][ch] = float32(row[x] * s.norm)
			}
		}
	})
}
