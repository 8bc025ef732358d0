package segment

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the color distribution of a window (mean and one sigma
// per channel). Used for the sampled-region readout in the UI.
type Stats struct {
	MeanR, MeanG, MeanB float64
	StdR, StdG, StdB    float64
	Pixels              int
}

// WindowStats computes per-channel statistics over win in src.
func WindowStats(src *image.RGBA, win image.Rectangle) Stats {
	n := win.Dx() * win.Dy()
	if n <= 0 {
		return Stats{}
	}

	rs := make([]float64, 0, n)
	gs := make([]float64, 0, n)
	bs := make([]float64, 0, n)
	for y := win.Min.Y; y < win.Max.Y; y++ {
		for x := win.Min.X; x < win.Max.X; x++ {
			c := src.RGBAAt(x, y)
			rs = append(rs, float64(c.R))
			gs = append(gs, float64(c.G))
			bs = append(bs, float64(c.B))
		}
	}

	s := Stats{
		MeanR:  stat.Mean(rs, nil),
		MeanG:  stat.Mean(gs, nil),
		MeanB:  stat.Mean(bs, nil),
		Pixels: n,
	}
	if n > 1 {
		s.StdR = stat.StdDev(rs, nil)
		s.StdG = stat.StdDev(gs, nil)
		s.StdB = stat.StdDev(bs, nil)
	}
	return s
}
