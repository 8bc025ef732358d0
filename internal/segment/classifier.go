package segment

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/floats"
)

// Options configures classification and erase behavior.
type Options struct {
	WindowSize int     // Side length of the classification window, pixels
	Threshold  float64 // Euclidean RGB distance below which a pixel matches
	EraseSize  int     // Side length of the erase window, pixels
}

// DefaultOptions returns the standard classification parameters.
func DefaultOptions() Options {
	return Options{
		WindowSize: 50,
		Threshold:  300,
		EraseSize:  20,
	}
}

// Classify labels every pixel of win against the reference color. A pixel
// matches when its Euclidean distance to ref in RGB space is strictly below
// threshold; matches become Marked, everything else Cleared. The result is
// row-major with exactly win.Dx()*win.Dy() entries.
func Classify(src *image.RGBA, win image.Rectangle, ref color.RGBA, threshold float64) []Label {
	refVec := []float64{float64(ref.R), float64(ref.G), float64(ref.B)}
	pix := make([]float64, 3)

	labels := make([]Label, 0, win.Dx()*win.Dy())
	for y := win.Min.Y; y < win.Max.Y; y++ {
		for x := win.Min.X; x < win.Max.X; x++ {
			c := src.RGBAAt(x, y)
			pix[0], pix[1], pix[2] = float64(c.R), float64(c.G), float64(c.B)
			if floats.Distance(pix, refVec, 2) < threshold {
				labels = append(labels, LabelMarked)
			} else {
				labels = append(labels, LabelCleared)
			}
		}
	}
	return labels
}
