package segment

import (
	"image"
	"image/color"
)

// SampleColor returns the color at (x, y) in src. Out-of-range coordinates
// are clamped to the nearest edge pixel instead of failing; the UI is
// expected to deliver in-bounds points, but a stale click must not panic.
func SampleColor(src *image.RGBA, x, y int) color.RGBA {
	b := src.Bounds()
	if x < b.Min.X {
		x = b.Min.X
	}
	if x >= b.Max.X {
		x = b.Max.X - 1
	}
	if y < b.Min.Y {
		y = b.Min.Y
	}
	if y >= b.Max.Y {
		y = b.Max.Y - 1
	}
	return src.RGBAAt(x, y)
}
