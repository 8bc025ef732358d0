// Overlay types for the image canvas.
package canvas

import (
	"image"
	"image/color"
)

// Overlay represents a set of rectangles drawn over the image, e.g. the
// classification window preview under the cursor.
type Overlay struct {
	Rectangles []OverlayRect
	Color      color.RGBA
}

// OverlayRect is a rectangle in image coordinates.
type OverlayRect struct {
	X, Y, Width, Height int
}

// drawOverlay draws an overlay on the output image.
func (ic *ImageCanvas) drawOverlay(output *image.RGBA, overlay *Overlay) {
	col := overlay.Color
	bounds := output.Bounds()

	for _, rect := range overlay.Rectangles {
		// Scale rectangle coordinates by zoom
		x1 := int(float64(rect.X) * ic.zoom)
		y1 := int(float64(rect.Y) * ic.zoom)
		x2 := int(float64(rect.X+rect.Width) * ic.zoom)
		y2 := int(float64(rect.Y+rect.Height) * ic.zoom)

		// Draw rectangle outline (2 pixel thick)
		for t := 0; t < 2; t++ {
			// Top edge
			for x := x1; x <= x2; x++ {
				if x >= bounds.Min.X && x < bounds.Max.X && y1+t >= bounds.Min.Y && y1+t < bounds.Max.Y {
					output.Set(x, y1+t, col)
				}
			}
			// Bottom edge
			for x := x1; x <= x2; x++ {
				if x >= bounds.Min.X && x < bounds.Max.X && y2-t >= bounds.Min.Y && y2-t < bounds.Max.Y {
					output.Set(x, y2-t, col)
				}
			}
			// Left edge
			for y := y1; y <= y2; y++ {
				if x1+t >= bounds.Min.X && x1+t < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
					output.Set(x1+t, y, col)
				}
			}
			// Right edge
			for y := y1; y <= y2; y++ {
				if x2-t >= bounds.Min.X && x2-t < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
					output.Set(x2-t, y, col)
				}
			}
		}
	}
}
