package mask

import (
	"image"

	"mask-painter/internal/segment"
)

// ExportBinary converts the working mask to a strict two-level grayscale
// image of the same dimensions: 255 where Marked, 0 everywhere else (both
// Unmarked and Cleared count as background). Pure read; returns nil when
// no image is loaded.
func (s *State) ExportBinary() *image.Gray {
	if !s.Loaded() {
		return nil
	}
	out := image.NewGray(s.Bounds())
	for i, l := range s.labels {
		if l == segment.LabelMarked {
			out.Pix[i] = 255
		}
	}
	return out
}
