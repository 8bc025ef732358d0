// Package mask holds the mutable segmentation state: the per-pixel label
// grid, its undo history, rendering, and binary export.
package mask

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"mask-painter/internal/segment"
	"mask-painter/pkg/colorutil"
)

// ErrNoImage is returned by mutating operations invoked before Load.
var ErrNoImage = errors.New("no image loaded")

// State owns the working mask for one loaded image: an immutable source
// copy, a label per pixel, and the snapshot history. It is not safe for
// concurrent use; a single event loop is expected to drive all mutations.
type State struct {
	source *image.RGBA
	labels []segment.Label
	w, h   int
	hist   history
}

// New returns an empty State. All operations are no-ops until Load.
func New() *State {
	return &State{}
}

// Load installs a new source image, resets every pixel to Unmarked and
// replaces the history with a single initial snapshot. All previous state
// is discarded.
func (s *State) Load(img image.Image) {
	b := img.Bounds()
	src := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)

	s.source = src
	s.w, s.h = b.Dx(), b.Dy()
	s.labels = make([]segment.Label, s.w*s.h)
	s.hist.reset(s.labels)
}

// Loaded reports whether an image has been installed.
func (s *State) Loaded() bool {
	return s.source != nil
}

// Bounds returns the mask dimensions as a rectangle anchored at the origin.
func (s *State) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.w, s.h)
}

// Source returns the immutable source raster. Callers must not mutate it.
func (s *State) Source() *image.RGBA {
	return s.source
}

// LabelAt returns the label of the pixel at (x, y), or Unmarked when the
// coordinates fall outside the mask.
func (s *State) LabelAt(x, y int) segment.Label {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return segment.LabelUnmarked
	}
	return s.labels[y*s.w+x]
}

// ApplyClassification classifies the window around (x, y) against the
// reference color and overwrites that region of the mask, last write wins.
// The new state is recorded as an undo snapshot. A label count that does
// not match the clipped window aborts with no mutation at all.
func (s *State) ApplyClassification(x, y int, ref color.RGBA, opts segment.Options) error {
	if !s.Loaded() {
		return ErrNoImage
	}

	win := segment.Window(x, y, opts.WindowSize, s.Bounds())
	if win.Empty() {
		// Click entirely outside bounds: nothing to classify, no snapshot.
		return nil
	}
	labels := segment.Classify(s.source, win, ref, opts.Threshold)
	if len(labels) != win.Dx()*win.Dy() {
		return fmt.Errorf("window %v: %d labels for %d pixels", win, len(labels), win.Dx()*win.Dy())
	}

	i := 0
	for wy := win.Min.Y; wy < win.Max.Y; wy++ {
		for wx := win.Min.X; wx < win.Max.X; wx++ {
			s.labels[wy*s.w+wx] = labels[i]
			i++
		}
	}
	s.hist.push(s.labels)
	return nil
}

// ResetUnmarked folds every Cleared pixel back to Unmarked, keeping Marked
// pixels untouched. This is a display normalization between segmentation
// passes, not a segmentation decision, so no snapshot is recorded and the
// operation cannot be undone.
func (s *State) ResetUnmarked() {
	for i, l := range s.labels {
		if l == segment.LabelCleared {
			s.labels[i] = segment.LabelUnmarked
		}
	}
}

// EraseRegion reverts the window around (x, y) to Unmarked regardless of
// prior label. A direct corrective edit: no snapshot is recorded.
func (s *State) EraseRegion(x, y, size int) {
	if !s.Loaded() {
		return
	}
	win := segment.Window(x, y, size, s.Bounds())
	for wy := win.Min.Y; wy < win.Max.Y; wy++ {
		for wx := win.Min.X; wx < win.Max.X; wx++ {
			s.labels[wy*s.w+wx] = segment.LabelUnmarked
		}
	}
}

// Undo discards the newest snapshot and restores the mask to the previous
// one. With only the initial snapshot left it reports false and leaves the
// mask unchanged.
func (s *State) Undo() bool {
	labels, ok := s.hist.pop()
	if !ok {
		return false
	}
	s.labels = labels
	return true
}

// CanUndo reports whether Undo would change the mask.
func (s *State) CanUndo() bool {
	return s.hist.depth() > 1
}

// MarkedCount returns the number of pixels currently labeled as foreground.
func (s *State) MarkedCount() int {
	n := 0
	for _, l := range s.labels {
		if l == segment.LabelMarked {
			n++
		}
	}
	return n
}

// Render maps the label grid onto a display raster: Marked pixels take the
// marker color, Cleared pixels the cleared color, everything else shows the
// source image. Returns nil when no image is loaded.
func (s *State) Render() *image.RGBA {
	if !s.Loaded() {
		return nil
	}
	out := image.NewRGBA(s.Bounds())
	copy(out.Pix, s.source.Pix)
	for i, l := range s.labels {
		switch l {
		case segment.LabelMarked:
			out.SetRGBA(i%s.w, i/s.w, colorutil.MarkerColor)
		case segment.LabelCleared:
			out.SetRGBA(i%s.w, i/s.w, colorutil.ClearedColor)
		}
	}
	return out
}
