// Package app provides application state, events, and lifecycle helpers.
package app

import (
	"image"
	"image/color"
	"sync"

	"github.com/sirupsen/logrus"

	segimage "mask-painter/internal/image"
	"mask-painter/internal/imageio"
	"mask-painter/internal/mask"
	"mask-painter/internal/segment"
)

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventMaskChanged
	EventHistoryChanged
	EventModeChanged
	EventColorSampled
	EventMaskSaved
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Mode selects what a click on the canvas does.
type Mode int

const (
	ModeClassify Mode = iota // sample color and classify the window
	ModeErase                // revert the window to the source image
)

func (m Mode) String() string {
	if m == ModeErase {
		return "erase"
	}
	return "classify"
}

// SampleInfo is the payload of EventColorSampled.
type SampleInfo struct {
	Point image.Point
	Color color.RGBA
	Stats segment.Stats
}

// State holds the application state: the loaded source layer, the mask
// engine, classification options, and the click mode. All mutating
// operations are driven by the UI event loop; the mutex only guards
// cross-goroutine reads of options and mode.
type State struct {
	mu sync.RWMutex

	log    *logrus.Logger
	writer *imageio.MaskWriter

	// Source image layer (nil until an image is loaded)
	Source *segimage.Layer

	// Segmentation engine
	Mask *mask.State

	opts segment.Options
	mode Mode

	// Event listeners
	listeners map[EventType][]EventListener
}

// NewState creates a new application state.
func NewState(log *logrus.Logger) *State {
	return &State{
		log:       log,
		writer:    imageio.NewMaskWriter(log),
		Mask:      mask.New(),
		opts:      segment.DefaultOptions(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadImage loads a new source image, discarding all previous mask state
// and history.
func (s *State) LoadImage(path string) error {
	layer, err := segimage.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Source = layer
	s.mu.Unlock()
	s.Mask.Load(layer.Image)

	s.log.WithFields(logrus.Fields{
		"path":   path,
		"format": layer.Format,
		"width":  layer.Width(),
		"height": layer.Height(),
	}).Info("Image loaded")

	s.Emit(EventImageLoaded, layer)
	s.Emit(EventMaskChanged, nil)
	s.Emit(EventHistoryChanged, nil)
	return nil
}

// ClickAt handles a click at image coordinates according to the current
// mode. Clicks before an image is loaded are logged and ignored.
func (s *State) ClickAt(x, y int) {
	if !s.Mask.Loaded() {
		s.log.Warn("Click ignored: no image loaded")
		return
	}
	if s.EraseMode() {
		s.EraseAt(x, y)
		return
	}
	s.ClassifyAt(x, y)
}

// ClassifyAt samples the source color at (x, y) and classifies the window
// around it. The sampled color and window statistics are published before
// the mask changes.
func (s *State) ClassifyAt(x, y int) {
	if !s.Mask.Loaded() {
		s.log.Warn("Classify ignored: no image loaded")
		return
	}

	opts := s.Options()
	src := s.Mask.Source()
	ref := segment.SampleColor(src, x, y)
	win := segment.Window(x, y, opts.WindowSize, s.Mask.Bounds())

	s.Emit(EventColorSampled, SampleInfo{
		Point: image.Pt(x, y),
		Color: ref,
		Stats: segment.WindowStats(src, win),
	})

	if err := s.Mask.ApplyClassification(x, y, ref, opts); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"x": x, "y": y}).
			Error("Classification aborted")
		return
	}

	s.log.WithFields(logrus.Fields{
		"x": x, "y": y,
		"color":  ref,
		"window": win,
	}).Debug("Window classified")

	s.Emit(EventMaskChanged, nil)
	s.Emit(EventHistoryChanged, nil)
}

// EraseAt reverts the erase window around (x, y) to the source image.
// Not recorded in undo history.
func (s *State) EraseAt(x, y int) {
	if !s.Mask.Loaded() {
		s.log.Warn("Erase ignored: no image loaded")
		return
	}
	s.Mask.EraseRegion(x, y, s.Options().EraseSize)
	s.Emit(EventMaskChanged, nil)
}

// Undo restores the mask to the previous classification snapshot.
func (s *State) Undo() {
	if !s.Mask.Undo() {
		s.log.Info("Nothing to undo")
		return
	}
	s.Emit(EventMaskChanged, nil)
	s.Emit(EventHistoryChanged, nil)
}

// CommitBackground folds confirmed-background pixels back to the source
// image, keeping marked pixels. Not recorded in undo history.
func (s *State) CommitBackground() {
	if !s.Mask.Loaded() {
		s.log.Warn("Commit ignored: no image loaded")
		return
	}
	s.Mask.ResetUnmarked()
	s.Emit(EventMaskChanged, nil)
}

// SaveMask exports the binary mask and writes it to path.
func (s *State) SaveMask(path string) error {
	gray := s.Mask.ExportBinary()
	if gray == nil {
		s.log.Warn("Save ignored: no image loaded")
		return mask.ErrNoImage
	}
	if err := s.writer.Save(gray, path); err != nil {
		return err
	}
	s.Emit(EventMaskSaved, path)
	return nil
}

// Rendered returns the current display raster, or nil before load.
func (s *State) Rendered() *image.RGBA {
	return s.Mask.Render()
}

// Options returns the current classification options.
func (s *State) Options() segment.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// SetThreshold updates the classification distance threshold.
func (s *State) SetThreshold(threshold float64) {
	s.mu.Lock()
	s.opts.Threshold = threshold
	s.mu.Unlock()
}

// SetWindowSize updates the classification window side length.
func (s *State) SetWindowSize(size int) {
	s.mu.Lock()
	s.opts.WindowSize = size
	s.mu.Unlock()
}

// SetEraseSize updates the erase window side length.
func (s *State) SetEraseSize(size int) {
	s.mu.Lock()
	s.opts.EraseSize = size
	s.mu.Unlock()
}

// EraseMode reports whether clicks currently erase.
func (s *State) EraseMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode == ModeErase
}

// SetEraseMode switches between classify and erase clicks.
func (s *State) SetEraseMode(erase bool) {
	s.mu.Lock()
	prev := s.mode
	if erase {
		s.mode = ModeErase
	} else {
		s.mode = ModeClassify
	}
	changed := prev != s.mode
	mode := s.mode
	s.mu.Unlock()

	if changed {
		s.log.WithField("mode", mode.String()).Info("Click mode changed")
		s.Emit(EventModeChanged, mode)
	}
}
