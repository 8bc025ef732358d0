// Package panels provides the side panel widgets.
package panels

import (
	"fmt"
	"image/color"

	"mask-painter/internal/app"
	"mask-painter/pkg/colorutil"
	"mask-painter/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Preference keys for persisted panel settings.
const (
	PrefKeyThreshold  = "threshold"
	PrefKeyWindowSize = "windowSize"
	PrefKeyEraseSize  = "eraseSize"
)

// SegmentPanel holds the segmentation controls: threshold and window sliders,
// the erase mode toggle, the sampled color readout, and the action buttons.
type SegmentPanel struct {
	state *app.State
	prefs *prefs.Prefs

	box *fyne.Container

	thresholdSlider *widget.Slider
	thresholdLabel  *widget.Label
	windowSlider    *widget.Slider
	windowLabel     *widget.Label
	eraseSlider     *widget.Slider
	eraseLabel      *widget.Label
	eraseCheck      *widget.Check

	swatch     *fynecanvas.Rectangle
	colorLabel *widget.Label
	hsvLabel   *widget.Label
	statsLabel *widget.Label
	countLabel *widget.Label

	undoBtn   *widget.Button
	commitBtn *widget.Button

	// Set when a slider moves; polled for preference autosave
	dirty bool
}

// NewSegmentPanel creates the segmentation side panel.
func NewSegmentPanel(state *app.State, p *prefs.Prefs) *SegmentPanel {
	sp := &SegmentPanel{
		state: state,
		prefs: p,
	}

	opts := state.Options()
	threshold := p.FloatWithFallback(PrefKeyThreshold, opts.Threshold)
	windowSize := p.FloatWithFallback(PrefKeyWindowSize, float64(opts.WindowSize))
	eraseSize := p.FloatWithFallback(PrefKeyEraseSize, float64(opts.EraseSize))
	state.SetThreshold(threshold)
	state.SetWindowSize(int(windowSize))
	state.SetEraseSize(int(eraseSize))

	// --- Classification section ---
	sp.thresholdLabel = widget.NewLabel(fmt.Sprintf("Threshold: %.0f", threshold))
	sp.thresholdSlider = widget.NewSlider(1, 442) // max RGB distance is sqrt(3)*255
	sp.thresholdSlider.Step = 1
	sp.thresholdSlider.Value = threshold
	sp.thresholdSlider.OnChanged = func(v float64) {
		sp.state.SetThreshold(v)
		sp.thresholdLabel.SetText(fmt.Sprintf("Threshold: %.0f", v))
		sp.prefs.SetFloat(PrefKeyThreshold, v)
		sp.dirty = true
	}

	sp.windowLabel = widget.NewLabel(fmt.Sprintf("Window: %.0f px", windowSize))
	sp.windowSlider = widget.NewSlider(4, 200)
	sp.windowSlider.Step = 2
	sp.windowSlider.Value = windowSize
	sp.windowSlider.OnChanged = func(v float64) {
		sp.state.SetWindowSize(int(v))
		sp.windowLabel.SetText(fmt.Sprintf("Window: %.0f px", v))
		sp.prefs.SetFloat(PrefKeyWindowSize, v)
		sp.dirty = true
	}

	// --- Erase section ---
	sp.eraseLabel = widget.NewLabel(fmt.Sprintf("Erase window: %.0f px", eraseSize))
	sp.eraseSlider = widget.NewSlider(4, 100)
	sp.eraseSlider.Step = 2
	sp.eraseSlider.Value = eraseSize
	sp.eraseSlider.OnChanged = func(v float64) {
		sp.state.SetEraseSize(int(v))
		sp.eraseLabel.SetText(fmt.Sprintf("Erase window: %.0f px", v))
		sp.prefs.SetFloat(PrefKeyEraseSize, v)
		sp.dirty = true
	}

	sp.eraseCheck = widget.NewCheck("Erase mode", func(on bool) {
		sp.state.SetEraseMode(on)
	})

	// --- Sampled color readout ---
	sp.swatch = fynecanvas.NewRectangle(color.RGBA{A: 255})
	sp.swatch.SetMinSize(fyne.NewSize(48, 24))
	sp.colorLabel = widget.NewLabel("RGB: -")
	sp.hsvLabel = widget.NewLabel("HSV: -")
	sp.statsLabel = widget.NewLabel("Window: -")
	sp.countLabel = widget.NewLabel("Marked: 0 px")

	// --- Actions ---
	sp.undoBtn = widget.NewButton("Undo", func() {
		sp.state.Undo()
	})
	sp.commitBtn = widget.NewButton("Keep Background", func() {
		sp.state.CommitBackground()
	})

	sp.box = container.NewVBox(
		widget.NewLabelWithStyle("Classification", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sp.thresholdLabel,
		sp.thresholdSlider,
		sp.windowLabel,
		sp.windowSlider,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Erase", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sp.eraseLabel,
		sp.eraseSlider,
		sp.eraseCheck,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Sample", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sp.swatch,
		sp.colorLabel,
		sp.hsvLabel,
		sp.statsLabel,
		widget.NewSeparator(),
		sp.countLabel,
		sp.undoBtn,
		sp.commitBtn,
	)

	sp.setupEventHandlers()
	return sp
}

// Container returns the panel for embedding in layouts.
func (sp *SegmentPanel) Container() fyne.CanvasObject {
	return container.NewVScroll(sp.box)
}

// Dirty reports whether preferences changed since the last ClearDirty.
func (sp *SegmentPanel) Dirty() bool {
	return sp.dirty
}

// ClearDirty resets the dirty flag after preferences were saved.
func (sp *SegmentPanel) ClearDirty() {
	sp.dirty = false
}

func (sp *SegmentPanel) setupEventHandlers() {
	sp.state.On(app.EventColorSampled, func(data interface{}) {
		info, ok := data.(app.SampleInfo)
		if !ok {
			return
		}
		sp.showSample(info)
	})

	sp.state.On(app.EventMaskChanged, func(interface{}) {
		sp.countLabel.SetText(fmt.Sprintf("Marked: %d px", sp.state.Mask.MarkedCount()))
	})

	sp.state.On(app.EventModeChanged, func(data interface{}) {
		mode, ok := data.(app.Mode)
		if !ok {
			return
		}
		erase := mode == app.ModeErase
		if sp.eraseCheck.Checked != erase {
			sp.eraseCheck.SetChecked(erase)
		}
	})
}

func (sp *SegmentPanel) showSample(info app.SampleInfo) {
	c := info.Color
	sp.swatch.FillColor = c
	sp.swatch.Refresh()

	h, s, v := colorutil.RGBToHSV(float64(c.R), float64(c.G), float64(c.B))
	sp.colorLabel.SetText(fmt.Sprintf("RGB: %d, %d, %d @ (%d, %d)",
		c.R, c.G, c.B, info.Point.X, info.Point.Y))
	sp.hsvLabel.SetText(fmt.Sprintf("HSV: %.0f, %.0f, %.0f", h, s, v))
	sp.statsLabel.SetText(fmt.Sprintf("Window: µ=(%.0f, %.0f, %.0f) σ=(%.0f, %.0f, %.0f)",
		info.Stats.MeanR, info.Stats.MeanG, info.Stats.MeanB,
		info.Stats.StdR, info.Stats.StdG, info.Stats.StdB))
}
