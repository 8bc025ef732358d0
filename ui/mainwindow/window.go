// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"mask-painter/internal/app"
	"mask-painter/internal/version"
	"mask-painter/pkg/colorutil"
	"mask-painter/ui/canvas"
	"mask-painter/ui/panels"
	"mask-painter/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir   = "lastDirectory"
	prefKeyLastImage = "lastImage"
)

// cursorOverlay is the overlay name for the click window preview.
const cursorOverlay = "window_cursor"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.ImageCanvas
	panel     *panels.SegmentPanel
	statusBar *widget.Label

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
	eraseModeItem   *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Mask Painter")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	// Restore the last image once the handlers are wired
	mw.restoreLastImage()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewImageCanvas()
	mw.panel = panels.NewSegmentPanel(mw.state, mw.prefs)
	mw.statusBar = widget.NewLabel("Ready")

	mw.canvas.OnLeftClick(func(x, y float64) {
		mw.state.ClickAt(int(x), int(y))
	})
	// Right click always erases, regardless of mode
	mw.canvas.OnRightClick(func(x, y float64) {
		mw.state.EraseAt(int(x), int(y))
	})
	mw.canvas.OnHover(func(x, y float64) {
		mw.updateCursorPreview(x, y)
	})

	toolbar := mw.createToolbar()

	// Canvas area with toolbar on top
	canvasArea := container.NewBorder(
		toolbar,               // top
		nil,                   // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	// Main layout: side panel | canvas area
	split := container.NewHSplit(
		mw.panel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25) // Side panel takes 25% of width

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.onZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.onZoomIn()
	})
	fitBtn := widget.NewButton("Fit", func() {
		mw.onToggleFitToWindow()
	})
	actualBtn := widget.NewButton("1:1", func() {
		mw.onActualSize()
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Mask...", mw.onSaveMask),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.eraseModeItem = fyne.NewMenuItem("  Erase Mode", mw.onToggleEraseMode)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Keep Background", mw.onCommitBackground),
		mw.eraseModeItem,
	)

	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		mw.canvas.SetImage(mw.state.Rendered())
		mw.canvas.FitToWindow()
		if mw.state.Source != nil {
			mw.SetTitle("Mask Painter - " + filepath.Base(mw.state.Source.Path))
			mw.updateStatus(fmt.Sprintf("Image loaded: %dx%d",
				mw.state.Source.Width(), mw.state.Source.Height()))
		}
	})

	mw.state.On(app.EventMaskChanged, func(interface{}) {
		mw.canvas.SetImage(mw.state.Rendered())
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventMaskSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Mask saved: " + path)
		}
	})

	mw.state.On(app.EventModeChanged, func(data interface{}) {
		mode, ok := data.(app.Mode)
		if !ok {
			return
		}
		if mode == app.ModeErase {
			mw.eraseModeItem.Label = "✓ Erase Mode"
			mw.updateStatus("Erase mode: clicks revert to the source image")
		} else {
			mw.eraseModeItem.Label = "  Erase Mode"
			mw.updateStatus("Classify mode: clicks sample and classify")
		}
		mw.Window.MainMenu().Refresh()
	})
}

// updateCursorPreview draws the click window outline under the pointer:
// the erase window in erase mode, the classification window otherwise.
func (mw *MainWindow) updateCursorPreview(x, y float64) {
	if !mw.state.Mask.Loaded() || x < 0 || y < 0 {
		mw.canvas.ClearOverlay(cursorOverlay)
		return
	}

	opts := mw.state.Options()
	size := opts.WindowSize
	col := colorutil.Cyan
	if mw.state.EraseMode() {
		size = opts.EraseSize
		col = colorutil.Red
	}

	half := size / 2
	mw.canvas.SetOverlay(cursorOverlay, &canvas.Overlay{
		Rectangles: []canvas.OverlayRect{{
			X:      int(x) - half,
			Y:      int(y) - half,
			Width:  size,
			Height: size,
		}},
		Color: col,
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// restoreLastImage loads the previously opened image.
func (mw *MainWindow) restoreLastImage() {
	path := mw.prefs.String(prefKeyLastImage)
	if path == "" {
		return
	}
	if err := mw.state.LoadImage(path); err != nil {
		mw.updateStatus("Could not restore last image: " + path)
	}
}

// SavePreferences writes preferences to disk.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Failed to save preferences: " + err.Error())
	}
	mw.panel.ClearDirty()
}

// SavePreferencesIfChanged writes preferences to disk when a panel control
// changed them since the last save.
func (mw *MainWindow) SavePreferencesIfChanged() {
	if mw.panel.Dirty() {
		mw.SavePreferences()
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)

		if err := mw.state.LoadImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefKeyLastImage, path)
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(
		[]string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveMask() {
	if !mw.state.Mask.Loaded() {
		mw.updateStatus("No image loaded")
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += ".png"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveMask(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)

	fd.SetFileName("mask.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onUndo() {
	mw.state.Undo()
}

func (mw *MainWindow) onCommitBackground() {
	mw.state.CommitBackground()
	mw.updateStatus("Background committed")
}

func (mw *MainWindow) onToggleEraseMode() {
	mw.state.SetEraseMode(!mw.state.EraseMode())
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.GetFitToWindow()
	mw.canvas.SetFitToWindow(enabled)

	// Update menu label to show state
	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
	mw.Window.MainMenu().Refresh()
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.GetFitToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
		mw.Window.MainMenu().Refresh()
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Mask Painter",
		fmt.Sprintf("Mask Painter v%s\n\n"+
			"An interactive foreground mask carving tool.\n\n"+
			"Click to sample a color and mark similar pixels,\n"+
			"right-click to erase, then export the binary mask.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
