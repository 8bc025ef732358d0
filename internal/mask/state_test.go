package mask

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"mask-painter/internal/segment"
)

// testImage returns a 60x60 image: left half dark gray, right half near
// white. A black reference color marks the left half and clears the right.
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			c := color.RGBA{R: 20, G: 20, B: 20, A: 255}
			if x >= 30 {
				c = color.RGBA{R: 250, G: 250, B: 250, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var black = color.RGBA{A: 255}

func testOpts() segment.Options {
	o := segment.DefaultOptions()
	o.WindowSize = 10
	return o
}

func renderPix(t *testing.T, s *State) []byte {
	t.Helper()
	out := s.Render()
	if out == nil {
		t.Fatal("nil render")
	}
	return append([]byte(nil), out.Pix...)
}

func TestLoad_InitialState(t *testing.T) {
	s := New()
	if s.Loaded() {
		t.Fatal("empty state reports loaded")
	}
	src := testImage()
	s.Load(src)

	if !s.Loaded() {
		t.Fatal("state not loaded after Load")
	}
	if s.Bounds() != src.Bounds() {
		t.Fatalf("bounds %v, want %v", s.Bounds(), src.Bounds())
	}
	if s.CanUndo() {
		t.Fatal("fresh state must not be undoable")
	}
	if !bytes.Equal(s.Render().Pix, src.Pix) {
		t.Fatal("initial render differs from source")
	}
}

func TestApplyClassification_Locality(t *testing.T) {
	s := New()
	s.Load(testImage())
	before := renderPix(t, s)

	if err := s.ApplyClassification(30, 30, black, testOpts()); err != nil {
		t.Fatalf("classify: %v", err)
	}

	win := segment.Window(30, 30, 10, s.Bounds())
	after := s.Render()
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			o := after.PixOffset(x, y)
			inside := image.Pt(x, y).In(win)
			changedLabel := s.LabelAt(x, y) != segment.LabelUnmarked
			if !inside {
				if changedLabel {
					t.Fatalf("label outside window changed at (%d,%d)", x, y)
				}
				if !bytes.Equal(after.Pix[o:o+4], before[o:o+4]) {
					t.Fatalf("pixel outside window changed at (%d,%d)", x, y)
				}
			} else if !changedLabel {
				t.Fatalf("pixel inside window not classified at (%d,%d)", x, y)
			}
		}
	}
}

func TestApplyClassification_ClippedAtCorner(t *testing.T) {
	s := New()
	s.Load(testImage())
	if err := s.ApplyClassification(0, 0, black, testOpts()); err != nil {
		t.Fatalf("corner classify: %v", err)
	}
	// Window clipped to 5x5 at the origin; (0,0) is dark, so marked.
	if s.LabelAt(0, 0) != segment.LabelMarked {
		t.Fatalf("corner pixel: got %v", s.LabelAt(0, 0))
	}
	if s.LabelAt(5, 5) != segment.LabelUnmarked {
		t.Fatalf("pixel past clipped window was touched: %v", s.LabelAt(5, 5))
	}
}

func TestUndo_Inverse(t *testing.T) {
	s := New()
	s.Load(testImage())
	initial := renderPix(t, s)

	if err := s.ApplyClassification(10, 10, black, testOpts()); err != nil {
		t.Fatal(err)
	}
	afterFirst := renderPix(t, s)

	for _, pt := range []image.Point{{40, 10}, {10, 40}} {
		if err := s.ApplyClassification(pt.X, pt.Y, black, testOpts()); err != nil {
			t.Fatal(err)
		}
	}

	// Two undos return to the state after the first classification.
	for i := 0; i < 2; i++ {
		if !s.Undo() {
			t.Fatalf("undo %d refused", i+1)
		}
	}
	if !bytes.Equal(renderPix(t, s), afterFirst) {
		t.Fatal("mask differs from state after first classification")
	}

	// A third undo returns to the initial all-unmarked state.
	if !s.Undo() {
		t.Fatal("third undo refused")
	}
	if !bytes.Equal(renderPix(t, s), initial) {
		t.Fatal("mask differs from initial state")
	}

	// Further undos are no-ops.
	if s.Undo() {
		t.Fatal("undo past initial snapshot succeeded")
	}
	if !bytes.Equal(renderPix(t, s), initial) {
		t.Fatal("no-op undo changed the mask")
	}
}

func TestApplyClassification_OutsideBounds(t *testing.T) {
	s := New()
	s.Load(testImage())
	before := renderPix(t, s)

	// Window clips to empty: no mutation and no undo step recorded.
	if err := s.ApplyClassification(500, 500, black, testOpts()); err != nil {
		t.Fatalf("apply outside bounds: %v", err)
	}
	if s.CanUndo() {
		t.Fatal("empty-window click must not grow undo history")
	}
	if !bytes.Equal(renderPix(t, s), before) {
		t.Fatal("empty-window click mutated the mask")
	}
}

func TestResetUnmarked_Idempotent(t *testing.T) {
	s := New()
	s.Load(testImage())
	// Click on the dark side: dark pixels marked, white pixels cleared.
	if err := s.ApplyClassification(30, 30, black, testOpts()); err != nil {
		t.Fatal(err)
	}
	marked := s.MarkedCount()
	if marked == 0 {
		t.Fatal("expected marked pixels")
	}

	s.ResetUnmarked()
	once := renderPix(t, s)
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if s.LabelAt(x, y) == segment.LabelCleared {
				t.Fatalf("cleared label survived reset at (%d,%d)", x, y)
			}
		}
	}
	if s.MarkedCount() != marked {
		t.Fatal("reset changed marked pixels")
	}

	s.ResetUnmarked()
	if !bytes.Equal(renderPix(t, s), once) {
		t.Fatal("second reset changed the mask")
	}
}

func TestEraseRegion_RevertsFully(t *testing.T) {
	s := New()
	src := testImage()
	s.Load(src)
	if err := s.ApplyClassification(30, 30, black, testOpts()); err != nil {
		t.Fatal(err)
	}
	before := renderPix(t, s)

	s.EraseRegion(30, 30, 6)
	win := segment.Window(30, 30, 6, s.Bounds())
	after := s.Render()
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			o := after.PixOffset(x, y)
			if image.Pt(x, y).In(win) {
				if s.LabelAt(x, y) != segment.LabelUnmarked {
					t.Fatalf("pixel in erase window not unmarked at (%d,%d)", x, y)
				}
				if !bytes.Equal(after.Pix[o:o+4], src.Pix[o:o+4]) {
					t.Fatalf("erased pixel does not show source at (%d,%d)", x, y)
				}
			} else if !bytes.Equal(after.Pix[o:o+4], before[o:o+4]) {
				t.Fatalf("pixel outside erase window changed at (%d,%d)", x, y)
			}
		}
	}
}

// Erase and reset are direct edits outside the undo history: after an erase,
// undo restores the snapshot taken by the last classification click, not the
// pre-erase state.
func TestEraseAndReset_NotUndoable(t *testing.T) {
	s := New()
	s.Load(testImage())
	initial := renderPix(t, s)

	if err := s.ApplyClassification(10, 10, black, testOpts()); err != nil {
		t.Fatal(err)
	}
	s.EraseRegion(10, 10, 4)
	s.ResetUnmarked()

	if !s.Undo() {
		t.Fatal("undo refused")
	}
	if !bytes.Equal(renderPix(t, s), initial) {
		t.Fatal("undo after erase/reset did not restore the pre-click snapshot")
	}
	if s.Undo() {
		t.Fatal("second undo succeeded with no snapshots left")
	}
}

func TestLoad_ResetsEverything(t *testing.T) {
	s := New()
	s.Load(testImage())
	if err := s.ApplyClassification(10, 10, black, testOpts()); err != nil {
		t.Fatal(err)
	}

	next := image.NewRGBA(image.Rect(0, 0, 8, 12))
	for i := range next.Pix {
		next.Pix[i] = 200
	}
	s.Load(next)

	if s.Bounds() != next.Bounds() {
		t.Fatalf("bounds %v after reload", s.Bounds())
	}
	if s.CanUndo() || s.Undo() {
		t.Fatal("history survived reload")
	}
	if !bytes.Equal(s.Render().Pix, next.Pix) {
		t.Fatal("render differs from new source")
	}
	if s.MarkedCount() != 0 {
		t.Fatal("marks survived reload")
	}
}

func TestOperations_BeforeLoad(t *testing.T) {
	s := New()
	if err := s.ApplyClassification(1, 1, black, testOpts()); err != ErrNoImage {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
	s.EraseRegion(1, 1, 4)
	s.ResetUnmarked()
	if s.Undo() {
		t.Fatal("undo succeeded with no image")
	}
	if s.Render() != nil || s.ExportBinary() != nil {
		t.Fatal("render/export produced output with no image")
	}
}
