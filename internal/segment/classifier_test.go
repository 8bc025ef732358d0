package segment

import (
	"image"
	"image/color"
	"testing"
)

func fillRGBA(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func TestClassify_ThresholdBoundary(t *testing.T) {
	ref := color.RGBA{R: 0, G: 0, B: 0, A: 255}

	// distance((0,0,0),(10,10,10)) ~= 17.3 < 300 -> marked
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fillRGBA(img, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	labels := Classify(img, img.Bounds(), ref, 300)
	for i, l := range labels {
		if l != LabelMarked {
			t.Fatalf("pixel %d: got %v, want marked", i, l)
		}
	}

	// distance((0,0,0),(255,255,255)) ~= 441.7 >= 300 -> cleared
	fillRGBA(img, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	labels = Classify(img, img.Bounds(), ref, 300)
	for i, l := range labels {
		if l != LabelCleared {
			t.Fatalf("pixel %d: got %v, want cleared", i, l)
		}
	}
}

func TestClassify_StrictInequality(t *testing.T) {
	// distance((0,0,0),(100,0,0)) is exactly 100; with threshold 100 the
	// pixel must not match.
	ref := color.RGBA{A: 255}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 100, A: 255})

	labels := Classify(img, img.Bounds(), ref, 100)
	if labels[0] != LabelCleared {
		t.Fatalf("distance == threshold must be cleared, got %v", labels[0])
	}
	labels = Classify(img, img.Bounds(), ref, 100.001)
	if labels[0] != LabelMarked {
		t.Fatalf("distance < threshold must be marked, got %v", labels[0])
	}
}

func TestClassify_RowMajorAndLength(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	fillRGBA(img, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	// Single dark pixel inside the window.
	img.SetRGBA(6, 5, color.RGBA{A: 255})

	win := image.Rect(4, 4, 8, 8)
	ref := color.RGBA{A: 255} // black reference
	labels := Classify(img, win, ref, 300)

	if len(labels) != win.Dx()*win.Dy() {
		t.Fatalf("expected %d labels, got %d", win.Dx()*win.Dy(), len(labels))
	}
	for i, l := range labels {
		x := win.Min.X + i%win.Dx()
		y := win.Min.Y + i/win.Dx()
		want := LabelCleared
		if x == 6 && y == 5 {
			want = LabelMarked
		}
		if l != want {
			t.Fatalf("label at (%d,%d): got %v, want %v", x, y, l, want)
		}
	}
}
