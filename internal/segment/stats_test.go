package segment

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestWindowStats_UniformRegion(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 40, G: 80, B: 120, A: 255})
		}
	}

	s := WindowStats(img, image.Rect(2, 2, 6, 6))
	if s.Pixels != 16 {
		t.Fatalf("pixels: %d", s.Pixels)
	}
	if s.MeanR != 40 || s.MeanG != 80 || s.MeanB != 120 {
		t.Fatalf("means: %v %v %v", s.MeanR, s.MeanG, s.MeanB)
	}
	if s.StdR != 0 || s.StdG != 0 || s.StdB != 0 {
		t.Fatalf("uniform region has nonzero sigma: %v %v %v", s.StdR, s.StdG, s.StdB)
	}
}

func TestWindowStats_TwoValues(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 100, A: 255})

	s := WindowStats(img, img.Bounds())
	if s.MeanR != 50 {
		t.Fatalf("mean: %v", s.MeanR)
	}
	// Sample standard deviation of {0, 100} is 100/sqrt(2).
	want := 100 / math.Sqrt2
	if math.Abs(s.StdR-want) > 1e-9 {
		t.Fatalf("sigma: got %v, want %v", s.StdR, want)
	}
}

func TestWindowStats_EmptyWindow(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	s := WindowStats(img, image.Rectangle{})
	if s.Pixels != 0 {
		t.Fatalf("expected zero pixels, got %d", s.Pixels)
	}
}
