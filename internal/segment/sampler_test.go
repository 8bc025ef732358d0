package segment

import (
	"image"
	"image/color"
	"testing"
)

func TestSampleColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	want := color.RGBA{R: 12, G: 34, B: 56, A: 255}
	img.SetRGBA(3, 7, want)

	if got := SampleColor(img, 3, 7); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSampleColor_ClampsOutOfRange(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	corner := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	img.SetRGBA(3, 3, corner)

	if got := SampleColor(img, 99, 99); got != corner {
		t.Fatalf("expected clamp to corner pixel, got %v", got)
	}
	if got := SampleColor(img, -5, -5); got != img.RGBAAt(0, 0) {
		t.Fatalf("expected clamp to origin pixel, got %v", got)
	}
}
