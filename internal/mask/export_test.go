package mask

import (
	"image"
	"testing"

	"mask-painter/internal/segment"
)

func TestExportBinary_Mapping(t *testing.T) {
	s := New()
	s.Load(testImage())

	// Dark side click: dark pixels in the window become Marked, white ones
	// Cleared. Both Cleared and Unmarked must export as black.
	if err := s.ApplyClassification(30, 30, black, testOpts()); err != nil {
		t.Fatal(err)
	}

	out := s.ExportBinary()
	if out == nil {
		t.Fatal("nil export")
	}
	if out.Bounds() != s.Bounds() {
		t.Fatalf("export bounds %v, want %v", out.Bounds(), s.Bounds())
	}

	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			want := uint8(0)
			if s.LabelAt(x, y) == segment.LabelMarked {
				want = 255
			}
			if got := out.GrayAt(x, y).Y; got != want {
				t.Fatalf("(%d,%d): got %d, want %d (label %v)", x, y, got, want, s.LabelAt(x, y))
			}
		}
	}
}

func TestExportBinary_AllUnmarkedIsBlack(t *testing.T) {
	s := New()
	s.Load(image.NewRGBA(image.Rect(0, 0, 5, 5)))
	out := s.ExportBinary()
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("pixel %d: got %d, want 0", i, v)
		}
	}
}
