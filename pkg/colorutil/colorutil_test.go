package colorutil

import (
	"image/color"
	"math"
	"testing"
)

func TestToRGBA_PassthroughAndConvert(t *testing.T) {
	in := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	if got := ToRGBA(in); got != in {
		t.Fatalf("RGBA passthrough changed value: %v", got)
	}

	gray := color.Gray{Y: 128}
	got := ToRGBA(gray)
	if got.R != 128 || got.G != 128 || got.B != 128 {
		t.Fatalf("gray conversion wrong: %v", got)
	}
}

func TestRGBToHSV_Primaries(t *testing.T) {
	// Pure red: H=0, S=255, V=255
	h, s, v := RGBToHSV(255, 0, 0)
	if h != 0 || s != 255 || v != 255 {
		t.Fatalf("red: got h=%v s=%v v=%v", h, s, v)
	}

	// Pure green: H=60 in OpenCV's 0-180 range
	h, _, _ = RGBToHSV(0, 255, 0)
	if math.Abs(h-60) > 1e-9 {
		t.Fatalf("green hue: got %v, want 60", h)
	}

	// Gray: no saturation, hue 0
	h, s, _ = RGBToHSV(100, 100, 100)
	if h != 0 || s != 0 {
		t.Fatalf("gray: got h=%v s=%v", h, s)
	}
}
