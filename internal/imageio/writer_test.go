package imageio

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSave_NilMask(t *testing.T) {
	w := NewMaskWriter(testLogger())
	if err := w.Save(nil, "mask.png"); err == nil {
		t.Fatal("expected error for nil mask")
	}
}

func TestSave_UnsupportedExtension(t *testing.T) {
	w := NewMaskWriter(testLogger())
	mask := image.NewGray(image.Rect(0, 0, 2, 2))
	if err := w.Save(mask, "mask.xyz"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestSave_WebP(t *testing.T) {
	w := NewMaskWriter(testLogger())
	mask := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range mask.Pix {
		if i%2 == 0 {
			mask.Pix[i] = 255
		}
	}

	path := filepath.Join(t.TempDir(), "mask.webp")
	if err := w.Save(mask, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("empty mask file")
	}
}
