// Package imageio writes exported masks to disk. The segmentation core
// never performs file I/O; this package is the shell-side sink for it.
package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// MaskWriter persists binary masks in standard raster formats.
type MaskWriter struct {
	log *logrus.Logger
}

// NewMaskWriter returns a writer that logs through the given logger.
func NewMaskWriter(log *logrus.Logger) *MaskWriter {
	return &MaskWriter{log: log}
}

// Save writes the mask to path. The format is chosen by extension: WebP is
// encoded natively, everything else goes through OpenCV's image writer.
func (w *MaskWriter) Save(mask *image.Gray, path string) error {
	if mask == nil {
		return fmt.Errorf("no mask to save")
	}

	ext := strings.ToLower(filepath.Ext(path))
	var err error
	switch ext {
	case ".webp":
		err = w.saveWebP(mask, path)
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		err = w.saveCV(mask, path)
	default:
		return fmt.Errorf("unsupported mask format %q", ext)
	}
	if err != nil {
		return err
	}

	w.log.WithFields(logrus.Fields{
		"path":   path,
		"width":  mask.Bounds().Dx(),
		"height": mask.Bounds().Dy(),
	}).Info("Mask saved")
	return nil
}

func (w *MaskWriter) saveWebP(mask *image.Gray, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create mask file: %w", err)
	}
	defer f.Close()

	// The encoder works on RGBA-style rasters; expand the single channel.
	rgba := image.NewNRGBA(mask.Bounds())
	draw.Draw(rgba, rgba.Bounds(), mask, mask.Bounds().Min, draw.Src)

	if err := nativewebp.Encode(f, rgba, nil); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}
	return nil
}

func (w *MaskWriter) saveCV(mask *image.Gray, path string) error {
	mat, err := gocv.ImageGrayToMatGray(mask)
	if err != nil {
		return fmt.Errorf("mask to mat: %w", err)
	}
	defer mat.Close()

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to write mask: %s", path)
	}
	return nil
}
