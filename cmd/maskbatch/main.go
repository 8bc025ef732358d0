// Command maskbatch carves a binary mask from an image without the GUI.
// Click points are given on the command line as x,y pairs; each point is
// classified exactly like an interactive click.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	segimage "mask-painter/internal/image"
	"mask-painter/internal/imageio"
	"mask-painter/internal/mask"
	"mask-painter/internal/segment"
)

func main() {
	imagePath := flag.String("image", "", "Path to source image (PNG, JPEG, BMP, TIFF, or WebP)")
	outPath := flag.String("out", "mask.png", "Output mask path")
	points := flag.String("points", "", "Click points as x1,y1;x2,y2;...")
	threshold := flag.Float64("threshold", 0, "Color distance threshold (default 300)")
	window := flag.Int("window", 0, "Classification window side length (default 50)")
	commit := flag.Bool("commit", false, "Fold confirmed background back before export")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if *imagePath == "" || *points == "" {
		fmt.Println("Usage: maskbatch -image <path> -points x1,y1;x2,y2 [-out mask.png] [-threshold 300] [-window 50] [-commit]")
		os.Exit(1)
	}

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	clicks, err := parsePoints(*points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -points: %v\n", err)
		os.Exit(1)
	}

	layer, err := segimage.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s image: %dx%d pixels\n", layer.Format, layer.Width(), layer.Height())

	opts := segment.DefaultOptions()
	if *threshold > 0 {
		opts.Threshold = *threshold
	}
	if *window > 0 {
		opts.WindowSize = *window
	}
	fmt.Printf("Threshold: %.0f, window: %d px\n", opts.Threshold, opts.WindowSize)

	state := mask.New()
	state.Load(layer.Image)

	for _, pt := range clicks {
		ref := segment.SampleColor(state.Source(), pt[0], pt[1])
		if err := state.ApplyClassification(pt[0], pt[1], ref, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Classification at (%d, %d) failed: %v\n", pt[0], pt[1], err)
			os.Exit(1)
		}
		log.WithFields(logrus.Fields{
			"x": pt[0], "y": pt[1], "color": ref,
		}).Debug("Point classified")
	}
	fmt.Printf("Classified %d points, %d pixels marked\n", len(clicks), state.MarkedCount())

	if *commit {
		state.ResetUnmarked()
	}

	writer := imageio.NewMaskWriter(log)
	if err := writer.Save(state.ExportBinary(), *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save mask: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Mask written to %s\n", *outPath)
}

// parsePoints parses "x1,y1;x2,y2" into integer pairs.
func parsePoints(s string) ([][2]int, error) {
	var pts [][2]int
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		xy := strings.Split(part, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("expected x,y pair, got %q", part)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xy[0]))
		if err != nil {
			return nil, err
		}
		y, err := strconv.Atoi(strings.TrimSpace(xy[1]))
		if err != nil {
			return nil, err
		}
		pts = append(pts, [2]int{x, y})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("no points given")
	}
	return pts, nil
}
