// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postprocess

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/artengine/internal/imageio"
	"github.com/gogpu/artengine/metadata"
	"github.com/gogpu/artengine/storage"
)

// NamedColor is a reference colour the average colour of an image is
// matched against.
type NamedColor struct {
	Name string
	RGB  color.RGBA
}

// Colour matching used by MetadataFromImages.
var (
	NamedColors = []NamedColor{
		{"Hot Dog", color.RGBA{192, 158, 131, 255}},
		{"Hot Dog", color.RGBA{128, 134, 90, 255}},
		{"Hot Dog", color.RGBA{113, 65, 179, 255}},
		{"Hot Dog", color.RGBA{162, 108, 67, 255}},
	}
	UnnamedColor   = "NOT a Hot Dog"
	ColorTolerance = 15
)

// sampleStride is the distance in pixels between averaged samples.
const sampleStride = 10

// MetadataFromImages replaces build/json with records derived from the
// rendered images alone: the average colour, the matching named colour and
// a random year. It returns the records in edition order.
func (t *Tools) MetadataFromImages(ctx context.Context) ([]metadata.Record, error) {
	files, err := t.Store.ListImages()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoImages
	}

	w, h := t.Config.Format.Width, t.Config.Format.Height
	averages := make([]color.RGBA, len(files))
	sums := make([]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if t.Loader != nil && t.Loader.Limit > 0 {
		g.SetLimit(t.Loader.Limit)
	}
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(f.Path)
			if err != nil {
				return fmt.Errorf("postprocess: %w", err)
			}
			img, err := imageio.LoadBytes(data)
			if err != nil {
				return fmt.Errorf("postprocess: %s: %w", filepath.Base(f.Path), err)
			}
			averages[i] = Average(img, w, h)
			sums[i] = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := t.Store.Recreate(storage.JSONDir); err != nil {
		return nil, err
	}
	base := metadata.Deriver{Config: t.Config.Metadata()}
	records := make([]metadata.Record, 0, len(files))
	for i, f := range files {
		avg := averages[i]
		attrs := []metadata.Attribute{
			{TraitType: "average color", Value: fmt.Sprintf("rgb(%d,%d,%d)", avg.R, avg.G, avg.B)},
			{TraitType: "What is this?", Value: Match(avg)},
			{TraitType: "date", Value: strconv.Itoa(1500 + t.intN(401))},
		}
		d := base
		d.Config.ImageFormat = strings.TrimPrefix(filepath.Ext(f.Path), ".")
		r := d.Derive(sums[i], f.Edition, attrs)
		if err := t.Store.WriteRecord(r); err != nil {
			return nil, err
		}
		t.logger().Info("created metadata for image", "file", filepath.Base(f.Path), "color", attrs[0].Value)
		records = append(records, r)
	}
	if err := t.Store.WriteCollection(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Average stretches img to w x h and averages the straight colour of every
// tenth pixel, starting at the tenth. Channels are truncated.
func Average(img image.Image, w, h int) color.RGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(canvas, canvas.Rect, img, img.Bounds(), draw.Src, nil)

	var r, g, b, n int
	for i := (sampleStride - 1) * 4; i < len(canvas.Pix); i += sampleStride * 4 {
		r += int(canvas.Pix[i])
		g += int(canvas.Pix[i+1])
		b += int(canvas.Pix[i+2])
		n++
	}
	if n == 0 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255}
}

// Match returns the name of the last named colour within ColorTolerance of
// c on every channel, or UnnamedColor.
func Match(c color.RGBA) string {
	name := UnnamedColor
	for _, nc := range NamedColors {
		if near(c.R, nc.RGB.R) && near(c.G, nc.RGB.G) && near(c.B, nc.RGB.B) {
			name = nc.Name
		}
	}
	return name
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d <= ColorTolerance && -d <= ColorTolerance
}
