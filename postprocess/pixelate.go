// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postprocess

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/gogpu/artengine/internal/imageio"
	"github.com/gogpu/artengine/storage"
)

// Pixelate writes a pixelated copy of every edition image to
// build/pixel_images and returns the written paths. ratio is the size of
// the intermediate image relative to the source image, in (0, 1].
func (t *Tools) Pixelate(ctx context.Context, ratio float64) ([]string, error) {
	if ratio <= 0 || ratio > 1 {
		return nil, fmt.Errorf("postprocess: pixel ratio %v out of (0, 1]", ratio)
	}
	files, imgs, err := t.images(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.Store.Recreate(storage.PixelImagesDir); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(files))
	for i, f := range files {
		name, format := outputName(filepath.Base(f.Path))
		path := t.Store.Path(storage.PixelImagesDir, name)
		px := Pixelated(imgs[i], ratio)
		err := storage.WriteFile(path, func(w io.Writer) error {
			return imageio.Encode(w, px, format)
		})
		if err != nil {
			return out, err
		}
		t.logger().Info("pixelated image", "file", name)
		out = append(out, path)
	}
	return out, nil
}

// Pixelated scales src down by ratio and back up with nearest-neighbour
// sampling.
func Pixelated(src image.Image, ratio float64) *image.RGBA {
	b := src.Bounds()
	small := image.NewRGBA(image.Rect(0, 0,
		max(1, int(math.Round(float64(b.Dx())*ratio))),
		max(1, int(math.Round(float64(b.Dy())*ratio)))))
	draw.NearestNeighbor.Scale(small, small.Bounds(), src, b, draw.Src, nil)

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)
	return dst
}

// outputName keeps name when its format can be written and falls back to
// PNG otherwise.
func outputName(name string) (string, string) {
	ext := filepath.Ext(name)
	switch format := strings.ToLower(strings.TrimPrefix(ext, ".")); format {
	case "png", "jpg", "jpeg":
		return name, format
	}
	return strings.TrimSuffix(name, ext) + ".png", "png"
}
