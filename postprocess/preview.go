// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postprocess

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/artengine/giffer"
	"github.com/gogpu/artengine/internal/imageio"
	"github.com/gogpu/artengine/storage"
)

// Preview draws a thumbnail of every edition of the collection, in
// collection order, into one montage and writes it under the build
// directory. It returns the written path.
func (t *Tools) Preview(ctx context.Context) (string, error) {
	records, err := t.Store.ReadCollection()
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", ErrNoImages
	}
	paths := make([]string, len(records))
	for i, r := range records {
		paths[i] = t.Store.ImagePath(r.Edition, t.Config.ImageFormat)
	}
	imgs, err := t.Loader.Load(ctx, paths)
	if err != nil {
		return "", err
	}

	p := t.Config.Preview
	thumbW := p.ThumbWidth
	thumbH := max(1, int(math.Round(float64(thumbW)*t.Config.PreviewRatio())))
	rows := (len(imgs) + p.ThumbPerRow - 1) / p.ThumbPerRow
	montage := image.NewRGBA(image.Rect(0, 0, thumbW*p.ThumbPerRow, thumbH*rows))
	t.logger().Info("preparing preview",
		"width", montage.Rect.Dx(), "height", montage.Rect.Dy(), "thumbnails", len(imgs))

	for i, img := range imgs {
		x := thumbW * (i % p.ThumbPerRow)
		y := thumbH * (i / p.ThumbPerRow)
		cell := image.Rect(x, y, x+thumbW, y+thumbH)
		draw.CatmullRom.Scale(montage, cell, img, img.Bounds(), draw.Over, nil)
	}

	path := t.Store.Path(p.ImageName)
	err = storage.WriteFile(path, func(w io.Writer) error {
		return imageio.Encode(w, montage, "png")
	})
	if err != nil {
		return "", err
	}
	t.logger().Info("preview written", "path", path)
	return path, nil
}

// PreviewGIF animates the first configured number of edition images in
// ASC, DESC or MIXED order and writes the GIF under the build directory. It
// returns the written path.
func (t *Tools) PreviewGIF(ctx context.Context) (string, error) {
	files, err := t.Store.ListImages()
	if err != nil {
		return "", err
	}
	p := t.Config.PreviewGIF
	if len(files) < p.NumberOfImages {
		return "", fmt.Errorf("%w: have %d, want %d", ErrNotEnoughImages, len(files), p.NumberOfImages)
	}

	switch p.Order {
	case "DESC":
		for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
			files[i], files[j] = files[j], files[i]
		}
	case "MIXED":
		t.shuffle(len(files), func(i, j int) { files[i], files[j] = files[j], files[i] })
	}
	files = files[:p.NumberOfImages]

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	imgs, err := t.Loader.Load(ctx, paths)
	if err != nil {
		return "", err
	}

	w, h := t.Config.Format.Width, t.Config.Format.Height
	t.logger().Info("preparing preview gif", "width", w, "height", h, "images", len(imgs))
	enc := giffer.New(w, h, p.Repeat, p.Quality, p.Delay)
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, img := range imgs {
		draw.CatmullRom.Scale(frame, frame.Rect, img, img.Bounds(), draw.Src, nil)
		enc.Add(frame)
	}

	path := t.Store.Path(p.ImageName)
	if err := storage.WriteFile(path, enc.Encode); err != nil {
		return "", err
	}
	t.logger().Info("preview gif written", "path", path)
	return path, nil
}
