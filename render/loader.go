// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/artengine/internal/imageio"
)

// Loader decodes image files concurrently.
type Loader struct {
	// Limit caps concurrent decodes; 0 means one goroutine per file.
	Limit int

	// Decode reads one file. Defaults to imageio.Load.
	Decode func(path string) (image.Image, error)
}

// Load decodes every path and returns the images in the same order. The
// first failure cancels the remaining loads and is returned.
func (l *Loader) Load(ctx context.Context, paths []string) ([]image.Image, error) {
	decode := imageio.Load
	if l != nil && l.Decode != nil {
		decode = l.Decode
	}
	out := make([]image.Image, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if l != nil && l.Limit > 0 {
		g.SetLimit(l.Limit)
	}
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decode(p)
			if err != nil {
				return fmt.Errorf("render: load %s: %w", p, err)
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
