// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"fmt"
	"image"

	"github.com/gogpu/artengine/canvas"
	"github.com/gogpu/artengine/dna"
)

// Item is one selected element ready to be drawn.
type Item struct {
	Selection dna.Selection
	Image     image.Image // nil for strategies that do not draw images
}

// Strategy draws the selected elements of an edition.
type Strategy interface {
	// Prepare turns selections into drawable items. It may do I/O.
	Prepare(ctx context.Context, sels []dna.Selection) ([]Item, error)

	// Draw draws the item of the layer at index onto s. The global alpha and
	// composite mode are already set.
	Draw(s canvas.Surface, item Item, index int) error
}

// ImageStrategy draws each element image stretched to the whole surface.
type ImageStrategy struct {
	Loader *Loader
}

// Prepare implements Strategy.
func (st ImageStrategy) Prepare(ctx context.Context, sels []dna.Selection) ([]Item, error) {
	paths := make([]string, len(sels))
	for i, s := range sels {
		paths[i] = s.Element.Path
	}
	imgs, err := st.Loader.Load(ctx, paths)
	if err != nil {
		return nil, err
	}
	items := make([]Item, len(sels))
	for i := range sels {
		items[i] = Item{Selection: sels[i], Image: imgs[i]}
	}
	return items, nil
}

// Draw implements Strategy.
func (ImageStrategy) Draw(s canvas.Surface, item Item, _ int) error {
	if item.Image == nil {
		return fmt.Errorf("render: layer %q: no image loaded", item.Selection.Layer)
	}
	return s.DrawImage(item.Image, image.Rect(0, 0, s.Width(), s.Height()))
}

// TextStrategy writes the layer and element names instead of drawing images.
// Layer i is written at (XGap, YGap*(i+1)).
type TextStrategy struct {
	Style  canvas.TextStyle
	XGap   float64
	YGap   float64
	Spacer string
}

// Prepare implements Strategy. No files are read.
func (TextStrategy) Prepare(_ context.Context, sels []dna.Selection) ([]Item, error) {
	items := make([]Item, len(sels))
	for i := range sels {
		items[i] = Item{Selection: sels[i]}
	}
	return items, nil
}

// Label returns the text drawn for an item.
func (st TextStrategy) Label(item Item) string {
	return item.Selection.Layer + st.Spacer + item.Selection.Element.Name
}

// Draw implements Strategy.
func (st TextStrategy) Draw(s canvas.Surface, item Item, index int) error {
	return s.DrawText(st.Label(item), st.XGap, st.YGap*float64(index+1), st.Style)
}
