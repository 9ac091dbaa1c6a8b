// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/artengine/canvas"
	"github.com/gogpu/artengine/dna"
	"github.com/gogpu/artengine/layer"
	"github.com/gogpu/artengine/metadata"
)

// ErrNoSurface is returned by Render when the Compositor has no Surface.
var ErrNoSurface = errors.New("render: no surface")

// FrameSink receives a snapshot of the surface after every layer draw.
// giffer.Encoder implements it.
type FrameSink interface {
	Add(frame image.Image)
}

// Compositor renders editions onto Surface.
type Compositor struct {
	Surface    canvas.Surface
	Strategy   Strategy
	Background Background
	Rand       dna.Rand
	Logger     *slog.Logger
}

// Render draws the edition encoded by raw onto the surface and returns one
// attribute per layer, in layer order.
func (c *Compositor) Render(ctx context.Context, raw string, layers []layer.Layer) ([]metadata.Attribute, error) {
	return c.RenderFrames(ctx, raw, layers, nil)
}

// RenderFrames is Render with a frame captured into sink after each layer.
// A nil sink captures nothing.
func (c *Compositor) RenderFrames(ctx context.Context, raw string, layers []layer.Layer, sink FrameSink) ([]metadata.Attribute, error) {
	if c.Surface == nil {
		return nil, ErrNoSurface
	}
	sels, err := dna.Resolve(raw, layers)
	if err != nil {
		return nil, err
	}
	strategy := c.Strategy
	if strategy == nil {
		strategy = ImageStrategy{}
	}
	items, err := strategy.Prepare(ctx, sels)
	if err != nil {
		return nil, err
	}

	s := c.Surface
	s.Clear()
	if err := c.Background.Draw(s, c.Rand); err != nil {
		return nil, fmt.Errorf("render: background: %w", err)
	}

	attrs := make([]metadata.Attribute, 0, len(items))
	for i, item := range items {
		s.SetGlobalAlpha(item.Selection.Opacity)
		s.SetCompositeMode(item.Selection.Blend)
		if err := strategy.Draw(s, item, i); err != nil {
			return nil, fmt.Errorf("render: layer %q: %w", item.Selection.Layer, err)
		}
		if sink != nil {
			sink.Add(s.Snapshot())
		}
		attrs = append(attrs, metadata.Attribute{
			TraitType: item.Selection.Layer,
			Value:     item.Selection.Element.Name,
		})
	}
	c.logger().Debug("render: edition composited", "layers", len(attrs))
	return attrs, nil
}

func (c *Compositor) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func fullRect(s canvas.Surface) image.Rectangle {
	return image.Rect(0, 0, s.Width(), s.Height())
}
