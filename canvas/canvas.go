// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/gogpu/artengine/internal/blend"
)

// ErrUnsupportedFormat is returned by Encode for unknown output formats.
var ErrUnsupportedFormat = errors.New("canvas: unsupported output format")

// JPEGQuality is the quality Encode uses for "jpeg".
const JPEGQuality = 92

// Canvas is a CPU Surface backed by a gg.Pixmap.
type Canvas struct {
	base  *gg.Pixmap // composited result, premultiplied RGBA
	layer *gg.Pixmap // scratch target of the current draw call
	ctx   *gg.Context
	img   *image.RGBA // scratch target of scaled images

	alpha     float64
	mode      blend.Mode
	smoothing bool
	fonts     *Fonts
}

var _ Surface = (*Canvas)(nil)

// Option configures a Canvas.
type Option func(*Canvas)

// WithSmoothing scales drawn images with Catmull-Rom instead of
// nearest-neighbour.
func WithSmoothing(on bool) Option {
	return func(c *Canvas) { c.smoothing = on }
}

// WithFonts sets the font resolver used by DrawText.
func WithFonts(f *Fonts) Option {
	return func(c *Canvas) { c.fonts = f }
}

// New returns a transparent canvas of the given size.
func New(width, height int, opts ...Option) *Canvas {
	layer := gg.NewPixmap(width, height)
	c := &Canvas{
		base:  gg.NewPixmap(width, height),
		layer: layer,
		ctx:   gg.NewContextForPixmap(layer),
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		alpha: 1,
		mode:  blend.SourceOver,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fonts == nil {
		c.fonts = NewFonts(nil, false, "")
	}
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.base.Width() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.base.Height() }

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.base.Bounds() }

// Clear implements Surface.
func (c *Canvas) Clear() {
	c.base.Clear(gg.Transparent)
	c.base.NotifyPixelsChanged()
	c.alpha = 1
	c.mode = blend.SourceOver
}

// SetGlobalAlpha implements Surface. Values are clamped to [0, 1].
func (c *Canvas) SetGlobalAlpha(a float64) {
	c.alpha = min(max(a, 0), 1)
}

// GlobalAlpha returns the current global alpha.
func (c *Canvas) GlobalAlpha() float64 { return c.alpha }

// SetCompositeMode implements Surface.
func (c *Canvas) SetCompositeMode(m blend.Mode) { c.mode = m }

// CompositeMode returns the current composite operation.
func (c *Canvas) CompositeMode() blend.Mode { return c.mode }

// FillRect implements Surface.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) error {
	c.layer.Clear(gg.Transparent)
	c.ctx.SetColor(col)
	c.ctx.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	if err := c.ctx.Fill(); err != nil {
		return fmt.Errorf("canvas: fill rect: %w", err)
	}
	return c.composite(c.layer.Data())
}

// DrawImage implements Surface.
func (c *Canvas) DrawImage(img image.Image, dst image.Rectangle) error {
	clear(c.img.Pix)
	var scaler draw.Scaler = draw.NearestNeighbor
	if c.smoothing {
		scaler = draw.CatmullRom
	}
	scaler.Scale(c.img, dst, img, img.Bounds(), draw.Src, nil)
	return c.composite(c.img.Pix)
}

// DrawText implements Surface.
func (c *Canvas) DrawText(s string, x, y float64, style TextStyle) error {
	face, err := c.fonts.Face(style.Family, style.Weight, style.Size)
	if err != nil {
		return err
	}
	col := style.Color
	if col == nil {
		col = color.Black
	}
	c.layer.Clear(gg.Transparent)
	c.ctx.SetFont(face)
	c.ctx.SetColor(col)
	ax := style.Align.anchor()
	switch style.Baseline {
	case BaselineAlphabetic, "":
		w, _ := c.ctx.MeasureString(s)
		c.ctx.DrawString(s, x-w*ax, y)
	case BaselineMiddle:
		c.ctx.DrawStringAnchored(s, x, y, ax, 0.5)
	case BaselineBottom, BaselineIdeographic:
		c.ctx.DrawStringAnchored(s, x, y, ax, 1)
	default:
		c.ctx.DrawStringAnchored(s, x, y, ax, 0)
	}
	return c.composite(c.layer.Data())
}

func (c *Canvas) composite(src []uint8) error {
	if err := blend.Composite(c.base.Data(), src, c.mode, c.alpha); err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	c.base.NotifyPixelsChanged()
	return nil
}

// Snapshot implements Surface.
func (c *Canvas) Snapshot() *image.RGBA { return c.base.ToImage() }

// Encode implements Surface. Supported formats are "png" and "jpeg".
func (c *Canvas) Encode(w io.Writer, format string) error {
	switch format {
	case "png":
		return c.base.EncodePNG(w)
	case "jpeg", "jpg":
		return c.base.EncodeJPEG(w, JPEGQuality)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
