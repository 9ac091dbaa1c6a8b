// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package canvas provides the drawing surface editions are composited on.
//
// The surface follows the HTML canvas model: every draw call is rendered on
// its own and then composited onto the surface with the current global alpha
// and composite operation.
//
//	c := canvas.New(1024, 1024)
//	c.Clear()
//	c.SetGlobalAlpha(0.8)
//	c.SetCompositeMode(blend.Multiply)
//	_ = c.DrawImage(img, c.Bounds())
//	_ = c.Encode(w, "png")
package canvas

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/artengine/internal/blend"
)

// Surface is the drawing target of the compositor.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear resets every pixel to transparent and restores the default
	// global alpha and composite operation.
	Clear()

	// FillRect fills r with c.
	FillRect(r image.Rectangle, c color.Color) error

	// DrawImage draws img scaled to dst.
	DrawImage(img image.Image, dst image.Rectangle) error

	// DrawText draws s at (x, y) using the given style.
	DrawText(s string, x, y float64, style TextStyle) error

	// SetGlobalAlpha sets the alpha applied to subsequent draws.
	SetGlobalAlpha(a float64)

	// SetCompositeMode sets the operation used by subsequent draws.
	SetCompositeMode(m blend.Mode)

	// Snapshot returns a copy of the surface contents.
	Snapshot() *image.RGBA

	// Encode writes the surface contents in the given image format.
	Encode(w io.Writer, format string) error
}

// Align is the horizontal text alignment relative to the x coordinate.
type Align string

// Text alignments, named as in the canvas API.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
	AlignStart  Align = "start"
	AlignEnd    Align = "end"
)

// anchor returns the horizontal anchor in [0, 1].
func (a Align) anchor() float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignRight, AlignEnd:
		return 1
	}
	return 0
}

// Baseline is the vertical text alignment relative to the y coordinate.
type Baseline string

// Text baselines, named as in the canvas API.
const (
	BaselineTop         Baseline = "top"
	BaselineHanging     Baseline = "hanging"
	BaselineMiddle      Baseline = "middle"
	BaselineAlphabetic  Baseline = "alphabetic"
	BaselineIdeographic Baseline = "ideographic"
	BaselineBottom      Baseline = "bottom"
)

// TextStyle describes how DrawText renders a string.
type TextStyle struct {
	Color    color.Color
	Size     float64
	Family   string
	Weight   string
	Align    Align
	Baseline Baseline
}
