// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package giffer records animated GIFs of editions being composited, one
// frame per drawn layer.
package giffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

// ErrNoFrames is returned by Encode when no frame was added.
var ErrNoFrames = errors.New("giffer: no frames")

// Encoder accumulates frames and encodes them as one animated GIF.
type Encoder struct {
	width, height int
	colors        int
	delay         int // 1/100 s
	anim          gif.GIF
}

// New returns an encoder for frames of the given size.
//
// repeat follows GIF loop-count semantics: 0 loops forever, -1 plays once,
// n > 0 repeats n times. quality in [1, 100] selects the palette size, 100
// being the full 256 colours. delayMs is the per-frame delay.
func New(width, height, repeat, quality, delayMs int) *Encoder {
	quality = min(max(quality, 1), 100)
	return &Encoder{
		width:  width,
		height: height,
		colors: max(2, 256*quality/100),
		delay:  max(delayMs/10, 0),
		anim:   gif.GIF{LoopCount: repeat},
	}
}

// Add quantises img and appends it as the next frame.
func (e *Encoder) Add(img image.Image) {
	r := image.Rect(0, 0, e.width, e.height)
	frame := image.NewPaletted(r, Palette(img, e.colors))
	draw.FloydSteinberg.Draw(frame, r, img, img.Bounds().Min)
	e.anim.Image = append(e.anim.Image, frame)
	e.anim.Delay = append(e.anim.Delay, e.delay)
}

// Len returns the number of frames added.
func (e *Encoder) Len() int { return len(e.anim.Image) }

// Encode writes the animation.
func (e *Encoder) Encode(w io.Writer) error {
	if len(e.anim.Image) == 0 {
		return ErrNoFrames
	}
	if err := gif.EncodeAll(w, &e.anim); err != nil {
		return fmt.Errorf("giffer: encode: %w", err)
	}
	return nil
}

// Palette returns up to n colours of img chosen by median cut, each the
// mean of the pixels in its box.
func Palette(img image.Image, n int) color.Palette {
	pal := quantize.MedianCutQuantizer{}.Quantize(make(color.Palette, 0, max(n, 1)), img)
	if len(pal) == 0 {
		pal = append(pal, color.Black)
	}
	return pal
}
