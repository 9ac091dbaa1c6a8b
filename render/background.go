// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"
	"math"

	"github.com/gogpu/artengine/canvas"
	"github.com/gogpu/artengine/dna"
)

// Background fills the surface before the first layer is drawn.
type Background struct {
	Generate  bool        // draw a background at all
	Static    bool        // use Default instead of a random pastel
	Default   color.Color // static colour
	Lightness float64     // lightness of generated pastels, in [0, 1]
}

// Color returns the colour of the next edition's background. A pastel hue is
// an integer drawn uniformly from [0, 360).
func (b Background) Color(r dna.Rand) color.Color {
	if b.Static {
		if b.Default == nil {
			return color.Black
		}
		return b.Default
	}
	var hue float64
	if r != nil {
		hue = math.Floor(r.Float64() * 360)
	}
	return canvas.Pastel(hue, b.Lightness)
}

// Draw fills s when Generate is set.
func (b Background) Draw(s canvas.Surface, r dna.Rand) error {
	if !b.Generate {
		return nil
	}
	return s.FillRect(fullRect(s), b.Color(r))
}
