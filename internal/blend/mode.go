// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package blend implements the composite operations of an HTML canvas
// (globalCompositeOperation) on premultiplied RGBA pixels.
//
// Porter-Duff operators follow "Compositing Digital Images" (1984); the
// separable and non-separable blend modes follow W3C Compositing and
// Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned by ParseMode for names that are not canvas
// composite operations.
var ErrUnknownMode = errors.New("blend: unknown composite operation")

// Mode is a canvas composite operation.
type Mode uint8

// Porter-Duff operators.
const (
	SourceOver Mode = iota
	SourceIn
	SourceOut
	SourceAtop
	DestinationOver
	DestinationIn
	DestinationOut
	DestinationAtop
	Lighter
	Copy
	Xor

	// Separable blend modes. Compositing is always source-over.
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion

	// Non-separable blend modes.
	Hue
	Saturation
	Color
	Luminosity

	modeCount
)

var modeNames = [modeCount]string{
	SourceOver:      "source-over",
	SourceIn:        "source-in",
	SourceOut:       "source-out",
	SourceAtop:      "source-atop",
	DestinationOver: "destination-over",
	DestinationIn:   "destination-in",
	DestinationOut:  "destination-out",
	DestinationAtop: "destination-atop",
	Lighter:         "lighter",
	Copy:            "copy",
	Xor:             "xor",
	Multiply:        "multiply",
	Screen:          "screen",
	Overlay:         "overlay",
	Darken:          "darken",
	Lighten:         "lighten",
	ColorDodge:      "color-dodge",
	ColorBurn:       "color-burn",
	HardLight:       "hard-light",
	SoftLight:       "soft-light",
	Difference:      "difference",
	Exclusion:       "exclusion",
	Hue:             "hue",
	Saturation:      "saturation",
	Color:           "color",
	Luminosity:      "luminosity",
}

// String returns the canvas name of the operation, e.g. "source-over".
func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode maps a canvas composite operation name to a Mode.
// The empty string and "normal" select source-over.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "normal":
		return SourceOver, nil
	}
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return SourceOver, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Names lists every supported operation name in declaration order.
func Names() []string {
	out := make([]string, len(modeNames))
	copy(out, modeNames[:])
	return out
}

// Pixel is a premultiplied RGBA sample.
type Pixel struct {
	R, G, B, A uint8
}

// Func composites src onto dst and returns the result.
// Both inputs and the output are premultiplied.
type Func func(src, dst Pixel) Pixel

// Func returns the pixel function for m. Unknown modes fall back to source-over.
func (m Mode) Func() Func {
	switch m {
	case SourceOver:
		return sourceOver
	case SourceIn:
		return sourceIn
	case SourceOut:
		return sourceOut
	case SourceAtop:
		return sourceAtop
	case DestinationOver:
		return destinationOver
	case DestinationIn:
		return destinationIn
	case DestinationOut:
		return destinationOut
	case DestinationAtop:
		return destinationAtop
	case Lighter:
		return lighter
	case Copy:
		return copySource
	case Xor:
		return xor
	case Multiply:
		return separable(multiply)
	case Screen:
		return separable(screen)
	case Overlay:
		return separable(overlay)
	case Darken:
		return separable(darken)
	case Lighten:
		return separable(lighten)
	case ColorDodge:
		return separable(colorDodge)
	case ColorBurn:
		return separable(colorBurn)
	case HardLight:
		return separable(hardLight)
	case SoftLight:
		return separable(softLight)
	case Difference:
		return separable(difference)
	case Exclusion:
		return separable(exclusion)
	case Hue:
		return nonSeparable(hue)
	case Saturation:
		return nonSeparable(saturation)
	case Color:
		return nonSeparable(colorMode)
	case Luminosity:
		return nonSeparable(luminosity)
	default:
		return sourceOver
	}
}
