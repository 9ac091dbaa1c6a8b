// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// ErrBadColor is returned by ParseColor.
var ErrBadColor = errors.New("canvas: invalid color")

// ParseColor parses a CSS-like colour: "#rgb", "#rrggbb", "#rrggbbaa" or
// "hsl(h, s%, l%)".
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(s)
	if args, ok := strings.CutPrefix(strings.ToLower(s), "hsl("); ok {
		args, ok = strings.CutSuffix(args, ")")
		if !ok {
			return gg.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		parts := strings.Split(args, ",")
		if len(parts) != 3 {
			return gg.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		h, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		sat, err2 := ParsePercent(parts[1])
		l, err3 := ParsePercent(parts[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return gg.RGBA{}, fmt.Errorf("%w: %q: %w", ErrBadColor, s, err)
		}
		return gg.HSL(h, sat, l), nil
	}
	c, err := gg.ParseHex(s)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("%w: %q: %w", ErrBadColor, s, err)
	}
	return c, nil
}

// ParsePercent parses "80%" or "0.8" into a fraction in [0, 1].
func ParsePercent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, pct := strings.CutSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("canvas: percent %q: %w", s, err)
	}
	if pct {
		f /= 100
	}
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("canvas: percent %q out of range", s)
	}
	return f, nil
}

// Pastel returns the background colour of a generated edition: the given
// hue at full saturation and the given lightness.
func Pastel(hue, lightness float64) color.Color {
	return gg.HSL(hue, 1, lightness).Color()
}
