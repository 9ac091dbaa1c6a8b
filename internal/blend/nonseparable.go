// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package blend

import "math"

type rgb struct{ r, g, b float64 }

// rgbFunc is a non-separable blend function B(Cb, Cs) on unpremultiplied
// colours; b is the backdrop and s the source.
type rgbFunc func(b, s rgb) rgb

func nonSeparable(fn rgbFunc) Func {
	return func(s, d Pixel) Pixel {
		if s.A == 0 {
			return d
		}
		if d.A == 0 {
			return s
		}
		sa, da := toUnit(s.A), toUnit(d.A)
		cs := rgb{clampUnit(toUnit(s.R) / sa), clampUnit(toUnit(s.G) / sa), clampUnit(toUnit(s.B) / sa)}
		cb := rgb{clampUnit(toUnit(d.R) / da), clampUnit(toUnit(d.G) / da), clampUnit(toUnit(d.B) / da)}
		mixed := fn(cb, cs)
		mix := func(sc, dc uint8, bc float64) uint8 {
			return fromUnit((1-sa)*toUnit(dc) + (1-da)*toUnit(sc) + sa*da*bc)
		}
		return Pixel{
			R: mix(s.R, d.R, mixed.r),
			G: mix(s.G, d.G, mixed.g),
			B: mix(s.B, d.B, mixed.b),
			A: fromUnit(sa + da*(1-sa)),
		}
	}
}

func hue(b, s rgb) rgb { return setLum(setSat(s, sat(b)), lum(b)) }

func saturation(b, s rgb) rgb { return setLum(setSat(b, sat(s)), lum(b)) }

func colorMode(b, s rgb) rgb { return setLum(s, lum(b)) }

func luminosity(b, s rgb) rgb { return setLum(b, lum(s)) }

// lum uses the BT.601 weights from the W3C definition.
func lum(c rgb) float64 { return 0.3*c.r + 0.59*c.g + 0.11*c.b }

func sat(c rgb) float64 {
	return math.Max(c.r, math.Max(c.g, c.b)) - math.Min(c.r, math.Min(c.g, c.b))
}

func setLum(c rgb, l float64) rgb {
	d := l - lum(c)
	return clipColor(rgb{c.r + d, c.g + d, c.b + d})
}

func clipColor(c rgb) rgb {
	l := lum(c)
	n := math.Min(c.r, math.Min(c.g, c.b))
	x := math.Max(c.r, math.Max(c.g, c.b))
	if n < 0 && l != n {
		c = rgb{l + (c.r-l)*l/(l-n), l + (c.g-l)*l/(l-n), l + (c.b-l)*l/(l-n)}
	}
	if x > 1 && x != l {
		c = rgb{l + (c.r-l)*(1-l)/(x-l), l + (c.g-l)*(1-l)/(x-l), l + (c.b-l)*(1-l)/(x-l)}
	}
	return c
}

// setSat scales the mid component into [0, s] keeping the channel order.
func setSat(c rgb, s float64) rgb {
	ch := [3]*float64{&c.r, &c.g, &c.b}
	// order indices by value: lo, mid, hi
	lo, mid, hi := 0, 1, 2
	if *ch[lo] > *ch[mid] {
		lo, mid = mid, lo
	}
	if *ch[mid] > *ch[hi] {
		mid, hi = hi, mid
	}
	if *ch[lo] > *ch[mid] {
		lo, mid = mid, lo
	}
	if *ch[hi] > *ch[lo] {
		*ch[mid] = (*ch[mid] - *ch[lo]) * s / (*ch[hi] - *ch[lo])
		*ch[hi] = s
	} else {
		*ch[mid], *ch[hi] = 0, 0
	}
	*ch[lo] = 0
	return c
}
