// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package blend

import "math"

// channelFunc is a separable blend function B(Cb, Cs) on unpremultiplied
// channel values in [0, 1]; b is the backdrop and s the source.
type channelFunc func(b, s float64) float64

// separable wraps a channel function in the W3C general formula
//
//	Co = (1 - Sa)*D + (1 - Da)*S + Sa*Da*B(Cb, Cs)
//	Ao = Sa + Da*(1 - Sa)
//
// where S and D are premultiplied and Cs, Cb are unpremultiplied.
func separable(fn channelFunc) Func {
	return func(s, d Pixel) Pixel {
		if s.A == 0 {
			return d
		}
		if d.A == 0 {
			return s
		}
		sa, da := toUnit(s.A), toUnit(d.A)
		mix := func(sc, dc uint8) uint8 {
			cs := clampUnit(toUnit(sc) / sa)
			cb := clampUnit(toUnit(dc) / da)
			return fromUnit((1-sa)*toUnit(dc) + (1-da)*toUnit(sc) + sa*da*fn(cb, cs))
		}
		return Pixel{
			R: mix(s.R, d.R),
			G: mix(s.G, d.G),
			B: mix(s.B, d.B),
			A: fromUnit(sa + da*(1-sa)),
		}
	}
}

func multiply(b, s float64) float64 { return b * s }

func screen(b, s float64) float64 { return b + s - b*s }

func overlay(b, s float64) float64 { return hardLight(s, b) }

func darken(b, s float64) float64 { return math.Min(b, s) }

func lighten(b, s float64) float64 { return math.Max(b, s) }

func colorDodge(b, s float64) float64 {
	switch {
	case b == 0:
		return 0
	case s >= 1:
		return 1
	}
	return math.Min(1, b/(1-s))
}

func colorBurn(b, s float64) float64 {
	switch {
	case b >= 1:
		return 1
	case s == 0:
		return 0
	}
	return 1 - math.Min(1, (1-b)/s)
}

func hardLight(b, s float64) float64 {
	if s <= 0.5 {
		return multiply(b, 2*s)
	}
	return screen(b, 2*s-1)
}

func softLight(b, s float64) float64 {
	if s <= 0.5 {
		return b - (1-2*s)*b*(1-b)
	}
	var d float64
	if b <= 0.25 {
		d = ((16*b-12)*b + 4) * b
	} else {
		d = math.Sqrt(b)
	}
	return b + (2*s-1)*(d-b)
}

func difference(b, s float64) float64 { return math.Abs(b - s) }

func exclusion(b, s float64) float64 { return b + s - 2*b*s }
