// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package blend

// factors returns the Porter-Duff source and destination fractions Fa and
// Fb (0-255) for the given source and destination alpha.
// The result is S*Fa + D*Fb for every premultiplied channel.
type factors func(sa, da uint8) (fa, fb uint8)

func porterDuff(f factors) Func {
	return func(s, d Pixel) Pixel {
		fa, fb := f(s.A, d.A)
		return Pixel{
			R: addClamp(mulDiv255(s.R, fa), mulDiv255(d.R, fb)),
			G: addClamp(mulDiv255(s.G, fa), mulDiv255(d.G, fb)),
			B: addClamp(mulDiv255(s.B, fa), mulDiv255(d.B, fb)),
			A: addClamp(mulDiv255(s.A, fa), mulDiv255(d.A, fb)),
		}
	}
}

var (
	// S + D*(1-Sa)
	sourceOver = porterDuff(func(sa, _ uint8) (uint8, uint8) { return 255, 255 - sa })
	// S*Da
	sourceIn = porterDuff(func(_, da uint8) (uint8, uint8) { return da, 0 })
	// S*(1-Da)
	sourceOut = porterDuff(func(_, da uint8) (uint8, uint8) { return 255 - da, 0 })
	// S*Da + D*(1-Sa)
	sourceAtop = porterDuff(func(sa, da uint8) (uint8, uint8) { return da, 255 - sa })
	// S*(1-Da) + D
	destinationOver = porterDuff(func(_, da uint8) (uint8, uint8) { return 255 - da, 255 })
	// D*Sa
	destinationIn = porterDuff(func(sa, _ uint8) (uint8, uint8) { return 0, sa })
	// D*(1-Sa)
	destinationOut = porterDuff(func(sa, _ uint8) (uint8, uint8) { return 0, 255 - sa })
	// S*(1-Da) + D*Sa
	destinationAtop = porterDuff(func(sa, da uint8) (uint8, uint8) { return 255 - da, sa })
	// S*(1-Da) + D*(1-Sa)
	xor = porterDuff(func(sa, da uint8) (uint8, uint8) { return 255 - da, 255 - sa })
	// min(S + D, 255)
	lighter = porterDuff(func(_, _ uint8) (uint8, uint8) { return 255, 255 })
)

func copySource(s, _ Pixel) Pixel { return s }
