// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package blend

import "errors"

// ErrSizeMismatch is returned when source and destination buffers differ in length.
var ErrSizeMismatch = errors.New("blend: source and destination sizes differ")

// Composite blends the premultiplied RGBA buffer src onto dst in place.
//
// alpha is the canvas global alpha in [0, 1]; it scales every source sample
// before the operation is applied. The whole buffer is processed, so
// operations such as source-in clear destination pixels where src is empty.
func Composite(dst, src []uint8, mode Mode, alpha float64) error {
	if len(dst) != len(src) {
		return ErrSizeMismatch
	}
	fn := mode.Func()
	ga := fromUnit(alpha)
	for i := 0; i+3 < len(dst); i += 4 {
		s := Pixel{src[i], src[i+1], src[i+2], src[i+3]}
		if ga != 255 {
			s = Pixel{mulDiv255(s.R, ga), mulDiv255(s.G, ga), mulDiv255(s.B, ga), mulDiv255(s.A, ga)}
		}
		d := Pixel{dst[i], dst[i+1], dst[i+2], dst[i+3]}
		o := fn(s, d)
		dst[i], dst[i+1], dst[i+2], dst[i+3] = o.R, o.G, o.B, o.A
	}
	return nil
}
