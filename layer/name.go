// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParseFilename splits an element filename into its display name and weight.
//
// The extension is dropped, then the part after the last rarity delimiter is
// read as a decimal weight. Without a delimiter the weight is 1, as it is for
// a suffix that is not a decimal number (hexadecimal included). An empty
// suffix reads as 0, which Validate rejects. The display name is the part
// before the first delimiter, NFC normalised so that names read from
// decomposing filesystems compare equal to typed ones.
func ParseFilename(filename, delimiter string) (name string, weight float64) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if delimiter == "" || !strings.Contains(base, delimiter) {
		return norm.NFC.String(base), 1
	}
	parts := strings.Split(base, delimiter)
	return norm.NFC.String(parts[0]), parseWeight(strings.TrimSpace(parts[len(parts)-1]))
}

func parseWeight(s string) float64 {
	if s == "" {
		return 0
	}
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 1
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return w
}

// hidden reports whether a directory entry is a dot-file such as .DS_Store.
func hidden(name string) bool {
	return len(name) > 1 && name[0] == '.' && name[1] != '.'
}
