// Package util is a set of utility variables or methods
package util

import (
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"
)

var SupportedExt = mapset.NewSet(
	".jpeg", ".jpg", ".JPEG", ".JPG",
	".png", ".PNG",
	".webp", ".WEBP",
)

// IsSupported reports whether the file name carries an image extension the frame can decode.
func IsSupported(name string) bool {
	return SupportedExt.Contains(filepath.Ext(name))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap returns i mod n in [0, n). n must be positive.
func Wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
