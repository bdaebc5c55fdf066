// Package bitpos provides bit-position scans for the distance slot
// arithmetic.  math/bits lowers these to hardware bit-scan instructions where
// available and falls back to portable code everywhere else, so this is the
// single place where that capability is resolved.
package bitpos

import (
	"math/bits"
)

// Log2 returns the position of the most significant set bit of x, i.e.
// floor(log2(x)).  x must not be zero.
func Log2(x uint) uint {
	return uint(bits.Len(x)) - 1
}
