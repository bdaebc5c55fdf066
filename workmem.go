package crush

import (
	"github.com/chronos-tachyon/crush/internal/bitpos"
)

// Workmem is modeled as a typed []uint slice rather than an opaque byte
// region: WorkmemSize reports the required element count, Pack validates the
// slice length once at entry, and the parsers carve it into their lookup,
// chain and cost arrays.

// hashBitsFor returns the number of hash bits used for a source of the given
// size.  Small inputs use the full build-time table; once the input grows
// past half the table, a table of 2^floor(log2 srcSize) entries gives a
// better memory/collision trade.
func hashBitsFor(srcSize uint) uint {
	if 2*srcSize < lookupSize {
		return hashBits
	}

	return bitpos.Log2(srcSize)
}

// lazyWorkmemSize returns the workmem element count for the lazy parser:
// the lookup table plus one chain link per source position.
func lazyWorkmemSize(srcSize uint) uint {
	return (uint(1) << hashBitsFor(srcSize)) + srcSize
}

// optimalWorkmemSize returns the workmem element count for the optimal
// parser.  With careful ordering the parser fits its chain, cost, match
// position and match length arrays plus the lookup table into this bound by
// overlapping them; see packOptimal.
func optimalWorkmemSize(srcSize uint) uint {
	if lookupSize < 2*srcSize {
		return 3 * srcSize
	}

	return srcSize + lookupSize
}
