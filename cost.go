package crush

import (
	"github.com/chronos-tachyon/crush/internal/bitpos"
)

// matchCost returns the exact number of bits putMatch would emit for a match
// with the given offset (distance minus one) and length.  Parser decisions
// depend on it agreeing with putMatch bit for bit.
func matchCost(offs, length uint) uint {
	cost := uint(1)

	l := length - minMatch

	switch {
	case l < limA:
		cost += 1 + limABits
	case l < limB:
		cost += 2 + limBBits
	case l < limC:
		cost += 3 + limCBits
	case l < limD:
		cost += 4 + limDBits
	case l < limE:
		cost += 5 + limEBits
	default:
		cost += 5 + limFBits
	}

	cost += slotBits

	if offs >= 2<<(wBits-numSlots) {
		cost += bitpos.Log2(offs)
	} else {
		cost += wBits - (numSlots - 1)
	}

	return cost
}
