package crush

import (
	"github.com/chronos-tachyon/crush/internal/bitpos"
)

// Number of bits of hash used for the lookup table.
//
// The size of the lookup table (and thus workmem) depends on this.  Values
// between 10 and 18 work well.  Lower values generally make compression
// faster but the ratio worse.  The default of 17 (128k entries) is a
// compromise.  Changing it never changes the bitstream format.
const hashBits = 17

const lookupSize = 1 << hashBits

const (
	wBits = 21 // window size (17..23)
	wSize = 1 << wBits

	slotBits = 4
	numSlots = 1 << slotBits

	limABits = 2 // 1 xx
	limBBits = 2 // 01 xx
	limCBits = 2 // 001 xx
	limDBits = 3 // 0001 xxx
	limEBits = 5 // 00001 xxxxx
	limFBits = 9 // 00000 xxxxxxxxx

	limA = 1 << limABits
	limB = (1 << limBBits) + limA
	limC = (1 << limCBits) + limB
	limD = (1 << limDBits) + limC
	limE = (1 << limEBits) + limD
	limF = (1 << limFBits) + limE

	minMatch = 3
	maxMatch = (limF - 1) + minMatch
)

// A length-3 match farther away than this costs more bits than three
// literals, so the lazy parser refuses them.  The cost-driven optimal parser
// rejects them on its own.
const tooFar = 1 << 16

const noMatchPos = ^uint(0)

// putLiteral emits a literal token: a zero flag bit followed by the raw byte.
func putLiteral(lbw *lsbBitWriter, ch byte) {
	lbw.putBits(uint32(ch)<<1, 9)
}

// putMatch emits a match token: a one flag bit, the bucketed length code, and
// the slotted offset code.  offs is the match distance minus one.
func putMatch(lbw *lsbBitWriter, offs, length uint) {
	lbw.putBits(1, 1)

	l := uint32(length - minMatch)

	switch {
	case l < limA:
		lbw.putBits(1, 1)
		lbw.putBits(l, limABits)
	case l < limB:
		lbw.putBits(1<<1, 2)
		lbw.putBits(l-limA, limBBits)
	case l < limC:
		lbw.putBits(1<<2, 3)
		lbw.putBits(l-limB, limCBits)
	case l < limD:
		lbw.putBits(1<<3, 4)
		lbw.putBits(l-limC, limDBits)
	case l < limE:
		lbw.putBits(1<<4, 5)
		lbw.putBits(l-limD, limEBits)
	default:
		lbw.putBits(0, 5)
		lbw.putBits(l-limE, limFBits)
	}

	if offs >= 2<<(wBits-numSlots) {
		mlog := bitpos.Log2(offs)
		lbw.putBits(uint32(mlog-(wBits-numSlots)), slotBits)
		lbw.putBits(uint32(offs-(1<<mlog)), mlog)
	} else {
		lbw.putBits(0, slotBits)
		lbw.putBits(uint32(offs), wBits-(numSlots-1))
	}
}
