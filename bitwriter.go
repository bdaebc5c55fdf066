package crush

import (
	"github.com/chronos-tachyon/assert"
)

// lsbBitWriter accumulates up to 32 bits of pending output and drains whole
// bytes into the destination buffer.  The result is a pure LSB-first
// bitstream: the decoder consumes bits in exactly the order they were
// appended.
//
// The writer is append-only and single-pass; it never seeks backward.
type lsbBitWriter struct {
	dst []byte
	pos uint
	tag uint32
	cnt int
}

func (lbw *lsbBitWriter) init(dst []byte) {
	lbw.dst = dst
	lbw.pos = 0
	lbw.tag = 0
	lbw.cnt = 0
}

// flush writes out whole bytes until at least num bits of the tag are free.
func (lbw *lsbBitWriter) flush(num int) {
	for lbw.cnt > 32-num {
		lbw.dst[lbw.pos] = byte(lbw.tag)
		lbw.pos++
		lbw.tag >>= 8
		lbw.cnt -= 8
	}

	assert.Assertf(lbw.cnt >= 0, "pending bit count %d went negative", lbw.cnt)
}

// putBits appends the num low-order bits of bits, least significant bit
// first.  num must be between 0 and 32, and the bits above num must be clear.
func (lbw *lsbBitWriter) putBits(bits uint32, num uint) {
	assert.Assertf(num <= 32, "num %d > 32", num)
	assert.Assertf(num == 32 || bits>>num == 0, "bits %#x do not fit in %d bits", bits, num)

	lbw.flush(int(num))

	lbw.tag |= bits << uint(lbw.cnt)
	lbw.cnt += int(num)
}

// finalize drains all remaining bits, zero-filling the unused high bits of
// the final byte, and returns the number of bytes written.
func (lbw *lsbBitWriter) finalize() uint {
	for lbw.cnt > 0 {
		lbw.dst[lbw.pos] = byte(lbw.tag)
		lbw.pos++
		lbw.tag >>= 8
		lbw.cnt -= 8
	}

	return lbw.pos
}
