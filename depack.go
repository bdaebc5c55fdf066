package crush

// lsbBitReader consumes the LSB-first bitstream produced by lsbBitWriter,
// with explicit bounds checks instead of trusting the input.
type lsbBitReader struct {
	src []byte
	pos uint
	tag uint32
	cnt int
	bad bool
}

// getBits returns the next num bits of the stream.  Once the source runs dry
// the reader goes bad, getBits returns zero, and the caller is expected to
// check bad at a token boundary.
func (lbr *lsbBitReader) getBits(num int) uint32 {
	for lbr.cnt < num {
		if lbr.pos >= uint(len(lbr.src)) {
			lbr.bad = true
			return 0
		}
		lbr.tag |= uint32(lbr.src[lbr.pos]) << uint(lbr.cnt)
		lbr.pos++
		lbr.cnt += 8
	}

	bits := lbr.tag & (1<<uint(num) - 1)
	lbr.tag >>= uint(num)
	lbr.cnt -= num

	return bits
}

// Depack decompresses src into dst and returns the number of bytes written.
// dst must be exactly the size of the original data; the format does not
// embed it.
//
// Malformed input is reported as CorruptInputError.  Like Pack, Depack
// retains no references to its arguments.
func Depack(src, dst []byte) (uint, error) {
	depackedSize := uint(len(dst))

	var lbr lsbBitReader
	lbr.src = src

	var dstSize uint

	for dstSize < depackedSize {
		if lbr.getBits(1) == 0 {
			ch := lbr.getBits(8)
			if lbr.bad {
				break
			}
			dst[dstSize] = byte(ch)
			dstSize++
			continue
		}

		// Decode the match length.
		var length uint
		switch {
		case lbr.getBits(1) != 0:
			length = uint(lbr.getBits(limABits))
		case lbr.getBits(1) != 0:
			length = uint(lbr.getBits(limBBits)) + limA
		case lbr.getBits(1) != 0:
			length = uint(lbr.getBits(limCBits)) + limB
		case lbr.getBits(1) != 0:
			length = uint(lbr.getBits(limDBits)) + limC
		case lbr.getBits(1) != 0:
			length = uint(lbr.getBits(limEBits)) + limD
		default:
			length = uint(lbr.getBits(limFBits)) + limE
		}

		// Decode the match offset.
		mlog := uint(lbr.getBits(slotBits)) + (wBits - numSlots)

		var offs uint
		if mlog > wBits-numSlots {
			offs = uint(lbr.getBits(int(mlog))) + 1<<mlog
		} else {
			offs = uint(lbr.getBits(wBits - (numSlots - 1)))
		}

		if lbr.bad {
			break
		}

		dist := offs + 1
		if dist > dstSize {
			return 0, CorruptInputError{Offset: dstSize, Problem: "match distance exceeds bytes produced"}
		}

		end := dstSize + minMatch + length
		if end > depackedSize {
			return 0, CorruptInputError{Offset: dstSize, Problem: "match length exceeds output size"}
		}

		mpos := dstSize - dist
		for dstSize < end {
			dst[dstSize] = dst[mpos]
			dstSize++
			mpos++
		}
	}

	if lbr.bad {
		return 0, CorruptInputError{Offset: dstSize, Problem: "unexpected end of input"}
	}

	return dstSize, nil
}
