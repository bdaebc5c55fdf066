package crush

import (
	"bytes"
	"testing"
)

func TestLSBBitWriter(t *testing.T) {
	var lbw lsbBitWriter
	dst := make([]byte, 16)
	lbw.init(dst)

	lbw.putBits(0x1, 1)
	lbw.putBits(0x0, 2)
	lbw.putBits(0x5, 3)
	lbw.putBits(0xff, 8)

	n := lbw.finalize()
	expect := mustDecodeHex("e93f")
	actual := dst[:n]
	if !bytes.Equal(expect, actual) {
		t.Errorf("wrong output:%s", tabify(hexDiff(expect, actual)))
	}
}

func TestLSBBitWriterRoundTrip(t *testing.T) {
	var lbw lsbBitWriter
	dst := make([]byte, 64)
	lbw.init(dst)

	// Uneven field widths force the tag to drain mid-field.
	widths := []uint{1, 7, 21, 3, 9, 17, 2, 21, 21, 5}
	values := make([]uint32, len(widths))
	for i, num := range widths {
		values[i] = (uint32(i+1) * 2654435761) & (1<<num - 1)
		lbw.putBits(values[i], num)
	}

	var totalBits uint
	for _, num := range widths {
		totalBits += num
	}

	n := lbw.finalize()
	if expect := (totalBits + 7) / 8; n != expect {
		t.Errorf("wrong size: expected %d bytes, got %d", expect, n)
	}

	var lbr lsbBitReader
	lbr.src = dst[:n]
	for i, num := range widths {
		actual := lbr.getBits(int(num))
		if lbr.bad {
			t.Fatalf("field %d: reader ran out of input", i)
		}
		if actual != values[i] {
			t.Errorf("field %d: expected %#x, got %#x", i, values[i], actual)
		}
	}
}
