package crush

import (
	"bytes"
	"errors"
	"testing"
)

func TestDepackEmpty(t *testing.T) {
	n, err := Depack(nil, nil)
	if err != nil {
		t.Fatalf("Depack failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 bytes, got %d", n)
	}
}

func TestDepackKnownStream(t *testing.T) {
	// Literal 'a' followed by a match of length 3 at distance 1.
	packed := mustDecodeHex("c20600")

	out := make([]byte, 4)
	n, err := Depack(packed, out)
	if err != nil {
		t.Fatalf("Depack failed: %v", err)
	}
	if n != 4 || !bytes.Equal(out, []byte("aaaa")) {
		t.Errorf("expected %q, got %q", "aaaa", out[:n])
	}
}

func TestDepackBadDistance(t *testing.T) {
	// A match token at output position 0 has nothing to copy from.
	packed := mustDecodeHex("0300")

	var cie CorruptInputError
	_, err := Depack(packed, make([]byte, 3))
	if !errors.As(err, &cie) {
		t.Fatalf("expected CorruptInputError, got %v", err)
	}
}

func TestDepackOverlongMatch(t *testing.T) {
	// Same stream as TestDepackKnownStream, but the output buffer only has
	// room for 3 of the 4 bytes the stream describes.
	packed := mustDecodeHex("c20600")

	var cie CorruptInputError
	_, err := Depack(packed, make([]byte, 3))
	if !errors.As(err, &cie) {
		t.Fatalf("expected CorruptInputError, got %v", err)
	}
}

func TestDepackTruncated(t *testing.T) {
	src := []byte("hello, hello, hello, goodbye")
	wmSize, err := WorkmemSize(uint(len(src)), 7)
	if err != nil {
		t.Fatalf("WorkmemSize failed: %v", err)
	}
	dst := make([]byte, MaxPackedSize(uint(len(src))))
	packedSize, err := Pack(src, dst, make([]uint, wmSize), 7)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	var cie CorruptInputError
	_, err = Depack(dst[:packedSize-1], make([]byte, len(src)))
	if !errors.As(err, &cie) {
		t.Fatalf("expected CorruptInputError, got %v", err)
	}
}
