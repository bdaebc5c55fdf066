package crush

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"io/ioutil"
	"testing"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	for inputName, inputData := range testInputSets() {
		for _, level := range allLevels {
			var stream bytes.Buffer

			fw := NewWriter(&stream, WithLevel(level))
			nn, err := fw.Write(inputData)
			if err != nil {
				t.Fatalf("%s/level-%d: Write failed: %v", inputName, level, err)
			}
			if nn != len(inputData) {
				t.Fatalf("%s/level-%d: Write returned %d, expected %d", inputName, level, nn, len(inputData))
			}
			if err := fw.Close(); err != nil {
				t.Fatalf("%s/level-%d: Close failed: %v", inputName, level, err)
			}

			var header Header
			fr := NewReader(bytes.NewReader(stream.Bytes()), WithTracers(CaptureHeader(&header)))
			out, err := ioutil.ReadAll(fr)
			if err != nil {
				t.Fatalf("%s/level-%d: ReadAll failed: %v", inputName, level, err)
			}
			if err := fr.Close(); err != nil {
				t.Fatalf("%s/level-%d: Reader Close failed: %v", inputName, level, err)
			}

			if !bytes.Equal(inputData, out) {
				t.Errorf("%s/level-%d: round trip mismatch", inputName, level)
			}

			if header.Level != level {
				t.Errorf("%s/level-%d: header level is %d", inputName, level, int(header.Level))
			}
			if header.SourceSize != uint64(len(inputData)) {
				t.Errorf("%s/level-%d: header source size is %d, expected %d", inputName, level, header.SourceSize, len(inputData))
			}
			if header.PackedSize != uint64(stream.Len()-headerSize) {
				t.Errorf("%s/level-%d: header packed size is %d, stream payload is %d", inputName, level, header.PackedSize, stream.Len()-headerSize)
			}
		}
	}
}

func TestWriterDefaultLevel(t *testing.T) {
	fw := NewWriter(ioutil.Discard)
	if level := fw.Level(); level != 7 {
		t.Errorf("expected default level 7, got %d", int(level))
	}
}

func TestWriterEvents(t *testing.T) {
	var types []EventType
	tracer := TracerFunc(func(event Event) {
		types = append(types, event.Type)
	})

	var stream bytes.Buffer
	fw := NewWriter(&stream, WithTracers(tracer))
	if _, err := fw.Write([]byte("event payload, event payload")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	expect := []EventType{StreamBeginEvent, StreamHeaderEvent, StreamEndEvent}
	if len(types) != len(expect) {
		t.Fatalf("expected %d events, got %d: %v", len(expect), len(types), types)
	}
	for i := range expect {
		if types[i] != expect[i] {
			t.Errorf("event %d: expected %v, got %v", i, expect[i], types[i])
		}
	}

	types = nil
	fr := NewReader(bytes.NewReader(stream.Bytes()), WithTracers(tracer))
	if _, err := ioutil.ReadAll(fr); err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(types) != len(expect) {
		t.Fatalf("reader: expected %d events, got %d: %v", len(expect), len(types), types)
	}
	for i := range expect {
		if types[i] != expect[i] {
			t.Errorf("reader event %d: expected %v, got %v", i, expect[i], types[i])
		}
	}
}

func TestWriterAfterClose(t *testing.T) {
	var stream bytes.Buffer
	fw := NewWriter(&stream)
	if _, err := fw.Write([]byte("x")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := fw.Close(); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("second Close: expected fs.ErrClosed, got %v", err)
	}
	if _, err := fw.Write([]byte("y")); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("Write after Close: expected fs.ErrClosed, got %v", err)
	}

	var second bytes.Buffer
	fw.Reset(&second)
	if _, err := fw.Write([]byte("fresh start, fresh start")); err != nil {
		t.Fatalf("Write after Reset failed: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close after Reset failed: %v", err)
	}

	fr := NewReader(bytes.NewReader(second.Bytes()))
	out, err := ioutil.ReadAll(fr)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !bytes.Equal(out, []byte("fresh start, fresh start")) {
		t.Errorf("round trip after Reset mismatch: %q", out)
	}
}

func makeStream(t *testing.T, payload []byte) []byte {
	t.Helper()

	var stream bytes.Buffer
	fw := NewWriter(&stream)
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return stream.Bytes()
}

func TestReaderChecksumMismatch(t *testing.T) {
	stream := makeStream(t, []byte("guard this payload, guard this payload"))

	// The checksum field is the last 8 bytes of the header.
	stream[headerSize-1] ^= 0xff

	fr := NewReader(bytes.NewReader(stream))
	var cerr ChecksumError
	if _, err := ioutil.ReadAll(fr); !errors.As(err, &cerr) {
		t.Fatalf("expected ChecksumError, got %v", err)
	}
}

func TestReaderBadMagic(t *testing.T) {
	stream := makeStream(t, []byte("payload"))
	stream[0] ^= 0xff

	fr := NewReader(bytes.NewReader(stream))
	var cie CorruptInputError
	if _, err := ioutil.ReadAll(fr); !errors.As(err, &cie) {
		t.Fatalf("expected CorruptInputError, got %v", err)
	}
}

func TestReaderTruncatedHeader(t *testing.T) {
	// Zero bytes: io.ReadFull reports a bare io.EOF, which must still
	// count as truncation, not as a clean empty stream.
	fr := NewReader(eofReader{})
	var cie CorruptInputError
	if _, err := ioutil.ReadAll(fr); !errors.As(err, &cie) {
		t.Fatalf("empty input: expected CorruptInputError, got %v", err)
	}

	// A few bytes, but fewer than a full header.
	stream := makeStream(t, []byte("payload"))
	fr = NewReader(bytes.NewReader(stream[:headerSize/2]))
	if _, err := ioutil.ReadAll(fr); !errors.As(err, &cie) {
		t.Fatalf("partial header: expected CorruptInputError, got %v", err)
	}
}

func TestReaderSizeLimit(t *testing.T) {
	payload := bytes.Repeat([]byte("bounded "), 128)
	stream := makeStream(t, payload)

	fr := NewReader(bytes.NewReader(stream), WithSizeLimit(64))
	var sle SizeLimitError
	if _, err := ioutil.ReadAll(fr); !errors.As(err, &sle) {
		t.Fatalf("expected SizeLimitError, got %v", err)
	}
	if sle.Size != uint64(len(payload)) || sle.Limit != 64 {
		t.Errorf("wrong error fields: %v", sle)
	}

	fr = NewReader(bytes.NewReader(stream), WithSizeLimit(uint64(len(payload))))
	out, err := ioutil.ReadAll(fr)
	if err != nil {
		t.Fatalf("ReadAll under the limit failed: %v", err)
	}
	if !bytes.Equal(payload, out) {
		t.Errorf("round trip mismatch under the size limit")
	}
}

func TestReaderTruncatedPayload(t *testing.T) {
	stream := makeStream(t, []byte("this payload will lose its final byte, which must be noticed"))

	fr := NewReader(bytes.NewReader(stream[:len(stream)-1]))
	var cie CorruptInputError
	if _, err := ioutil.ReadAll(fr); !errors.As(err, &cie) {
		t.Fatalf("expected CorruptInputError, got %v", err)
	}
}

func TestReaderSmallReads(t *testing.T) {
	payload := bytes.Repeat([]byte("tiny reads "), 100)
	stream := makeStream(t, payload)

	fr := NewReader(bytes.NewReader(stream))
	var out bytes.Buffer
	buf := make([]byte, 7)
	for {
		nn, err := fr.Read(buf)
		out.Write(buf[:nn])
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	}

	if !bytes.Equal(payload, out.Bytes()) {
		t.Errorf("round trip mismatch with small reads")
	}
}
