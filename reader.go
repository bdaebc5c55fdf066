package crush

import (
	"io"
	"io/fs"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/assert"
)

// Reader wraps an io.Reader and decompresses the data which flows through it.
//
// The format packs the whole stream as one unit, so the first call to Read
// consumes the entire framed stream from the underlying io.Reader, unpacks
// it, and verifies the checksum.  Subsequent calls serve the unpacked bytes.
//
// The working buffers are sized from the stream header, so input from an
// untrusted source should be read with a WithSizeLimit cap.
type Reader struct {
	mu sync.Mutex

	sizeLimit uint64
	tracers   []Tracer

	r       io.Reader
	err     error
	data    []byte
	offset  uint
	started bool
	closed  bool

	header Header
}

// NewReader constructs and returns a new Reader with the given io.Reader and
// options.
func NewReader(r io.Reader, opts ...Option) *Reader {
	assert.NotNil(&r)

	var o options
	o.reset()
	o.apply(opts)

	return &Reader{
		sizeLimit: o.sizeLimit,
		tracers:   o.tracers,

		r: r,
	}
}

// Header returns the stream header.  Its contents are unspecified until the
// first call to Read.
func (fr *Reader) Header() Header {
	fr.mu.Lock()
	header := fr.header
	fr.mu.Unlock()
	return header
}

// Tracers returns the Tracers which this Reader uses.
func (fr *Reader) Tracers() []Tracer {
	var tracers []Tracer
	fr.mu.Lock()
	if len(fr.tracers) != 0 {
		tracers = make([]Tracer, len(fr.tracers))
		copy(tracers, fr.tracers)
	}
	fr.mu.Unlock()
	return tracers
}

// UnderlyingReader returns the io.Reader which this Reader uses.
func (fr *Reader) UnderlyingReader() io.Reader {
	fr.mu.Lock()
	r := fr.r
	fr.mu.Unlock()
	return r
}

// Reset re-initializes this Reader with the given io.Reader and options.  Any
// options given here are merged with all previous options.
func (fr *Reader) Reset(r io.Reader, opts ...Option) {
	assert.NotNil(&r)
	for _, opt := range opts {
		assert.NotNil(&opt)
	}

	fr.mu.Lock()
	defer fr.mu.Unlock()

	fr.r = r
	fr.err = nil
	fr.data = nil
	fr.offset = 0
	fr.started = false
	fr.closed = false
	fr.header = Header{}

	if len(opts) == 0 {
		return
	}

	var o options
	o.reset()
	o.sizeLimit = fr.sizeLimit
	o.tracers = fr.tracers
	o.apply(opts)

	fr.sizeLimit = o.sizeLimit
	fr.tracers = o.tracers
}

// Read reads a slice of decompressed bytes.
// Conforms to the io.Reader interface.
func (fr *Reader) Read(buf []byte) (int, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.closed {
		return 0, fs.ErrClosed
	}

	if fr.err != nil {
		return 0, fr.err
	}

	if !fr.started {
		if err := fr.fill(); err != nil {
			fr.err = err
			return 0, err
		}
		fr.started = true
	}

	if fr.offset >= uint(len(fr.data)) {
		return 0, io.EOF
	}

	nn := copy(buf, fr.data[fr.offset:])
	fr.offset += uint(nn)
	return nn, nil
}

// Close closes this Reader.
//
// The underlying io.Reader is *not* closed, even if it supports io.Closer.
//
// The only method which is guaranteed to be safe to call on a Reader after
// Close is Reset, which will return the Reader to a non-closed state.
//
func (fr *Reader) Close() error {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.closed {
		return fs.ErrClosed
	}

	err := fr.err
	fr.closed = true
	fr.err = nil
	fr.data = nil
	return err
}

func (fr *Reader) fill() error {
	fr.sendEvent(Event{Type: StreamBeginEvent})

	// A framed stream always has a full header, so a bare io.EOF here is
	// truncation too, not a clean end of stream.
	var raw [headerSize]byte
	if _, err := io.ReadFull(fr.r, raw[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return CorruptInputError{Offset: 0, Problem: "truncated header"}
		}
		return err
	}

	if err := fr.header.Parse(raw[:]); err != nil {
		return err
	}
	if err := fr.header.Validate(); err != nil {
		return err
	}

	// PackedSize is validated against MaxPackedSize(SourceSize), so capping
	// the source size bounds both allocations below.
	if fr.sizeLimit != 0 && fr.header.SourceSize > fr.sizeLimit {
		return SizeLimitError{Size: fr.header.SourceSize, Limit: fr.sizeLimit}
	}

	h := new(Header)
	*h = fr.header
	fr.sendEvent(Event{
		Type:   StreamHeaderEvent,
		Header: h,
	})

	packed := make([]byte, fr.header.PackedSize)
	if _, err := io.ReadFull(fr.r, packed); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return CorruptInputError{Offset: 0, Problem: "truncated payload"}
		}
		return err
	}

	data := make([]byte, fr.header.SourceSize)
	if _, err := Depack(packed, data); err != nil {
		return err
	}

	if actual := Checksum64(xxhash.Sum64(data)); actual != fr.header.Checksum {
		return ChecksumError{Expect: fr.header.Checksum, Actual: actual}
	}

	fr.data = data

	fr.sendEvent(Event{Type: StreamEndEvent})
	return nil
}

func (fr *Reader) sendEvent(event Event) {
	event.Level = fr.header.Level
	event.SourceBytes = fr.header.SourceSize
	event.PackedBytes = fr.header.PackedSize
	for _, tr := range fr.tracers {
		tr.OnEvent(event)
	}
}

var _ io.ReadCloser = (*Reader)(nil)
