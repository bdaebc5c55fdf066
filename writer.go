package crush

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"sync"
	"syscall"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/assert"
	buffer "github.com/chronos-tachyon/buffer/v3"
)

type flushWriter interface {
	io.Writer
	Flush() error
}

type syncWriter interface {
	io.Writer
	Sync() error
}

// Writer wraps an io.Writer and compresses the data which flows through it.
//
// The format packs the whole stream as one unit, so Writer collects all bytes
// in memory and writes the header and packed payload on Close.
type Writer struct {
	mu sync.Mutex

	level   Level
	tracers []Tracer

	w           io.Writer
	err         error
	source      *bytes.Buffer
	output      buffer.Buffer
	sourceBytes uint64
	outputBytes uint64
	state       writerState
}

// NewWriter constructs and returns a new Writer with the given io.Writer and
// options.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	var o options
	o.reset()
	o.apply(opts)
	o.populateWriterDefaults()

	fw := &Writer{
		level:   o.level,
		tracers: o.tracers,

		w:      w,
		source: takeBytesBuffer(),
	}

	fw.output.Init(outputNumBits)

	return fw
}

// Staging buffer for draining packed bytes to the underlying io.Writer.
const outputNumBits = 16

// Level returns the Level which this Writer uses.
func (fw *Writer) Level() Level {
	fw.mu.Lock()
	level := fw.level
	fw.mu.Unlock()
	return level
}

// Tracers returns the Tracers which this Writer uses.
func (fw *Writer) Tracers() []Tracer {
	var tracers []Tracer
	fw.mu.Lock()
	if len(fw.tracers) != 0 {
		tracers = make([]Tracer, len(fw.tracers))
		copy(tracers, fw.tracers)
	}
	fw.mu.Unlock()
	return tracers
}

// UnderlyingWriter returns the io.Writer which this Writer uses.
func (fw *Writer) UnderlyingWriter() io.Writer {
	fw.mu.Lock()
	w := fw.w
	fw.mu.Unlock()
	return w
}

// Reset re-initializes this Writer with the given io.Writer and options.  Any
// options given here are merged with all previous options.
func (fw *Writer) Reset(w io.Writer, opts ...Option) {
	assert.NotNil(&w)
	for _, opt := range opts {
		assert.NotNil(&opt)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.state == openStreamWriterState {
		assert.Raisef("invalid state %#v -- cannot Reset in the middle of a stream", fw.state)
	}

	fw.w = w
	fw.err = nil
	fw.sourceBytes = 0
	fw.outputBytes = 0
	fw.state = noStreamWriterState

	if fw.source == nil {
		fw.source = takeBytesBuffer()
	}
	fw.source.Reset()
	fw.output.Clear()

	if len(opts) == 0 {
		return
	}

	var o options
	o.reset()
	o.level = fw.level
	o.tracers = fw.tracers
	o.apply(opts)
	o.populateWriterDefaults()

	fw.level = o.level
	fw.tracers = o.tracers
}

// Write writes a slice of bytes to the compressed stream.
// Conforms to the io.Writer interface.
func (fw *Writer) Write(buf []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.state == closedWriterState {
		return 0, fs.ErrClosed
	}

	if fw.state == errorWriterState {
		return 0, fw.err
	}

	if fw.state == noStreamWriterState {
		fw.sendEvent(Event{Type: StreamBeginEvent})
		fw.state = openStreamWriterState
	}

	fw.source.Write(buf)
	fw.sourceBytes += uint64(len(buf))
	return len(buf), nil
}

// Close packs the collected bytes, writes the framed stream to the underlying
// io.Writer, and closes this Writer.
//
// The underlying io.Writer is *not* closed, even if it supports io.Closer.
//
// The only method which is guaranteed to be safe to call on a Writer after
// Close is Reset, which will return the Writer to a non-closed state.
//
func (fw *Writer) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.state == closedWriterState {
		return fs.ErrClosed
	}

	helper := func() error {
		err := fw.err
		fw.state = closedWriterState
		fw.err = nil
		if fw.source != nil {
			giveBytesBuffer(fw.source)
			fw.source = nil
		}
		return err
	}

	if fw.state == errorWriterState {
		return helper()
	}

	if fw.state == noStreamWriterState {
		fw.sendEvent(Event{Type: StreamBeginEvent})
		fw.state = openStreamWriterState
	}

	if !fw.finishStream() {
		return helper()
	}

	_ = helper()
	return nil
}

func (fw *Writer) finishStream() bool {
	src := fw.source.Bytes()
	srcSize := uint(len(src))

	wmSize, err := WorkmemSize(srcSize, fw.level)
	assert.Assertf(err == nil, "WorkmemSize failed: %v", err)

	workmem := takeWorkmem(wmSize)
	defer giveWorkmem(workmem)

	dst := make([]byte, MaxPackedSize(srcSize))

	packedSize, err := Pack(src, dst, *workmem, fw.level)
	assert.Assertf(err == nil, "Pack failed: %v", err)

	h := new(Header)
	h.Version = formatVersion
	h.Level = fw.level
	h.SourceSize = uint64(srcSize)
	h.PackedSize = uint64(packedSize)
	h.Checksum = Checksum64(xxhash.Sum64(src))

	fw.sendEvent(Event{
		Type:   StreamHeaderEvent,
		Header: h,
	})

	if !fw.outputBufferWrite(h.AsBytes()) {
		return false
	}
	if !fw.outputBufferWrite(dst[:packedSize]) {
		return false
	}

	fw.sendEvent(Event{Type: StreamEndEvent})

	if x, ok := fw.w.(flushWriter); ok {
		if err := x.Flush(); err != nil {
			fw.state = errorWriterState
			fw.err = err
			return false
		}
	}

	if x, ok := fw.w.(syncWriter); ok {
		if err := x.Sync(); err != nil && !isIgnoredSyncError(err) {
			fw.state = errorWriterState
			fw.err = err
			return false
		}
	}

	return true
}

func (fw *Writer) outputBufferWrite(buf []byte) bool {
	length := uint(len(buf))
	i := uint(0)
	for i < length {
		nn, _ := fw.output.Write(buf[i:])
		fw.outputBytes += uint64(nn)
		i += uint(nn)
		if !fw.outputBufferFlush() {
			return false
		}
	}
	return true
}

func (fw *Writer) outputBufferFlush() bool {
	_, err := fw.output.WriteTo(fw.w)
	if err != nil {
		fw.state = errorWriterState
		fw.err = err
		return false
	}
	return true
}

func (fw *Writer) sendEvent(event Event) {
	event.Level = fw.level
	event.SourceBytes = fw.sourceBytes
	event.PackedBytes = fw.outputBytes
	for _, tr := range fw.tracers {
		tr.OnEvent(event)
	}
}

func isIgnoredSyncError(err error) bool {
	return errors.Is(err, syscall.EINVAL)
}

var _ io.WriteCloser = (*Writer)(nil)
