package crush

import (
	"github.com/chronos-tachyon/assert"
)

// Option represents a configuration option for Reader or Writer.
type Option func(*options)

type options struct {
	level     Level
	sizeLimit uint64
	tracers   []Tracer
}

func (o *options) reset() {
	*o = options{
		level:     DefaultLevel,
		sizeLimit: 0,
		tracers:   nil,
	}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

func (o *options) populateWriterDefaults() {
	if o.level == DefaultLevel {
		o.level = 7
	}
}

// WithLevel specifies the Level to use (Writer).  Ignored by Reader.
func WithLevel(level Level) Option {
	assert.Assertf(level.IsValid(), "invalid Level %d", int(level))
	return func(o *options) { o.level = level }
}

// WithSizeLimit specifies the largest source size, in bytes, that a stream
// header may declare (Reader).  Ignored by Writer.  The Reader allocates
// buffers sized from the header, so untrusted input should carry a limit;
// zero means no limit.
func WithSizeLimit(limit uint64) Option {
	return func(o *options) { o.sizeLimit = limit }
}

// WithTracers specifies the list of Tracer instances which will receive Events
// as compression (Writer) or decompression (Reader) proceeds.  Completely
// replaces any previous list.
func WithTracers(tracers ...Tracer) Option {
	for _, tr := range tracers {
		assert.NotNil(&tr)
	}
	if len(tracers) == 0 {
		tracers = nil
	} else {
		tmp := make([]Tracer, len(tracers))
		copy(tmp, tracers)
		tracers = tmp
	}
	return func(o *options) { o.tracers = tracers }
}
