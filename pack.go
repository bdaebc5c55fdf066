// Package crush implements the CRUSH compressed data format: an LZ77 family
// byte-stream compressor with a fixed variable-length token code and no
// entropy-coding stage.
//
// The core surface is buffer to buffer: callers size the destination with
// MaxPackedSize, size the scratch slice with WorkmemSize, and call Pack.
// Depack reverses it.  Writer and Reader wrap the same operations in a small
// framed container for use with io streams.
package crush

import (
	"github.com/hashicorp/go-multierror"
)

// MaxPackedSize returns a bound on the packed size of any input of srcSize
// bytes that holds at every supported level: nine output bits per literal,
// plus slack for the final partial byte.
func MaxPackedSize(srcSize uint) uint {
	return srcSize + srcSize/8 + 64
}

// WorkmemSize returns the required length, in elements, of the workmem slice
// passed to Pack for the given source size and level.
func WorkmemSize(srcSize uint, level Level) (uint, error) {
	cfg, err := levelConfig(level)
	if err != nil {
		return 0, err
	}

	return cfg.workmemSize(srcSize), nil
}

// Pack compresses src into dst at the given level and returns the number of
// bytes written.
//
// The caller must provide len(dst) >= MaxPackedSize(len(src)) and
// len(workmem) >= WorkmemSize(len(src), level); violations are reported as
// BufferSizeError before any output is produced.  Pack retains no references
// to its arguments, so concurrent calls on disjoint buffers are safe.
func Pack(src, dst []byte, workmem []uint, level Level) (uint, error) {
	cfg, err := levelConfig(level)
	if err != nil {
		return 0, err
	}

	srcSize := uint(len(src))

	var errlist []error
	if need := MaxPackedSize(srcSize); uint(len(dst)) < need {
		errlist = append(errlist, BufferSizeError{Buffer: "dst", Need: need, Have: uint(len(dst))})
	}
	if need := cfg.workmemSize(srcSize); uint(len(workmem)) < need {
		errlist = append(errlist, BufferSizeError{Buffer: "workmem", Need: need, Have: uint(len(workmem))})
	}

	switch len(errlist) {
	case 0:
		// pass
	case 1:
		return 0, errlist[0]
	default:
		return 0, &multierror.Error{Errors: errlist}
	}

	if cfg.strategy == OptimalStrategy {
		return packOptimal(src, dst, workmem), nil
	}

	return packLazy(src, dst, workmem, cfg.goodLen, cfg.maxChain), nil
}

type packConfig struct {
	strategy Strategy
	goodLen  uint
	maxChain uint
}

func (cfg packConfig) workmemSize(srcSize uint) uint {
	if cfg.strategy == OptimalStrategy {
		return optimalWorkmemSize(srcSize)
	}

	return lazyWorkmemSize(srcSize)
}

// levelConfig maps a level to its parser and tuning parameters.  goodLen 1
// never defers a match; goodLen 4096 is beyond maxMatch and always defers.
func levelConfig(level Level) (packConfig, error) {
	switch level {
	case 5:
		return packConfig{LazyStrategy, 1, 16}, nil
	case 6:
		return packConfig{LazyStrategy, 8, 32}, nil
	case 7:
		return packConfig{LazyStrategy, 64, 64}, nil
	case 8:
		return packConfig{LazyStrategy, 512, 128}, nil
	case 9:
		return packConfig{LazyStrategy, 4096, 256}, nil
	case 10:
		return packConfig{OptimalStrategy, 0, 0}, nil
	default:
		return packConfig{}, UnsupportedLevelError{Level: level}
	}
}
