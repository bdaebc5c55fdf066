package crush

import (
	"bytes"
	"sync"

	"github.com/chronos-tachyon/assert"
)

var bbPool = sync.Pool{
	New: func() interface{} {
		bb := new(bytes.Buffer)
		bb.Grow(256)
		return bb
	},
}

func takeBytesBuffer() *bytes.Buffer {
	return bbPool.Get().(*bytes.Buffer)
}

func giveBytesBuffer(bb *bytes.Buffer) {
	assert.NotNil(&bb)
	bb.Reset()
	bbPool.Put(bb)
}

var workmemPool = sync.Pool{
	New: func() interface{} {
		ptr := new([]uint)
		return ptr
	},
}

func takeWorkmem(size uint) *[]uint {
	ptr := workmemPool.Get().(*[]uint)
	if uint(cap(*ptr)) < size {
		*ptr = make([]uint, size)
	}
	*ptr = (*ptr)[:size]
	return ptr
}

func giveWorkmem(ptr *[]uint) {
	assert.NotNil(&ptr)
	assert.NotNil(ptr)
	*ptr = (*ptr)[:0]
	workmemPool.Put(ptr)
}
