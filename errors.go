package crush

import (
	"fmt"
)

// UnsupportedLevelError is returned when the requested compression level is
// not one of the defined levels.
type UnsupportedLevelError struct {
	Level Level
}

// Error fulfills the error interface.
func (err UnsupportedLevelError) Error() string {
	return fmt.Sprintf("unsupported compression level %d", int(err.Level))
}

// BufferSizeError is returned when a caller-provided buffer is smaller than
// the documented minimum for the operation.
type BufferSizeError struct {
	Buffer string
	Need   uint
	Have   uint
}

// Error fulfills the error interface.
func (err BufferSizeError) Error() string {
	return fmt.Sprintf("%s buffer is too small: need %d, have %d", err.Buffer, err.Need, err.Have)
}

// SizeLimitError is returned when a stream header declares a source size
// beyond the limit configured with WithSizeLimit.
type SizeLimitError struct {
	Size  uint64
	Limit uint64
}

// Error fulfills the error interface.
func (err SizeLimitError) Error() string {
	return fmt.Sprintf("declared source size %d exceeds the configured limit %d", err.Size, err.Limit)
}

// CorruptInputError is returned when the stream being decompressed contains
// data that violates the compression format.
type CorruptInputError struct {
	Offset  uint
	Problem string
}

// Error fulfills the error interface.
func (err CorruptInputError) Error() string {
	return fmt.Sprintf("corrupt input at/near output byte offset %d: %s", err.Offset, err.Problem)
}

// ChecksumError is returned when the decompressed data does not match the
// checksum recorded in the stream header.
type ChecksumError struct {
	Expect Checksum64
	Actual Checksum64
}

// Error fulfills the error interface.
func (err ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected %v, got %v", err.Expect, err.Actual)
}

var _ error = UnsupportedLevelError{}
var _ error = BufferSizeError{}
var _ error = SizeLimitError{}
var _ error = CorruptInputError{}
var _ error = ChecksumError{}
