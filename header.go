package crush

import (
	"encoding/binary"
	"fmt"
)

// Stream container framing.  A packed stream is preceded by a fixed-size
// header carrying the original size, the packed size, and an XXH64 checksum
// of the original data.
const (
	headerSize = 30

	magic0 = 'C'
	magic1 = 'R'
	magic2 = 'U'
	magic3 = 'S'

	formatVersion = 1
)

// Header is the fixed-size header that precedes the packed payload in a
// stream container.
type Header struct {
	Version    byte
	Level      Level
	SourceSize uint64
	PackedSize uint64
	Checksum   Checksum64
}

// AsBytes returns the binary representation of this Header.
func (h Header) AsBytes() []byte {
	out := make([]byte, headerSize)
	out[0] = magic0
	out[1] = magic1
	out[2] = magic2
	out[3] = magic3
	out[4] = h.Version
	out[5] = byte(h.Level)
	binary.LittleEndian.PutUint64(out[6:14], h.SourceSize)
	binary.LittleEndian.PutUint64(out[14:22], h.PackedSize)
	binary.LittleEndian.PutUint64(out[22:30], uint64(h.Checksum))
	return out
}

// Parse parses the given bytes as a Header.  It does not validate the fields
// beyond the magic number; see Validate.
func (h *Header) Parse(raw []byte) error {
	if uint(len(raw)) < headerSize {
		return BufferSizeError{Buffer: "header", Need: headerSize, Have: uint(len(raw))}
	}
	if raw[0] != magic0 || raw[1] != magic1 || raw[2] != magic2 || raw[3] != magic3 {
		return CorruptInputError{Offset: 0, Problem: "bad magic number"}
	}

	h.Version = raw[4]
	h.Level = Level(raw[5])
	h.SourceSize = binary.LittleEndian.Uint64(raw[6:14])
	h.PackedSize = binary.LittleEndian.Uint64(raw[14:22])
	h.Checksum = Checksum64(binary.LittleEndian.Uint64(raw[22:30]))
	return nil
}

// Validate checks the parsed fields for internal consistency.
func (h Header) Validate() error {
	if h.Version != formatVersion {
		return CorruptInputError{Offset: 0, Problem: fmt.Sprintf("unsupported version %d", h.Version)}
	}
	if !h.Level.IsValid() || h.Level == DefaultLevel {
		return CorruptInputError{Offset: 0, Problem: fmt.Sprintf("invalid level %d", int(h.Level))}
	}
	if h.PackedSize > uint64(MaxPackedSize(uint(h.SourceSize))) {
		return CorruptInputError{Offset: 0, Problem: "packed size exceeds bound for source size"}
	}
	return nil
}
