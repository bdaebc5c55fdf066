package crush

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Level indicates the desired effort / CPU time to expend in finding an
// optimal compression stream.
type Level int8

const (
	// DefaultLevel requests that the default value for Level be selected.
	// This is currently equivalent to 7.
	DefaultLevel Level = -1

	// FastestLevel requests that the data be compressed with the greatest
	// speed and least effort.
	FastestLevel Level = 5

	// BestLevel requests that the data be compressed with the greatest
	// effort and least speed.
	BestLevel Level = 10
)

// IsValid returns true if level is a valid Level constant.
func (level Level) IsValid() bool {
	return level == DefaultLevel || (level >= FastestLevel && level <= BestLevel)
}

// GoString returns the Go string representation of this Level constant.
func (level Level) GoString() string {
	if level < 0 {
		return "DefaultLevel"
	}
	return fmt.Sprintf("Level(%d)", int(level))
}

// String returns the string representation of this Level constant.
func (level Level) String() string {
	if level < 0 {
		return strDefault
	}
	return fmt.Sprintf("%d", int(level))
}

// MarshalJSON returns the JSON representation of this Level constant.
func (level Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(level))
}

// Parse parses a string representation of a Level constant.
func (level *Level) Parse(str string) error {
	if strings.EqualFold(str, strDefault) {
		*level = DefaultLevel
		return nil
	}

	u64, err := strconv.ParseUint(str, 10, 8)
	if err != nil {
		*level = DefaultLevel
		return err
	}
	if u64 < uint64(FastestLevel) || u64 > uint64(BestLevel) {
		*level = DefaultLevel
		return fmt.Errorf("value %d is out of range", u64)
	}
	*level = Level(u64)
	return nil
}

var _ fmt.GoStringer = Level(0)
var _ fmt.Stringer = Level(0)
