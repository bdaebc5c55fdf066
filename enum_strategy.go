package crush

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// Strategy indicates which match-selection strategy the compressor uses.
// Both strategies produce streams decodable by the same decompressor.
type Strategy byte

const (
	// LazyStrategy selects matches greedily with one token of lookahead.
	LazyStrategy Strategy = iota

	// OptimalStrategy selects the cheapest token sequence for the whole
	// input by dynamic programming.
	OptimalStrategy
)

var strategyData = []enumhelper.EnumData{
	{GoName: "LazyStrategy", Name: "lazy"},
	{GoName: "OptimalStrategy", Name: "optimal"},
}

// IsValid returns true if s is a valid Strategy constant.
func (s Strategy) IsValid() bool {
	return s >= LazyStrategy && s <= OptimalStrategy
}

// GoString returns the Go string representation of this Strategy constant.
func (s Strategy) GoString() string {
	return enumhelper.DereferenceEnumData("Strategy", strategyData, uint(s)).GoName
}

// String returns the string representation of this Strategy constant.
func (s Strategy) String() string {
	return enumhelper.DereferenceEnumData("Strategy", strategyData, uint(s)).Name
}

// MarshalJSON returns the JSON representation of this Strategy constant.
func (s Strategy) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("Strategy", strategyData, uint(s))
}

// Parse parses a string representation of a Strategy constant.
func (s *Strategy) Parse(str string) error {
	value, err := enumhelper.ParseEnum("Strategy", strategyData, str)
	*s = Strategy(value)
	return err
}

var _ fmt.GoStringer = Strategy(0)
var _ fmt.Stringer = Strategy(0)
