package main

import (
	"github.com/chronos-tachyon/crush"
	getopt "github.com/pborman/getopt/v2"
)

// type LevelFlag {{{

// LevelFlag implements getopt.Value for crush.Level.
type LevelFlag struct {
	Value crush.Level
}

// Set fulfills getopt.Value.
func (flag *LevelFlag) Set(str string, opt getopt.Option) error {
	return flag.Value.Parse(str)
}

// String fulfills getopt.Value.
func (flag LevelFlag) String() string {
	return flag.Value.String()
}

var _ getopt.Value = (*LevelFlag)(nil)

// }}}
