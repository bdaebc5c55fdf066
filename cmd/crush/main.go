package main

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/chronos-tachyon/crush"
	getopt "github.com/pborman/getopt/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	flagVersion   = false
	flagDebug     = false
	flagTrace     = false
	flagLogStderr = false

	flagStdout     = false
	flagDecompress = false
	flagForce      = false
	flagKeep       = false

	flag5  = false
	flag6  = false
	flag7  = false
	flag8  = false
	flag9  = false
	flag10 = false

	flagLevel = LevelFlag{crush.DefaultLevel}

	flagCPUProfile = ""
	flagMemProfile = ""
)

func init() {
	getopt.SetParameters("[<input>]")

	getopt.FlagLong(&flagVersion, "version", 'V', "print version and exit")

	getopt.FlagLong(&flagDebug, "verbose", 'v', "enable debug logging")
	getopt.FlagLong(&flagTrace, "debug", 'D', "enable debug and trace logging")
	getopt.FlagLong(&flagLogStderr, "log-stderr", 'L', "log JSON to stderr")

	getopt.FlagLong(&flagCPUProfile, "cpu-profile", 0, "CPU profile output file")
	getopt.FlagLong(&flagMemProfile, "mem-profile", 0, "memory profile output file")

	getopt.FlagLong(&flagLevel, "level", 'l', "compression level; one of default, 5, 6, 7, 8, 9, or 10").SetGroup("level")

	getopt.FlagLong(&flagStdout, "stdout", 'c', "write on standard output, keep original files unchanged")
	getopt.FlagLong(&flagDecompress, "decompress", 'd', "decompress")
	getopt.FlagLong(&flagForce, "force", 'f', "force overwrite of output file")
	getopt.FlagLong(&flagKeep, "keep", 'k', "keep (don't delete) input files")

	getopt.Flag(&flag5, '5', "fastest compression").SetGroup("level")
	getopt.Flag(&flag6, '6', "fast compression").SetGroup("level")
	getopt.Flag(&flag7, '7', "balanced compression").SetGroup("level")
	getopt.Flag(&flag8, '8', "good compression").SetGroup("level")
	getopt.Flag(&flag9, '9', "better compression").SetGroup("level")
	getopt.Flag(&flag10, '0', "best compression (optimal parse)").SetGroup("level")
}

func main() {
	getopt.Parse()

	if flagVersion {
		fmt.Println(strings.TrimSpace(version))
		os.Exit(0)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.DurationFieldUnit = time.Second
	zerolog.DurationFieldInteger = false
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if flagDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if flagTrace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	switch {
	case flagLogStderr:
		// do nothing

	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	switch {
	case flag5:
		flagLevel.Value = 5
	case flag6:
		flagLevel.Value = 6
	case flag7:
		flagLevel.Value = 7
	case flag8:
		flagLevel.Value = 8
	case flag9:
		flagLevel.Value = 9
	case flag10:
		flagLevel.Value = 10
	}

	if getopt.NArgs() == 0 {
		flagStdout = true
	}

	if flagCPUProfile != "" {
		f, err := os.OpenFile(flagCPUProfile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
		if err != nil {
			log.Logger.Fatal().
				Str("filename", flagCPUProfile).
				Err(err).
				Msg("os.OpenFile(O_WRONLY|O_CREATE|O_TRUNC) failed")
		}

		defer func() {
			err := f.Close()
			if err != nil {
				log.Logger.Error().
					Str("filename", flagCPUProfile).
					Err(err).
					Msg("failed to Close CPU profiling output file")
			}
		}()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Logger.Fatal().
				Err(err).
				Msg("pprof.StartCPUProfile failed")
		}

		defer pprof.StopCPUProfile()
	}

	if flagStdout {
		doCompressOrDecompress(os.Stdout, os.Stdin)
	} else {
		log.Logger.Fatal().
			Msg("flag combination is not implemented")
	}

	if flagMemProfile != "" {
		f, err := os.OpenFile(flagMemProfile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
		if err != nil {
			log.Logger.Fatal().
				Str("filename", flagMemProfile).
				Err(err).
				Msg("failed to Open memory profiling output file")
		}
		err = pprof.Lookup("allocs").WriteTo(f, 0)
		if err != nil {
			_ = f.Close()
			log.Logger.Fatal().
				Str("filename", flagMemProfile).
				Err(err).
				Msg("failed to Write memory profile to output file")
		}
		err = f.Close()
		if err != nil {
			log.Logger.Fatal().
				Str("filename", flagMemProfile).
				Err(err).
				Msg("failed to Close memory profile output file")
		}
	}
}

func doCompressOrDecompress(w io.Writer, r io.Reader) {
	opts := make([]crush.Option, 1, 2)
	opts[0] = crush.WithTracers(crush.Log(log.Logger))
	if flagLevel.Value != crush.DefaultLevel {
		opts = append(opts, crush.WithLevel(flagLevel.Value))
	}

	if flagDecompress {
		fr := crush.NewReader(r, opts...)

		nn, err := io.Copy(w, fr)
		if err != nil {
			log.Logger.Fatal().
				Int64("nn", nn).
				Err(err).
				Msg("io.Copy failed")
		}

		err = fr.Close()
		if err != nil {
			log.Logger.Fatal().
				Err(err).
				Msg("crush.Reader.Close failed")
		}
	} else {
		fw := crush.NewWriter(w, opts...)

		nn, err := io.Copy(fw, r)
		if err != nil {
			log.Logger.Fatal().
				Int64("nn", nn).
				Err(err).
				Msg("io.Copy failed")
		}

		err = fw.Close()
		if err != nil {
			log.Logger.Fatal().
				Err(err).
				Msg("crush.Writer.Close failed")
		}
	}
}
