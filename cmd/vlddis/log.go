package main

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/urfave/cli/v2"
)

// VerbosityFlag selects how much the scanner logs.
var VerbosityFlag = &cli.IntFlag{
	Name:    "verbosity",
	Aliases: []string{"v"},
	Usage:   "log verbosity (0 = summary, 1 = per image, 2 = per chunk)",
	Value:   0,
}

// Logger builds a logfmt-style logger writing to w.
func Logger(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		_, _ = fmt.Fprintln(w, args)
	}, funcr.Options{
		Verbosity: verbosity,
	})
}

// HexU32 formats an instruction word as eight hex digits.
type HexU32 uint32

func (v HexU32) String() string {
	return fmt.Sprintf("%08x", uint32(v))
}
