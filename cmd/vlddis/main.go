// Package main provides vlddis, a disassembler for ARM NEON VLDn loads.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// NewApp builds the vlddis command tree.
func NewApp() *cli.App {
	return &cli.App{
		Name:  "vlddis",
		Usage: "Disassemble ARM NEON VLD1-VLD4 element and structure loads",
		Flags: []cli.Flag{VerbosityFlag},
		Commands: []*cli.Command{
			DecodeCommand,
			BytesCommand,
			ScanCommand,
		},
	}
}

func main() {
	if err := NewApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
