package main

import (
	"fmt"

	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/sarchlab/vldasm/loader"
	"github.com/sarchlab/vldasm/scan"
)

var (
	ScanConfigFlag = &cli.PathFlag{
		Name:  "config",
		Usage: "path to a scan configuration JSON file",
	}
	ScanWorkersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "number of chunks decoded concurrently (overrides config)",
	}
	ScanMaxHitsFlag = &cli.IntFlag{
		Name:  "max-hits",
		Usage: "stop printing after this many loads (overrides config)",
	}
	ScanPProfCPUFlag = &cli.BoolFlag{
		Name:  "pprof.cpu",
		Usage: "write a CPU profile to the current directory",
	}
)

// ScanCommand finds and disassembles NEON loads in an ARM ELF file.
var ScanCommand = &cli.Command{
	Name:      "scan",
	Usage:     "Find NEON loads in the executable segments of an ARM ELF file",
	ArgsUsage: "<program.elf>",
	Flags: []cli.Flag{
		ScanConfigFlag,
		StrictFlag,
		ScanWorkersFlag,
		ScanMaxHitsFlag,
		ScanPProfCPUFlag,
	},
	Action: Scan,
}

// scanConfig layers command line flags over the config file or defaults.
func scanConfig(ctx *cli.Context) (*scan.Config, error) {
	config := scan.DefaultConfig()
	if path := ctx.Path(ScanConfigFlag.Name); path != "" {
		var err error
		config, err = scan.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if ctx.IsSet(StrictFlag.Name) {
		config.Strict = ctx.Bool(StrictFlag.Name)
	}
	if ctx.IsSet(ScanWorkersFlag.Name) {
		config.Workers = ctx.Int(ScanWorkersFlag.Name)
	}
	if ctx.IsSet(ScanMaxHitsFlag.Name) {
		config.MaxHits = ctx.Int(ScanMaxHitsFlag.Name)
	}

	return config, config.Validate()
}

// Scan is the action of ScanCommand.
func Scan(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.Exit("usage: vlddis scan <program.elf>", 2)
	}
	if ctx.Bool(ScanPProfCPUFlag.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}

	config, err := scanConfig(ctx)
	if err != nil {
		return err
	}

	programPath := ctx.Args().First()
	prog, err := loader.Load(programPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", programPath, err)
	}

	log := Logger(ctx.App.ErrWriter, ctx.Int(VerbosityFlag.Name)).WithName("scan")
	scanner, err := scan.NewScanner(scan.WithConfig(config), scan.WithLogger(log))
	if err != nil {
		return err
	}

	result, err := scanner.ScanProgram(ctx.Context, prog)
	if err != nil {
		return err
	}

	out := ctx.App.Writer
	for _, hit := range result.Hits {
		_, _ = fmt.Fprintln(out, hit)
	}
	_, _ = fmt.Fprintf(out, "\n%d loads in %d words (%d undefined, %d reserved)\n",
		len(result.Hits), result.Words, result.Undefined, result.Reserved)

	return nil
}
