package main

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sarchlab/vldasm/insts"
)

// StrictFlag makes decoding reject UNPREDICTABLE encodings.
var StrictFlag = &cli.BoolFlag{
	Name:  "strict",
	Usage: "reject UNPREDICTABLE encodings (pc base, register lists past d31)",
}

// DecodeCommand disassembles instruction words given in hex.
var DecodeCommand = &cli.Command{
	Name:      "decode",
	Usage:     "Disassemble 32-bit instruction words",
	ArgsUsage: "<word> [word...]",
	Flags:     []cli.Flag{StrictFlag},
	Action:    Decode,
}

// BytesCommand disassembles little-endian byte quadruples.
var BytesCommand = &cli.Command{
	Name:      "bytes",
	Usage:     "Disassemble little-endian instruction bytes, e.g. 0x1f,0x07,0x60,0xf4",
	ArgsUsage: "<byte>...",
	Flags:     []cli.Flag{StrictFlag},
	Action:    Bytes,
}

func newDecoder(ctx *cli.Context) *insts.Decoder {
	if ctx.Bool(StrictFlag.Name) {
		return insts.NewDecoder(insts.WithStrict())
	}
	return insts.NewDecoder()
}

// parseWord parses a word written in hex, with or without a 0x prefix.
func parseWord(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	w, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid instruction word %q: %w", s, err)
	}
	return uint32(w), nil
}

// parseBytes splits arguments on commas and spaces into hex bytes.
func parseBytes(args []string) ([]byte, error) {
	var out []byte
	for _, arg := range args {
		for _, field := range strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == ' '
		}) {
			b, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(field), "0x"), 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid byte %q: %w", field, err)
			}
			out = append(out, byte(b))
		}
	}
	return out, nil
}

// Decode is the action of DecodeCommand.
func Decode(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.Exit("no instruction words given", 2)
	}

	var words []uint32
	for _, arg := range ctx.Args().Slice() {
		w, err := parseWord(arg)
		if err != nil {
			return err
		}
		words = append(words, w)
	}

	return printWords(ctx, newDecoder(ctx), words)
}

// Bytes is the action of BytesCommand.
func Bytes(ctx *cli.Context) error {
	raw, err := parseBytes(ctx.Args().Slice())
	if err != nil {
		return err
	}
	if len(raw) == 0 || len(raw)%4 != 0 {
		return cli.Exit(fmt.Sprintf("need a multiple of 4 bytes, got %d", len(raw)), 2)
	}

	var words []uint32
	for off := 0; off < len(raw); off += 4 {
		words = append(words, binary.LittleEndian.Uint32(raw[off:]))
	}

	return printWords(ctx, newDecoder(ctx), words)
}

// printWords writes one line per word and fails if any word did not decode.
func printWords(ctx *cli.Context, decoder *insts.Decoder, words []uint32) error {
	out := ctx.App.Writer
	failed := 0
	for _, w := range words {
		text, err := decoder.Disassemble(w)
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(ctx.App.ErrWriter, "%s\t<%v>\n", HexU32(w), err)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s\t%s\n", HexU32(w), text)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d words did not decode", failed, len(words)), 1)
	}
	return nil
}
