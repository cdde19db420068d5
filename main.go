// Package main provides the entry point for vldasm.
// vldasm decodes and disassembles ARM NEON VLD1-VLD4 loads.
//
// For the full CLI, use: go run ./cmd/vlddis
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("vldasm - ARM NEON VLDn disassembler")
	fmt.Println("")
	fmt.Println("Usage: vlddis <command> [options] <args>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  decode     Disassemble 32-bit instruction words")
	fmt.Println("  bytes      Disassemble little-endian instruction bytes")
	fmt.Println("  scan       Find NEON loads in an ARM ELF file")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/vlddis' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/vlddis' instead.")
	}
}
