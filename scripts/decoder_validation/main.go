// Validate decoder allocation and throughput on the NEON load corpus shapes.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sarchlab/vldasm/insts"
)

func main() {
	decoder := insts.NewDecoder()

	words := []uint32{
		0xF460071F, // vld1.8 {d16}, [r0:64]
		0xF461040F, // vld3.8 {d16, d17, d18}, [r1]
		0xF4A2C0CD, // vld1.8 {d12[6]}, [r2]!
		0xF4E16D8F, // vld2.32 {d22[], d23[]}, [r1]
		0xF4610018, // vld4.8 {d16, d17, d18, d19}, [r1:64], r8
	}

	for _, w := range words {
		if _, err := decoder.Decode(w); err != nil {
			fmt.Fprintf(os.Stderr, "decode 0x%08x: %v\n", w, err)
			os.Exit(1)
		}
	}

	// Warm up
	for i := 0; i < 1000; i++ {
		_, _ = decoder.Decode(words[i%len(words)])
	}

	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	iterations := 100000

	for i := 0; i < iterations; i++ {
		for _, w := range words {
			_, _ = decoder.Decode(w)
		}
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	totalDecodes := iterations * len(words)
	allocations := m2.Mallocs - m1.Mallocs
	allocatedBytes := m2.TotalAlloc - m1.TotalAlloc

	fmt.Printf("Decoder Validation Results:\n")
	fmt.Printf("===========================\n")
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations: %d\n", allocations)
	fmt.Printf("Allocated bytes: %d\n", allocatedBytes)
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))
	fmt.Printf("Bytes per decode: %.1f\n", float64(allocatedBytes)/float64(totalDecodes))

	// One Instruction plus its register list.
	if float64(allocations)/float64(totalDecodes) <= 2.0 {
		fmt.Printf("\nOK: at most two allocations per decode\n")
	} else {
		fmt.Printf("\nWARNING: more than two allocations per decode\n")
	}
}
