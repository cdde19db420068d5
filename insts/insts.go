// Package insts provides decoding of ARM NEON VLDn element and structure
// loads.
//
// This package decodes A32 Advanced SIMD "element or structure load" words
// into structured instruction representations and renders them in ARM
// unified assembler syntax. It supports:
//   - Multiple structures: VLD1-VLD4 {d0, d1}, [r0:64]
//   - Single lane: VLD1-VLD4 {d0[1], d1[1]}, [r0]
//   - All lanes (replicate): VLD1-VLD4 {d0[], d1[]}, [r0]!
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst, err := decoder.Decode(0xf460071f)
//	if err != nil {
//		return err
//	}
//	fmt.Println(inst) // vld1.8 {d16}, [r0:64]
package insts
