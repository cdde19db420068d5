package insts_test

import (
	"errors"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/vldasm/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("Bitfield extraction", func() {
		// vld4.8 {d16, d17, d18, d19}, [r1:64], r8 -> 0xF4610018
		It("should split a multiple structures word", func() {
			f := insts.Extract(0xF4610018)

			Expect(f.Class).To(Equal(uint8(0xF4)))
			Expect(f.A).To(Equal(uint8(0)))
			Expect(f.D).To(Equal(uint8(1)))
			Expect(f.L).To(Equal(uint8(1)))
			Expect(f.Bit20).To(Equal(uint8(0)))
			Expect(f.Rn).To(Equal(uint8(1)))
			Expect(f.Vd).To(Equal(uint8(0)))
			Expect(f.First()).To(Equal(uint8(16)))
			Expect(f.Type).To(Equal(uint8(0)))
			Expect(f.Size).To(Equal(uint8(0)))
			Expect(f.Align).To(Equal(uint8(1)))
			Expect(f.Rm).To(Equal(uint8(8)))
		})

		// vld2.32 {d22[], d24[]}, [r1] -> 0xF4E16DAF
		It("should split an all lanes word", func() {
			f := insts.Extract(0xF4E16DAF)

			Expect(f.A).To(Equal(uint8(1)))
			Expect(f.LaneSize()).To(Equal(uint8(0b11)))
			Expect(f.LaneN()).To(Equal(uint8(0b01)))
			Expect(f.Size).To(Equal(uint8(0b10)))
			Expect(f.T()).To(Equal(uint8(1)))
			Expect(f.LowA()).To(Equal(uint8(0)))
			Expect(f.First()).To(Equal(uint8(22)))
		})
	})

	Describe("Corpus scenarios", func() {
		DescribeTable("should render",
			func(src []byte, want string) {
				inst, err := decoder.DecodeBytes(src)
				Expect(err).NotTo(HaveOccurred())
				Expect(inst.String()).To(Equal(want))
			},
			Entry("vld1 with alignment", []byte{0x1f, 0x07, 0x60, 0xf4}, "vld1.8 {d16}, [r0:64]"),
			Entry("vld3 consecutive", []byte{0x0f, 0x04, 0x61, 0xf4}, "vld3.8 {d16, d17, d18}, [r1]"),
			Entry("vld1 single lane writeback", []byte{0xcd, 0xc0, 0xa2, 0xf4}, "vld1.8 {d12[6]}, [r2]!"),
			Entry("vld2 all lanes", []byte{0x8f, 0x6d, 0xe1, 0xf4}, "vld2.32 {d22[], d23[]}, [r1]"),
			Entry("vld4 register offset", []byte{0x18, 0x00, 0x61, 0xf4}, "vld4.8 {d16, d17, d18, d19}, [r1:64], r8"),
			Entry("vld3 double spaced", []byte{0x4f, 0xb5, 0x64, 0xf4}, "vld3.16 {d27, d29, d31}, [r4]"),
			Entry("vld4 single lane double spaced", []byte{0x6d, 0x17, 0xe7, 0xf4}, "vld4.16 {d17[1], d19[1], d21[1], d23[1]}, [r7]!"),
		)
	})

	Describe("Multiple structures", func() {
		// vld2.32 {d14, d15, d16, d17}, [r0:256]! -> 0xF420E3BD
		It("should decode vld2 with four registers", func() {
			inst, err := decoder.Decode(0xF420E3BD)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Op).To(Equal(insts.OpVLD2))
			Expect(inst.Variant).To(Equal(insts.Variant{
				Shape:       insts.ShapeMultiple,
				N:           2,
				Regs:        4,
				Spacing:     1,
				ElementSize: 32,
			}))
			Expect(inst.Registers).To(Equal(insts.RegisterList{14, 15, 16, 17}))
			Expect(inst.Addr).To(Equal(insts.Addressing{
				Base:   0,
				Align:  256,
				Update: insts.UpdateAutoIncrement,
			}))
			Expect(inst.HasLane()).To(BeFalse())
		})

		// vld4.32 {d16, d18, d20, d22}, [r8] -> 0xF468018F
		It("should decode vld4 with stride 2", func() {
			inst, err := decoder.Decode(0xF468018F)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Op).To(Equal(insts.OpVLD4))
			Expect(inst.Variant.Spacing).To(Equal(uint8(2)))
			Expect(inst.Registers).To(Equal(insts.RegisterList{16, 18, 20, 22}))
			Expect(inst.Addr.Update).To(Equal(insts.UpdateFixed))
			Expect(inst.Addr.Writeback()).To(BeFalse())
		})

		// vld1.64 {d2, d3, d4, d5}, [r2:128]! -> 0xF42222ED
		It("should allow 64-bit elements for vld1", func() {
			inst, err := decoder.Decode(0xF42222ED)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Variant.ElementSize).To(Equal(uint8(64)))
			Expect(inst.Addr.Align).To(Equal(uint16(128)))
			Expect(inst.TransferBytes()).To(Equal(32))
		})
	})

	Describe("Single lane", func() {
		// vld1.16 {d16[2]}, [r0:16] -> 0xF4E0049F
		It("should decode lane index and alignment", func() {
			inst, err := decoder.Decode(0xF4E0049F)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Variant.Shape).To(Equal(insts.ShapeSingleLane))
			Expect(inst.HasLane()).To(BeTrue())
			Expect(inst.Lane).To(Equal(uint8(2)))
			Expect(inst.Addr.Align).To(Equal(uint16(16)))
			Expect(inst.Registers).To(Equal(insts.RegisterList{16}))
		})

		// vld4.32 {d16[1], d17[1], d18[1], d19[1]}, [r3:128]! -> 0xF4E30BAD
		It("should decode vld4.32 128-bit alignment", func() {
			inst, err := decoder.Decode(0xF4E30BAD)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Op).To(Equal(insts.OpVLD4))
			Expect(inst.Lane).To(Equal(uint8(1)))
			Expect(inst.Addr.Align).To(Equal(uint16(128)))
			Expect(inst.TransferBytes()).To(Equal(16))
		})

		// vld2.32 {d17[0], d19[0]}, [r0:64] -> 0xF4E0195F
		It("should honor the spacing bit", func() {
			inst, err := decoder.Decode(0xF4E0195F)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Registers).To(Equal(insts.RegisterList{17, 19}))
			Expect(inst.Lane).To(Equal(uint8(0)))
		})
	})

	Describe("All lanes", func() {
		// vld1.8 {d4[], d5[]}, [r1] -> 0xF4A14C2F
		It("should read T as a register count for vld1", func() {
			inst, err := decoder.Decode(0xF4A14C2F)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Variant.N).To(Equal(uint8(1)))
			Expect(inst.Variant.Regs).To(Equal(uint8(2)))
			Expect(inst.Registers).To(Equal(insts.RegisterList{4, 5}))
			Expect(inst.HasLane()).To(BeFalse())
		})

		// vld3.8 {d17[], d19[], d21[]}, [r7] -> 0xF4E71E2F
		It("should read T as a stride for vld3", func() {
			inst, err := decoder.Decode(0xF4E71E2F)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Variant.Regs).To(Equal(uint8(3)))
			Expect(inst.Registers).To(Equal(insts.RegisterList{17, 19, 21}))
		})

		It("should print vld4 size 0b11 as 32-bit with 128-bit alignment", func() {
			text, err := decoder.Disassemble(0xF4E00FDF)
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("vld4.32 {d16[], d17[], d18[], d19[]}, [r0:128]"))
		})
	})

	Describe("Addressing", func() {
		It("should render core register aliases", func() {
			text, err := decoder.Disassemble(0xF46D070F)
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("vld1.8 {d16}, [sp]"))

			text, err = decoder.Disassemble(0xF460070E)
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("vld1.8 {d16}, [r0], lr"))
		})

		It("should keep writeback and register offset exclusive", func() {
			inst, err := decoder.Decode(0xF460071D)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Addr.Update).To(Equal(insts.UpdateAutoIncrement))
			Expect(inst.Addr.Index).To(BeZero())

			inst, err = decoder.Decode(0xF4600715)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Addr.Update).To(Equal(insts.UpdateRegisterOffset))
			Expect(inst.Addr.Index).To(Equal(uint8(5)))
			Expect(inst.Addr.Writeback()).To(BeTrue())
		})
	})

	Describe("Undefined encodings", func() {
		DescribeTable("should fail with ErrUndefinedEncoding",
			func(word uint32) {
				inst, err := decoder.Decode(word)
				Expect(inst).To(BeNil())
				Expect(err).To(MatchError(insts.ErrUndefinedEncoding))

				var decodeErr *insts.DecodeError
				Expect(errors.As(err, &decodeErr)).To(BeTrue())
				Expect(decodeErr.Word).To(Equal(word))
				Expect(decodeErr.Reason).NotTo(BeEmpty())
			},
			Entry("unallocated type 0b1011", uint32(0xF4600B0F)),
			Entry("vld2 with 64-bit elements", uint32(0xF46008CF)),
			Entry("vld1 one register with 128-bit alignment", uint32(0xF460072F)),
			Entry("vld3 with 128-bit alignment", uint32(0xF460042F)),
			Entry("single lane reserved index bit", uint32(0xF4E0001F)),
			Entry("vld1.32 single lane partial alignment", uint32(0xF4E0081F)),
			Entry("vld4 all lanes size 0b11 without a", uint32(0xF4E00FCF)),
			Entry("vld3 all lanes with alignment", uint32(0xF4E00E1F)),
			Entry("vld1 all lanes size 0b11", uint32(0xF4E00CCF)),
			Entry("store", uint32(0xF440071F)),
			Entry("bit 20 set", uint32(0xF470071F)),
			Entry("data processing word", uint32(0xE0800001)),
		)

		It("should report truncated byte input", func() {
			_, err := decoder.DecodeBytes([]byte{0x1f, 0x07, 0x60})
			Expect(err).To(MatchError(insts.ErrShort))
		})

		It("should propagate errors from Disassemble", func() {
			text, err := decoder.Disassemble(0xF4600B0F)
			Expect(err).To(HaveOccurred())
			Expect(text).To(BeEmpty())
			Expect(err.Error()).To(ContainSubstring("0xf4600b0f"))
		})
	})

	Describe("Reserved fields", func() {
		It("should pass wraparound through by default", func() {
			inst, err := decoder.Decode(0xF460E00F)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.String()).To(Equal("vld4.8 {d30, d31, d0, d1}, [r0]"))
		})

		It("should pass a pc base through by default", func() {
			text, err := decoder.Disassemble(0xF46F070F)
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("vld1.8 {d16}, [pc]"))
		})

		Context("with a strict decoder", func() {
			BeforeEach(func() {
				decoder = insts.NewDecoder(insts.WithStrict())
			})

			It("should be strict", func() {
				Expect(decoder.Strict()).To(BeTrue())
			})

			It("should reject wraparound", func() {
				_, err := decoder.Decode(0xF460E00F)
				Expect(err).To(MatchError(insts.ErrReservedField))
			})

			It("should reject a pc base", func() {
				_, err := decoder.Decode(0xF46F070F)
				Expect(err).To(MatchError(insts.ErrReservedField))
			})
		})
	})

	Describe("Purity", func() {
		It("should return identical results for repeated decodes", func() {
			first, err := decoder.Decode(0xF4E7176D)
			Expect(err).NotTo(HaveOccurred())
			second, err := decoder.Decode(0xF4E7176D)
			Expect(err).NotTo(HaveOccurred())

			Expect(cmp.Diff(first, second)).To(BeEmpty())
			Expect(first).NotTo(BeIdenticalTo(second))
		})

		It("should decode concurrently without shared state", func() {
			words := []uint32{0xF460071F, 0xF461040F, 0xF4A2C0CD, 0xF4E16D8F, 0xF4610018}
			want := make([]string, len(words))
			for i, w := range words {
				text, err := decoder.Disassemble(w)
				Expect(err).NotTo(HaveOccurred())
				want[i] = text
			}

			got := make([][]string, 8)
			var g errgroup.Group
			for worker := range got {
				g.Go(func() error {
					out := make([]string, len(words))
					for i, w := range words {
						text, err := decoder.Disassemble(w)
						if err != nil {
							return err
						}
						out[i] = text
					}
					got[worker] = out
					return nil
				})
			}
			Expect(g.Wait()).To(Succeed())

			for _, out := range got {
				Expect(out).To(Equal(want))
			}
		})
	})

	Describe("Exhaustive sweep", func() {
		It("should never panic and keep invariants for the low 12 bits", func() {
			decoded := 0
			for _, hi := range []uint32{0xF4200000, 0xF4A00000, 0xF4610000, 0xF4E10000} {
				for _, vd := range []uint32{0, 7, 15} {
					for low := uint32(0); low < 0x1000; low++ {
						word := hi | vd<<12 | low
						inst, err := decoder.Decode(word)
						if err != nil {
							Expect(err).To(MatchError(insts.ErrUndefinedEncoding))
							continue
						}
						expectInvariants(inst)
						decoded++
					}
				}
			}
			Expect(decoded).To(BeNumerically(">", 0))
		})
	})
})
