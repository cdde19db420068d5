package insts

import "fmt"

// NumDRegs is the number of 64-bit NEON D registers.
const NumDRegs = 32

// Op represents a NEON load opcode.
type Op uint8

// NEON load opcodes.
const (
	OpUnknown Op = iota
	OpVLD1
	OpVLD2
	OpVLD3
	OpVLD4
)

var opNames = [...]string{
	OpUnknown: "unknown",
	OpVLD1:    "vld1",
	OpVLD2:    "vld2",
	OpVLD3:    "vld3",
	OpVLD4:    "vld4",
}

// String returns the lower-case mnemonic.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// opForN returns the VLDn opcode for a structure size of n.
func opForN(n uint8) Op {
	if n < 1 || n > 4 {
		return OpUnknown
	}
	return OpVLD1 + Op(n-1)
}

// Shape represents the instruction shape within the VLDn family.
type Shape uint8

// Instruction shapes.
const (
	ShapeUnknown    Shape = iota
	ShapeMultiple         // Multiple structures: {d0, d1}
	ShapeSingleLane       // One element to one lane: {d0[1], d1[1]}
	ShapeAllLanes         // One element replicated to all lanes: {d0[], d1[]}
)

// String returns a short name for the shape.
func (s Shape) String() string {
	switch s {
	case ShapeMultiple:
		return "multiple"
	case ShapeSingleLane:
		return "single-lane"
	case ShapeAllLanes:
		return "all-lanes"
	default:
		return "unknown"
	}
}

// Variant is the classified form of a load.
type Variant struct {
	Shape       Shape
	N           uint8 // Structure size, the n of VLDn (1-4)
	Regs        uint8 // Length of the register list (1-4)
	Spacing     uint8 // Register stride, 1 or 2
	ElementSize uint8 // Element size in bits: 8, 16, 32 or 64
}

// UpdateKind represents the post-transfer base register update.
type UpdateKind uint8

// Base register update kinds.
const (
	UpdateFixed          UpdateKind = iota // [rn]
	UpdateAutoIncrement                    // [rn]!
	UpdateRegisterOffset                   // [rn], rm
)

// Addressing is the resolved addressing mode of a load.
type Addressing struct {
	Base   uint8      // Base register Rn
	Align  uint16     // Alignment in bits, 0 when no hint is present
	Update UpdateKind // Post-transfer update
	Index  uint8      // Offset register Rm, only for UpdateRegisterOffset
}

// Writeback reports whether the base register is updated.
func (a Addressing) Writeback() bool {
	return a.Update != UpdateFixed
}

// RegisterList is the ordered list of D register numbers touched by a load.
type RegisterList []uint8

// Instruction represents a decoded NEON load instruction.
type Instruction struct {
	Op      Op     // Operation code
	Word    uint32 // Encoded instruction word
	Variant Variant

	Registers RegisterList
	Addr      Addressing

	// Lane is the element index for ShapeSingleLane.
	Lane uint8
}

// HasLane reports whether Lane is meaningful.
func (i *Instruction) HasLane() bool {
	return i.Variant.Shape == ShapeSingleLane
}

// TransferBytes is the number of bytes read from memory.
func (i *Instruction) TransferBytes() int {
	elemBytes := int(i.Variant.ElementSize) / 8
	switch i.Variant.Shape {
	case ShapeMultiple:
		return int(i.Variant.Regs) * 8
	default:
		return int(i.Variant.N) * elemBytes
	}
}
