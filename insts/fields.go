package insts

// Fixed bits of the Advanced SIMD element or structure load/store space.
const (
	classSIMDElement = 0xF4 // bits [31:24]
	regSP            = 13   // Rm placeholder for writeback by transfer size
	regPC            = 15   // Rm placeholder for no writeback
)

// Fields holds the raw subfields of an element or structure load/store
// word. Extract does not judge them; the classifier does.
type Fields struct {
	Word       uint32 // Encoded word
	Class      uint8 // bits [31:24]
	A          uint8 // bit 23: 0=multiple structures, 1=single or all lanes
	D          uint8 // bit 22: high bit of the first D register
	L          uint8 // bit 21: 1=load, 0=store
	Bit20      uint8 // bit 20: must be 0
	Rn         uint8 // bits [19:16]
	Vd         uint8 // bits [15:12]
	Type       uint8 // bits [11:8]
	Size       uint8 // bits [7:6]
	Align      uint8 // bits [5:4]
	IndexAlign uint8 // bits [7:4]
	Rm         uint8 // bits [3:0]
}

// Extract splits a 32-bit word into its load/store subfields.
func Extract(word uint32) Fields {
	return Fields{
		Word:       word,
		Class:      uint8(word >> 24),        // bits [31:24]
		A:          uint8((word >> 23) & 0x1), // bit 23
		D:          uint8((word >> 22) & 0x1), // bit 22
		L:          uint8((word >> 21) & 0x1), // bit 21
		Bit20:      uint8((word >> 20) & 0x1), // bit 20
		Rn:         uint8((word >> 16) & 0xF), // bits [19:16]
		Vd:         uint8((word >> 12) & 0xF), // bits [15:12]
		Type:       uint8((word >> 8) & 0xF),  // bits [11:8]
		Size:       uint8((word >> 6) & 0x3),  // bits [7:6]
		Align:      uint8((word >> 4) & 0x3),  // bits [5:4]
		IndexAlign: uint8((word >> 4) & 0xF),  // bits [7:4]
		Rm:         uint8(word & 0xF),         // bits [3:0]
	}
}

// First returns the first D register number, D:Vd.
func (f Fields) First() uint8 {
	return f.D<<4 | f.Vd
}

// LaneSize returns bits [11:10] of a single or all lanes word.
func (f Fields) LaneSize() uint8 {
	return f.Type >> 2
}

// LaneN returns bits [9:8] of a single or all lanes word, which hold n-1.
func (f Fields) LaneN() uint8 {
	return f.Type & 0x3
}

// T returns bit 5 of an all lanes word.
func (f Fields) T() uint8 {
	return (f.IndexAlign >> 1) & 0x1
}

// LowA returns bit 4 of an all lanes word.
func (f Fields) LowA() uint8 {
	return f.IndexAlign & 0x1
}

// isElementLoad checks for the element or structure load space:
// 1111 0100 A D 1 0
func (f Fields) isElementLoad() bool {
	return f.Class == classSIMDElement && f.L == 1 && f.Bit20 == 0
}
