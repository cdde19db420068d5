package insts

// badAlign marks an alignment code that makes the encoding UNDEFINED.
const badAlign = -1

// multipleForm describes one type encoding of the multiple structures form.
type multipleForm struct {
	n       uint8    // structure size; 0 marks an unallocated type
	regs    uint8    // registers in the list
	spacing uint8    // register stride
	maxSize uint8    // largest legal size field
	align   [4]int16 // align field -> alignment in bits
}

// multipleForms is keyed by the type field, bits [11:8].
var multipleForms = [16]multipleForm{
	0b0000: {n: 4, regs: 4, spacing: 1, maxSize: 0b10, align: [4]int16{0, 64, 128, 256}},
	0b0001: {n: 4, regs: 4, spacing: 2, maxSize: 0b10, align: [4]int16{0, 64, 128, 256}},
	0b0010: {n: 1, regs: 4, spacing: 1, maxSize: 0b11, align: [4]int16{0, 64, 128, 256}},
	0b0011: {n: 2, regs: 4, spacing: 1, maxSize: 0b10, align: [4]int16{0, 64, 128, 256}},
	0b0100: {n: 3, regs: 3, spacing: 1, maxSize: 0b10, align: [4]int16{0, 64, badAlign, badAlign}},
	0b0101: {n: 3, regs: 3, spacing: 2, maxSize: 0b10, align: [4]int16{0, 64, badAlign, badAlign}},
	0b0110: {n: 1, regs: 3, spacing: 1, maxSize: 0b11, align: [4]int16{0, 64, badAlign, badAlign}},
	0b0111: {n: 1, regs: 1, spacing: 1, maxSize: 0b11, align: [4]int16{0, 64, badAlign, badAlign}},
	0b1000: {n: 2, regs: 2, spacing: 1, maxSize: 0b10, align: [4]int16{0, 64, 128, badAlign}},
	0b1001: {n: 2, regs: 2, spacing: 2, maxSize: 0b10, align: [4]int16{0, 64, 128, badAlign}},
	0b1010: {n: 1, regs: 2, spacing: 1, maxSize: 0b11, align: [4]int16{0, 64, 128, badAlign}},
}

// laneForm describes how index_align, bits [7:4], is split for one
// single lane (n, size) pair.
type laneForm struct {
	indexShift uint8    // lane index = index_align >> indexShift
	reserved   uint8    // index_align bits that must be zero
	spacingBit uint8    // index_align bit selecting stride 2; 0 if fixed
	alignMask  uint8    // index_align bits forming the alignment code
	align      [4]int16 // alignment code -> alignment in bits
}

// laneForms is keyed by n-1, bits [9:8], then size, bits [11:10].
// Size 0b11 selects the all lanes form and has no row here.
var laneForms = [4][3]laneForm{
	{ // VLD1
		{indexShift: 1, reserved: 0b0001},
		{indexShift: 2, reserved: 0b0010, alignMask: 0b0001, align: [4]int16{0, 16}},
		{indexShift: 3, reserved: 0b0100, alignMask: 0b0011, align: [4]int16{0, badAlign, badAlign, 32}},
	},
	{ // VLD2
		{indexShift: 1, alignMask: 0b0001, align: [4]int16{0, 16}},
		{indexShift: 2, spacingBit: 0b0010, alignMask: 0b0001, align: [4]int16{0, 32}},
		{indexShift: 3, reserved: 0b0010, spacingBit: 0b0100, alignMask: 0b0001, align: [4]int16{0, 64}},
	},
	{ // VLD3
		{indexShift: 1, reserved: 0b0001},
		{indexShift: 2, reserved: 0b0001, spacingBit: 0b0010},
		{indexShift: 3, reserved: 0b0011, spacingBit: 0b0100},
	},
	{ // VLD4
		{indexShift: 1, alignMask: 0b0001, align: [4]int16{0, 32}},
		{indexShift: 2, spacingBit: 0b0010, alignMask: 0b0001, align: [4]int16{0, 64}},
		{indexShift: 3, spacingBit: 0b0100, alignMask: 0b0011, align: [4]int16{0, 64, 128, badAlign}},
	},
}

// replicateForm describes one all lanes (n, size) pair.
type replicateForm struct {
	elemSize uint8 // element size in bits; 0 marks UNDEFINED
	align    int16 // alignment in bits when a=1
	needA    bool  // a=0 is UNDEFINED
	tRegs    bool  // T selects two registers instead of stride 2
}

// replicateForms is keyed by n-1, bits [9:8], then size, bits [7:6].
var replicateForms = [4][4]replicateForm{
	{ // VLD1
		{elemSize: 8, align: badAlign, tRegs: true},
		{elemSize: 16, align: 16, tRegs: true},
		{elemSize: 32, align: 32, tRegs: true},
		{},
	},
	{ // VLD2
		{elemSize: 8, align: 16},
		{elemSize: 16, align: 32},
		{elemSize: 32, align: 64},
		{},
	},
	{ // VLD3
		{elemSize: 8, align: badAlign},
		{elemSize: 16, align: badAlign},
		{elemSize: 32, align: badAlign},
		{},
	},
	{ // VLD4
		{elemSize: 8, align: 32},
		{elemSize: 16, align: 64},
		{elemSize: 32, align: 64},
		{elemSize: 32, align: 128, needA: true},
	},
}

// class is the output of the variant classifier.
type class struct {
	variant Variant
	lane    uint8
	align   int16
}

// classify selects the variant, lane and alignment for an element load.
func classify(f Fields) (class, error) {
	switch {
	case f.A == 0:
		return classifyMultiple(f)
	case f.LaneSize() == 0b11:
		return classifyReplicate(f)
	default:
		return classifyLane(f)
	}
}

// classifyMultiple decodes VLDn (multiple single elements / structures).
// Format: 1111 0100 0 D 1 0 | Rn | Vd | type | size | align | Rm
func classifyMultiple(f Fields) (class, error) {
	form := multipleForms[f.Type]
	if form.n == 0 {
		return class{}, undefined(f.Word, "unallocated multiple structures type")
	}
	if f.Size > form.maxSize {
		return class{}, undefined(f.Word, "size not allowed for structure type")
	}

	return class{
		variant: Variant{
			Shape:       ShapeMultiple,
			N:           form.n,
			Regs:        form.regs,
			Spacing:     form.spacing,
			ElementSize: 8 << f.Size,
		},
		align: form.align[f.Align],
	}, nil
}

// classifyLane decodes VLDn (single element / structure to one lane).
// Format: 1111 0100 1 D 1 0 | Rn | Vd | size | n-1 | index_align | Rm
func classifyLane(f Fields) (class, error) {
	n := f.LaneN() + 1
	form := laneForms[f.LaneN()][f.LaneSize()]
	ia := f.IndexAlign

	if ia&form.reserved != 0 {
		return class{}, undefined(f.Word, "reserved index_align bits set")
	}

	spacing := uint8(1)
	if ia&form.spacingBit != 0 {
		spacing = 2
	}

	return class{
		variant: Variant{
			Shape:       ShapeSingleLane,
			N:           n,
			Regs:        n,
			Spacing:     spacing,
			ElementSize: 8 << f.LaneSize(),
		},
		lane:  ia >> form.indexShift,
		align: form.align[ia&form.alignMask],
	}, nil
}

// classifyReplicate decodes VLDn (single element / structure to all lanes).
// Format: 1111 0100 1 D 1 0 | Rn | Vd | 11 | n-1 | size | T | a | Rm
func classifyReplicate(f Fields) (class, error) {
	n := f.LaneN() + 1
	form := replicateForms[f.LaneN()][f.Size]
	if form.elemSize == 0 {
		return class{}, undefined(f.Word, "size not allowed for all lanes load")
	}
	if form.needA && f.LowA() == 0 {
		return class{}, undefined(f.Word, "all lanes load requires a=1 for this size")
	}

	v := Variant{
		Shape:       ShapeAllLanes,
		N:           n,
		Regs:        n,
		Spacing:     1,
		ElementSize: form.elemSize,
	}
	if form.tRegs {
		v.Regs += f.T()
	} else {
		v.Spacing += f.T()
	}

	var align int16
	if f.LowA() == 1 {
		align = form.align
	}

	return class{variant: v, align: align}, nil
}
