package insts

import (
	"strconv"
	"strings"
)

// RegName returns the assembler name of a core register.
func RegName(r uint8) string {
	switch r {
	case 13:
		return "sp"
	case 14:
		return "lr"
	case 15:
		return "pc"
	default:
		return "r" + strconv.Itoa(int(r))
	}
}

// String renders the instruction in ARM unified assembler syntax, e.g.
// "vld4.32 {d17[1], d19[1], d21[1], d23[1]}, [r7]!".
func (i *Instruction) String() string {
	var b strings.Builder

	b.WriteString(i.Op.String())
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(int(i.Variant.ElementSize)))

	b.WriteString(" {")
	for k, r := range i.Registers {
		if k > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('d')
		b.WriteString(strconv.Itoa(int(r)))

		switch i.Variant.Shape {
		case ShapeSingleLane:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(int(i.Lane)))
			b.WriteByte(']')
		case ShapeAllLanes:
			b.WriteString("[]")
		}
	}
	b.WriteString("}, [")

	b.WriteString(RegName(i.Addr.Base))
	if i.Addr.Align != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(i.Addr.Align)))
	}
	b.WriteByte(']')

	switch i.Addr.Update {
	case UpdateAutoIncrement:
		b.WriteByte('!')
	case UpdateRegisterOffset:
		b.WriteString(", ")
		b.WriteString(RegName(i.Addr.Index))
	}

	return b.String()
}
