package insts

// registerList lays out the D registers of a load starting at first,
// stepping by the variant's spacing. Numbers past d31 wrap modulo 32; the
// second result reports whether that happened.
func registerList(first uint8, v Variant) (RegisterList, bool) {
	list := make(RegisterList, v.Regs)
	wrapped := false
	for i := range list {
		r := first + uint8(i)*v.Spacing
		if r >= NumDRegs {
			wrapped = true
		}
		list[i] = r % NumDRegs
	}
	return list, wrapped
}
