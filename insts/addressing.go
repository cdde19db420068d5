package insts

// resolveAddressing builds the addressing mode from Rn, Rm and the
// alignment chosen by the classifier.
func resolveAddressing(f Fields, align int16) (Addressing, error) {
	if align == badAlign {
		return Addressing{}, undefined(f.Word, "alignment not allowed for this form")
	}

	addr := Addressing{
		Base:  f.Rn,
		Align: uint16(align),
	}

	switch f.Rm {
	case regPC:
		addr.Update = UpdateFixed
	case regSP:
		addr.Update = UpdateAutoIncrement
	default:
		addr.Update = UpdateRegisterOffset
		addr.Index = f.Rm
	}

	return addr, nil
}
