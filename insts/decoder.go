package insts

import "encoding/binary"

// Decoder decodes NEON VLDn instruction words.
//
// A Decoder holds only its options and may be shared between goroutines.
type Decoder struct {
	strict bool
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithStrict makes the decoder reject UNPREDICTABLE encodings that a
// disassembler would otherwise print: a pc base register and register
// lists running past d31.
func WithStrict() DecoderOption {
	return func(d *Decoder) {
		d.strict = true
	}
}

// NewDecoder creates a new NEON load decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Strict reports whether the decoder was created WithStrict.
func (d *Decoder) Strict() bool {
	return d.strict
}

// Decode decodes a 32-bit instruction word.
func (d *Decoder) Decode(word uint32) (*Instruction, error) {
	f := Extract(word)
	if !f.isElementLoad() {
		return nil, undefined(word, "not an element or structure load")
	}

	c, err := classify(f)
	if err != nil {
		return nil, err
	}

	addr, err := resolveAddressing(f, c.align)
	if err != nil {
		return nil, err
	}

	regs, wrapped := registerList(f.First(), c.variant)
	if d.strict {
		if wrapped {
			return nil, reserved(word, "register list runs past d31")
		}
		if f.Rn == regPC {
			return nil, reserved(word, "pc used as base register")
		}
	}

	return &Instruction{
		Op:        opForN(c.variant.N),
		Word:      word,
		Variant:   c.variant,
		Registers: regs,
		Addr:      addr,
		Lane:      c.lane,
	}, nil
}

// DecodeBytes decodes the first four bytes of src as a little-endian
// instruction word.
func (d *Decoder) DecodeBytes(src []byte) (*Instruction, error) {
	if len(src) < 4 {
		return nil, ErrShort
	}
	return d.Decode(binary.LittleEndian.Uint32(src))
}

// Disassemble decodes word and renders it in assembler syntax.
func (d *Decoder) Disassemble(word uint32) (string, error) {
	inst, err := d.Decode(word)
	if err != nil {
		return "", err
	}
	return inst.String(), nil
}
