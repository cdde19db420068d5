package insts

import (
	"errors"
	"fmt"
)

// Decode failure kinds. A *DecodeError wraps exactly one of them.
var (
	// ErrUndefinedEncoding reports subfields that form no valid load.
	ErrUndefinedEncoding = errors.New("undefined encoding")
	// ErrReservedField reports an architecturally UNPREDICTABLE field
	// combination rejected by a strict decoder.
	ErrReservedField = errors.New("reserved field violation")
)

// ErrShort reports byte input shorter than one instruction word.
var ErrShort = errors.New("truncated instruction")

// DecodeError describes why a word could not be decoded.
type DecodeError struct {
	Word   uint32
	Kind   error
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("0x%08x: %v: %s", e.Word, e.Kind, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func undefined(word uint32, reason string) error {
	return &DecodeError{Word: word, Kind: ErrUndefinedEncoding, Reason: reason}
}

func reserved(word uint32, reason string) error {
	return &DecodeError{Word: word, Kind: ErrReservedField, Reason: reason}
}
