package isa

import (
	"errors"

	"github.com/ezrec/pineapple/translate"
)

var f = translate.From

var (
	// Decode errors
	ErrOpcode        = errors.New(f("opcode unsupported"))
	ErrFunct3        = errors.New(f("funct3 unsupported"))
	ErrUnimplemented = errors.New(f("instruction unimplemented"))

	// Encode errors
	ErrImmediateRange = errors.New(f("immediate out of range"))
	ErrImmediateAlign = errors.New(f("immediate misaligned"))
	ErrRegister       = errors.New(f("register invalid"))
	ErrEncode         = errors.New(f("not representable in layout"))
	ErrInstruction    = errors.New(f("instruction invalid"))
	ErrLayout         = errors.New(f("layout unknown"))
)

// ErrDecode is returned when a word does not decode to a supported
// instruction.
type ErrDecode struct {
	Word uint32
	Err  error
}

func (err *ErrDecode) Error() string {
	return f("bad instruction 0x%08x %v", err.Word, err.Err)
}

func (err *ErrDecode) Unwrap() error {
	return err.Err
}

// ErrImmediate is returned when an immediate cannot be carried by a format.
type ErrImmediate struct {
	Format Format
	Value  int32
	Err    error
}

func (err *ErrImmediate) Error() string {
	return f("%v-format immediate %#x %v", err.Format, uint32(err.Value), err.Err)
}

func (err *ErrImmediate) Unwrap() error {
	return err.Err
}
