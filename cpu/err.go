package cpu

import (
	"errors"

	"github.com/ezrec/pineapple/isa"
	"github.com/ezrec/pineapple/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrRange       = errors.New(f("instruction range invalid"))
	ErrProgramSize = errors.New(f("program exceeds instruction memory"))
	ErrPcRange     = errors.New(f("pc outside instruction memory"))
)

// ErrLoad is returned by Load, and by every Step until Reset, when a
// program did not fit in instruction memory.
type ErrLoad struct {
	Offset uint32
	Words  int
	Err    error
}

func (err *ErrLoad) Error() string {
	return f("load of %d words at 0x%x: %v", err.Words, err.Offset, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}

// ErrInstructionRange is returned for an instruction memory range that is
// reversed or beyond IMEM_WORDS.
type ErrInstructionRange struct {
	Start uint32
	Stop  uint32
}

func (err *ErrInstructionRange) Error() string {
	return f("instructions 0x%x-0x%x: %v", err.Start, err.Stop, ErrRange)
}

func (err *ErrInstructionRange) Unwrap() error {
	return ErrRange
}

// ErrFetch is returned when the program counter is outside instruction
// memory.
type ErrFetch struct {
	Pc uint32
}

func (err *ErrFetch) Error() string {
	return f("fetch at 0x%x: %v", err.Pc, ErrPcRange)
}

func (err *ErrFetch) Unwrap() error {
	return ErrPcRange
}

// ErrExecute is returned when the instruction at Pc could not be decoded
// or executed. Inst is nil if the word did not decode at all.
type ErrExecute struct {
	Pc   uint32
	Word uint32
	Inst isa.Instruction
	Err  error
}

func (err *ErrExecute) Error() string {
	if err.Inst == nil {
		return f("%05x: %08x %v", err.Pc, err.Word, err.Err)
	}
	return f("%05x: %v %v", err.Pc, err.Inst, err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}
