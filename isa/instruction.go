package isa

import (
	"fmt"
)

// REGISTERS is the number of general purpose registers.
const REGISTERS = 32

// Reg is a general purpose register index.
type Reg uint8

// String returns the register in disassembly form, x{n}.
func (r Reg) String() string {
	return fmt.Sprintf("x%d", uint8(r))
}

// Valid is true for x0 through x31.
func (r Reg) Valid() bool {
	return r < REGISTERS
}

// Instruction is a decoded instruction. The set of implementations is
// closed: R, I, S, B, U, Fence and System.
type Instruction interface {
	// Op returns the mnemonic of the instruction.
	Op() Op
	// String returns the disassembly of the instruction.
	String() string

	instruction()
}

// R is a register-register instruction.
type R struct {
	Opcode Op
	Rd     Reg
	Rs1    Reg
	Rs2    Reg
}

// I is a register-immediate instruction. For SLLI, SRLI and SRAI the
// immediate is the shift amount.
type I struct {
	Opcode Op
	Rd     Reg
	Rs1    Reg
	Imm    int32
}

// S is a store.
type S struct {
	Opcode Op
	Rs1    Reg
	Rs2    Reg
	Imm    int32
}

// B is a conditional branch.
type B struct {
	Opcode Op
	Rs1    Reg
	Rs2    Reg
	Imm    int32
}

// U is an upper-immediate instruction, or JAL.
type U struct {
	Opcode Op
	Rd     Reg
	Imm    int32
}

// Fence carries the raw fields of a FENCE.
type Fence struct {
	Fm   uint32
	Pred uint32
	Succ uint32
	Rs1  Reg
	Rd   Reg
}

// System is ECALL or EBREAK.
type System struct {
	Opcode Op
}

var (
	_ Instruction = R{}
	_ Instruction = I{}
	_ Instruction = S{}
	_ Instruction = B{}
	_ Instruction = U{}
	_ Instruction = Fence{}
	_ Instruction = System{}
)

func (R) instruction()      {}
func (I) instruction()      {}
func (S) instruction()      {}
func (B) instruction()      {}
func (U) instruction()      {}
func (Fence) instruction()  {}
func (System) instruction() {}

func (in R) Op() Op      { return in.Opcode }
func (in I) Op() Op      { return in.Opcode }
func (in S) Op() Op      { return in.Opcode }
func (in B) Op() Op      { return in.Opcode }
func (in U) Op() Op      { return in.Opcode }
func (Fence) Op() Op     { return OP_FENCE }
func (in System) Op() Op { return in.Opcode }

// hex formats an immediate as two's complement hex.
func hex(imm int32) string {
	return fmt.Sprintf("#%#x", uint32(imm))
}

func (in R) String() string {
	return fmt.Sprintf("%v %v %v %v", in.Opcode, in.Rd, in.Rs1, in.Rs2)
}

func (in I) String() string {
	if in.Opcode.IsShift() {
		return fmt.Sprintf("%v %v %v %d", in.Opcode, in.Rd, in.Rs1, in.Imm)
	}
	return fmt.Sprintf("%v %v %v %v", in.Opcode, in.Rd, in.Rs1, hex(in.Imm))
}

func (in S) String() string {
	return fmt.Sprintf("%v %v %v %v", in.Opcode, in.Rs1, in.Rs2, hex(in.Imm))
}

func (in B) String() string {
	return fmt.Sprintf("%v %v %v %v", in.Opcode, in.Rs1, in.Rs2, hex(in.Imm))
}

func (in U) String() string {
	return fmt.Sprintf("%v %v %v", in.Opcode, in.Rd, hex(in.Imm))
}

func (in Fence) String() string {
	return fmt.Sprintf("%v #%#x #%#x #%#x %v %v", OP_FENCE, in.Fm, in.Pred, in.Succ, in.Rs1, in.Rd)
}

func (in System) String() string {
	return in.Opcode.String()
}
