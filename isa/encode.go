package isa

import (
	"errors"
)

// Encode encodes inst using the Standard layout.
func Encode(inst Instruction) (uint32, error) {
	return Standard.Encode(inst)
}

// Encode packs inst into an instruction word.
//
// The result is decoded again and must reproduce inst; layouts with
// overlapping fields (such as Legacy, where rs1 and rs2 share bits) report
// ErrEncode for instructions they cannot carry.
func (lay Layout) Encode(inst Instruction) (word uint32, err error) {
	if inst == nil {
		err = ErrInstruction
		return
	}

	enc, ok := opEncoding[inst.Op()]
	if !ok {
		err = ErrInstruction
		return
	}

	word = enc.opcode | (enc.funct3 << 12)
	if enc.alt {
		word |= 1 << lay.Tertiary
	}

	regs := func(fields map[Field]Reg) (bits uint32, err error) {
		for field, reg := range fields {
			if !reg.Valid() {
				err = ErrRegister
				return
			}
			bits |= field.Put(uint32(reg))
		}
		return
	}

	var bits uint32
	var imm uint32
	switch in := inst.(type) {
	case R:
		bits, err = regs(map[Field]Reg{lay.Rd: in.Rd, lay.Rs1: in.Rs1, lay.Rs2: in.Rs2})
		if lay.Rs1 == lay.Rs2 && in.Rs1 != in.Rs2 {
			err = ErrEncode
		}
	case I:
		bits, err = regs(map[Field]Reg{lay.Rd: in.Rd, lay.Rs1: in.Rs1})
		if err != nil {
			break
		}
		if in.Opcode.IsShift() {
			if in.Imm < 0 || in.Imm >= 1<<lay.Rs2.Width() {
				err = &ErrImmediate{Format: FORMAT_I, Value: in.Imm, Err: ErrImmediateRange}
				break
			}
			imm = lay.Rs2.Put(uint32(in.Imm))
		} else {
			imm, err = FORMAT_I.Encode(in.Imm)
		}
	case S:
		if lay.Rs1 == lay.Rs2 && in.Rs1 != in.Rs2 {
			err = ErrEncode
			break
		}
		bits, err = regs(map[Field]Reg{lay.Rs1: in.Rs1, lay.Rs2: in.Rs2})
		if err == nil {
			imm, err = FORMAT_S.Encode(in.Imm)
		}
	case B:
		if lay.Rs1 == lay.Rs2 && in.Rs1 != in.Rs2 {
			err = ErrEncode
			break
		}
		bits, err = regs(map[Field]Reg{lay.Rs1: in.Rs1, lay.Rs2: in.Rs2})
		if err == nil {
			imm, err = FORMAT_B.Encode(in.Imm)
		}
	case U:
		bits, err = regs(map[Field]Reg{lay.Rd: in.Rd})
		if err == nil {
			imm, err = FORMAT_U.Encode(in.Imm)
		}
	case Fence:
		if in.Fm > 0xf || in.Pred > 0xf || in.Succ > 0xf {
			err = ErrInstruction
			break
		}
		bits, err = regs(map[Field]Reg{lay.Rd: in.Rd, lay.Rs1: in.Rs1})
		imm = place(in.Fm, 31, 28) | place(in.Pred, 27, 24) | place(in.Succ, 23, 20)
	case System:
		if in.Opcode == OP_EBREAK {
			bits = 1 << lay.System
		}
	default:
		err = ErrInstruction
	}
	if err != nil {
		word = 0
		return
	}

	word |= bits | imm

	// Overlapping fields show up as a different decode.
	check, err := lay.Decode(word)
	if err != nil && !errors.Is(err, ErrUnimplemented) {
		word = 0
		err = errors.Join(ErrEncode, err)
		return
	}
	if check != inst {
		word = 0
		err = ErrEncode
		return
	}

	err = nil
	return
}
