package cpu

import (
	"github.com/ezrec/pineapple/isa"
)

// execute applies a decoded instruction at pc. jumped is true if the
// instruction set the program counter itself, including a taken branch.
// The caller holds the pc, register and data memory write locks.
//
// A failing instruction writes nothing.
func (cpu *Cpu) execute(pc uint32, inst isa.Instruction) (jumped bool, err error) {
	reg := &cpu.reg

	switch in := inst.(type) {
	case isa.U:
		switch in.Opcode {
		case isa.OP_LUI:
			if in.Rd != 0 {
				reg.Set(in.Rd, in.Imm)
			}
		case isa.OP_AUIPC:
			if in.Rd != 0 {
				reg.Set(in.Rd, int32(pc)+in.Imm)
			}
		case isa.OP_JAL:
			if in.Rd != 0 {
				reg.Set(in.Rd, int32(pc+1))
			}
			cpu.pc = uint32(int32(pc) + in.Imm)
			jumped = true
		default:
			err = isa.ErrInstruction
		}
	case isa.B:
		a, b := reg.Get(in.Rs1), reg.Get(in.Rs2)
		var taken bool
		switch in.Opcode {
		case isa.OP_BEQ:
			taken = a == b
		case isa.OP_BNE:
			taken = a != b
		case isa.OP_BLT:
			taken = a < b
		case isa.OP_BGE:
			taken = a >= b
		case isa.OP_BLTU:
			taken = uint32(a) < uint32(b)
		case isa.OP_BGEU:
			taken = uint32(a) >= uint32(b)
		default:
			err = isa.ErrInstruction
			return
		}
		if taken {
			cpu.pc = uint32(int32(pc) + in.Imm)
			jumped = true
		}
	case isa.S:
		addr := uint32(reg.Get(in.Rs1) + in.Imm)
		value := reg.Get(in.Rs2)
		switch in.Opcode {
		case isa.OP_SB:
			err = cpu.mem.Write8(addr, uint8(value))
		case isa.OP_SH:
			err = cpu.mem.Write16(addr, uint16(value))
		case isa.OP_SW:
			err = cpu.mem.Write32(addr, uint32(value))
		default:
			err = isa.ErrInstruction
		}
	case isa.I:
		jumped, err = cpu.executeI(pc, in)
	case isa.R:
		a, b := reg.Get(in.Rs1), reg.Get(in.Rs2)
		var value int32
		switch in.Opcode {
		case isa.OP_ADD:
			value = a + b
		case isa.OP_SUB:
			value = a - b
		case isa.OP_SLL:
			value = int32(uint32(a) << (uint32(b) & 0x1f))
		case isa.OP_SLT:
			value = flag(a < b)
		case isa.OP_SLTU:
			value = flag(uint32(a) < uint32(b))
		case isa.OP_XOR:
			value = a ^ b
		case isa.OP_SRL:
			value = int32(uint32(a) >> (uint32(b) & 0x1f))
		case isa.OP_SRA:
			value = a >> (uint32(b) & 0x1f)
		case isa.OP_OR:
			value = a | b
		case isa.OP_AND:
			value = a & b
		default:
			err = isa.ErrInstruction
			return
		}
		if in.Rd != 0 {
			reg.Set(in.Rd, value)
		}
	case isa.Fence, isa.System:
		err = isa.ErrUnimplemented
	default:
		err = isa.ErrInstruction
	}

	return
}

// executeI applies the register-immediate, load and JALR instructions.
func (cpu *Cpu) executeI(pc uint32, in isa.I) (jumped bool, err error) {
	reg := &cpu.reg
	a := reg.Get(in.Rs1)

	var value int32
	switch in.Opcode {
	case isa.OP_JALR:
		target := uint32(a+in.Imm) &^ 1
		if in.Rd != 0 {
			reg.Set(in.Rd, int32(pc+1))
		}
		cpu.pc = target
		jumped = true
		return
	case isa.OP_LB, isa.OP_LH, isa.OP_LW, isa.OP_LBU, isa.OP_LHU:
		value, err = cpu.load(in.Opcode, uint32(a+in.Imm))
		if err != nil {
			return
		}
	case isa.OP_ADDI:
		value = a + in.Imm
	case isa.OP_SLTI:
		value = flag(a < in.Imm)
	case isa.OP_SLTIU:
		value = flag(uint32(a) < uint32(in.Imm))
	case isa.OP_XORI:
		value = a ^ in.Imm
	case isa.OP_ORI:
		value = a | in.Imm
	case isa.OP_ANDI:
		value = a & in.Imm
	case isa.OP_SLLI:
		value = int32(uint32(a) << uint32(in.Imm))
	case isa.OP_SRLI:
		value = int32(uint32(a) >> uint32(in.Imm))
	case isa.OP_SRAI:
		value = a >> uint32(in.Imm)
	default:
		err = isa.ErrInstruction
		return
	}

	if in.Rd != 0 {
		reg.Set(in.Rd, value)
	}

	return
}

// load reads memory for a load instruction. The read is performed even
// when the result is discarded, so faults are always reported.
func (cpu *Cpu) load(op isa.Op, addr uint32) (value int32, err error) {
	switch op {
	case isa.OP_LB:
		var b uint8
		b, err = cpu.mem.Read8(addr)
		value = int32(int8(b))
	case isa.OP_LBU:
		var b uint8
		b, err = cpu.mem.Read8(addr)
		value = int32(b)
	case isa.OP_LH:
		var h uint16
		h, err = cpu.mem.Read16(addr)
		value = int32(int16(h))
	case isa.OP_LHU:
		var h uint16
		h, err = cpu.mem.Read16(addr)
		value = int32(h)
	case isa.OP_LW:
		value, err = cpu.mem.ReadWord(addr)
	default:
		err = isa.ErrInstruction
	}

	return
}

func flag(cond bool) int32 {
	if cond {
		return 1
	}
	return 0
}
