package isa

// Decode decodes word using the Standard layout.
func Decode(word uint32) (Instruction, error) {
	return Standard.Decode(word)
}

// Decode decodes word into an instruction.
//
// FENCE, ECALL and EBREAK are recognised but unimplemented: the decoded
// Fence or System value is returned along with an error wrapping
// ErrUnimplemented.
func (lay Layout) Decode(word uint32) (inst Instruction, err error) {
	defer func() {
		if err != nil {
			err = &ErrDecode{Word: word, Err: err}
		}
	}()

	rd := Reg(lay.Rd.Get(word))
	rs1 := Reg(lay.Rs1.Get(word))
	rs2 := Reg(lay.Rs2.Get(word))
	funct3 := Range(word, 14, 12)
	alt := Bit(word, lay.Tertiary) == 1

	iType := func(op Op) Instruction {
		return I{Opcode: op, Rd: rd, Rs1: rs1, Imm: FORMAT_I.Immediate(word)}
	}
	shiftType := func(op Op) Instruction {
		return I{Opcode: op, Rd: rd, Rs1: rs1, Imm: int32(rs2)}
	}
	sType := func(op Op) Instruction {
		return S{Opcode: op, Rs1: rs1, Rs2: rs2, Imm: FORMAT_S.Immediate(word)}
	}
	bType := func(op Op) Instruction {
		return B{Opcode: op, Rs1: rs1, Rs2: rs2, Imm: FORMAT_B.Immediate(word)}
	}
	uType := func(op Op) Instruction {
		return U{Opcode: op, Rd: rd, Imm: FORMAT_U.Immediate(word)}
	}
	rType := func(op Op) Instruction {
		return R{Opcode: op, Rd: rd, Rs1: rs1, Rs2: rs2}
	}

	switch Range(word, 6, 0) {
	case OPCODE_LUI:
		inst = uType(OP_LUI)
	case OPCODE_AUIPC:
		inst = uType(OP_AUIPC)
	case OPCODE_JAL:
		inst = uType(OP_JAL)
	case OPCODE_JALR:
		inst = iType(OP_JALR)
	case OPCODE_BRANCH:
		switch funct3 {
		case 0b000:
			inst = bType(OP_BEQ)
		case 0b001:
			inst = bType(OP_BNE)
		case 0b100:
			inst = bType(OP_BLT)
		case 0b101:
			inst = bType(OP_BGE)
		case 0b110:
			inst = bType(OP_BLTU)
		case 0b111:
			inst = bType(OP_BGEU)
		default:
			err = ErrFunct3
		}
	case OPCODE_LOAD:
		switch funct3 {
		case 0b000:
			inst = iType(OP_LB)
		case 0b001:
			inst = iType(OP_LH)
		case 0b010:
			inst = iType(OP_LW)
		case 0b100:
			inst = iType(OP_LBU)
		case 0b101:
			inst = iType(OP_LHU)
		default:
			err = ErrFunct3
		}
	case OPCODE_STORE:
		switch funct3 {
		case 0b000:
			inst = sType(OP_SB)
		case 0b001:
			inst = sType(OP_SH)
		case 0b010:
			inst = sType(OP_SW)
		default:
			err = ErrFunct3
		}
	case OPCODE_OP_IMM:
		switch funct3 {
		case 0b000:
			inst = iType(OP_ADDI)
		case 0b010:
			inst = iType(OP_SLTI)
		case 0b011:
			inst = iType(OP_SLTIU)
		case 0b100:
			inst = iType(OP_XORI)
		case 0b110:
			inst = iType(OP_ORI)
		case 0b111:
			inst = iType(OP_ANDI)
		case 0b001:
			inst = shiftType(OP_SLLI)
		case 0b101:
			if alt {
				inst = shiftType(OP_SRAI)
			} else {
				inst = shiftType(OP_SRLI)
			}
		}
	case OPCODE_OP:
		switch funct3 {
		case 0b000:
			if alt {
				inst = rType(OP_SUB)
			} else {
				inst = rType(OP_ADD)
			}
		case 0b001:
			inst = rType(OP_SLL)
		case 0b010:
			inst = rType(OP_SLT)
		case 0b011:
			inst = rType(OP_SLTU)
		case 0b100:
			inst = rType(OP_XOR)
		case 0b101:
			if alt {
				inst = rType(OP_SRA)
			} else {
				inst = rType(OP_SRL)
			}
		case 0b110:
			inst = rType(OP_OR)
		case 0b111:
			inst = rType(OP_AND)
		}
	case OPCODE_FENCE:
		inst = Fence{
			Fm:   Range(word, 31, 28),
			Pred: Range(word, 27, 24),
			Succ: Range(word, 23, 20),
			Rs1:  rs1,
			Rd:   rd,
		}
		err = ErrUnimplemented
	case OPCODE_SYSTEM:
		if Bit(word, lay.System) == 0 {
			inst = System{Opcode: OP_ECALL}
		} else {
			inst = System{Opcode: OP_EBREAK}
		}
		err = ErrUnimplemented
	default:
		err = ErrOpcode
	}

	return
}
