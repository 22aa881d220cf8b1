package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var decodeTable = [](struct {
	name string
	word uint32
	inst Instruction
}){
	{"lui", 0x123451b7, U{Opcode: OP_LUI, Rd: 3, Imm: 0x12345000}},
	{"auipc", 0xfffff197, U{Opcode: OP_AUIPC, Rd: 3, Imm: -4096}},
	{"jal", 0x000020ef, U{Opcode: OP_JAL, Rd: 1, Imm: 0x2000}},
	{"jalr", 0xffe100e7, I{Opcode: OP_JALR, Rd: 1, Rs1: 2, Imm: -2}},
	{"beq", 0xfe208ce3, B{Opcode: OP_BEQ, Rs1: 1, Rs2: 2, Imm: -8}},
	{"bne", 0xfe209ce3, B{Opcode: OP_BNE, Rs1: 1, Rs2: 2, Imm: -8}},
	{"blt", 0xfe20cce3, B{Opcode: OP_BLT, Rs1: 1, Rs2: 2, Imm: -8}},
	{"bge", 0xfe20dce3, B{Opcode: OP_BGE, Rs1: 1, Rs2: 2, Imm: -8}},
	{"bltu", 0xfe20ece3, B{Opcode: OP_BLTU, Rs1: 1, Rs2: 2, Imm: -8}},
	{"bgeu", 0xfe20fce3, B{Opcode: OP_BGEU, Rs1: 1, Rs2: 2, Imm: -8}},
	{"lb", 0x7ff08183, I{Opcode: OP_LB, Rd: 3, Rs1: 1, Imm: 0x7ff}},
	{"lh", 0x7ff09183, I{Opcode: OP_LH, Rd: 3, Rs1: 1, Imm: 0x7ff}},
	{"lw", 0x7ff0a183, I{Opcode: OP_LW, Rd: 3, Rs1: 1, Imm: 0x7ff}},
	{"lbu", 0x7ff0c183, I{Opcode: OP_LBU, Rd: 3, Rs1: 1, Imm: 0x7ff}},
	{"lhu", 0x7ff0d183, I{Opcode: OP_LHU, Rd: 3, Rs1: 1, Imm: 0x7ff}},
	{"sb", 0xfe208ea3, S{Opcode: OP_SB, Rs1: 1, Rs2: 2, Imm: -3}},
	{"sh", 0xfe209ea3, S{Opcode: OP_SH, Rs1: 1, Rs2: 2, Imm: -3}},
	{"sw", 0xfe20aea3, S{Opcode: OP_SW, Rs1: 1, Rs2: 2, Imm: -3}},
	{"addi", 0xfff08193, I{Opcode: OP_ADDI, Rd: 3, Rs1: 1, Imm: -1}},
	{"slti", 0xfff0a193, I{Opcode: OP_SLTI, Rd: 3, Rs1: 1, Imm: -1}},
	{"sltiu", 0xfff0b193, I{Opcode: OP_SLTIU, Rd: 3, Rs1: 1, Imm: -1}},
	{"xori", 0xfff0c193, I{Opcode: OP_XORI, Rd: 3, Rs1: 1, Imm: -1}},
	{"ori", 0xfff0e193, I{Opcode: OP_ORI, Rd: 3, Rs1: 1, Imm: -1}},
	{"andi", 0xfff0f193, I{Opcode: OP_ANDI, Rd: 3, Rs1: 1, Imm: -1}},
	{"slli", 0x00709193, I{Opcode: OP_SLLI, Rd: 3, Rs1: 1, Imm: 7}},
	{"srli", 0x01f0d193, I{Opcode: OP_SRLI, Rd: 3, Rs1: 1, Imm: 31}},
	{"srai", 0x4040d193, I{Opcode: OP_SRAI, Rd: 3, Rs1: 1, Imm: 4}},
	{"add", 0x002081b3, R{Opcode: OP_ADD, Rd: 3, Rs1: 1, Rs2: 2}},
	{"sub", 0x402081b3, R{Opcode: OP_SUB, Rd: 3, Rs1: 1, Rs2: 2}},
	{"sll", 0x002091b3, R{Opcode: OP_SLL, Rd: 3, Rs1: 1, Rs2: 2}},
	{"slt", 0x0020a1b3, R{Opcode: OP_SLT, Rd: 3, Rs1: 1, Rs2: 2}},
	{"sltu", 0x0020b1b3, R{Opcode: OP_SLTU, Rd: 3, Rs1: 1, Rs2: 2}},
	{"xor", 0x0020c1b3, R{Opcode: OP_XOR, Rd: 3, Rs1: 1, Rs2: 2}},
	{"srl", 0x0020d1b3, R{Opcode: OP_SRL, Rd: 3, Rs1: 1, Rs2: 2}},
	{"sra", 0x4020d1b3, R{Opcode: OP_SRA, Rd: 3, Rs1: 1, Rs2: 2}},
	{"or", 0x0020e1b3, R{Opcode: OP_OR, Rd: 3, Rs1: 1, Rs2: 2}},
	{"and", 0x0020f1b3, R{Opcode: OP_AND, Rd: 3, Rs1: 1, Rs2: 2}},
}

func TestDecodeStandard(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(37, len(decodeTable))

	for _, entry := range decodeTable {
		inst, err := Decode(entry.word)
		assert.NoError(err, entry.name)
		assert.Equal(entry.inst, inst, entry.name)
	}
}

func TestDecodeNop(t *testing.T) {
	assert := assert.New(t)

	for _, lay := range []Layout{Standard, Legacy} {
		inst, err := lay.Decode(0x0000_0013)
		assert.NoError(err)
		assert.Equal(I{Opcode: OP_ADDI, Rd: 0, Rs1: 0, Imm: 0}, inst, lay.Name)
	}
}

func TestDecodeLegacy(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op     Op
		opcode uint32
		funct3 uint32
		alt    bool
	}){
		{OP_LUI, OPCODE_LUI, 0, false},
		{OP_AUIPC, OPCODE_AUIPC, 0, false},
		{OP_JAL, OPCODE_JAL, 0, false},
		{OP_JALR, OPCODE_JALR, 0, false},
		{OP_BEQ, OPCODE_BRANCH, 0b000, false},
		{OP_BNE, OPCODE_BRANCH, 0b001, false},
		{OP_BLT, OPCODE_BRANCH, 0b100, false},
		{OP_BGE, OPCODE_BRANCH, 0b101, false},
		{OP_BLTU, OPCODE_BRANCH, 0b110, false},
		{OP_BGEU, OPCODE_BRANCH, 0b111, false},
		{OP_LB, OPCODE_LOAD, 0b000, false},
		{OP_LH, OPCODE_LOAD, 0b001, false},
		{OP_LW, OPCODE_LOAD, 0b010, false},
		{OP_LBU, OPCODE_LOAD, 0b100, false},
		{OP_LHU, OPCODE_LOAD, 0b101, false},
		{OP_SB, OPCODE_STORE, 0b000, false},
		{OP_SH, OPCODE_STORE, 0b001, false},
		{OP_SW, OPCODE_STORE, 0b010, false},
		{OP_ADDI, OPCODE_OP_IMM, 0b000, false},
		{OP_SLTI, OPCODE_OP_IMM, 0b010, false},
		{OP_SLTIU, OPCODE_OP_IMM, 0b011, false},
		{OP_XORI, OPCODE_OP_IMM, 0b100, false},
		{OP_ORI, OPCODE_OP_IMM, 0b110, false},
		{OP_ANDI, OPCODE_OP_IMM, 0b111, false},
		{OP_SLLI, OPCODE_OP_IMM, 0b001, false},
		{OP_SRLI, OPCODE_OP_IMM, 0b101, false},
		{OP_SRAI, OPCODE_OP_IMM, 0b101, true},
		{OP_ADD, OPCODE_OP, 0b000, false},
		{OP_SUB, OPCODE_OP, 0b000, true},
		{OP_SLL, OPCODE_OP, 0b001, false},
		{OP_SLT, OPCODE_OP, 0b010, false},
		{OP_SLTU, OPCODE_OP, 0b011, false},
		{OP_XOR, OPCODE_OP, 0b100, false},
		{OP_SRL, OPCODE_OP, 0b101, false},
		{OP_SRA, OPCODE_OP, 0b101, true},
		{OP_OR, OPCODE_OP, 0b110, false},
		{OP_AND, OPCODE_OP, 0b111, false},
	}

	assert.Equal(37, len(table))

	for _, entry := range table {
		word := entry.opcode | (entry.funct3 << 12) | (2 << 8) | (5 << 16)
		if entry.alt {
			word |= 1 << 31
		}

		inst, err := Legacy.Decode(word)
		assert.NoError(err, entry.op.String())
		if err != nil {
			continue
		}
		assert.Equal(entry.op, inst.Op())

		rd := Reg(Range(word, 12, 8))
		rs := Reg(Range(word, 20, 16))
		switch in := inst.(type) {
		case R:
			assert.Equal(R{Opcode: entry.op, Rd: rd, Rs1: rs, Rs2: rs}, in)
		case I:
			imm := FORMAT_I.Immediate(word)
			if entry.op.IsShift() {
				imm = int32(rs)
			}
			assert.Equal(I{Opcode: entry.op, Rd: rd, Rs1: rs, Imm: imm}, in)
		case S:
			assert.Equal(S{Opcode: entry.op, Rs1: rs, Rs2: rs, Imm: FORMAT_S.Immediate(word)}, in)
		case B:
			assert.Equal(B{Opcode: entry.op, Rs1: rs, Rs2: rs, Imm: FORMAT_B.Immediate(word)}, in)
		case U:
			assert.Equal(U{Opcode: entry.op, Rd: rd, Imm: FORMAT_U.Immediate(word)}, in)
		default:
			t.Errorf("%v: unexpected %T", entry.op, inst)
		}
	}
}

func TestDecodeLegacySourcesShareField(t *testing.T) {
	assert := assert.New(t)

	// ADD with bits [20:16] = 7: both sources are x7.
	inst, err := Legacy.Decode(OPCODE_OP | (7 << 16) | (3 << 8))
	assert.NoError(err)
	assert.Equal(R{Opcode: OP_ADD, Rd: 3, Rs1: 7, Rs2: 7}, inst)
}

func TestDecodeError(t *testing.T) {
	assert := assert.New(t)

	supported := map[uint32]bool{
		OPCODE_LUI: true, OPCODE_AUIPC: true, OPCODE_JAL: true, OPCODE_JALR: true,
		OPCODE_BRANCH: true, OPCODE_LOAD: true, OPCODE_STORE: true,
		OPCODE_OP_IMM: true, OPCODE_OP: true,
		OPCODE_FENCE: true, OPCODE_SYSTEM: true,
	}

	for opcode := uint32(0); opcode < 0x80; opcode++ {
		if supported[opcode] {
			continue
		}
		for _, lay := range []Layout{Standard, Legacy} {
			inst, err := lay.Decode(0xffff_ff80 | opcode)
			assert.ErrorIs(err, ErrOpcode, "opcode 0b%07b", opcode)
			assert.Nil(inst)
			var decodeErr *ErrDecode
			if assert.ErrorAs(err, &decodeErr) {
				assert.Equal(0xffff_ff80|opcode, decodeErr.Word)
			}
		}
	}

	table := [](struct {
		word uint32
		err  error
	}){
		{OPCODE_BRANCH | (0b010 << 12), ErrFunct3},
		{OPCODE_BRANCH | (0b011 << 12), ErrFunct3},
		{OPCODE_LOAD | (0b011 << 12), ErrFunct3},
		{OPCODE_LOAD | (0b110 << 12), ErrFunct3},
		{OPCODE_LOAD | (0b111 << 12), ErrFunct3},
		{OPCODE_STORE | (0b011 << 12), ErrFunct3},
		{OPCODE_STORE | (0b100 << 12), ErrFunct3},
	}

	for _, entry := range table {
		_, err := Decode(entry.word)
		assert.ErrorIs(err, entry.err, "0x%08x", entry.word)
	}
}

func TestDecodeUnimplemented(t *testing.T) {
	assert := assert.New(t)

	inst, err := Decode(0x0ff0_000f) // fence
	assert.ErrorIs(err, ErrUnimplemented)
	assert.Equal(Fence{Fm: 0, Pred: 0xf, Succ: 0xf}, inst)

	inst, err = Decode(0x0000_0073)
	assert.ErrorIs(err, ErrUnimplemented)
	assert.Equal(System{Opcode: OP_ECALL}, inst)

	inst, err = Decode(0x0010_0073)
	assert.ErrorIs(err, ErrUnimplemented)
	assert.Equal(System{Opcode: OP_EBREAK}, inst)

	inst, err = Legacy.Decode(0x0020_0073)
	assert.ErrorIs(err, ErrUnimplemented)
	assert.Equal(System{Opcode: OP_EBREAK}, inst)
}

func TestLookupLayout(t *testing.T) {
	assert := assert.New(t)

	lay, err := LookupLayout("legacy")
	assert.NoError(err)
	assert.Equal(Legacy, lay)

	_, err = LookupLayout("mips")
	assert.ErrorIs(err, ErrLayout)

	assert.Equal([]string{"legacy", "standard"}, LayoutNames())
}
