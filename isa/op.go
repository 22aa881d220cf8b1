package isa

import (
	"strings"
)

// Primary opcodes, word[6:0].
const (
	OPCODE_LOAD   = uint32(0b0000011)
	OPCODE_FENCE  = uint32(0b0001111)
	OPCODE_OP_IMM = uint32(0b0010011)
	OPCODE_AUIPC  = uint32(0b0010111)
	OPCODE_STORE  = uint32(0b0100011)
	OPCODE_OP     = uint32(0b0110011)
	OPCODE_LUI    = uint32(0b0110111)
	OPCODE_BRANCH = uint32(0b1100011)
	OPCODE_JALR   = uint32(0b1100111)
	OPCODE_JAL    = uint32(0b1101111)
	OPCODE_SYSTEM = uint32(0b1110011)
)

// Op is an instruction mnemonic.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_LUI    = Op(0)  // LUI
	OP_AUIPC  = Op(1)  // AUIPC
	OP_JAL    = Op(2)  // JAL
	OP_JALR   = Op(3)  // JALR
	OP_BEQ    = Op(4)  // BEQ
	OP_BNE    = Op(5)  // BNE
	OP_BLT    = Op(6)  // BLT
	OP_BGE    = Op(7)  // BGE
	OP_BLTU   = Op(8)  // BLTU
	OP_BGEU   = Op(9)  // BGEU
	OP_LB     = Op(10) // LB
	OP_LH     = Op(11) // LH
	OP_LW     = Op(12) // LW
	OP_LBU    = Op(13) // LBU
	OP_LHU    = Op(14) // LHU
	OP_SB     = Op(15) // SB
	OP_SH     = Op(16) // SH
	OP_SW     = Op(17) // SW
	OP_ADDI   = Op(18) // ADDI
	OP_SLTI   = Op(19) // SLTI
	OP_SLTIU  = Op(20) // SLTIU
	OP_XORI   = Op(21) // XORI
	OP_ORI    = Op(22) // ORI
	OP_ANDI   = Op(23) // ANDI
	OP_SLLI   = Op(24) // SLLI
	OP_SRLI   = Op(25) // SRLI
	OP_SRAI   = Op(26) // SRAI
	OP_ADD    = Op(27) // ADD
	OP_SUB    = Op(28) // SUB
	OP_SLL    = Op(29) // SLL
	OP_SLT    = Op(30) // SLT
	OP_SLTU   = Op(31) // SLTU
	OP_XOR    = Op(32) // XOR
	OP_SRL    = Op(33) // SRL
	OP_SRA    = Op(34) // SRA
	OP_OR     = Op(35) // OR
	OP_AND    = Op(36) // AND
	OP_FENCE  = Op(37) // FENCE
	OP_ECALL  = Op(38) // ECALL
	OP_EBREAK = Op(39) // EBREAK
)

// encoding is the fixed part of an instruction word for an Op.
type encoding struct {
	opcode uint32
	funct3 uint32
	alt    bool // Tertiary selector bit set.
}

var opEncoding = map[Op]encoding{
	OP_LUI:    {opcode: OPCODE_LUI},
	OP_AUIPC:  {opcode: OPCODE_AUIPC},
	OP_JAL:    {opcode: OPCODE_JAL},
	OP_JALR:   {opcode: OPCODE_JALR},
	OP_BEQ:    {opcode: OPCODE_BRANCH, funct3: 0b000},
	OP_BNE:    {opcode: OPCODE_BRANCH, funct3: 0b001},
	OP_BLT:    {opcode: OPCODE_BRANCH, funct3: 0b100},
	OP_BGE:    {opcode: OPCODE_BRANCH, funct3: 0b101},
	OP_BLTU:   {opcode: OPCODE_BRANCH, funct3: 0b110},
	OP_BGEU:   {opcode: OPCODE_BRANCH, funct3: 0b111},
	OP_LB:     {opcode: OPCODE_LOAD, funct3: 0b000},
	OP_LH:     {opcode: OPCODE_LOAD, funct3: 0b001},
	OP_LW:     {opcode: OPCODE_LOAD, funct3: 0b010},
	OP_LBU:    {opcode: OPCODE_LOAD, funct3: 0b100},
	OP_LHU:    {opcode: OPCODE_LOAD, funct3: 0b101},
	OP_SB:     {opcode: OPCODE_STORE, funct3: 0b000},
	OP_SH:     {opcode: OPCODE_STORE, funct3: 0b001},
	OP_SW:     {opcode: OPCODE_STORE, funct3: 0b010},
	OP_ADDI:   {opcode: OPCODE_OP_IMM, funct3: 0b000},
	OP_SLTI:   {opcode: OPCODE_OP_IMM, funct3: 0b010},
	OP_SLTIU:  {opcode: OPCODE_OP_IMM, funct3: 0b011},
	OP_XORI:   {opcode: OPCODE_OP_IMM, funct3: 0b100},
	OP_ORI:    {opcode: OPCODE_OP_IMM, funct3: 0b110},
	OP_ANDI:   {opcode: OPCODE_OP_IMM, funct3: 0b111},
	OP_SLLI:   {opcode: OPCODE_OP_IMM, funct3: 0b001},
	OP_SRLI:   {opcode: OPCODE_OP_IMM, funct3: 0b101},
	OP_SRAI:   {opcode: OPCODE_OP_IMM, funct3: 0b101, alt: true},
	OP_ADD:    {opcode: OPCODE_OP, funct3: 0b000},
	OP_SUB:    {opcode: OPCODE_OP, funct3: 0b000, alt: true},
	OP_SLL:    {opcode: OPCODE_OP, funct3: 0b001},
	OP_SLT:    {opcode: OPCODE_OP, funct3: 0b010},
	OP_SLTU:   {opcode: OPCODE_OP, funct3: 0b011},
	OP_XOR:    {opcode: OPCODE_OP, funct3: 0b100},
	OP_SRL:    {opcode: OPCODE_OP, funct3: 0b101},
	OP_SRA:    {opcode: OPCODE_OP, funct3: 0b101, alt: true},
	OP_OR:     {opcode: OPCODE_OP, funct3: 0b110},
	OP_AND:    {opcode: OPCODE_OP, funct3: 0b111},
	OP_FENCE:  {opcode: OPCODE_FENCE},
	OP_ECALL:  {opcode: OPCODE_SYSTEM},
	OP_EBREAK: {opcode: OPCODE_SYSTEM},
}

// opByName maps lower case mnemonics to Ops.
var opByName = func() map[string]Op {
	names := make(map[string]Op, len(opEncoding))
	for op := range opEncoding {
		names[strings.ToLower(op.String())] = op
	}
	return names
}()

// LookupOp finds the Op for a mnemonic, ignoring case.
func LookupOp(name string) (op Op, ok bool) {
	op, ok = opByName[strings.ToLower(name)]
	return
}

// IsShift is true for the immediate shifts, whose I-shape immediate holds
// a shift amount.
func (op Op) IsShift() bool {
	return op == OP_SLLI || op == OP_SRLI || op == OP_SRAI
}

// IsBranch is true for the conditional branches.
func (op Op) IsBranch() bool {
	return op >= OP_BEQ && op <= OP_BGEU
}

// IsLoad is true for the memory loads.
func (op Op) IsLoad() bool {
	return op >= OP_LB && op <= OP_LHU
}

// IsStore is true for the memory stores.
func (op Op) IsStore() bool {
	return op >= OP_SB && op <= OP_SW
}

// Implemented is false for the recognised instructions the CPU does not
// execute.
func (op Op) Implemented() bool {
	return op < OP_FENCE
}
