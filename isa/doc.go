// Package isa implements the instruction set of the Pineapple CPU.
//
// Instructions are packed 32-bit words. The package extracts bit fields,
// reassembles the scattered immediates of the I, S, B and U formats, and
// decodes a word into one of a closed set of instruction types through an
// opcode/funct3/tertiary-bit dispatch tree. The register field positions
// are described by a Layout, so both the standard field placement and the
// legacy placement (rd at [12:8], both sources at [20:16]) can be decoded.
//
// The package also provides the inverse encoder, used by the assembler,
// and the disassembly text of every instruction.
package isa
