// Package asm implements a single pass macro assembler for the Pineapple
// instruction set.
//
// Source is line oriented. A line holds optional labels ("name:"), then a
// directive, a macro invocation or an instruction. Everything after a ';'
// is a comment, and commas are treated as spaces.
//
//	.equ NAME VALUE      ; define an equate
//	.macro NAME ARGS...  ; begin a macro, ended by .endm
//	.org INDEX           ; pad with NOP up to a word index
//	.align N             ; pad with NOP up to a multiple of N words
//	.word VALUE...       ; emit raw words (labels allowed)
//
// Numbers are Go integer literals, optionally prefixed with '#' so that
// disassembly listings reassemble. 'c' is a character literal, and $(expr)
// is evaluated at assembly time over the integer equates.
//
// Branch and JAL targets are word displacements from the instruction;
// a label operand is converted to one at link time. JALR, 'j' and .word
// label operands are absolute word indexes, offset by Assembler.Base.
// JALR clears bit 0 of its target, so an absolute JALR target (rs1 = x0)
// must be an even word index.
//
// Return addresses are pc+1, and 'ret' jumps to (ra & ~1). A call that is
// returned from with 'ret' must sit at an odd word index; use '.align 2'
// followed by a 'nop' to place it.
package asm
