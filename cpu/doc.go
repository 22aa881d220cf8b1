// Package cpu implements the Pineapple processor core.
//
// The core consists of a program counter, which is a word index into
// instruction memory, thirty-two 32-bit registers with x0 hardwired to zero,
// a Harvard instruction memory of IMEM_WORDS words, and a data memory laid
// out per the memory package address map.
//
// Each Step fetches, decodes and executes exactly one instruction. A step
// that fails leaves all architectural state unchanged.
//
// The query methods (Registers, Pc, MemoryRange, VideoMemory and
// InstructionRange) may be called concurrently with each other and with
// Step.
package cpu
