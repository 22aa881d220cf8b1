package asm

import (
	"iter"
)

// Opcode is the assembly of one source line.
type Opcode struct {
	LineNo    int      // Source line number.
	Ip        int      // Word index of the first code.
	Words     []string // Source words, after equate and macro expansion.
	Codes     []uint32 // Instruction or data words.
	LinkLabel string   // Label resolved at link time, if any.
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates a word index within a program listing.
type Debug struct {
	*Opcode
	Index int
}

// Debug returns the opcode holding the word at ip. The Opcode is nil if ip
// is outside the program.
func (prog *Program) Debug(ip uint32) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int64(ip) >= int64(op.Ip) && int64(ip) < int64(op.Ip+len(op.Codes)) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(ip) - op.Ip,
			}
			break
		}
	}

	return
}

// LineNo returns the source line of the word at ip, or 0.
func (prog *Program) LineNo(ip uint32) int {
	dbg := prog.Debug(ip)
	if dbg.Opcode == nil {
		return 0
	}
	return dbg.LineNo
}

// Binary returns the program words, starting at word index 0.
func (prog *Program) Binary() (bins []uint32) {
	for _, code := range prog.Codes() {
		bins = append(bins, code)
	}

	return
}

// Codes iterates over the word index and value of every program word.
func (prog *Program) Codes() iter.Seq2[uint32, uint32] {
	return func(yield func(ip uint32, code uint32) bool) {
		for _, op := range prog.Opcodes {
			ip := uint32(op.Ip)
			for n, code := range op.Codes {
				if !yield(ip+uint32(n), code) {
					return
				}
			}
		}
	}
}
