package cpu

import (
	"github.com/ezrec/pineapple/isa"
)

// RegisterFile is the general purpose register bank. x0 always reads as
// zero and ignores writes.
type RegisterFile [isa.REGISTERS]int32

// Get returns the value of a register.
func (rf *RegisterFile) Get(reg isa.Reg) int32 {
	if reg == 0 || !reg.Valid() {
		return 0
	}
	return rf[reg]
}

// Set sets the value of a register.
func (rf *RegisterFile) Set(reg isa.Reg, value int32) {
	if reg == 0 || !reg.Valid() {
		return
	}
	rf[reg] = value
}

// Reset zeroes all registers.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
}
