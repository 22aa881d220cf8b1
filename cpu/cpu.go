package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"sync"

	"github.com/ezrec/pineapple/isa"
	"github.com/ezrec/pineapple/memory"
)

// Instruction memory constants.
const (
	IMEM_WORDS = 524288     // Words of instruction memory.
	NOP        = 0x00000013 // ADDI x0 x0 0, the instruction memory fill.
)

var _cpu_defines = map[string]string{
	"IMEM_WORDS": fmt.Sprintf("0x%x", IMEM_WORDS),
	"NOP":        fmt.Sprintf("0x%x", NOP),
}

// Cpu is the simulation context of the processor core.
//
// The program counter, the register file, instruction memory and data
// memory each have their own lock. Step holds the program counter, register
// and data memory for writing, and instruction memory for reading, for the
// whole step; the locks are always taken in that order.
type Cpu struct {
	Verbose bool       // Set to enable verbose logging.
	Layout  isa.Layout // Instruction field layout used by decode.

	pcLock sync.RWMutex
	pc     uint32 // Current program counter, a word index.
	ticks  int    // Successful steps since reset.

	regLock sync.RWMutex
	reg     RegisterFile

	imemLock sync.RWMutex
	imem     []uint32
	loadErr  error // Latched failed load; cleared by Reset.

	memLock sync.RWMutex
	mem     *memory.Memory
}

// NewCpu creates a CPU in the reset state, using the standard layout.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Layout: isa.Standard,
		imem:   make([]uint32, IMEM_WORDS),
		mem:    memory.NewMemory(),
	}
	fillNop(cpu.imem)

	return
}

func fillNop(words []uint32) {
	for n := range words {
		words[n] = NOP
	}
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// lock takes every lock for writing, in order.
func (cpu *Cpu) lock() {
	cpu.pcLock.Lock()
	cpu.regLock.Lock()
	cpu.memLock.Lock()
	cpu.imemLock.Lock()
}

func (cpu *Cpu) unlock() {
	cpu.imemLock.Unlock()
	cpu.memLock.Unlock()
	cpu.regLock.Unlock()
	cpu.pcLock.Unlock()
}

// Reset the CPU state.
// - Clears the registers, program counter and tick counter.
// - Zeros data memory.
// - Fills instruction memory with NOP.
// - Clears a latched load error.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.lock()
	defer cpu.unlock()

	cpu.pc = 0
	cpu.ticks = 0
	cpu.reg.Reset()
	cpu.mem.Reset()
	fillNop(cpu.imem)
	cpu.loadErr = nil
}

// Load copies a program into instruction memory at a word offset.
// A program that does not fit is not written at all, and the CPU refuses
// to step until Reset.
func (cpu *Cpu) Load(words []uint32, offset uint32) (err error) {
	cpu.imemLock.Lock()
	defer cpu.imemLock.Unlock()

	if uint64(offset)+uint64(len(words)) > IMEM_WORDS {
		err = &ErrLoad{Offset: offset, Words: len(words), Err: ErrProgramSize}
		cpu.loadErr = err
		return
	}

	copy(cpu.imem[offset:], words)

	if cpu.Verbose {
		log.Printf("cpu: load %d words at 0x%x", len(words), offset)
	}

	return
}

// Step fetches, decodes and executes one instruction. The decoded
// instruction is returned whenever the word decoded, even on error.
func (cpu *Cpu) Step() (inst isa.Instruction, err error) {
	cpu.pcLock.Lock()
	defer cpu.pcLock.Unlock()
	cpu.regLock.Lock()
	defer cpu.regLock.Unlock()
	cpu.memLock.Lock()
	defer cpu.memLock.Unlock()
	cpu.imemLock.RLock()
	defer cpu.imemLock.RUnlock()

	if cpu.loadErr != nil {
		err = cpu.loadErr
		return
	}

	pc := cpu.pc
	if pc >= IMEM_WORDS {
		err = &ErrFetch{Pc: pc}
		return
	}

	word := cpu.imem[pc]

	inst, err = cpu.Layout.Decode(word)
	if cpu.Verbose {
		log.Printf("%05x: %08x %v", pc, word, inst)
	}
	if err != nil {
		err = &ErrExecute{Pc: pc, Word: word, Inst: inst, Err: err}
		return
	}

	cpu.mem.Verbose = cpu.Verbose

	jumped, err := cpu.execute(pc, inst)
	if err != nil {
		err = &ErrExecute{Pc: pc, Word: word, Inst: inst, Err: err}
		return
	}

	if !jumped {
		cpu.pc = pc + 1
	}
	cpu.ticks++

	return
}

// Ticks returns the number of successful steps since reset.
func (cpu *Cpu) Ticks() int {
	cpu.pcLock.RLock()
	defer cpu.pcLock.RUnlock()

	return cpu.ticks
}

// Pc returns the program counter.
func (cpu *Cpu) Pc() uint32 {
	cpu.pcLock.RLock()
	defer cpu.pcLock.RUnlock()

	return cpu.pc
}

// SetPc sets the program counter.
func (cpu *Cpu) SetPc(pc uint32) {
	cpu.pcLock.Lock()
	defer cpu.pcLock.Unlock()

	cpu.pc = pc
}

// Registers returns a snapshot of the register file.
func (cpu *Cpu) Registers() (regs [isa.REGISTERS]int32) {
	cpu.regLock.RLock()
	defer cpu.regLock.RUnlock()

	regs = cpu.reg
	return
}

// MemoryRange returns the data memory words in [start, stop).
func (cpu *Cpu) MemoryRange(start, stop uint32) (words []int32, err error) {
	cpu.memLock.RLock()
	defer cpu.memLock.RUnlock()

	return cpu.mem.Dump(start, stop)
}

// VideoMemory returns all of Video RAM.
func (cpu *Cpu) VideoMemory() (words []int32, err error) {
	return cpu.MemoryRange(memory.ORIGIN_VRAM, memory.MEMTOP_VRAM+1)
}

// InstructionRange returns the instruction memory words in [start, stop).
func (cpu *Cpu) InstructionRange(start, stop uint32) (words []uint32, err error) {
	if start > stop || stop > IMEM_WORDS {
		err = &ErrInstructionRange{Start: start, Stop: stop}
		return
	}

	cpu.imemLock.RLock()
	defer cpu.imemLock.RUnlock()

	words = make([]uint32, stop-start)
	copy(words, cpu.imem[start:stop])
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	pc := cpu.Pc()
	regs := cpu.Registers()

	text += fmt.Sprintf("% 5s: %05x\n", "pc", pc)
	for n, val := range regs {
		name := isa.Reg(n).String()
		text += fmt.Sprintf("% 5s: %04X_%04X\n", name, uint32(val)>>16, uint32(val)&0xffff)
	}

	return
}
