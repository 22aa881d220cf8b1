// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"encoding/binary"
	"io"
	"iter"
	"log"

	"github.com/ezrec/pineapple/asm"
	"github.com/ezrec/pineapple/cpu"
	"github.com/ezrec/pineapple/internal"
	"github.com/ezrec/pineapple/memory"
	"github.com/ezrec/pineapple/trace"
)

// Emulator state. CPU + program listing + optional trace.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *asm.Program // Reference to the currently running program listing.

	Trace  *trace.Recorder // If set, every step is recorded.
	Offset uint32          // Word index the program is loaded at.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &asm.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Cpu.Defines(),
		memory.Defines(),
	)
}

// Reset the CPU, load the program at Offset, and start execution there.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()
	if emu.Trace != nil {
		emu.Trace.Reset()
	}

	err = emu.Cpu.Load(emu.Program.Binary(), emu.Offset)
	if err != nil {
		return
	}

	emu.Cpu.SetPc(emu.Offset)

	return
}

// LoadImage replaces the program with a binary image of little endian
// instruction words.
func (emu *Emulator) LoadImage(r io.Reader) (err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	if len(data)%4 != 0 {
		err = ErrImageSize
		return
	}

	words := make([]uint32, len(data)/4)
	for n := range words {
		words[n] = binary.LittleEndian.Uint32(data[n*4:])
	}

	emu.Program = &asm.Program{
		Opcodes: []asm.Opcode{{Codes: words}},
	}

	if emu.Verbose {
		log.Printf("emulator: image of %d words", len(words))
	}

	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	pc := emu.Cpu.Pc()
	if pc < emu.Offset {
		return 0
	}

	return emu.Program.LineNo(pc - emu.Offset)
}

// Tick performs a single step of the emulator. done is set when the step
// left the program counter unchanged, as the halt idiom does.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc()
	lineno := emu.LineNo()
	ticks := emu.Cpu.Ticks()

	inst, err := emu.Cpu.Step()

	if emu.Trace != nil {
		record := trace.Record{Tick: ticks, Pc: pc, Err: err}
		words, _ := emu.Cpu.InstructionRange(pc, pc+1)
		if len(words) == 1 {
			record.Word = words[0]
		}
		if inst != nil {
			record.Text = inst.String()
		}
		emu.Trace.Add(record)
	}

	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		return
	}

	done = emu.Cpu.Pc() == pc

	return
}

// Run ticks until done, an error, or limit steps when limit is positive.
// steps counts the successful ticks.
func (emu *Emulator) Run(limit int) (steps int, err error) {
	for limit <= 0 || steps < limit {
		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}
		steps++
		if done {
			return
		}
	}

	err = ErrStepLimit
	return
}
