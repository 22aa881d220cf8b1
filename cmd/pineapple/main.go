// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ezrec/pineapple/asm"
	"github.com/ezrec/pineapple/cpu"
	"github.com/ezrec/pineapple/emulator"
	"github.com/ezrec/pineapple/isa"
	"github.com/ezrec/pineapple/trace"
)

// defineList collects repeated -D NAME=VALUE flags.
type defineList map[string]string

func (dl defineList) String() string {
	var parts []string
	for key, value := range dl {
		parts = append(parts, key+"="+value)
	}
	return strings.Join(parts, ",")
}

func (dl defineList) Set(text string) error {
	key, value, ok := strings.Cut(text, "=")
	if !ok || len(key) == 0 {
		return fmt.Errorf("expected NAME=VALUE, not %q", text)
	}
	dl[key] = value
	return nil
}

// parseRange parses a start:stop byte address range.
func parseRange(text string) (start, stop uint32, err error) {
	left, right, ok := strings.Cut(text, ":")
	if !ok {
		err = fmt.Errorf("expected start:stop, not %q", text)
		return
	}

	value, err := strconv.ParseUint(left, 0, 32)
	if err != nil {
		return
	}
	start = uint32(value)

	value, err = strconv.ParseUint(right, 0, 32)
	if err != nil {
		return
	}
	stop = uint32(value)

	return
}

// loadOffset checks a -o value against instruction memory.
func loadOffset(offset uint) (index uint32, err error) {
	if offset > cpu.IMEM_WORDS {
		err = fmt.Errorf("offset 0x%x beyond instruction memory (0x%x words)", offset, cpu.IMEM_WORDS)
		return
	}

	index = uint32(offset)
	return
}

func main() {
	var compile string
	var binary string
	var offset uint
	var limit int
	var layout string
	var verbose bool
	var tracePath string
	var regs bool
	var mem string
	defines := defineList{}

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&binary, "b", "", "binary image of little endian words")
	flag.UintVar(&offset, "o", 0, "word index to load the program at")
	flag.IntVar(&limit, "n", 0, "step limit (0 is unlimited)")
	flag.StringVar(&layout, "layout", isa.Standard.Name, "instruction layout: "+strings.Join(isa.LayoutNames(), ", "))
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&tracePath, "trace", "", "write a step trace (.csv or .parquet)")
	flag.BoolVar(&regs, "regs", false, "dump registers after the run")
	flag.StringVar(&mem, "mem", "", "dump memory start:stop after the run")
	flag.Var(defines, "D", "predefine NAME=VALUE (repeatable)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(binary) != 0 {
		log.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	}

	lay, err := isa.LookupLayout(layout)
	if err != nil {
		log.Fatalf("%v: %v", layout, err)
	}

	index, err := loadOffset(offset)
	if err != nil {
		log.Fatalf("-o: %v", err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Offset = index
	emu.Layout = lay

	if tracePath != "" {
		emu.Trace = &trace.Recorder{}
	}

	// Assemble a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &asm.Assembler{
			Verbose: verbose,
			Layout:  lay,
			Base:    emu.Offset,
		}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		for key, value := range defines {
			asm.Predefine(key, value)
		}

		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Or load a raw image.
	if len(binary) != 0 {
		inf, err := os.Open(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		defer inf.Close()

		err = emu.LoadImage(inf)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	steps, runErr := emu.Run(limit)
	if verbose {
		log.Printf("%v: %d steps", os.Args[0], steps)
	}

	if emu.Trace != nil {
		err = writeTrace(emu.Trace, tracePath)
		if err != nil {
			log.Fatalf("%v: %v", tracePath, err)
		}
	}

	if regs {
		fmt.Print(emu.Cpu.String())
	}

	if len(mem) != 0 {
		start, stop, err := parseRange(mem)
		if err != nil {
			log.Fatalf("-mem: %v", err)
		}
		words, err := emu.MemoryRange(start, stop)
		if err != nil {
			log.Fatalf("-mem: %v", err)
		}
		for n, word := range words {
			fmt.Printf("%08x: %08x\n", start+uint32(n*4), uint32(word))
		}
	}

	if runErr != nil {
		log.Fatal(runErr)
	}
}

// writeTrace exports the trace, choosing the format by file extension.
func writeTrace(rec *trace.Recorder, path string) (err error) {
	ctx := context.Background()

	if filepath.Ext(path) == ".parquet" {
		return rec.WriteParquet(ctx, path)
	}

	ouf, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		cerr := ouf.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = rec.WriteCSV(ctx, ouf)
	return
}
