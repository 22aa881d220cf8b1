// Package memory implements the data address space of the Pineapple CPU.
//
// The 32-bit address space is partitioned into fixed regions. Only RAM and
// Video RAM are backed by storage; every other address faults. All accesses
// are classified before any storage is touched.
package memory

import (
	"fmt"
	"iter"
	"maps"
)

// Region classifies an address.
type Region int

//go:generate go tool stringer -linecomment -type=Region
const (
	REGION_RESERVED = Region(0) // reserved
	REGION_RAM      = Region(1) // ram
	REGION_VRAM     = Region(2) // vram
	REGION_SPECIAL  = Region(3) // special
)

// Origin and memtop (inclusive) of each range of the address space.
const (
	ORIGIN_RAM      = uint32(0x0000_0000)
	MEMTOP_RAM      = uint32(0x0001_ffff)
	ORIGIN_VRAM     = uint32(0x4000_0000)
	MEMTOP_VRAM     = uint32(0x4000_07ff)
	ORIGIN_SPECIAL  = uint32(0x8000_0000)
	MEMTOP_SPECIAL  = uint32(0x8000_000f)
	RAM_SIZE        = MEMTOP_RAM - ORIGIN_RAM + 1
	VRAM_SIZE       = MEMTOP_VRAM - ORIGIN_VRAM + 1
	ADDRESSABLE_MAX = ^uint32(0)
)

// Span is one entry of the address map.
type Span struct {
	Origin uint32
	Memtop uint32
	Region Region
}

// Contains is true if addr is within the span.
func (span Span) Contains(addr uint32) bool {
	return addr >= span.Origin && addr <= span.Memtop
}

// Addressable is true for spans backed by storage.
func (span Span) Addressable() bool {
	return span.Region == REGION_RAM || span.Region == REGION_VRAM
}

func (span Span) String() string {
	return fmt.Sprintf("%08x-%08x %v", span.Origin, span.Memtop, span.Region)
}

// Map is the address map, in ascending address order, covering every
// 32-bit address exactly once.
var Map = []Span{
	{ORIGIN_RAM, MEMTOP_RAM, REGION_RAM},
	{MEMTOP_RAM + 1, ORIGIN_VRAM - 1, REGION_RESERVED},
	{ORIGIN_VRAM, MEMTOP_VRAM, REGION_VRAM},
	{MEMTOP_VRAM + 1, ORIGIN_SPECIAL - 1, REGION_RESERVED},
	{ORIGIN_SPECIAL, MEMTOP_SPECIAL, REGION_SPECIAL},
	{MEMTOP_SPECIAL + 1, ADDRESSABLE_MAX, REGION_RESERVED},
}

// SpanOf returns the address map entry for addr.
func SpanOf(addr uint32) Span {
	for _, span := range Map {
		if span.Contains(addr) {
			return span
		}
	}

	// Map covers every address.
	panic("memory: address map incomplete")
}

// Classify returns the region of addr.
func Classify(addr uint32) Region {
	return SpanOf(addr).Region
}

var _memory_defines = map[string]string{
	"RAM_BASE":  fmt.Sprintf("%#x", ORIGIN_RAM),
	"RAM_TOP":   fmt.Sprintf("%#x", MEMTOP_RAM),
	"RAM_SIZE":  fmt.Sprintf("%#x", RAM_SIZE),
	"VRAM_BASE": fmt.Sprintf("%#x", ORIGIN_VRAM),
	"VRAM_TOP":  fmt.Sprintf("%#x", MEMTOP_VRAM),
	"VRAM_SIZE": fmt.Sprintf("%#x", VRAM_SIZE),
}

// Defines returns the assembler equates of the address map.
func Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}
