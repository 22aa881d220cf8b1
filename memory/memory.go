package memory

import (
	"encoding/binary"
	"log"
)

// Memory is the byte store of the addressable regions.
//
// Memory is not safe for concurrent use; the owner serialises access.
type Memory struct {
	Verbose bool // Set to log every store.

	ram  []byte
	vram []byte
}

// NewMemory returns a zeroed memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{
		ram:  make([]byte, RAM_SIZE),
		vram: make([]byte, VRAM_SIZE),
	}

	return
}

// Reset zeroes all storage.
func (mem *Memory) Reset() {
	clear(mem.ram)
	clear(mem.vram)
}

// backing returns the storage of an addressable span.
func (mem *Memory) backing(span Span) []byte {
	switch span.Region {
	case REGION_RAM:
		return mem.ram
	case REGION_VRAM:
		return mem.vram
	}
	return nil
}

// access classifies [addr, addr+size) and returns the bytes backing it.
func (mem *Memory) access(addr uint32, size int, write bool) (data []byte, err error) {
	span := SpanOf(addr)

	fault := func(reason error) error {
		return &ErrFault{Addr: addr, Size: size, Write: write, Region: span.Region, Err: reason}
	}

	switch size {
	case 1, 2, 4:
	default:
		err = fault(ErrSize)
		return
	}

	switch span.Region {
	case REGION_RAM, REGION_VRAM:
	case REGION_SPECIAL:
		err = fault(ErrSpecial)
		return
	default:
		err = fault(ErrReserved)
		return
	}

	// The last byte must be in the same span, without wrapping.
	last := addr + uint32(size-1)
	if last < addr || !span.Contains(last) {
		err = fault(ErrBoundary)
		return
	}

	offset := addr - span.Origin
	data = mem.backing(span)[offset : offset+uint32(size)]
	return
}

// Read8 reads a byte.
func (mem *Memory) Read8(addr uint32) (value uint8, err error) {
	data, err := mem.access(addr, 1, false)
	if err != nil {
		return
	}
	value = data[0]
	return
}

// Read16 reads a little endian half word.
func (mem *Memory) Read16(addr uint32) (value uint16, err error) {
	data, err := mem.access(addr, 2, false)
	if err != nil {
		return
	}
	value = binary.LittleEndian.Uint16(data)
	return
}

// Read32 reads a little endian word.
func (mem *Memory) Read32(addr uint32) (value uint32, err error) {
	data, err := mem.access(addr, 4, false)
	if err != nil {
		return
	}
	value = binary.LittleEndian.Uint32(data)
	return
}

// Write8 writes a byte.
func (mem *Memory) Write8(addr uint32, value uint8) (err error) {
	data, err := mem.access(addr, 1, true)
	if err != nil {
		return
	}
	data[0] = value
	mem.logStore(addr, 1, uint32(value))
	return
}

// Write16 writes a little endian half word.
func (mem *Memory) Write16(addr uint32, value uint16) (err error) {
	data, err := mem.access(addr, 2, true)
	if err != nil {
		return
	}
	binary.LittleEndian.PutUint16(data, value)
	mem.logStore(addr, 2, uint32(value))
	return
}

// Write32 writes a little endian word.
func (mem *Memory) Write32(addr uint32, value uint32) (err error) {
	data, err := mem.access(addr, 4, true)
	if err != nil {
		return
	}
	binary.LittleEndian.PutUint32(data, value)
	mem.logStore(addr, 4, value)
	return
}

// ReadWord reads a signed word.
func (mem *Memory) ReadWord(addr uint32) (value int32, err error) {
	word, err := mem.Read32(addr)
	value = int32(word)
	return
}

// WriteWord writes a signed word.
func (mem *Memory) WriteWord(addr uint32, value int32) (err error) {
	return mem.Write32(addr, uint32(value))
}

func (mem *Memory) logStore(addr uint32, size int, value uint32) {
	if mem.Verbose {
		log.Printf("memory: store%d [%08x] <- %#x", size*8, addr, value)
	}
}

// Dump returns the words at start, start+4, ... below stop.
// Every byte read must lie in the addressable region holding start.
func (mem *Memory) Dump(start, stop uint32) (words []int32, err error) {
	span := SpanOf(start)
	if start > stop || !span.Addressable() {
		err = &ErrDump{Start: start, Stop: stop, Region: span.Region}
		return
	}

	count := (uint64(stop) - uint64(start) + 3) / 4
	if count > 0 {
		last := uint64(start) + count*4 - 1
		if last > uint64(span.Memtop) {
			err = &ErrDump{Start: start, Stop: stop, Region: span.Region}
			return
		}
	}

	offset := start - span.Origin
	data := mem.backing(span)
	words = make([]int32, 0, count)
	for n := range uint32(count) {
		at := offset + n*4
		words = append(words, int32(binary.LittleEndian.Uint32(data[at:at+4])))
	}

	return
}
