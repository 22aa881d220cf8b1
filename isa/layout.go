package isa

import (
	"maps"
	"slices"
)

// Field is an inclusive bit range [Lo..Hi] of an instruction word.
type Field struct {
	Hi uint
	Lo uint
}

// Get extracts the field from word.
func (fd Field) Get(word uint32) uint32 {
	return Range(word, fd.Hi, fd.Lo)
}

// Put places value into the field position.
func (fd Field) Put(value uint32) uint32 {
	return place(value, fd.Hi, fd.Lo)
}

// Width returns the number of bits in the field.
func (fd Field) Width() uint {
	return fd.Hi - fd.Lo + 1
}

// Layout locates the register fields and single-bit selectors of an
// instruction word. The opcode, funct3 and immediate positions are the same
// in every layout.
type Layout struct {
	Name     string
	Rd       Field
	Rs1      Field
	Rs2      Field // Also the shift amount of SLLI, SRLI and SRAI.
	Tertiary uint  // Selects SUB, SRA and SRAI.
	System   uint  // Selects EBREAK over ECALL.
}

var (
	// Standard places rd at [11:7], rs1 at [19:15], rs2 at [24:20], and
	// selects SUB/SRA/SRAI with bit 30.
	Standard = Layout{
		Name:     "standard",
		Rd:       Field{11, 7},
		Rs1:      Field{19, 15},
		Rs2:      Field{24, 20},
		Tertiary: 30,
		System:   20,
	}

	// Legacy places rd at [12:8], both source registers at [20:16], and
	// selects SUB/SRA/SRAI with bit 31.
	Legacy = Layout{
		Name:     "legacy",
		Rd:       Field{12, 8},
		Rs1:      Field{20, 16},
		Rs2:      Field{20, 16},
		Tertiary: 31,
		System:   21,
	}
)

var layouts = map[string]Layout{
	Standard.Name: Standard,
	Legacy.Name:   Legacy,
}

// LayoutNames returns the names of the known layouts, sorted.
func LayoutNames() []string {
	return slices.Sorted(maps.Keys(layouts))
}

// LookupLayout finds a layout by name.
func LookupLayout(name string) (lay Layout, err error) {
	lay, ok := layouts[name]
	if !ok {
		err = ErrLayout
	}

	return
}

// String returns the layout name.
func (lay Layout) String() string {
	return lay.Name
}
