package isa

// Bit returns bit n of word as 0 or 1.
func Bit(word uint32, n uint) uint32 {
	if n > 31 {
		panic("isa: bit index out of range")
	}
	return (word >> n) & 1
}

// Range returns bits [lo..hi] of word, right justified and zero extended.
func Range(word uint32, hi, lo uint) uint32 {
	if hi > 31 || hi < lo {
		panic("isa: bit range out of order")
	}
	width := hi - lo + 1
	if width == 32 {
		return word
	}
	return (word >> lo) & ((1 << width) - 1)
}

// SignExtend treats the low width bits of value as a two's complement
// quantity, and extends it to 32 bits.
// Only 1 <= width <= 32 is valid.
func SignExtend(value uint32, width uint) int32 {
	if width < 1 || width > 32 {
		panic("isa: sign extension width out of range")
	}
	shift := 32 - width
	return int32(value<<shift) >> shift
}

// ExtendRange returns bits [lo..hi] of word, sign extended from bit hi.
func ExtendRange(word uint32, hi, lo uint) int32 {
	return SignExtend(Range(word, hi, lo), hi-lo+1)
}

// place puts the low width bits of value at [lo..lo+width-1].
func place(value uint32, hi, lo uint) uint32 {
	width := hi - lo + 1
	if width == 32 {
		return value
	}
	return (value & ((1 << width) - 1)) << lo
}
