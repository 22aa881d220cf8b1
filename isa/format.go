package isa

// Format selects the bit scatter of an instruction's immediate.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_I = Format(0) // I
	FORMAT_S = Format(1) // S
	FORMAT_B = Format(2) // B
	FORMAT_U = Format(3) // U
)

// Mask returns the bits of an instruction word that carry the immediate.
func (format Format) Mask() uint32 {
	switch format {
	case FORMAT_I:
		return 0xfff0_0000
	case FORMAT_S, FORMAT_B:
		return 0xfe00_0f80
	case FORMAT_U:
		return 0xffff_f000
	}

	return 0
}

// Immediate reassembles the signed immediate of word.
// Sign extension is always taken from bit 31 of the word.
func (format Format) Immediate(word uint32) (imm int32) {
	switch format {
	case FORMAT_I:
		imm = ExtendRange(word, 31, 20)
	case FORMAT_S:
		sign := uint32(ExtendRange(word, 31, 31))
		imm = int32((sign << 11) |
			(Range(word, 30, 25) << 5) |
			(Range(word, 11, 8) << 1) |
			Bit(word, 7))
	case FORMAT_B:
		sign := uint32(ExtendRange(word, 31, 31))
		imm = int32((sign << 12) |
			(Bit(word, 7) << 11) |
			(Range(word, 30, 25) << 5) |
			(Range(word, 11, 8) << 1))
	case FORMAT_U:
		sign := uint32(ExtendRange(word, 31, 31))
		imm = int32((sign << 31) |
			(Range(word, 30, 20) << 20) |
			(Range(word, 19, 12) << 12))
	}

	return
}

// Encode scatters imm into the immediate bits of an instruction word.
func (format Format) Encode(imm int32) (word uint32, err error) {
	defer func() {
		if err != nil {
			word = 0
			err = &ErrImmediate{Format: format, Value: imm, Err: err}
		}
	}()

	value := uint32(imm)

	switch format {
	case FORMAT_I:
		if imm < -2048 || imm > 2047 {
			err = ErrImmediateRange
			return
		}
		word = place(value, 31, 20)
	case FORMAT_S:
		if imm < -2048 || imm > 2047 {
			err = ErrImmediateRange
			return
		}
		word = place(Bit(value, 11), 31, 31) |
			place(Range(value, 10, 5), 30, 25) |
			place(Range(value, 4, 1), 11, 8) |
			place(Bit(value, 0), 7, 7)
	case FORMAT_B:
		if imm < -4096 || imm > 4094 {
			err = ErrImmediateRange
			return
		}
		if imm&1 != 0 {
			err = ErrImmediateAlign
			return
		}
		word = place(Bit(value, 12), 31, 31) |
			place(Bit(value, 11), 7, 7) |
			place(Range(value, 10, 5), 30, 25) |
			place(Range(value, 4, 1), 11, 8)
	case FORMAT_U:
		if value&0xfff != 0 {
			err = ErrImmediateAlign
			return
		}
		word = value & 0xffff_f000
	default:
		err = ErrInstruction
	}

	return
}
