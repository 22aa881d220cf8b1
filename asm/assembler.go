package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/pineapple/cpu"
	"github.com/ezrec/pineapple/isa"
	"github.com/ezrec/pineapple/memory"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = func() map[string]string {
	equ := map[string]string{
		"LINENO":     "0",
		"IMEM_WORDS": fmt.Sprintf("%#x", cpu.IMEM_WORDS),
		"NOP":        fmt.Sprintf("%#x", cpu.NOP),
	}
	for key, value := range memory.Defines() {
		equ[key] = value
	}
	return equ
}()

// regMap maps register names, numeric and ABI, to registers.
var regMap = func() map[string]isa.Reg {
	regs := make(map[string]isa.Reg, 2*isa.REGISTERS+1)
	for n := range isa.REGISTERS {
		regs[fmt.Sprintf("x%d", n)] = isa.Reg(n)
	}
	abi := []string{
		"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
		"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
		"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
		"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
	}
	for n, name := range abi {
		regs[name] = isa.Reg(n)
	}
	regs["fp"] = 8
	return regs
}()

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reMemOperand = regexp.MustCompile(`^(.*)\(([^()]+)\)$`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
)

type linkMode int

const (
	linkRelative = linkMode(iota) // Displacement from the instruction.
	linkAbsolute                  // Word index, offset by Base.
)

// link is an instruction whose immediate is a label.
type link struct {
	opcode int             // Index into Opcode.
	inst   isa.Instruction // Nil for a .word.
	mode   linkMode
}

// Assembler is a single pass macro assembler for the Pineapple CPU.
type Assembler struct {
	Verbose bool       // If set, verbosely logs the assembler actions.
	Layout  isa.Layout // Instruction layout; the zero value is isa.Standard.
	Base    uint32     // Word index the program will be loaded at.
	Opcode  []Opcode   // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to word indexes.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	links     []link
	expansion int // Macro expansions so far.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) layout() isa.Layout {
	if len(asm.Layout.Name) == 0 {
		return isa.Standard
	}
	return asm.Layout
}

// resolve replaces an equate by its value.
func (asm *Assembler) resolve(word string) string {
	equate, ok := asm.Equate[word]
	if ok {
		return equate
	}
	return word
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	word = strings.TrimPrefix(asm.resolve(word), "#")
	invert := false
	if strings.HasPrefix(word, "~") {
		invert = true
		word = word[1:]
	}
	if strings.HasPrefix(word, "'") {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil || v64 > 0xffffffff || v64 < -0x80000000 {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	if invert {
		value = ^value
	}

	return
}

// immediate returns the signed value of a word.
func (asm *Assembler) immediate(word string) (imm int32, err error) {
	value, err := asm.valueOf(word)
	imm = int32(value)
	return
}

// register returns the register named by a word.
func (asm *Assembler) register(word string) (reg isa.Reg, err error) {
	reg, ok := regMap[strings.ToLower(asm.resolve(word))]
	if !ok {
		err = ErrParseRegister(word)
	}
	return
}

// memOperand splits an "imm(reg)" operand. ok is false if word does not
// have that shape.
func (asm *Assembler) memOperand(word string) (imm int32, base isa.Reg, ok bool, err error) {
	match := reMemOperand.FindStringSubmatch(word)
	if match == nil {
		return
	}
	ok = true

	if len(match[1]) != 0 {
		imm, err = asm.immediate(match[1])
		if err != nil {
			return
		}
	}
	base, err = asm.register(match[2])
	return
}

// target returns either a numeric immediate or a label to link.
func (asm *Assembler) target(word string) (imm int32, label string, err error) {
	imm, err = asm.immediate(word)
	if err == nil {
		return
	}
	err = nil
	imm = 0

	if !reLabel.MatchString(word) {
		err = ErrParseTarget(word)
		return
	}
	label = word
	return
}

// encode encodes an instruction with the assembler's layout.
func (asm *Assembler) encode(inst isa.Instruction) (word uint32, err error) {
	// JALR clears bit 0 of its target, so an absolute target must be even.
	if in, ok := inst.(isa.I); ok && in.Opcode == isa.OP_JALR && in.Rs1 == 0 && in.Imm&1 != 0 {
		err = errors.Join(ErrImmediate, &isa.ErrImmediate{Format: isa.FORMAT_I, Value: in.Imm, Err: isa.ErrImmediateAlign})
		return
	}

	word, err = asm.layout().Encode(inst)
	var immErr *isa.ErrImmediate
	if errors.As(err, &immErr) {
		err = errors.Join(ErrImmediate, err)
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	err = nil
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// splitWords splits a line into words. Commas separate like spaces.
func splitWords(line string) []string {
	return strings.Fields(strings.ReplaceAll(line, ",", " "))
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansion++
		expansion := asm.expansion

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_%v_", name, expansion, lineno))
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentIp gets the current word index.
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + len(last.Codes)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.links = asm.links[:0]
	asm.expansion = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := splitWords(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	if asm.currentIp() > cpu.IMEM_WORDS {
		err = ErrProgramSize
		return
	}

	// Final linking of labels.
	for _, lk := range asm.links {
		op := &asm.Opcode[lk.opcode]
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		label := op.LinkLabel
		ip, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}

		var value int32
		switch lk.mode {
		case linkRelative:
			value = int32(ip - op.Ip)
		default:
			value = int32(uint32(ip) + asm.Base)
		}

		if lk.inst == nil {
			op.Codes[0] = uint32(value)
			continue
		}

		op.Codes[0], err = asm.encode(withImmediate(lk.inst, value))
		if err != nil {
			return
		}

		if asm.Verbose {
			log.Printf("%v: link %v = %#x", lineno, label, uint32(value))
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// withImmediate returns inst with its immediate replaced.
func withImmediate(inst isa.Instruction, imm int32) isa.Instruction {
	switch in := inst.(type) {
	case isa.I:
		in.Imm = imm
		return in
	case isa.B:
		in.Imm = imm
		return in
	case isa.U:
		in.Imm = imm
		return in
	}
	return inst
}

// argCount checks the number of operands against the allowed counts.
func argCount(args []string, allowed ...int) error {
	if slices.Contains(allowed, len(args)) {
		return nil
	}
	if len(args) > slices.Max(allowed) {
		return ErrOpcodeExtraArgs
	}
	return ErrOpcodeValueMissing
}

// nops returns count NOP words.
func nops(count int) (codes []uint32) {
	codes = make([]uint32, count)
	for n := range codes {
		codes[n] = cpu.NOP
	}
	return
}

// parseDirective evaluates a '.' directive that emits words.
func (asm *Assembler) parseDirective(words []string) (codes []uint32, label string, err error) {
	ip := asm.currentIp()

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var org uint32
		org, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if int64(org) < int64(ip) {
			err = ErrOrgBackwards
			return
		}
		if org > cpu.IMEM_WORDS {
			err = ErrProgramSize
			return
		}
		codes = nops(int(org) - ip)
	case ".align":
		if len(words) != 2 {
			err = ErrAlignSyntax
			return
		}
		var align uint32
		align, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if align == 0 || align > cpu.IMEM_WORDS {
			err = ErrAlignSyntax
			return
		}
		codes = nops((int(align) - ip%int(align)) % int(align))
	case ".word":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) == 2 {
			var imm int32
			imm, label, err = asm.target(words[1])
			if err != nil {
				return
			}
			codes = []uint32{uint32(imm)}
			return
		}
		for _, word := range words[1:] {
			var value uint32
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
	default:
		err = ErrDirectiveInvalid
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []uint32
	var label string
	var pending isa.Instruction
	mode := linkAbsolute

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		if len(label) != 0 {
			asm.links = append(asm.links, link{opcode: len(asm.Opcode), inst: pending, mode: mode})
		}
		opcode := Opcode{LineNo: lineno, Ip: asm.currentIp(), Words: initial_words, Codes: codes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	if strings.HasPrefix(words[0], ".") {
		codes, label, err = asm.parseDirective(words)
		return
	}

	mnemonic := strings.ToLower(words[0])
	args := words[1:]

	// Pseudo-instruction substitutions
	switch {
	case mnemonic == "nop" && len(args) == 0:
		mnemonic, args = "addi", []string{"x0", "x0", "0"}
	case mnemonic == "mv" && len(args) == 2:
		mnemonic, args = "addi", []string{args[0], args[1], "0"}
	case mnemonic == "li" && len(args) == 2:
		mnemonic, args = "addi", []string{args[0], "x0", args[1]}
	case mnemonic == "not" && len(args) == 2:
		mnemonic, args = "xori", []string{args[0], args[1], "-1"}
	case mnemonic == "j" && len(args) == 1:
		mnemonic, args = "jalr", []string{"x0", "x0", args[0]}
	case mnemonic == "ret" && len(args) == 0:
		mnemonic, args = "jalr", []string{"x0", "ra", "0"}
	case mnemonic == "halt" && len(args) == 0:
		mnemonic, args = "beq", []string{"x0", "x0", "0"}
	default:
		// unchanged
	}

	op, ok := isa.LookupOp(mnemonic)
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	var inst isa.Instruction
	var rd, rs1, rs2 isa.Reg
	var imm int32

	switch {
	case op == isa.OP_LUI || op == isa.OP_AUIPC:
		if err = argCount(args, 2); err != nil {
			return
		}
		if rd, err = asm.register(args[0]); err != nil {
			return
		}
		if imm, err = asm.immediate(args[1]); err != nil {
			return
		}
		inst = isa.U{Opcode: op, Rd: rd, Imm: imm}
	case op == isa.OP_JAL:
		if err = argCount(args, 1, 2); err != nil {
			return
		}
		rd = 1
		if len(args) == 2 {
			if rd, err = asm.register(args[0]); err != nil {
				return
			}
			args = args[1:]
		}
		if imm, label, err = asm.target(args[0]); err != nil {
			return
		}
		mode = linkRelative
		inst = isa.U{Opcode: op, Rd: rd, Imm: imm}
	case op == isa.OP_JALR || op.IsLoad():
		if err = argCount(args, 2, 3); err != nil {
			return
		}
		if rd, err = asm.register(args[0]); err != nil {
			return
		}
		if len(args) == 2 {
			var ok bool
			imm, rs1, ok, err = asm.memOperand(args[1])
			if err == nil && !ok {
				err = ErrOpcodeValueMissing
			}
			if err != nil {
				return
			}
		} else {
			if rs1, err = asm.register(args[1]); err != nil {
				return
			}
			if op == isa.OP_JALR {
				imm, label, err = asm.target(args[2])
			} else {
				imm, err = asm.immediate(args[2])
			}
			if err != nil {
				return
			}
		}
		inst = isa.I{Opcode: op, Rd: rd, Rs1: rs1, Imm: imm}
	case op.IsStore():
		if err = argCount(args, 2, 3); err != nil {
			return
		}
		if len(args) == 2 {
			if rs2, err = asm.register(args[0]); err != nil {
				return
			}
			var ok bool
			imm, rs1, ok, err = asm.memOperand(args[1])
			if err == nil && !ok {
				err = ErrOpcodeValueMissing
			}
			if err != nil {
				return
			}
		} else {
			if rs1, err = asm.register(args[0]); err != nil {
				return
			}
			if rs2, err = asm.register(args[1]); err != nil {
				return
			}
			if imm, err = asm.immediate(args[2]); err != nil {
				return
			}
		}
		inst = isa.S{Opcode: op, Rs1: rs1, Rs2: rs2, Imm: imm}
	case op.IsBranch():
		if err = argCount(args, 3); err != nil {
			return
		}
		if rs1, err = asm.register(args[0]); err != nil {
			return
		}
		if rs2, err = asm.register(args[1]); err != nil {
			return
		}
		if imm, label, err = asm.target(args[2]); err != nil {
			return
		}
		mode = linkRelative
		inst = isa.B{Opcode: op, Rs1: rs1, Rs2: rs2, Imm: imm}
	case op == isa.OP_FENCE:
		if err = argCount(args, 0, 5); err != nil {
			return
		}
		fence := isa.Fence{}
		if len(args) == 5 {
			fields := []*uint32{&fence.Fm, &fence.Pred, &fence.Succ}
			for n, field := range fields {
				if *field, err = asm.valueOf(args[n]); err != nil {
					return
				}
			}
			if fence.Rs1, err = asm.register(args[3]); err != nil {
				return
			}
			if fence.Rd, err = asm.register(args[4]); err != nil {
				return
			}
		}
		inst = fence
	case op == isa.OP_ECALL || op == isa.OP_EBREAK:
		if err = argCount(args, 0); err != nil {
			return
		}
		inst = isa.System{Opcode: op}
	case op >= isa.OP_ADD && op <= isa.OP_AND:
		if err = argCount(args, 3); err != nil {
			return
		}
		regs := []*isa.Reg{&rd, &rs1, &rs2}
		for n, reg := range regs {
			if *reg, err = asm.register(args[n]); err != nil {
				return
			}
		}
		inst = isa.R{Opcode: op, Rd: rd, Rs1: rs1, Rs2: rs2}
	default:
		// Register-immediate, including the immediate shifts.
		if err = argCount(args, 3); err != nil {
			return
		}
		if rd, err = asm.register(args[0]); err != nil {
			return
		}
		if rs1, err = asm.register(args[1]); err != nil {
			return
		}
		if imm, err = asm.immediate(args[2]); err != nil {
			return
		}
		inst = isa.I{Opcode: op, Rd: rd, Rs1: rs1, Imm: imm}
	}

	word, err := asm.encode(inst)
	if err != nil {
		return
	}

	pending = inst
	codes = []uint32{word}

	return
}
