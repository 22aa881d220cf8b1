package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"li", "x1", "1"}, Codes: []uint32{0x00100093}},
			{LineNo: 3, Ip: 1, Words: []string{".word", "1", "2", "3"}, Codes: []uint32{1, 2, 3}},
			{LineNo: 4, Ip: 4, Words: []string{"halt"}, Codes: []uint32{0x00000063}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.Opcode.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(3)
	assert.NotNil(dbg.Opcode)
	assert.Equal(3, dbg.Opcode.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(4)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.Opcode.LineNo)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(5)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0xffff_ffff)
	assert.Nil(dbg.Opcode)

	assert.Equal(0, prog.LineNo(5))
	assert.Equal(3, prog.LineNo(2))
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal([]uint32{0x00100093, 1, 2, 3, 0x00000063}, prog.Binary())

	empty := &Program{}
	assert.Empty(empty.Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var ips []uint32
	for ip, code := range prog.Codes() {
		ips = append(ips, ip)
		if code == 2 {
			break
		}
	}
	assert.Equal([]uint32{0, 1, 2}, ips)
}
