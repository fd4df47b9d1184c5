package hw

import (
	"fmt"
	"strings"

	"nescore/hw/hwio"
)

// DisasmOp is a disassembled instruction.
type DisasmOp struct {
	PC     uint16
	Buf    []byte // raw instruction bytes, opcode first
	Opcode string // mnemonic
	Oper   string // formatted operand, empty for implied instructions
}

// Disasm disassembles the instruction at pc. Memory is peeked so that
// disassembling has no effect on the hardware.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	peek := func(addr uint16) uint8 { return c.Bus.Read8(addr, true) }

	op := &Opcodes[peek(pc)]
	d := DisasmOp{
		Opcode: op.Name,
		PC:     pc,
		Buf:    make([]byte, op.Size),
	}
	for i := range d.Buf {
		d.Buf[i] = peek(pc + uint16(i))
	}

	switch op.Mode {
	case ACC:
		d.Oper = "A"
	case IMM:
		d.Oper = fmt.Sprintf("#$%02X", d.Buf[1])
	case ZPG:
		d.Oper = fmt.Sprintf("$%02X", d.Buf[1])
	case ZPX:
		d.Oper = fmt.Sprintf("$%02X,X", d.Buf[1])
	case ZPY:
		d.Oper = fmt.Sprintf("$%02X,Y", d.Buf[1])
	case ABS:
		d.Oper = absOperand(hwio.Peek16(c.Bus, pc+1))
	case ABX:
		d.Oper = absOperand(hwio.Peek16(c.Bus, pc+1)) + ",X"
	case ABY:
		d.Oper = absOperand(hwio.Peek16(c.Bus, pc+1)) + ",Y"
	case IND:
		d.Oper = fmt.Sprintf("($%04X)", hwio.Peek16(c.Bus, pc+1))
	case IZX:
		d.Oper = fmt.Sprintf("($%02X,X)", d.Buf[1])
	case IZY:
		d.Oper = fmt.Sprintf("($%02X),Y", d.Buf[1])
	case REL:
		target := pc + 2 + uint16(int8(d.Buf[1]))
		d.Oper = fmt.Sprintf("$%04X", target)
	}
	return d
}

// String returns the disassembly without address nor instruction bytes,
// for example "LDA #$32".
func (d DisasmOp) String() string {
	return strings.TrimSpace(d.Opcode + " " + d.Oper)
}

// absOperand formats an absolute address, memory mapped registers are shown
// by name.
func absOperand(addr uint16) string {
	switch addr {
	case 0x2000:
		return "PPUCTRL"
	case 0x2001:
		return "PPUMASK"
	case 0x2002:
		return "PPUSTATUS"
	case 0x2003:
		return "OAMADDR"
	case 0x2004:
		return "OAMDATA"
	case 0x2005:
		return "PPUSCROLL"
	case 0x2006:
		return "PPUADDR"
	case 0x2007:
		return "PPUDATA"
	case 0x4014:
		return "OAMDMA"
	case 0x4015:
		return "APUSTATUS"
	case 0x4016:
		return "JOY1"
	case 0x4017:
		return "JOY2"
	}
	return fmt.Sprintf("$%04X", addr)
}
