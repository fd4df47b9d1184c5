package hw

//go:generate go tool stringer -type=AddrMode -linecomment -output addrmode_string.go

// AddrMode is an instruction addressing mode.
type AddrMode uint8

const (
	IMP AddrMode = iota // implied
	ACC                 // accumulator
	IMM                 // immediate
	ZPG                 // zeropage
	ZPX                 // zeropage,X
	ZPY                 // zeropage,Y
	ABS                 // absolute
	ABX                 // absolute,X
	ABY                 // absolute,Y
	IND                 // indirect
	IZX                 // (indirect,X)
	IZY                 // (indirect),Y
	REL                 // relative
)

// Size returns the length in bytes of an instruction using this mode.
func (m AddrMode) Size() uint8 {
	switch m {
	case IMP, ACC:
		return 1
	case ABS, ABX, ABY, IND:
		return 3
	}
	return 2
}

// operand is the result of resolving an addressing mode, only the fields
// relevant to the mode are set.
type operand struct {
	mode AddrMode
	addr uint16 // effective address (memory modes)
	val  uint8  // immediate value
	off  int8   // branch offset
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// resolve computes the operand of the instruction at PC. It reports whether
// indexing crossed a page boundary. Only the instruction bytes and the
// zero page pointers are read, never the operand itself.
func (c *CPU) resolve(mode AddrMode) (operand, bool) {
	o := operand{mode: mode}
	arg := c.PC + 1

	switch mode {
	case IMM:
		o.val = c.Bus.Read8(arg, false)
	case ZPG:
		o.addr = uint16(c.Bus.Read8(arg, false))
	case ZPX:
		o.addr = uint16(c.Bus.Read8(arg, false) + c.X)
	case ZPY:
		o.addr = uint16(c.Bus.Read8(arg, false) + c.Y)
	case ABS:
		o.addr = c.read16(arg)
	case ABX:
		base := c.read16(arg)
		o.addr = base + uint16(c.X)
		return o, pageCrossed(base, o.addr)
	case ABY:
		base := c.read16(arg)
		o.addr = base + uint16(c.Y)
		return o, pageCrossed(base, o.addr)
	case IND:
		// The high byte is fetched without carrying into the page.
		ptr := c.read16(arg)
		lo := c.Bus.Read8(ptr, false)
		hi := c.Bus.Read8(ptr&0xFF00|uint16(uint8(ptr)+1), false)
		o.addr = uint16(hi)<<8 | uint16(lo)
	case IZX:
		zp := c.Bus.Read8(arg, false) + c.X
		o.addr = c.read16zp(zp)
	case IZY:
		base := c.read16zp(c.Bus.Read8(arg, false))
		o.addr = base + uint16(c.Y)
		return o, pageCrossed(base, o.addr)
	case REL:
		o.off = int8(c.Bus.Read8(arg, false))
	}
	return o, false
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.Bus.Read8(addr, false)
	hi := c.Bus.Read8(addr+1, false)
	return uint16(hi)<<8 | uint16(lo)
}

// read16zp reads a pointer from the zero page, wrapping within it.
func (c *CPU) read16zp(zp uint8) uint16 {
	lo := c.Bus.Read8(uint16(zp), false)
	hi := c.Bus.Read8(uint16(zp+1), false)
	return uint16(hi)<<8 | uint16(lo)
}
